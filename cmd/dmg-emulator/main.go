package main

import (
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"

	dmgemulator "github.com/Xander-Br/dmg-emulator"
)

const (
	width  = 160
	height = 144

	// Terminal characters are taller than wide; scale the width more to
	// keep the aspect ratio roughly square.
	scaleX = 2
	scaleY = 1

	frameTime = time.Second / 60
)

var shadeChars = []rune{'█', '▓', '▒', '░'}

type terminalRenderer struct {
	screen  tcell.Screen
	system  *dmgemulator.System
	running bool
}

func newTerminalRenderer(system *dmgemulator.System) (*terminalRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	return &terminalRenderer{screen: screen, system: system, running: true}, nil
}

func (t *terminalRenderer) Run() error {
	defer func() {
		slog.Info("terminal renderer stopping")
		t.screen.Fini()
	}()

	t.screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorWhite))
	t.screen.Clear()

	go t.handleInput()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for t.running {
		select {
		case <-ticker.C:
			t.system.RunFrame()
			t.render()
			t.screen.Show()
		case <-signals:
			t.running = false
			return nil
		}
	}

	return nil
}

func (t *terminalRenderer) handleInput() {
	for t.running {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.handleKey(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *terminalRenderer) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		t.running = false
		return
	}

	joypad := t.system.Joypad()
	switch ev.Rune() {
	case 'z':
		joypad.A = true
	case 'x':
		joypad.B = true
	case 'w':
		joypad.Up = true
	case 's':
		joypad.Down = true
	case 'a':
		joypad.Left = true
	case 'd':
		joypad.Right = true
	}
	switch ev.Key() {
	case tcell.KeyEnter:
		joypad.Start = true
	case tcell.KeyTab:
		joypad.Select = true
	}
}

// render maps each framebuffer pixel's grey shade to one of four block
// characters (spec.md section 6's byte layout: grey,grey,grey,alpha).
func (t *terminalRenderer) render() {
	fb := t.system.FrameBuffer()
	t.screen.Clear()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := (y*width + x) * 4
			grey := fb.Pixels[offset]
			shadeIndex := 3 - int(grey)/64
			if shadeIndex < 0 {
				shadeIndex = 0
			}
			if shadeIndex > 3 {
				shadeIndex = 3
			}

			style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
			char := shadeChars[shadeIndex]

			screenX := x * scaleX
			screenY := y * scaleY
			for sx := 0; sx < scaleX; sx++ {
				t.screen.SetContent(screenX+sx, screenY, char, nil, style)
			}
		}
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "dmg-emulator"
	app.Description = "A cycle-driven Game Boy emulator core with a terminal front end"
	app.Usage = "dmg-emulator [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "boot-rom",
			Usage: "Path to an optional boot ROM overlay",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("dmg-emulator exiting", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	var system *dmgemulator.System
	var err error

	if bootROM := c.String("boot-rom"); bootROM != "" {
		system, err = dmgemulator.NewWithBootROM(romPath, bootROM)
	} else {
		system, err = dmgemulator.NewWithROM(romPath)
	}
	if err != nil {
		return err
	}

	renderer, err := newTerminalRenderer(system)
	if err != nil {
		return err
	}

	return renderer.Run()
}
