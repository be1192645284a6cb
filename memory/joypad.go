package memory

import "github.com/Xander-Br/dmg-emulator/bit"

// Column selects which half of the button matrix P1's low nibble reflects.
type Column uint8

const (
	ColumnNeither Column = iota
	ColumnDirections
	ColumnActions
)

// Joypad models the column-selected 4-button matrix (spec.md section 4.5).
// The host collaborator writes directly to the exported button fields
// between CPU steps (spec.md section 6); Step then reports a
// released-to-pressed edge, on which the Bus raises the joypad interrupt.
type Joypad struct {
	A, B, Start, Select   bool
	Up, Down, Left, Right bool

	column Column

	prevButtons uint8
	prevDpad    uint8
}

// NewJoypad returns a Joypad with no buttons pressed and no column selected.
func NewJoypad() *Joypad {
	j := &Joypad{column: ColumnNeither}
	j.prevButtons = 0x0F
	j.prevDpad = 0x0F
	return j
}

// actionBits packs A/B/Select/Start into the low nibble, 0 meaning pressed.
func (j *Joypad) actionBits() uint8 {
	var v uint8 = 0x0F
	v = bit.SetTo(0, v, !j.A) // inverted: 1 = released
	v = bit.SetTo(1, v, !j.B)
	v = bit.SetTo(2, v, !j.Select)
	v = bit.SetTo(3, v, !j.Start)
	return v
}

// dpadBits packs Right/Left/Up/Down into the low nibble, 0 meaning pressed.
func (j *Joypad) dpadBits() uint8 {
	var v uint8 = 0x0F
	v = bit.SetTo(0, v, !j.Right)
	v = bit.SetTo(1, v, !j.Left)
	v = bit.SetTo(2, v, !j.Up)
	v = bit.SetTo(3, v, !j.Down)
	return v
}

// SelectColumn stores which button column P1 bits 4-5 select.
func (j *Joypad) SelectColumn(column Column) {
	j.column = column
}

// ToByte encodes the joypad register: bits 4-5 read 0x10 with the
// directions column selected, 0x20 with the actions column selected and
// 0x30 with neither; bits 6-7 read as 0. The low nibble reflects the
// selected column inverted (0 = pressed), and reads 0xF with neither.
func (j *Joypad) ToByte() uint8 {
	switch j.column {
	case ColumnDirections:
		return 0x10 | j.dpadBits()
	case ColumnActions:
		return 0x20 | j.actionBits()
	default:
		return 0x30 | 0x0F
	}
}

// Step compares the current button state to the previously observed state
// and reports whether a released-to-pressed transition occurred on any
// button, so the Bus can raise IF.Joypad on the edge.
func (j *Joypad) Step() (transitioned bool) {
	buttons := j.actionBits()
	dpad := j.dpadBits()

	// a transition is a bit that was 1 (released) and is now 0 (pressed)
	if j.prevButtons&^buttons != 0 || j.prevDpad&^dpad != 0 {
		transitioned = true
	}

	j.prevButtons = buttons
	j.prevDpad = dpad
	return transitioned
}
