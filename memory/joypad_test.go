package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoypad_noSelectionReadsAllOnes(t *testing.T) {
	j := NewJoypad()
	assert.Equal(t, uint8(0x3F), j.ToByte())
}

func TestJoypad_directionColumn(t *testing.T) {
	j := NewJoypad()
	j.SelectColumn(ColumnDirections)
	j.Right = true

	got := j.ToByte()
	assert.Equal(t, uint8(0x10|0x0E), got) // bit 0 (right) cleared
}

func TestJoypad_actionColumn(t *testing.T) {
	j := NewJoypad()
	j.SelectColumn(ColumnActions)
	j.Start = true

	got := j.ToByte()
	assert.Equal(t, uint8(0x20|0x07), got) // bit 3 (start) cleared
}

func TestJoypad_stepDetectsPressEdge(t *testing.T) {
	j := NewJoypad()
	assert.False(t, j.Step(), "no buttons pressed yet, no transition")

	j.A = true
	assert.True(t, j.Step(), "pressing A should report a transition")
	assert.False(t, j.Step(), "holding A should not report another transition")

	j.A = false
	assert.False(t, j.Step(), "releasing is not an interrupt-raising edge")
}
