package memory

import "testing"

func TestRAM_banksAreIndependent(t *testing.T) {
	r := NewRAM()

	r.WriteWork(0x0000, 0x11)
	r.WriteExternal(0x0000, 0x22)
	r.WriteHigh(0x00, 0x33)

	if got := r.ReadWork(0x0000); got != 0x11 {
		t.Errorf("work RAM = 0x%02X, want 0x11", got)
	}
	if got := r.ReadExternal(0x0000); got != 0x22 {
		t.Errorf("external RAM = 0x%02X, want 0x22", got)
	}
	if got := r.ReadHigh(0x00); got != 0x33 {
		t.Errorf("high RAM = 0x%02X, want 0x33", got)
	}
}

func TestRAM_zeroInitialised(t *testing.T) {
	r := NewRAM()

	if got := r.ReadWork(0x1000); got != 0 {
		t.Errorf("fresh work RAM = 0x%02X, want 0", got)
	}
	if got := r.ReadExternal(0x1000); got != 0 {
		t.Errorf("fresh external RAM = 0x%02X, want 0", got)
	}
}
