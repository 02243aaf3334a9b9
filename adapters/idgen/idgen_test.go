package idgen

import "testing"

func TestUUID_New(t *testing.T) {
	gen := UUID{}

	a := gen.New()
	b := gen.New()
	if a == b {
		t.Errorf("consecutive IDs equal: %s", a)
	}
	if len(a) != 36 {
		t.Errorf("unexpected UUID length %d: %s", len(a), a)
	}
}

func TestSequential_New(t *testing.T) {
	gen := NewSequential("mod-")

	if got := gen.New(); got != "mod-1" {
		t.Errorf("got %q, want mod-1", got)
	}
	if got := gen.New(); got != "mod-2" {
		t.Errorf("got %q, want mod-2", got)
	}

	gen.Reset()
	if got := gen.New(); got != "mod-1" {
		t.Errorf("after reset: %q", got)
	}
}
