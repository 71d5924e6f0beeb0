package game

import (
	"math"
	"testing"
)

func TestFade_AlphaRampsLinearly(t *testing.T) {
	for _, tt := range []float64{0, 0.5, 1, 2, 3.2, 4} {
		f := NewFade()
		if st := f.Step(tt); st != TaskCont {
			t.Fatalf("t=%.1f: expected fade to continue", tt)
		}
		want := 1 - tt/4
		if math.Abs(f.Alpha()-want) > 1e-9 {
			t.Fatalf("t=%.1f: expected alpha %.3f, got %.3f", tt, want, f.Alpha())
		}
		if f.Disposed() {
			t.Fatalf("t=%.1f: expected overlay alive", tt)
		}
	}
}

func TestFade_DisposedAfterWindow(t *testing.T) {
	f := NewFade()
	f.Step(1)
	if st := f.Step(4.01); st != TaskDone {
		t.Fatal("expected fade done after 4s")
	}
	if !f.Disposed() || f.Alpha() != 0 {
		t.Fatalf("expected disposed transparent overlay, alpha=%.2f", f.Alpha())
	}
	// Not restartable.
	if st := f.Step(0); st != TaskDone || !f.Disposed() {
		t.Fatal("expected disposed fade to stay disposed")
	}
}

func TestFade_StartsOpaque(t *testing.T) {
	if a := NewFade().Alpha(); a != 1 {
		t.Fatalf("expected opaque overlay, got %.2f", a)
	}
}
