package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 64; i++ {
		if a.Bool() != b.Bool() {
			t.Fatalf("draw %d: Bool diverged for equal seeds", i)
		}
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d: Float64 diverged for equal seeds", i)
		}
		if a.IntN(17) != b.IntN(17) {
			t.Fatalf("draw %d: IntN diverged for equal seeds", i)
		}
	}
}

func TestRNGRanges(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %f", f)
		}
		if n := r.IntN(5); n < 0 || n >= 5 {
			t.Fatalf("IntN out of range: %d", n)
		}
	}
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d, want 0", got)
	}
}
