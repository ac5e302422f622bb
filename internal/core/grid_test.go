package core

import "testing"

func TestBoundsRoundTrip(t *testing.T) {
	b := Bounds{W: 7, H: 5}
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			gx, gy := b.Coords(b.Index(x, y))
			if gx != x || gy != y {
				t.Fatalf("Coords(Index(%d,%d)) = (%d,%d)", x, y, gx, gy)
			}
		}
	}
}

func TestBoundsClampsOutOfRange(t *testing.T) {
	b := Bounds{W: 4, H: 3}
	cases := []struct {
		x, y   int
		cx, cy int
	}{
		{-1, 0, 0, 0},
		{-50, -50, 0, 0},
		{4, 1, 3, 1},
		{2, 3, 2, 2},
		{99, 99, 3, 2},
		{1, -7, 1, 0},
	}
	for _, tc := range cases {
		if got, want := b.Index(tc.x, tc.y), b.Index(tc.cx, tc.cy); got != want {
			t.Errorf("Index(%d,%d) = %d, want %d", tc.x, tc.y, got, want)
		}
		if b.Contains(tc.x, tc.y) {
			t.Errorf("Contains(%d,%d) = true for out-of-range coordinate", tc.x, tc.y)
		}
	}
}
