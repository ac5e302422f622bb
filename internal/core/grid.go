package core

// Bounds describes a fixed-size row-major lattice with origin at the top left.
// All coordinate lookups clamp to the lattice instead of wrapping or failing.
type Bounds struct {
	W, H int
}

// Len returns the number of cells covered by the bounds.
func (b Bounds) Len() int { return b.W * b.H }

// Contains reports whether (x, y) lies inside the lattice.
func (b Bounds) Contains(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Clamp pulls (x, y) onto the nearest in-range coordinate.
func (b Bounds) Clamp(x, y int) (int, int) {
	return clampInt(x, 0, b.W-1), clampInt(y, 0, b.H-1)
}

// Index returns the linear index for (x, y) after clamping.
func (b Bounds) Index(x, y int) int {
	x, y = b.Clamp(x, y)
	return b.W*y + x
}

// Coords is the inverse of Index for indices it produced.
func (b Bounds) Coords(idx int) (int, int) {
	return idx % b.W, idx / b.W
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
