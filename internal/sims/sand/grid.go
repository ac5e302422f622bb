package sand

import (
	"fmt"

	"sand-ca/internal/core"
)

// Grid owns the current and next cell buffers of a fixed-size lattice.
// Reads during a tick come from the current buffer; fills and moves land in
// next, which becomes current when the tick commits.
type Grid struct {
	W, H   int
	bounds core.Bounds
	cur    []Cell
	nxt    []Cell

	// dirty lists the next-buffer indices written since the last commit.
	dirty []int
}

// NewGrid allocates a w*h grid filled with Air. Non-positive dimensions are a
// programming error and panic.
func NewGrid(w, h int) *Grid {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("sand: invalid grid size %dx%d", w, h))
	}
	g := &Grid{
		W:      w,
		H:      h,
		bounds: core.Bounds{W: w, H: h},
		cur:    make([]Cell, w*h),
		nxt:    make([]Cell, w*h),
	}
	g.Clear()
	return g
}

// Clear resets both buffers to Air.
func (g *Grid) Clear() {
	air := Air()
	for i := range g.cur {
		g.cur[i] = air
		g.nxt[i] = air
	}
	g.dirty = g.dirty[:0]
}

// IndexOf clamps (x, y) into the grid and returns its linear index.
func (g *Grid) IndexOf(x, y int) int { return g.bounds.Index(x, y) }

// CoordsOf maps an index produced by IndexOf back to coordinates.
func (g *Grid) CoordsOf(idx int) (int, int) { return g.bounds.Coords(idx) }

// Swap exchanges two cells of buf.
func (g *Grid) Swap(buf []Cell, i, j int) {
	buf[i], buf[j] = buf[j], buf[i]
	g.dirty = append(g.dirty, i, j)
}

// Current exposes the committed buffer. Callers must treat it as read-only.
func (g *Grid) Current() []Cell { return g.cur }

// Next exposes the pending buffer that the following commit publishes.
// Writes must go through Set, Fill or Swap so the commit can track them.
func (g *Grid) Next() []Cell { return g.nxt }

// At returns the committed cell at the clamped coordinate.
func (g *Grid) At(x, y int) Cell { return g.cur[g.IndexOf(x, y)] }

// Set writes c into the next buffer at the clamped coordinate.
func (g *Grid) Set(x, y int, c Cell) {
	i := g.IndexOf(x, y)
	g.nxt[i] = c
	g.dirty = append(g.dirty, i)
}

// Fill writes e into every cell of the inclusive rectangle spanned by
// (x0, y0) and (x1, y1). Corners are clamped; the write lands in next so it
// shows up after the following commit.
func (g *Grid) Fill(e Cell, x0, y0, x1, y1 int) {
	x0, y0 = g.bounds.Clamp(x0, y0)
	x1, y1 = g.bounds.Clamp(x1, y1)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	e.Falling = false
	for y := y0; y <= y1; y++ {
		row := y * g.W
		for x := x0; x <= x1; x++ {
			g.nxt[row+x] = e
			g.dirty = append(g.dirty, row+x)
		}
	}
}

// FillCell is Fill for a single coordinate.
func (g *Grid) FillCell(e Cell, x, y int) { g.Fill(e, x, y, x, y) }

// Snapshot returns the committed colors as row-major RGBA bytes.
func (g *Grid) Snapshot() []byte {
	return g.SnapshotInto(nil)
}

// SnapshotInto writes the RGBA snapshot into buf, growing it when needed, and
// returns the filled slice.
func (g *Grid) SnapshotInto(buf []byte) []byte {
	n := 4 * len(g.cur)
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]
	for i, c := range g.cur {
		base := i * 4
		buf[base+0] = c.Color.R
		buf[base+1] = c.Color.G
		buf[base+2] = c.Color.B
		buf[base+3] = c.Color.A
	}
	return buf
}

// Census counts committed cells per kind.
func (g *Grid) Census() map[Kind]int {
	counts := make(map[Kind]int, int(kindCount))
	for _, c := range g.cur {
		counts[c.Kind]++
	}
	return counts
}

// commit publishes next as the new current state. Buffer ownership is
// exchanged, then only the cells written since the last commit are re-synced
// into the new next, so pending writes always start from the committed state.
func (g *Grid) commit() {
	g.cur, g.nxt = g.nxt, g.cur
	for _, i := range g.dirty {
		g.nxt[i] = g.cur[i]
	}
	g.dirty = g.dirty[:0]
}
