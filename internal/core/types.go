package core

import "sort"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a cellular automaton must implement for
// the drivers in this repository.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	// Pixels returns the current state as row-major RGBA bytes, four per cell.
	// The slice may be reused by the next call.
	Pixels() []byte
}

// Painter is implemented by sims that accept brush input from a driver.
type Painter interface {
	PaintLine(x0, y0, x1, y1 int)
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// SimNames lists registered simulations in sorted order.
func SimNames() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
