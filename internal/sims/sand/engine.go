package sand

const (
	// dropSteps bounds how many single-step moves one cell makes per tick.
	dropSteps = 4
	// liquidReach is the half-width of the window below a liquid that is
	// checked for any non-solid cell before it is allowed to move.
	liquidReach = 4
)

// Random is the randomness consulted at each branching decision. Tests
// substitute a seeded or scripted source.
type Random interface {
	Bool() bool
	Float64() float64
}

// TickStats summarizes the most recent tick.
type TickStats struct {
	Tick    uint64
	Falling int
	Moved   int
}

// Engine advances a Grid one discrete step at a time. It is single-threaded
// and not reentrant: Tick mutates the next buffer while reading current.
type Engine struct {
	grid  *Grid
	rng   Random
	spawn SpawnRule
	stats TickStats
}

// Option configures an Engine.
type Option func(*Engine)

// WithSpawnRule replaces the per-tick spawn rule. nil disables spawning.
func WithSpawnRule(r SpawnRule) Option {
	return func(e *Engine) { e.spawn = r }
}

// NewEngine wires an engine to g. By default a sand source sits at the top
// center of the grid.
func NewEngine(g *Grid, rng Random, opts ...Option) *Engine {
	e := &Engine{grid: g, rng: rng, spawn: TopCenter(KindSand)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Grid returns the grid the engine drives.
func (e *Engine) Grid() *Grid { return e.grid }

// Stats reports counters for the last completed tick.
func (e *Engine) Stats() TickStats { return e.stats }

// Tick advances the grid by one step. Columns are scanned left to right and
// each column top to bottom.
func (e *Engine) Tick() {
	g := e.grid
	stats := TickStats{Tick: e.stats.Tick + 1}
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			c := &g.cur[g.IndexOf(x, y)]
			c.Falling = false
			if y == g.H-1 {
				continue
			}
			c.Falling = e.eligible(x, y, c.State)
			if !c.Falling {
				continue
			}
			stats.Falling++
			if e.resolve(x, y, *c) {
				stats.Moved++
			}
		}
	}
	if e.spawn != nil {
		e.spawn.Spawn(g, e.rng)
	}
	g.commit()
	e.stats = stats
}

// eligible decides whether the cell at (x, y) tries to move this tick.
func (e *Engine) eligible(x, y int, state MatterState) bool {
	g := e.grid
	switch state {
	case Solid:
		return g.cur[g.IndexOf(x, y+1)].State != Solid
	case Liquid:
		for dx := -liquidReach; dx <= liquidReach; dx++ {
			if g.cur[g.IndexOf(x+dx, y+1)].State != Solid {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// resolve repeats the single-step drop for c starting at (x, y), swapping
// positions in next, and stops as soon as a step leaves it in place.
func (e *Engine) resolve(x, y int, c Cell) bool {
	g := e.grid
	moved := false
	for step := 0; step < dropSteps; step++ {
		nx, ny := e.Drop(x, y, c)
		if nx == x && ny == y {
			break
		}
		g.Swap(g.nxt, g.IndexOf(x, y), g.IndexOf(nx, ny))
		x, y = nx, ny
		moved = true
	}
	return moved
}

// Drop returns where c, standing at (x, y), moves in one step. Neighbors are
// read from the current buffer. Returning (x, y) means it stays.
func (e *Engine) Drop(x, y int, c Cell) (int, int) {
	g := e.grid
	if y >= g.H-1 {
		return x, y
	}
	below := g.cur[g.IndexOf(x, y+1)].State
	switch {
	case below == Gas:
		return x, y + 1
	case c.State == Solid && below == Liquid:
		return x, y + 1
	case c.State == Liquid:
		leftFirst := e.rng.Bool()
		if nx, ok := e.spread(x, y+1, c, leftFirst); ok {
			return nx, y + 1
		}
		if nx, ok := e.spread(x, y, c, leftFirst); ok {
			return nx, y
		}
		return x, y
	default:
		return e.slide(x, y)
	}
}

// slide picks a non-solid diagonal below (x, y) in a random order. At the
// edges the missing diagonal collapses onto the cell straight below.
func (e *Engine) slide(x, y int) (int, int) {
	g := e.grid
	left, right := x-1, x+1
	if x <= 0 {
		left = x
	}
	if x >= g.W-1 {
		right = x
	}
	first, second := left, right
	if !e.rng.Bool() {
		first, second = right, left
	}
	for _, nx := range [2]int{first, second} {
		if g.cur[g.IndexOf(nx, y+1)].State != Solid {
			return nx, y + 1
		}
	}
	return x, y
}

// spread scans row outward from column x up to c.FlowDistance cells,
// alternating sides after each probe. Gas is always accepted, liquid only
// when c is solid, and a solid or the grid edge closes that side.
func (e *Engine) spread(x, row int, c Cell, leftFirst bool) (int, bool) {
	g := e.grid
	dirs := [2]int{1, -1}
	if leftFirst {
		dirs = [2]int{-1, 1}
	}
	var closed [2]bool
	for d := 1; d <= c.FlowDistance; d++ {
		if closed[0] && closed[1] {
			break
		}
		for side, dir := range dirs {
			if closed[side] {
				continue
			}
			nx := x + dir*d
			if nx < 0 || nx >= g.W {
				closed[side] = true
				continue
			}
			switch g.cur[g.IndexOf(nx, row)].State {
			case Gas:
				return nx, true
			case Liquid:
				if c.State == Solid {
					return nx, true
				}
			case Solid:
				closed[side] = true
			}
		}
	}
	return x, false
}

// SetSpawnRule swaps the spawn rule between ticks. nil disables spawning.
func (e *Engine) SetSpawnRule(r SpawnRule) { e.spawn = r }
