package sand

import (
	"strconv"

	"sand-ca/internal/core"
	pcore "sand-ca/pkg/core"
)

// maxBrushRadius caps the square brush painted by input tools.
const maxBrushRadius = 16

// Brush is the element and square radius painted by input tools.
type Brush struct {
	Kind   Kind
	Radius int
}

// Sim adapts Grid and Engine to core.Sim and carries the input brush.
type Sim struct {
	cfg    Config
	grid   *Grid
	engine *Engine
	rng    *pcore.RNG
	brush  Brush
	pixels []byte
}

// New returns a sand simulation with the provided dimensions using defaults.
func New(w, h int) *Sim {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a sand simulation configured from cfg.
func NewWithConfig(cfg Config) *Sim {
	if _, err := SpawnerRule(cfg.Spawner, cfg.WaterFlow); err != nil {
		cfg.Spawner = SpawnerNone
	}
	if cfg.WaterFlow < 1 {
		cfg.WaterFlow = DefaultWaterFlow
	}
	s := &Sim{
		cfg:   cfg,
		grid:  NewGrid(cfg.Width, cfg.Height),
		brush: Brush{Kind: KindSand, Radius: 2},
	}
	s.Reset(0)
	return s
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "sand" }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.grid.W, H: s.grid.H} }

// Reset clears the grid to Air and reseeds the random source. A zero seed
// falls back to the configured one.
func (s *Sim) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = s.cfg.Seed
	}
	s.rng = pcore.NewRNG(effective)
	s.grid.Clear()
	rule, _ := SpawnerRule(s.cfg.Spawner, s.cfg.WaterFlow)
	s.engine = NewEngine(s.grid, s.rng, WithSpawnRule(rule))
}

// Step advances the simulation by one tick.
func (s *Sim) Step() { s.engine.Tick() }

// Pixels returns the committed state as RGBA bytes. The slice is reused.
func (s *Sim) Pixels() []byte {
	s.pixels = s.grid.SnapshotInto(s.pixels)
	return s.pixels
}

// Grid exposes the underlying grid.
func (s *Sim) Grid() *Grid { return s.grid }

// Stats reports counters for the last tick.
func (s *Sim) Stats() TickStats { return s.engine.Stats() }

// Brush returns the active brush.
func (s *Sim) Brush() Brush { return s.brush }

// SetBrush replaces the brush, clamping its radius.
func (s *Sim) SetBrush(b Brush) {
	if b.Kind >= kindCount {
		b.Kind = KindAir
	}
	b.Radius = clampRadius(b.Radius)
	s.brush = b
}

// Paint fills the brush square centered on (x, y). Like every fill it shows
// up after the next Step.
func (s *Sim) Paint(x, y int) {
	r := s.brush.Radius
	s.grid.Fill(s.element(s.brush.Kind), x-r, y-r, x+r, y+r)
}

// PaintLine paints the brush at every lattice point between the two ends.
func (s *Sim) PaintLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		s.Paint(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (s *Sim) element(kind Kind) Cell {
	if kind == KindWater {
		return WaterWithFlow(s.cfg.WaterFlow)
	}
	return NewElement(kind, s.rng)
}

// Parameters reports the sim configuration and live counters.
func (s *Sim) Parameters() core.ParameterSnapshot {
	stats := s.engine.Stats()
	census := s.grid.Census()
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", s.cfg.Width),
				intParam("h", "Height", s.cfg.Height),
				int64Param("seed", "Seed", s.cfg.Seed),
				intParam("water_flow", "Water flow", s.cfg.WaterFlow),
			},
		},
		{
			Name: "Brush",
			Params: []core.Parameter{
				intParam("brush_kind", "Brush element", int(s.brush.Kind)),
				stringParam("brush_name", "Brush", s.brush.Kind.String()),
				intParam("brush_radius", "Brush radius", s.brush.Radius),
			},
		},
		{
			Name: "Source",
			Params: []core.Parameter{
				intParam("spawner", "Spawner", spawnerIndex(s.cfg.Spawner)),
				stringParam("spawner_name", "Source", s.cfg.Spawner),
			},
		},
		{
			Name: "Tick",
			Params: []core.Parameter{
				int64Param("tick", "Tick", int64(stats.Tick)),
				intParam("falling", "Falling", stats.Falling),
				intParam("moved", "Moved", stats.Moved),
				intParam("sand", "Sand cells", census[KindSand]),
				intParam("water", "Water cells", census[KindWater]),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable parameters.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "brush_kind", Label: "Brush", Step: 1, Min: 0, Max: int(kindCount) - 1, HasMin: true, HasMax: true},
		{Key: "brush_radius", Label: "Radius", Step: 1, Min: 0, Max: maxBrushRadius, HasMin: true, HasMax: true},
		{Key: "spawner", Label: "Source", Step: 1, Min: 0, Max: len(spawnerNames) - 1, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an adjustable parameter by key.
func (s *Sim) SetIntParameter(key string, value int) bool {
	switch key {
	case "brush_kind":
		if value < 0 || value >= int(kindCount) {
			return false
		}
		s.brush.Kind = Kind(value)
		return true
	case "brush_radius":
		s.brush.Radius = clampRadius(value)
		return true
	case "spawner":
		if value < 0 || value >= len(spawnerNames) {
			return false
		}
		s.cfg.Spawner = spawnerNames[value]
		rule, _ := SpawnerRule(s.cfg.Spawner, s.cfg.WaterFlow)
		s.engine.SetSpawnRule(rule)
		return true
	default:
		return false
	}
}

func spawnerIndex(name string) int {
	for i, n := range spawnerNames {
		if n == name {
			return i
		}
	}
	return 0
}

func clampRadius(r int) int {
	if r < 0 {
		return 0
	}
	if r > maxBrushRadius {
		return maxBrushRadius
	}
	return r
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: value}
}

func init() {
	core.Register("sand", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
