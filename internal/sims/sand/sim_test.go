package sand

import (
	"slices"
	"strconv"
	"testing"

	"sand-ca/internal/core"
)

func TestSandRegistered(t *testing.T) {
	factory, ok := core.Sims()["sand"]
	if !ok {
		t.Fatal("sand sim not registered")
	}
	sim := factory(map[string]string{"w": "12", "h": "10", "spawner": "none"})
	if sim.Name() != "sand" {
		t.Fatalf("Name = %q", sim.Name())
	}
	if size := sim.Size(); size.W != 12 || size.H != 10 {
		t.Fatalf("Size = %+v", size)
	}
	if got := len(sim.Pixels()); got != 4*12*10 {
		t.Fatalf("Pixels length = %d", got)
	}
}

func TestPaintUsesBrushAfterStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 16, 16
	cfg.Spawner = SpawnerNone
	s := NewWithConfig(cfg)
	s.SetBrush(Brush{Kind: KindWater, Radius: 1})

	s.Paint(8, 15)
	if got := s.Grid().Census()[KindWater]; got != 0 {
		t.Fatalf("paint visible before step: %d water", got)
	}
	s.Step()
	if got := s.Grid().Census()[KindWater]; got != 6 {
		t.Fatalf("radius-1 paint on the bottom edge gave %d water cells, want 6", got)
	}
}

func TestPaintLineCoversEndpoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 20, 20
	cfg.Spawner = SpawnerNone
	s := NewWithConfig(cfg)
	s.SetBrush(Brush{Kind: KindSand, Radius: 0})

	s.PaintLine(2, 19, 9, 19)
	s.Step()
	for x := 2; x <= 9; x++ {
		if got := s.Grid().At(x, 19).Kind; got != KindSand {
			t.Fatalf("(%d,19) = %v, want sand", x, got)
		}
	}
	if got := s.Grid().Census()[KindSand]; got != 8 {
		t.Fatalf("line painted %d cells, want 8", got)
	}
}

func TestResetClearsAndReseeds(t *testing.T) {
	s := New(24, 24)
	for i := 0; i < 20; i++ {
		s.Step()
	}
	first := append([]byte(nil), s.Pixels()...)

	s.Reset(0)
	if got := s.Grid().Census()[KindSand]; got != 0 {
		t.Fatalf("Reset left %d sand cells", got)
	}
	if s.Stats().Tick != 0 {
		t.Fatalf("Reset kept tick counter %d", s.Stats().Tick)
	}
	for i := 0; i < 20; i++ {
		s.Step()
	}
	if !slices.Equal(first, s.Pixels()) {
		t.Fatal("Reset with config seed not deterministic")
	}
}

func TestSetIntParameter(t *testing.T) {
	s := New(10, 10)

	if !s.SetIntParameter("brush_kind", int(KindWater)) || s.Brush().Kind != KindWater {
		t.Fatal("brush_kind not applied")
	}
	if s.SetIntParameter("brush_kind", 9) {
		t.Fatal("out-of-range brush_kind accepted")
	}
	if !s.SetIntParameter("brush_radius", 99) || s.Brush().Radius != maxBrushRadius {
		t.Fatalf("brush_radius not clamped: %d", s.Brush().Radius)
	}
	if !s.SetIntParameter("spawner", 0) {
		t.Fatal("spawner not adjustable")
	}
	s.Step()
	if got := s.Grid().At(5, 0).Kind; got != KindAir {
		t.Fatalf("disabled spawner still produced %v", got)
	}
	if !s.SetIntParameter("spawner", 2) {
		t.Fatal("spawner not adjustable")
	}
	s.Step()
	if got := s.Grid().At(5, 0).Kind; got != KindWater {
		t.Fatalf("water spawner produced %v", got)
	}
	if s.SetIntParameter("gravity", 1) {
		t.Fatal("unknown key accepted")
	}
}

func TestParametersExposeControlsAndStats(t *testing.T) {
	s := New(10, 10)
	s.Step()
	snap := s.Parameters()

	for _, ctrl := range s.ParameterControls() {
		p, ok := snap.Lookup(ctrl.Key)
		if !ok {
			t.Fatalf("control %q missing from snapshot", ctrl.Key)
		}
		if _, err := strconv.Atoi(p.Value); err != nil {
			t.Fatalf("control %q value %q is not an int", ctrl.Key, p.Value)
		}
	}
	tick, ok := snap.Lookup("tick")
	if !ok || tick.Value != "1" {
		t.Fatalf("tick parameter = %+v", tick)
	}
	name, ok := snap.Lookup("brush_name")
	if !ok || name.Value != "sand" {
		t.Fatalf("brush_name parameter = %+v", name)
	}
}
