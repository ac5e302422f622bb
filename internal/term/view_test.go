package term

import (
	"context"
	"testing"
	"time"

	"sand-ca/internal/render"
	"sand-ca/internal/sims/sand"

	"github.com/gdamore/tcell/v2"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func newTestSim(w, h int) *sand.Sim {
	cfg := sand.DefaultConfig()
	cfg.Width, cfg.Height = w, h
	cfg.Spawner = sand.SpawnerNone
	s := sand.NewWithConfig(cfg)
	s.SetBrush(sand.Brush{Kind: sand.KindSand, Radius: 0})
	return s
}

func TestDrawPacksTwoRowsPerCell(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	sim := newTestSim(6, 4)
	sim.Paint(1, 0)
	sim.Step() // commits the paint
	sim.Step() // drops the grain

	v := NewView(screen, sim, 1)
	v.Draw()
	screen.Show()

	// The grain lands on row 3, the lower half of terminal row 1.
	if got := sim.Grid().At(1, 3).Kind; got != sand.KindSand {
		t.Fatalf("(1,3) = %v, want sand", got)
	}
	mainc, _, style, _ := screen.GetContent(1, 1)
	if mainc != halfBlock {
		t.Fatalf("cell rune = %q, want half block", mainc)
	}
	fg, bg, _ := style.Decompose()
	composed := make([]byte, 4)
	render.Compose(composed, sim.Pixels()[4*(3*6+1):4*(3*6+2)], Background)
	if want := rgb(render.PixelAt(composed, 0)); bg != want {
		t.Fatalf("lower half = %v, want sand color %v", bg, want)
	}
	if want := rgb(Background); fg != want {
		t.Fatalf("upper half = %v, want empty cell color %v", fg, want)
	}

	if mainc, _, _, _ := screen.GetContent(0, 2); mainc != 's' {
		t.Fatalf("status line starts with %q, want sim name", mainc)
	}
}

func TestKeysControlSim(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	sim := newTestSim(6, 6)
	v := NewView(screen, sim, 1)

	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '2', tcell.ModNone)) {
		t.Fatal("brush key quit the view")
	}
	if sim.Brush().Kind != sand.KindWater {
		t.Fatalf("brush = %v, want water", sim.Brush().Kind)
	}
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ']', tcell.ModNone))
	if sim.Brush().Radius != 1 {
		t.Fatalf("radius = %d, want 1", sim.Brush().Radius)
	}

	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !v.Paused() {
		t.Fatal("space did not pause")
	}
	v.Tick()
	if got := sim.Stats().Tick; got != 0 {
		t.Fatalf("paused view stepped to tick %d", got)
	}
	v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	v.Tick()
	v.Tick()
	if got := sim.Stats().Tick; got != 1 {
		t.Fatalf("single step gave tick %d, want 1", got)
	}

	if v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q did not quit")
	}
	if v.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape did not quit")
	}
}

func TestMousePaintsUpperRow(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	sim := newTestSim(8, 8)
	v := NewView(screen, sim, 1)

	v.HandleEvent(tcell.NewEventMouse(3, 1, tcell.Button1, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	v.HandleEvent(tcell.NewEventMouse(30, 1, tcell.Button1, tcell.ModNone))
	sim.Step()

	if got := sim.Grid().At(3, 2).Kind; got != sand.KindSand {
		t.Fatalf("(3,2) = %v, want sand", got)
	}
	if got := sim.Grid().Census()[sand.KindSand]; got != 1 {
		t.Fatalf("painted %d cells, want 1", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	sim := newTestSim(6, 6)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := Run(ctx, screen, sim, 60, 1); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if sim.Stats().Tick == 0 {
		t.Fatal("Run never stepped the sim")
	}
}
