//go:build ebiten

package app

import (
	"image/color"
	"strconv"
	"time"

	"sand-ca/internal/core"
	"sand-ca/internal/render"
	"sand-ca/internal/sims/sand"
	"sand-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

var background = color.RGBA{R: 12, G: 12, B: 18, A: 255}

var brushKeys = map[ebiten.Key]sand.Kind{
	ebiten.KeyDigit1: sand.KindSand,
	ebiten.KeyDigit2: sand.KindWater,
	ebiten.KeyDigit3: sand.KindAir,
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD

	scale    int
	paused   bool
	tickOnce bool
	seed     int64

	stroking     bool
	lastX, lastY int
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H, background),
		hud:     ui.NewHUD(sim, hudWidth),
		scale:   scale,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	g.updateBrush()

	size := g.sim.Size()
	consumed := g.hud.Update(size.W * g.scale)
	if !consumed {
		g.updateStroke()
	}

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) updateBrush() {
	setter, ok := g.sim.(core.IntParameterSetter)
	if !ok {
		return
	}
	for key, kind := range brushKeys {
		if inpututil.IsKeyJustPressed(key) {
			setter.SetIntParameter("brush_kind", int(kind))
		}
	}
	provider, ok := g.sim.(core.ParameterProvider)
	if !ok {
		return
	}
	radius := 0
	if p, ok := provider.Parameters().Lookup("brush_radius"); ok {
		radius = atoiOr(p.Value, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		setter.SetIntParameter("brush_radius", radius-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		setter.SetIntParameter("brush_radius", radius+1)
	}
}

// updateStroke paints while the left button is held, joining successive
// cursor samples so fast drags leave no gaps.
func (g *Game) updateStroke() {
	painter, ok := g.sim.(core.Painter)
	if !ok {
		return
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.stroking = false
		return
	}
	mx, my := ebiten.CursorPosition()
	size := g.sim.Size()
	x, y := mx/g.scale, my/g.scale
	if x >= size.W {
		g.stroking = false
		return
	}
	if !g.stroking {
		g.lastX, g.lastY = x, y
		g.stroking = true
	}
	painter.PaintLine(g.lastX, g.lastY, x, y)
	g.lastX, g.lastY = x, y
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.painter.Blit(screen, g.sim.Pixels(), g.scale)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}

func atoiOr(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
