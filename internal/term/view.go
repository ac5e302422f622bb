// Package term renders a simulation in a terminal and turns keyboard and
// mouse input into sim commands. Each terminal cell shows two grid rows using
// the upper half block glyph.
package term

import (
	"fmt"
	"image/color"
	"strconv"

	"sand-ca/internal/core"
	"sand-ca/internal/render"
	"sand-ca/internal/sims/sand"

	"github.com/gdamore/tcell/v2"
)

const halfBlock = '▀'

// Background is the color composed under transparent cells.
var Background = color.RGBA{R: 12, G: 12, B: 18, A: 255}

var brushRunes = map[rune]sand.Kind{
	'1': sand.KindSand,
	'2': sand.KindWater,
	'3': sand.KindAir,
}

// View draws one sim onto a tcell screen.
type View struct {
	screen tcell.Screen
	sim    core.Sim
	buf    []byte
	seed   int64

	paused   bool
	stepOnce bool

	stroking     bool
	lastX, lastY int
}

// NewView binds sim to screen. seed is used by the reset key.
func NewView(screen tcell.Screen, sim core.Sim, seed int64) *View {
	return &View{screen: screen, sim: sim, seed: seed}
}

// Paused reports whether automatic stepping is suspended.
func (v *View) Paused() bool { return v.paused }

// Tick advances the sim unless paused; a pending single step always runs.
func (v *View) Tick() {
	if v.paused && !v.stepOnce {
		return
	}
	v.sim.Step()
	v.stepOnce = false
}

// Draw paints the current sim state and a status line. It does not call Show.
func (v *View) Draw() {
	size := v.sim.Size()
	pixels := v.sim.Pixels()
	if len(v.buf) != len(pixels) {
		v.buf = make([]byte, len(pixels))
	}
	render.Compose(v.buf, pixels, Background)

	sw, sh := v.screen.Size()
	rows := (size.H + 1) / 2
	bgStyle := tcell.StyleDefault.Background(rgb(Background))
	for ty := 0; ty < rows && ty < sh; ty++ {
		for x := 0; x < size.W && x < sw; x++ {
			top := render.PixelAt(v.buf, ty*2*size.W+x)
			bottom := Background
			if y := ty*2 + 1; y < size.H {
				bottom = render.PixelAt(v.buf, y*size.W+x)
			}
			style := bgStyle.Foreground(rgb(top)).Background(rgb(bottom))
			v.screen.SetContent(x, ty, halfBlock, nil, style)
		}
	}
	if rows < sh {
		v.drawStatus(rows, sw)
	}
}

func (v *View) drawStatus(row, width int) {
	line := v.statusLine()
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		v.screen.SetContent(x, row, r, nil, style)
	}
}

func (v *View) statusLine() string {
	state := "running"
	if v.paused {
		state = "paused"
	}
	provider, ok := v.sim.(core.ParameterProvider)
	if !ok {
		return fmt.Sprintf("%s %s  q quit  space pause  n step", v.sim.Name(), state)
	}
	snap := provider.Parameters()
	value := func(key string) string {
		if p, ok := snap.Lookup(key); ok {
			return p.Value
		}
		return "--"
	}
	return fmt.Sprintf("%s %s  tick %s  moved %s  brush %s r%s  [1 sand 2 water 3 air] [ ] radius  q quit",
		v.sim.Name(), state, value("tick"), value("moved"), value("brush_name"), value("brush_radius"))
}

// HandleEvent applies one input event. It returns false when the user asked
// to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *View) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		v.paused = false
		return true
	case tcell.KeyRune:
	default:
		return true
	}
	switch r := ev.Rune(); r {
	case 'q':
		return false
	case ' ':
		v.paused = !v.paused
	case 'n':
		v.stepOnce = true
	case 'r':
		v.sim.Reset(v.seed)
	case '[', ']':
		v.adjustRadius(r)
	default:
		if kind, ok := brushRunes[r]; ok {
			v.setParam("brush_kind", int(kind))
		}
	}
	return true
}

func (v *View) adjustRadius(r rune) {
	provider, ok := v.sim.(core.ParameterProvider)
	if !ok {
		return
	}
	p, ok := provider.Parameters().Lookup("brush_radius")
	if !ok {
		return
	}
	radius, err := strconv.Atoi(p.Value)
	if err != nil {
		return
	}
	if r == '[' {
		radius--
	} else {
		radius++
	}
	v.setParam("brush_radius", radius)
}

func (v *View) setParam(key string, value int) {
	if setter, ok := v.sim.(core.IntParameterSetter); ok {
		setter.SetIntParameter(key, value)
	}
}

// handleMouse paints while button 1 is held. A terminal row covers two grid
// rows; strokes target the upper one.
func (v *View) handleMouse(ev *tcell.EventMouse) {
	painter, ok := v.sim.(core.Painter)
	if !ok {
		return
	}
	if ev.Buttons()&tcell.Button1 == 0 {
		v.stroking = false
		return
	}
	mx, my := ev.Position()
	x, y := mx, my*2
	size := v.sim.Size()
	if x >= size.W || y >= size.H {
		v.stroking = false
		return
	}
	if !v.stroking {
		v.lastX, v.lastY = x, y
		v.stroking = true
	}
	painter.PaintLine(v.lastX, v.lastY, x, y)
	v.lastX, v.lastY = x, y
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
