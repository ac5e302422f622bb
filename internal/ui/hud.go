//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"sand-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBg   = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor  = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	btnOn     = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	btnOff    = color.RGBA{R: 32, G: 34, B: 40, A: 255}
)

// HUD is the side panel with +/- buttons for the sim's integer controls and
// a short list of tick counters.
type HUD struct {
	sim    core.Sim
	setter core.IntParameterSetter
	width  int
	rows   []row
	snap   core.ParameterSnapshot
	offset int

	panel *ebiten.Image
	pixel *ebiten.Image
}

// NewHUD builds a panel of the given width for sim.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0)}
	if p, ok := sim.(core.ParameterControlsProvider); ok {
		h.rows = newRows(p.ParameterControls(), h.width)
	}
	h.setter, _ = sim.(core.IntParameterSetter)
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	return h
}

// Width reports the panel width in screen pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the rows and applies a click on the panel. It reports
// whether the click landed on the panel.
func (h *HUD) Update(panelOffsetX int) bool {
	if h == nil {
		return false
	}
	h.offset = panelOffsetX
	if p, ok := h.sim.(core.ParameterProvider); ok {
		h.snap = p.Parameters()
	}
	for i := range h.rows {
		h.rows[i].refresh(h.snap)
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.offset {
		return false
	}
	if i, dir, ok := hit(h.rows, mx-h.offset, my); ok && h.setter != nil {
		if v, changed := h.rows[i].step(dir); changed {
			h.setter.SetIntParameter(h.rows[i].ctrl.Key, v)
		}
	}
	return true
}

// Draw paints the panel at offsetX, to the right of the sim view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width == 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBg)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.sim.Name(), face, pad, titleY, textColor)
	for i := range h.rows {
		r := &h.rows[i]
		y := r.top + rowHeight/2 + 4
		text.Draw(h.panel, r.ctrl.Label, face, pad, y, textColor)
		w := text.BoundString(face, r.text).Dx()
		text.Draw(h.panel, r.text, face, r.minus.Min.X-btnGap-w, y, dimColor)
		_, canDec := r.step(-1)
		_, canInc := r.step(1)
		h.button(r.minus, "-", canDec && h.setter != nil)
		h.button(r.plus, "+", canInc && h.setter != nil)
	}

	y := rowsTop + len(h.rows)*rowHeight + statLine
	for _, line := range statLines(h.snap) {
		text.Draw(h.panel, line, face, pad, y, dimColor)
		y += statLine
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) button(rect image.Rectangle, label string, enabled bool) {
	bg, fg := btnOff, dimColor
	if enabled {
		bg, fg = btnOn, textColor
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	b := text.BoundString(basicfont.Face7x13, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()+b.Dy())/2
	text.Draw(h.panel, label, basicfont.Face7x13, x, y, fg)
}
