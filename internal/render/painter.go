//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads RGBA snapshots into a single image and draws it scaled.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
	bg   color.RGBA
}

// NewGridPainter allocates a painter for a grid of size w*h drawn over bg.
func NewGridPainter(w, h int, bg color.RGBA) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h), bg: bg}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit composes the provided pixels into the painter image and draws it.
func (gp *GridPainter) Blit(dst *ebiten.Image, pixels []byte, scale int) {
	if len(pixels) != len(gp.buf) {
		return
	}
	Compose(gp.buf, pixels, gp.bg)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
