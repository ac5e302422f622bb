package render

import (
	"image/color"
	"testing"
)

func TestComposeBlendsOverBackground(t *testing.T) {
	bg := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	src := []byte{
		0, 0, 0, 0, // transparent
		200, 150, 50, 255, // opaque
		100, 100, 100, 127, // translucent
	}
	dst := make([]byte, len(src))
	Compose(dst, src, bg)

	if got := PixelAt(dst, 0); got != bg {
		t.Fatalf("transparent pixel = %v, want background %v", got, bg)
	}
	if got, want := PixelAt(dst, 1), (color.RGBA{R: 200, G: 150, B: 50, A: 255}); got != want {
		t.Fatalf("opaque pixel = %v, want %v", got, want)
	}
	mid := PixelAt(dst, 2)
	if mid.A != 255 {
		t.Fatalf("composed alpha = %d, want 255", mid.A)
	}
	if mid.R <= bg.R || mid.R >= 100 {
		t.Fatalf("translucent red %d not between background and source", mid.R)
	}
}
