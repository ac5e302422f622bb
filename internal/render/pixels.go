package render

import "image/color"

// Compose alpha-blends the straight-alpha RGBA pixels in src over an opaque
// background and writes opaque RGBA into dst. dst must be at least len(src).
func Compose(dst, src []byte, bg color.RGBA) {
	for base := 0; base+3 < len(src); base += 4 {
		a := uint32(src[base+3])
		inv := 255 - a
		dst[base+0] = blend(src[base+0], bg.R, a, inv)
		dst[base+1] = blend(src[base+1], bg.G, a, inv)
		dst[base+2] = blend(src[base+2], bg.B, a, inv)
		dst[base+3] = 255
	}
}

// PixelAt returns the composed color of cell i in an RGBA buffer.
func PixelAt(buf []byte, i int) color.RGBA {
	base := i * 4
	return color.RGBA{R: buf[base], G: buf[base+1], B: buf[base+2], A: buf[base+3]}
}

func blend(fg, bg uint8, a, inv uint32) uint8 {
	return uint8((uint32(fg)*a + uint32(bg)*inv + 127) / 255)
}
