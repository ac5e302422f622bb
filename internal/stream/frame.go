// Package stream serves a running simulation to browser viewers over
// WebSocket as a feed of binary RGBA frames.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the length of the frame header: width, height and tick,
// big-endian.
const HeaderSize = 16

var (
	// ErrShortFrame is returned when a frame is smaller than its header.
	ErrShortFrame = errors.New("stream: frame shorter than header")
	// ErrFrameSize is returned when the pixel payload does not match the
	// dimensions in the header.
	ErrFrameSize = errors.New("stream: pixel payload does not match frame size")
)

// Frame is one decoded snapshot.
type Frame struct {
	Width  int
	Height int
	Tick   uint64
	Pixels []byte
}

// EncodeFrame packs a snapshot into a wire frame.
func EncodeFrame(width, height int, tick uint64, pixels []byte) []byte {
	buf := make([]byte, HeaderSize+len(pixels))
	binary.BigEndian.PutUint32(buf[0:4], uint32(width))
	binary.BigEndian.PutUint32(buf[4:8], uint32(height))
	binary.BigEndian.PutUint64(buf[8:16], tick)
	copy(buf[HeaderSize:], pixels)
	return buf
}

// DecodeFrame parses a wire frame. The returned Pixels alias buf.
func DecodeFrame(buf []byte) (Frame, error) {
	if len(buf) < HeaderSize {
		return Frame{}, ErrShortFrame
	}
	f := Frame{
		Width:  int(binary.BigEndian.Uint32(buf[0:4])),
		Height: int(binary.BigEndian.Uint32(buf[4:8])),
		Tick:   binary.BigEndian.Uint64(buf[8:16]),
		Pixels: buf[HeaderSize:],
	}
	if want := f.Width * f.Height * 4; len(f.Pixels) != want {
		return Frame{}, fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrFrameSize, f.Width, f.Height, want, len(f.Pixels))
	}
	return f, nil
}
