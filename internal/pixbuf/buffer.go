// Package pixbuf holds the editable RGBA bitmap.
//
// Reads are strict and writes are tolerant: Get reports ErrOutOfBounds for a
// coordinate outside the buffer, while Set silently ignores it. Rasterization
// loops routinely sweep bounding boxes that hang over the edge, so clipping
// lives in Set and nowhere else.
package pixbuf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrOutOfBounds is returned when reading a pixel outside the buffer.
var ErrOutOfBounds = errors.New("pixbuf: coordinate out of bounds")

// Buffer is a width x height bitmap stored row-major, 4 bytes per pixel.
type Buffer struct {
	width  int
	height int
	pix    []uint8 // RGBA, non-premultiplied
}

// New creates a fully transparent buffer. Both dimensions must be positive.
func New(width, height int) *Buffer {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("pixbuf: invalid size %dx%d", width, height))
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// Width returns the width of the buffer.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the height of the buffer.
func (b *Buffer) Height() int {
	return b.height
}

// Pix returns the raw pixel bytes. The slice aliases the buffer.
func (b *Buffer) Pix() []uint8 {
	return b.pix
}

// InBounds reports whether (x, y) addresses a pixel of the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the color at (x, y).
func (b *Buffer) Get(x, y int) (Color, error) {
	if !b.InBounds(x, y) {
		return Color{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	i := (y*b.width + x) * 4
	return Color{b.pix[i], b.pix[i+1], b.pix[i+2], b.pix[i+3]}, nil
}

// Set writes c at (x, y). Coordinates outside the buffer are ignored.
func (b *Buffer) Set(x, y int, c Color) {
	if !b.InBounds(x, y) {
		return
	}
	i := (y*b.width + x) * 4
	b.pix[i+0] = c.R
	b.pix[i+1] = c.G
	b.pix[i+2] = c.B
	b.pix[i+3] = c.A
}

// Clear makes every pixel fully transparent black.
func (b *Buffer) Clear() {
	clear(b.pix)
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c Color) {
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i+0] = c.R
		b.pix[i+1] = c.G
		b.pix[i+2] = c.B
		b.pix[i+3] = c.A
	}
}

// Clone returns a deep copy that shares no memory with b.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{width: b.width, height: b.height, pix: pix}
}

// Equal reports whether both buffers have the same size and pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.width == other.width && b.height == other.height && bytes.Equal(b.pix, other.pix)
}

// ToNRGBA copies the buffer into an image.NRGBA.
func (b *Buffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.pix)
	return img
}

// At implements the image.Image interface. Out of range pixels read as
// transparent; use Get for a checked read.
func (b *Buffer) At(x, y int) color.Color {
	c, err := b.Get(x, y)
	if err != nil {
		return color.NRGBA{}
	}
	return c.NRGBA()
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	return color.NRGBAModel
}
