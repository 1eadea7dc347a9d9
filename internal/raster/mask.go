package raster

import (
	"image"

	"github.com/ha1tch/pixelpad/internal/pixbuf"
)

// Mask collects the pixels a primitive covers without touching a buffer.
// Points are kept once each, in first-visit order, and are clipped to Bounds
// when Bounds is not empty.
type Mask struct {
	Bounds image.Rectangle

	seen   map[image.Point]struct{}
	points []image.Point
}

// NewMask returns a mask clipped to a w x h canvas.
func NewMask(w, h int) *Mask {
	return &Mask{Bounds: image.Rect(0, 0, w, h)}
}

// Set implements Target. The color is ignored.
func (m *Mask) Set(x, y int, _ pixbuf.Color) {
	p := image.Pt(x, y)
	if !m.Bounds.Empty() && !p.In(m.Bounds) {
		return
	}
	if m.seen == nil {
		m.seen = make(map[image.Point]struct{})
	}
	if _, ok := m.seen[p]; ok {
		return
	}
	m.seen[p] = struct{}{}
	m.points = append(m.points, p)
}

// Points returns the covered pixels.
func (m *Mask) Points() []image.Point {
	return m.points
}

// Len returns the number of covered pixels.
func (m *Mask) Len() int {
	return len(m.points)
}

// Has reports whether (x, y) is covered.
func (m *Mask) Has(x, y int) bool {
	_, ok := m.seen[image.Pt(x, y)]
	return ok
}
