package tool

import (
	"image"

	"github.com/ha1tch/pixelpad/internal/pixbuf"
	"github.com/ha1tch/pixelpad/internal/raster"
)

// Preview describes a shape being dragged out. It is never written into the
// canvas; the display draws it on an overlay and drops it when the stroke
// ends.
type Preview struct {
	Kind   Tool // Line, Rect or Ellipse
	From   image.Point
	To     image.Point
	Width  float64
	Filled bool
	Color  pixbuf.Color
}

// Render rasterizes the preview into dst with the same primitives used on
// commit, so the overlay matches the committed pixels exactly.
func (p *Preview) Render(dst raster.Target) {
	drawShape(dst, p.Kind, p.From, p.To, p.Width, p.Filled, p.Color)
}

// Mask returns the pixels the preview covers inside a w x h canvas.
func (p *Preview) Mask(w, h int) *raster.Mask {
	m := raster.NewMask(w, h)
	p.Render(m)
	return m
}

func drawShape(dst raster.Target, kind Tool, from, to image.Point, width float64, filled bool, c pixbuf.Color) {
	switch kind {
	case Line:
		raster.Line(dst, from.X, from.Y, to.X, to.Y, width, c)
	case Rect:
		if filled {
			raster.Rect(dst, from.X, from.Y, to.X, to.Y, true, 1, c)
		} else {
			raster.Rect(dst, from.X, from.Y, to.X, to.Y, false, width, c)
		}
	case Ellipse:
		if filled {
			raster.Ellipse(dst, from.X, from.Y, to.X, to.Y, true, 1, c)
		} else {
			raster.Ellipse(dst, from.X, from.Y, to.X, to.Y, false, width, c)
		}
	}
}
