// Package raster computes pixel coverage for the editor's drawing primitives.
//
// Every primitive is deterministic and integer-exact for a given input. All
// writes go through Target.Set, which is expected to clip silently, so the
// loops here sweep whole bounding boxes without bounds checks.
package raster

import (
	"math"

	"github.com/ha1tch/pixelpad/internal/pixbuf"
)

// Target receives the pixels a primitive covers. *pixbuf.Buffer implements it.
type Target interface {
	Set(x, y int, c pixbuf.Color)
}

// Stamp draws a filled disc: every pixel whose center lies within r of
// (cx, cy), boundary included.
func Stamp(dst Target, cx, cy, r float64, c pixbuf.Color) {
	r2 := r * r
	xMin, xMax := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	yMin, yMax := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := yMin; y <= yMax; y++ {
		for x := xMin; x <= xMax; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy <= r2 {
				dst.Set(x, y, c)
			}
		}
	}
}

// Line draws a Bresenham line from (x0, y0) to (x1, y1), stamping a disc of
// diameter width at every visited point.
func Line(dst Target, x0, y0, x1, y1 int, width float64, c pixbuf.Color) {
	r := width / 2
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy
	for {
		Stamp(dst, float64(x0), float64(y0), r, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Rect draws the axis-aligned box spanned by the two corners, inclusive.
// Outlined boxes are made of concentric one pixel rings, one per whole unit
// of border (a fractional border rounds up).
func Rect(dst Target, x0, y0, x1, y1 int, filled bool, border float64, c pixbuf.Color) {
	xMin, xMax := min(x0, x1), max(x0, x1)
	yMin, yMax := min(y0, y1), max(y0, y1)
	if filled {
		for y := yMin; y <= yMax; y++ {
			for x := xMin; x <= xMax; x++ {
				dst.Set(x, y, c)
			}
		}
		return
	}
	for w := 0; float64(w) < border; w++ {
		// Top and bottom
		for x := xMin + w; x <= xMax-w; x++ {
			dst.Set(x, yMin+w, c)
			dst.Set(x, yMax-w, c)
		}
		// Left and right
		for y := yMin + w; y <= yMax-w; y++ {
			dst.Set(xMin+w, y, c)
			dst.Set(xMax-w, y, c)
		}
	}
}

// Ellipse draws the ellipse inscribed in the box spanned by the two corners.
//
// A radius below half a pixel collapses the shape to its rounded center.
// The outline keeps pixels whose normalized distance is within half a band
// of 1, where band = border / max(rx, ry). Its thickness therefore varies
// with the aspect ratio.
func Ellipse(dst Target, x0, y0, x1, y1 int, filled bool, border float64, c pixbuf.Color) {
	cx := float64(x0+x1) / 2
	cy := float64(y0+y1) / 2
	rx := math.Abs(float64(x1-x0)) / 2
	ry := math.Abs(float64(y1-y0)) / 2
	if rx < 0.5 || ry < 0.5 {
		dst.Set(round(cx), round(cy), c)
		return
	}

	xMin, xMax := int(math.Floor(cx-rx)), int(math.Ceil(cx+rx))
	yMin, yMax := int(math.Floor(cy-ry)), int(math.Ceil(cy+ry))
	invRx2, invRy2 := 1/(rx*rx), 1/(ry*ry)
	halfBand := border / math.Max(rx, ry) / 2

	for y := yMin; y <= yMax; y++ {
		for x := xMin; x <= xMax; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			v := dx*dx*invRx2 + dy*dy*invRy2
			if filled {
				if v <= 1 {
					dst.Set(x, y, c)
				}
			} else if math.Abs(v-1) <= halfBand {
				dst.Set(x, y, c)
			}
		}
	}
}

// round rounds half up, so -0.5 goes to 0 and 2.5 goes to 3.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
