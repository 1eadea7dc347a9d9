// Package viewport maps window coordinates to canvas pixels for a zoomed,
// panned canvas.
package viewport

import (
	"image"
	"math"
)

const (
	MinZoom float32 = 1
	MaxZoom float32 = 64
)

// Rect is a screen-space rectangle.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// View places a canvas on screen.
type View struct {
	X, Y float32 // screen position of the canvas top-left corner
	Zoom float32 // screen pixels per canvas pixel
}

// Fit centres a w x h canvas in area at the largest whole zoom that fits,
// but never below MinZoom.
func Fit(w, h int, area Rect) View {
	z := float32(math.Floor(float64(min(area.W/float32(w), area.H/float32(h)))))
	z = clamp(z, MinZoom, MaxZoom)
	return Centre(w, h, area, z)
}

// Centre centres a w x h canvas in area at zoom z.
func Centre(w, h int, area Rect, z float32) View {
	z = clamp(z, MinZoom, MaxZoom)
	return View{
		X:    float32(math.Round(float64(area.X + (area.W-float32(w)*z)/2))),
		Y:    float32(math.Round(float64(area.Y + (area.H-float32(h)*z)/2))),
		Zoom: z,
	}
}

// Pixel returns the canvas pixel under screen point (sx, sy), which may lie
// outside the canvas.
func (v View) Pixel(sx, sy float32) image.Point {
	return image.Pt(
		int(math.Floor(float64((sx-v.X)/v.Zoom))),
		int(math.Floor(float64((sy-v.Y)/v.Zoom))),
	)
}

// ToCanvas is Pixel clamped into a w x h canvas, so a drag that leaves the
// canvas keeps drawing along its edge.
func (v View) ToCanvas(sx, sy float32, w, h int) image.Point {
	p := v.Pixel(sx, sy)
	return image.Pt(max(0, min(p.X, w-1)), max(0, min(p.Y, h-1)))
}

// Inside reports whether (sx, sy) is over a w x h canvas.
func (v View) Inside(sx, sy float32, w, h int) bool {
	return v.Pixel(sx, sy).In(image.Rect(0, 0, w, h))
}

// ToScreen returns the screen position of the top-left corner of pixel p.
func (v View) ToScreen(p image.Point) (float32, float32) {
	return v.X + float32(p.X)*v.Zoom, v.Y + float32(p.Y)*v.Zoom
}

// Bounds returns the screen rectangle covered by a w x h canvas.
func (v View) Bounds(w, h int) Rect {
	return Rect{X: v.X, Y: v.Y, W: float32(w) * v.Zoom, H: float32(h) * v.Zoom}
}

// ZoomAt scales the view by factor, keeping the point under (sx, sy) fixed.
func (v View) ZoomAt(sx, sy, factor float32) View {
	z := clamp(v.Zoom*factor, MinZoom, MaxZoom)
	if z == v.Zoom {
		return v
	}
	k := z / v.Zoom
	return View{
		X:    sx - (sx-v.X)*k,
		Y:    sy - (sy-v.Y)*k,
		Zoom: z,
	}
}

// Pan moves the view by (dx, dy) screen pixels.
func (v View) Pan(dx, dy float32) View {
	v.X += dx
	v.Y += dy
	return v
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
