package raster

import (
	"image"

	"github.com/ha1tch/pixelpad/internal/pixbuf"
)

// FloodFill replaces the 4-connected region of the seed's color with c and
// returns the number of pixels written.
//
// The seed color is captured before any write. When it already equals c the
// fill does nothing. The traversal uses an explicit stack, so memory grows
// with the pixel count and a large region cannot exhaust the goroutine
// stack. Every pixel of the region is written exactly once: once recolored it
// no longer matches the target.
func FloodFill(buf *pixbuf.Buffer, sx, sy int, c pixbuf.Color) (int, error) {
	target, err := buf.Get(sx, sy)
	if err != nil {
		return 0, err
	}
	if target == c {
		return 0, nil
	}

	written := 0
	stack := []image.Point{{X: sx, Y: sy}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !buf.InBounds(p.X, p.Y) {
			continue
		}
		if cur, _ := buf.Get(p.X, p.Y); cur != target {
			continue
		}
		buf.Set(p.X, p.Y, c)
		written++
		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}
	return written, nil
}
