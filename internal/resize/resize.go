// Package resize reallocates a canvas to new dimensions.
package resize

import "github.com/ha1tch/pixelpad/internal/pixbuf"

// Canvas size range accepted by the editor front ends.
const (
	MinSize     = 5
	MaxSize     = 1024
	DefaultSize = 32
)

// Resize returns a new transparent w x h buffer. With preserve set, the
// top-left overlap of old is copied over pixel for pixel; content outside the
// new bounds is dropped and added rows and columns stay transparent.
//
// Resize does not validate the range; w and h must be at least 1.
func Resize(old *pixbuf.Buffer, w, h int, preserve bool) *pixbuf.Buffer {
	buf := pixbuf.New(w, h)
	if !preserve || old == nil {
		return buf
	}

	cw := min(old.Width(), w) * 4
	rows := min(old.Height(), h)
	src, dst := old.Pix(), buf.Pix()
	for y := 0; y < rows; y++ {
		so := y * old.Width() * 4
		do := y * w * 4
		copy(dst[do:do+cw], src[so:so+cw])
	}
	return buf
}

// Clamp restricts a requested dimension to [MinSize, MaxSize].
func Clamp(v int) int {
	return max(MinSize, min(MaxSize, v))
}
