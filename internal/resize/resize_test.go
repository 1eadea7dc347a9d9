package resize

import (
	"testing"

	"github.com/ha1tch/pixelpad/internal/pixbuf"
)

func checker(w, h int) *pixbuf.Buffer {
	b := pixbuf.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(x, y, pixbuf.Color{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	return b
}

func TestResizeWithoutPreserveIsBlank(t *testing.T) {
	old := checker(6, 6)
	got := Resize(old, 8, 4, false)
	if got.Width() != 8 || got.Height() != 4 {
		t.Fatalf("size = %dx%d, want 8x4", got.Width(), got.Height())
	}
	if !got.Equal(pixbuf.New(8, 4)) {
		t.Error("resize without preserve should be fully transparent")
	}
}

func TestResizeGrowPreserves(t *testing.T) {
	old := checker(5, 3)
	got := Resize(old, 9, 7, true)
	for y := 0; y < 7; y++ {
		for x := 0; x < 9; x++ {
			c, _ := got.Get(x, y)
			want := pixbuf.Transparent
			if x < 5 && y < 3 {
				want, _ = old.Get(x, y)
			}
			if c != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, c, want)
			}
		}
	}
}

func TestResizeShrinkCrops(t *testing.T) {
	old := checker(10, 10)
	got := Resize(old, 6, 5, true)
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			c, _ := got.Get(x, y)
			want, _ := old.Get(x, y)
			if c != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, c, want)
			}
		}
	}
}

func TestResizeMixedAxes(t *testing.T) {
	old := checker(4, 8)
	got := Resize(old, 7, 2, true)
	for y := 0; y < 2; y++ {
		for x := 0; x < 7; x++ {
			c, _ := got.Get(x, y)
			want := pixbuf.Transparent
			if x < 4 {
				want, _ = old.Get(x, y)
			}
			if c != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, c, want)
			}
		}
	}
}

func TestResizeDoesNotAlias(t *testing.T) {
	old := checker(3, 3)
	got := Resize(old, 3, 3, true)
	if !got.Equal(old) {
		t.Fatal("same-size preserve should copy everything")
	}
	old.Fill(pixbuf.Red)
	if got.Equal(old) {
		t.Error("resized buffer shares memory with the old one")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ in, want int }{
		{-4, MinSize}, {0, MinSize}, {5, 5}, {250, 250}, {1024, 1024}, {5000, MaxSize},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
