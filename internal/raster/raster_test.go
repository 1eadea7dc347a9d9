package raster

import (
	"image"
	"sort"
	"testing"

	"github.com/ha1tch/pixelpad/internal/pixbuf"
)

// covered returns the sorted set of pixels in buf that equal c.
func covered(t *testing.T, buf *pixbuf.Buffer, c pixbuf.Color) []image.Point {
	t.Helper()
	var pts []image.Point
	for y := 0; y < buf.Height(); y++ {
		for x := 0; x < buf.Width(); x++ {
			got, err := buf.Get(x, y)
			if err != nil {
				t.Fatalf("Get(%d,%d): %v", x, y, err)
			}
			if got == c {
				pts = append(pts, image.Pt(x, y))
			}
		}
	}
	return pts
}

func sortPoints(pts []image.Point) []image.Point {
	out := append([]image.Point(nil), pts...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func assertPoints(t *testing.T, got, want []image.Point) {
	t.Helper()
	got, want = sortPoints(got), sortPoints(want)
	if len(got) != len(want) {
		t.Fatalf("covered %d pixels %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("covered %v, want %v", got, want)
		}
	}
}

func pts(xy ...int) []image.Point {
	out := make([]image.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, image.Pt(xy[i], xy[i+1]))
	}
	return out
}

func TestStampHalfRadiusIsSinglePixel(t *testing.T) {
	buf := pixbuf.New(4, 4)
	Stamp(buf, 1, 1, 0.5, pixbuf.Red)
	assertPoints(t, covered(t, buf, pixbuf.Red), pts(1, 1))
}

func TestStampShapes(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		want  int
	}{
		{"width 1", 1, 1},
		{"width 2 plus", 2, 5},
		{"width 3 square", 3, 9},
		{"width 4", 4, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := pixbuf.New(9, 9)
			Stamp(buf, 4, 4, tt.width/2, pixbuf.Black)
			if got := len(covered(t, buf, pixbuf.Black)); got != tt.want {
				t.Errorf("stamp covered %d pixels, want %d", got, tt.want)
			}
		})
	}
}

func TestStampClipsAtEdges(t *testing.T) {
	buf := pixbuf.New(4, 4)
	Stamp(buf, 0, 0, 1.5, pixbuf.Blue)
	assertPoints(t, covered(t, buf, pixbuf.Blue), pts(0, 0, 1, 0, 0, 1, 1, 1))
}

func TestLineHorizontal(t *testing.T) {
	buf := pixbuf.New(6, 3)
	Line(buf, 0, 0, 3, 0, 1, pixbuf.Red)
	assertPoints(t, covered(t, buf, pixbuf.Red), pts(0, 0, 1, 0, 2, 0, 3, 0))
}

func TestLineBresenhamSteps(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           []image.Point
	}{
		{"diagonal", 0, 0, 3, 3, pts(0, 0, 1, 1, 2, 2, 3, 3)},
		{"shallow", 0, 0, 4, 2, pts(0, 0, 1, 1, 2, 1, 3, 2, 4, 2)},
		{"vertical up", 2, 4, 2, 1, pts(2, 1, 2, 2, 2, 3, 2, 4)},
		{"single point", 3, 3, 3, 3, pts(3, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMask(8, 8)
			Line(m, tt.x0, tt.y0, tt.x1, tt.y1, 1, pixbuf.Black)
			assertPoints(t, m.Points(), tt.want)
		})
	}
}

func TestLineWidthStampsEveryPoint(t *testing.T) {
	m := NewMask(10, 10)
	Line(m, 2, 4, 6, 4, 3, pixbuf.Black)
	// 3x3 stamps along a row: a 7x3 band.
	if m.Len() != 21 {
		t.Errorf("covered %d pixels, want 21", m.Len())
	}
	for x := 1; x <= 7; x++ {
		for y := 3; y <= 5; y++ {
			if !m.Has(x, y) {
				t.Errorf("pixel (%d,%d) not covered", x, y)
			}
		}
	}
}

func TestRectFilledAndOutlined(t *testing.T) {
	filled := pixbuf.New(4, 4)
	Rect(filled, 0, 0, 2, 2, true, 1, pixbuf.Green)
	if got := len(covered(t, filled, pixbuf.Green)); got != 9 {
		t.Errorf("filled rect covered %d pixels, want 9", got)
	}

	outlined := pixbuf.New(4, 4)
	Rect(outlined, 2, 2, 0, 0, false, 1, pixbuf.Green)
	assertPoints(t, covered(t, outlined, pixbuf.Green),
		pts(0, 0, 1, 0, 2, 0, 0, 1, 2, 1, 0, 2, 1, 2, 2, 2))
	if c, _ := outlined.Get(1, 1); c != pixbuf.Transparent {
		t.Errorf("center pixel = %v, want transparent", c)
	}
}

func TestRectBorderRings(t *testing.T) {
	m := NewMask(5, 5)
	Rect(m, 0, 0, 4, 4, false, 2, pixbuf.Black)
	if m.Len() != 24 {
		t.Errorf("covered %d pixels, want 24", m.Len())
	}
	if m.Has(2, 2) {
		t.Error("center should stay uncovered with border 2")
	}

	m = NewMask(5, 5)
	Rect(m, 0, 0, 2, 2, false, 5, pixbuf.Black)
	if m.Len() != 9 {
		t.Errorf("oversized border covered %d pixels, want 9", m.Len())
	}
}

func TestEllipseDegenerate(t *testing.T) {
	m := NewMask(8, 8)
	Ellipse(m, 1, 1, 4, 1, false, 1, pixbuf.Black)
	assertPoints(t, m.Points(), pts(3, 1))

	m = NewMask(8, 8)
	Ellipse(m, 5, 5, 5, 5, true, 1, pixbuf.Black)
	assertPoints(t, m.Points(), pts(5, 5))
}

func TestEllipseFilled(t *testing.T) {
	m := NewMask(8, 8)
	Ellipse(m, 0, 0, 4, 2, true, 1, pixbuf.Black)
	assertPoints(t, m.Points(), pts(2, 0, 0, 1, 1, 1, 2, 1, 3, 1, 4, 1, 2, 2))
}

func TestEllipseOutline(t *testing.T) {
	m := NewMask(8, 8)
	Ellipse(m, 4, 2, 0, 0, false, 1, pixbuf.Black)
	assertPoints(t, m.Points(), pts(1, 0, 2, 0, 3, 0, 0, 1, 4, 1, 1, 2, 2, 2, 3, 2))
}

func TestEllipseOutlineIsSubsetOfBoundingBox(t *testing.T) {
	m := NewMask(0, 0)
	Ellipse(m, 3, 5, 17, 12, false, 3, pixbuf.Black)
	box := image.Rect(3, 5, 18, 13)
	for _, p := range m.Points() {
		if !p.In(box) {
			t.Errorf("pixel %v outside bounding box %v", p, box)
		}
	}
	if m.Len() == 0 {
		t.Error("outline covered nothing")
	}
}

func TestMaskClipsAndDedups(t *testing.T) {
	m := NewMask(2, 2)
	m.Set(0, 0, pixbuf.Black)
	m.Set(0, 0, pixbuf.Red)
	m.Set(5, 5, pixbuf.Black)
	m.Set(-1, 0, pixbuf.Black)
	if m.Len() != 1 || !m.Has(0, 0) {
		t.Errorf("mask points = %v, want [(0,0)]", m.Points())
	}
}
