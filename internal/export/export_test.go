package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
)

// checker returns a 2x2 image with distinct pixels in each corner.
func checker(corner color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, green)
	img.SetNRGBA(0, 1, blue)
	img.SetNRGBA(1, 1, corner)
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", PNG},
		{".PNG", PNG},
		{"jpg", JPEG},
		{"jpeg", JPEG},
		{"bmp", BMP},
		{"tif", TIFF},
		{"TIFF", TIFF},
		{".pdf", PDF},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(gif) error = %v, want ErrUnknownFormat", err)
	}
	if _, err := FormatFromPath("noext"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("FormatFromPath(noext) error = %v, want ErrUnknownFormat", err)
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(32, 16, 10, PNG); got != "pixel-art-32x16x10.png" {
		t.Errorf("FileName = %q", got)
	}
	if got := FileName(8, 8, 1, JPEG); got != "pixel-art-8x8x1.jpg" {
		t.Errorf("FileName = %q", got)
	}
}

func TestScaleNearestNeighbour(t *testing.T) {
	src := checker(color.NRGBA{})
	dst := Scale(src, 3)
	if b := dst.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("scaled bounds = %v, want 6x6", b)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			want := src.NRGBAAt(x/3, y/3)
			if got := dst.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	same := Scale(src, 0)
	if same.Bounds() != src.Bounds() || !bytes.Equal(same.Pix, src.Pix) {
		t.Error("scale 0 should behave like scale 1")
	}
}

func TestEncodePNGKeepsAlpha(t *testing.T) {
	src := checker(color.NRGBA{10, 20, 30, 128})
	var buf bytes.Buffer
	if err := Encode(&buf, src, 4, PNG); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Fatalf("decoded bounds = %v", b)
	}
	if got := nrgbaAt(img, 7, 7); got != (color.NRGBA{10, 20, 30, 128}) {
		t.Errorf("translucent pixel = %v", got)
	}
	if got := nrgbaAt(img, 0, 4); got != blue {
		t.Errorf("pixel (0,4) = %v, want blue", got)
	}
}

func TestEncodeJPEGOnWhite(t *testing.T) {
	src := checker(color.NRGBA{}) // transparent corner
	var buf bytes.Buffer
	if err := Encode(&buf, src, 16, JPEG); err != nil {
		t.Fatal(err)
	}
	img, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(24, 24).RGBA()
	if r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Errorf("transparent area = (%d,%d,%d), want near white", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = img.At(7, 7).RGBA()
	if r>>8 < 200 || g>>8 > 60 || b>>8 > 60 {
		t.Errorf("red area = (%d,%d,%d), want near red", r>>8, g>>8, b>>8)
	}
}

func TestEncodeBMPAndTIFF(t *testing.T) {
	src := checker(color.NRGBA{255, 255, 255, 255})
	decoders := map[Format]func(*bytes.Buffer) (image.Image, error){
		BMP:  func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) },
		TIFF: func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(bytes.NewReader(b.Bytes())) },
	}
	for f, decode := range decoders {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, 2, f); err != nil {
				t.Fatal(err)
			}
			img, err := decode(&buf)
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
				t.Fatalf("decoded bounds = %v", b)
			}
			if got := nrgbaAt(img, 3, 1); got != green {
				t.Errorf("pixel (3,1) = %v, want green", got)
			}
			if got := nrgbaAt(img, 1, 2); got != blue {
				t.Errorf("pixel (1,2) = %v, want blue", got)
			}
		})
	}
}

func TestEncodePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, checker(color.NRGBA{}), 10, PDF); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, checker(red), 1, Format("gif")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName(2, 2, 5, PNG))
	if err := WriteFile(path, checker(red), 5); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 10 || cfg.Height != 10 {
		t.Errorf("written size = %dx%d, want 10x10", cfg.Width, cfg.Height)
	}

	if err := WriteFile(filepath.Join(dir, "out.xyz"), checker(red), 1); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("unknown extension error = %v", err)
	}
}
