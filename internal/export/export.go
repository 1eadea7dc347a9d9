// Package export encodes a canvas snapshot to an image file.
//
// Pixel art is upscaled by an integer factor with nearest-neighbour sampling
// before encoding, so each canvas pixel becomes a crisp scale x scale block.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// ErrUnknownFormat is returned for an unsupported format name or extension.
var ErrUnknownFormat = errors.New("export: unknown format")

// Format names an output encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	PDF  Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{PNG, JPEG, BMP, TIFF, PDF}

// Ext returns the usual file extension, without the dot.
func (f Format) Ext() string {
	switch f {
	case JPEG:
		return "jpg"
	case TIFF:
		return "tif"
	}
	return string(f)
}

// ParseFormat accepts a format name or common extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "pdf":
		return PDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// FileName returns the default export name, pixel-art-WxHxS.ext.
func FileName(width, height, scale int, f Format) string {
	return fmt.Sprintf("pixel-art-%dx%dx%d.%s", width, height, scale, f.Ext())
}

// Scale upscales img by an integer factor with nearest-neighbour sampling.
// A factor below 2 returns a plain copy.
func Scale(img image.Image, factor int) *image.NRGBA {
	factor = max(factor, 1)
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img, upscaled by scale, to w in format f.
func Encode(w io.Writer, img image.Image, scale int, f Format) error {
	scaled := Scale(img, scale)
	switch f {
	case PNG:
		return png.Encode(w, scaled)
	case JPEG:
		return jpeg.Encode(w, flatten(scaled, color.White), &jpeg.Options{Quality: 95})
	case BMP:
		return bmp.Encode(w, scaled)
	case TIFF:
		return tiff.Encode(w, scaled, &tiff.Options{Compression: tiff.Deflate})
	case PDF:
		return encodePDF(w, img, max(scale, 1))
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// WriteFile encodes img into path, choosing the format from the extension.
func WriteFile(path string, img image.Image, scale int) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(out, img, scale, f)
}

// flatten composites img over an opaque background. JPEG has no alpha.
func flatten(img image.Image, bg color.Color) *image.RGBA {
	dst := image.NewRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Over)
	return dst
}

// encodePDF writes one page sized to the scaled canvas, with a filled square
// per visible pixel. Units are points, one point per output pixel.
func encodePDF(w io.Writer, img image.Image, scale int) error {
	b := img.Bounds()
	s := float64(scale)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(b.Dx()) * s, Ht: float64(b.Dy()) * s},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	alpha := -1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			if int(c.A) != alpha {
				alpha = int(c.A)
				pdf.SetAlpha(float64(c.A)/255, "Normal")
			}
			pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
			pdf.Rect(float64(x-b.Min.X)*s, float64(y-b.Min.Y)*s, s, s, "F")
		}
	}
	return pdf.Output(w)
}
