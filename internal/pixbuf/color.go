package pixbuf

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrBadColor is returned by ParseHex for strings that are not #rgb or #rrggbb.
var ErrBadColor = errors.New("pixbuf: bad color")

// Color is a non-premultiplied RGBA value. Equality is exact.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Transparent = Color{0, 0, 0, 0}
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Red         = Color{255, 0, 0, 255}
	Green       = Color{0, 255, 0, 255}
	Blue        = Color{0, 0, 255, 255}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// NRGBA returns c as a standard library color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Opaque returns c with full alpha.
func (c Color) Opaque() Color {
	c.A = 255
	return c
}

// Hex formats the color as #rrggbb. Alpha is not encoded.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

// FromColor converts any color.Color to a non-premultiplied Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ParseHex parses "#rgb" or "#rrggbb" (the '#' is optional) into an opaque color.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if strings.Trim(h, "0123456789abcdefABCDEF") != "" {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	var c Color
	switch len(h) {
	case 3:
		n, err := fmt.Sscanf(h, "%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil || n < 3 {
			return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
	case 6:
		n, err := fmt.Sscanf(h, "%2x%2x%2x", &c.R, &c.G, &c.B)
		if err != nil || n < 3 {
			return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
	default:
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	c.A = 0xFF
	return c, nil
}
