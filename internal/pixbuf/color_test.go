package pixbuf

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#000000", Black},
		{"#ffffff", White},
		{"ff0000", Red},
		{"#0F0", Green},
		{"#00f", Blue},
		{"#1a2B3c", Color{0x1a, 0x2b, 0x3c, 0xff}},
		{"  #abc ", Color{0xaa, 0xbb, 0xcc, 0xff}},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if err != nil {
			t.Errorf("ParseHex(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#1234", "#12345g", "red", "#+12345", "#abcdefab"} {
		if _, err := ParseHex(in); !errors.Is(err, ErrBadColor) {
			t.Errorf("ParseHex(%q) error = %v, want ErrBadColor", in, err)
		}
	}
}

func TestHexDropsAlpha(t *testing.T) {
	c := Color{0x12, 0xab, 0x00, 0x40}
	if got := c.Hex(); got != "#12ab00" {
		t.Errorf("Hex() = %q, want #12ab00", got)
	}
	back, err := ParseHex(c.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if back != c.Opaque() {
		t.Errorf("round trip = %v, want %v", back, c.Opaque())
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.RGBA{R: 64, G: 0, B: 0, A: 128})
	if got.A != 128 || got.R < 127 || got.R > 128 {
		t.Errorf("FromColor(premultiplied) = %v, want R~128 A=128", got)
	}
	if FromColor(color.Black) != Black {
		t.Errorf("FromColor(color.Black) = %v", FromColor(color.Black))
	}
}
