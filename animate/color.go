package animate

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Color is a straight (non-premultiplied) 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB creates an opaque Color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a Color with an explicit alpha channel.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromColorful converts a colorful.Color, clamping it into the RGB gamut.
func FromColorful(c colorful.Color, alpha uint8) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b, A: alpha}
}

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(255)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, errors.Wrapf(err, "parse alpha of %q", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrapf(err, "parse color %q", s)
	}
	return FromColorful(c, alpha), nil
}

// Colorful returns the RGB channels as a colorful.Color. Alpha is dropped.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex formats the color as "#rrggbbaa".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}
