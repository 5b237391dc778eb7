package imageio

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/docimage/pixel"
)

// RGBColor is a color without alpha.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBAColor is a non-premultiplied color with alpha.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor holds hue in degrees (0-360) and saturation and lightness in
// percent (0-100).
type HSLColor struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// ColorResult is one color in several notations. Hex omits alpha.
type ColorResult struct {
	Hex  string    `json:"hex"`
	RGB  RGBColor  `json:"rgb"`
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`
}

// SampleColor reports the color of buf at (x, y).
func SampleColor(buf *pixel.Buffer, x, y int) (*ColorResult, error) {
	if x < 0 || x >= buf.Width() || y < 0 || y >= buf.Height() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, buf.Width(), buf.Height())
	}
	c := buf.Pixel(x, y)
	return &ColorResult{
		Hex:  fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
		RGB:  RGBColor{R: c.R, G: c.G, B: c.B},
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL:  hslOf(c),
	}, nil
}

func hslOf(c pixel.Color) HSLColor {
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, l := cf.Hsl()
	return HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// ParseColor reads a color written as "#rrggbb", "#aarrggbb", or one of the
// names white, black and transparent. Case is ignored.
func ParseColor(s string) (pixel.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "white":
		return pixel.White, nil
	case "black":
		return pixel.Black, nil
	case "transparent":
		return pixel.Transparent, nil
	}

	switch len(v) {
	case 7:
		cf, err := colorful.Hex(v)
		if err != nil {
			return pixel.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		r, g, b := cf.RGB255()
		return pixel.RGB(r, g, b), nil
	case 9:
		if v[0] != '#' {
			break
		}
		argb, err := strconv.ParseUint(v[1:], 16, 32)
		if err != nil {
			return pixel.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return pixel.ColorFromARGB(uint32(argb)), nil
	}
	return pixel.Color{}, fmt.Errorf("invalid color %q: want #rrggbb, #aarrggbb, white, black or transparent", s)
}
