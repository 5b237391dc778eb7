package pixel

import (
	"fmt"
	"image/color"
)

// Color is a non-premultiplied 8-bit ARGB color.
type Color struct {
	A, R, G, B uint8
}

var (
	White       = Color{A: 0xff, R: 0xff, G: 0xff, B: 0xff}
	Black       = Color{A: 0xff}
	Transparent = Color{}
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{A: 0xff, R: r, G: g, B: b}
}

// ColorFromARGB unpacks a 0xAARRGGBB value.
func ColorFromARGB(v uint32) Color {
	return Color{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// ColorOf converts any color.Color to a Color.
func ColorOf(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{A: n.A, R: n.R, G: n.G, B: n.B}
}

// ARGB packs the color as 0xAARRGGBB.
func (c Color) ARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Luminance returns the ITU-R BT.601 luma, 0.299R + 0.587G + 0.114B, in the
// 0..255 range. Alpha is ignored.
func (c Color) Luminance() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// NRGBA returns the equivalent standard library color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}

// Luminance returns the luma of a packed 0xAARRGGBB pixel.
func Luminance(v uint32) float64 {
	return 0.299*float64(uint8(v>>16)) + 0.587*float64(uint8(v>>8)) + 0.114*float64(uint8(v))
}
