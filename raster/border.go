package raster

import (
	"fmt"

	"github.com/ironsheep/docimage/pixel"
)

// AddBorder returns buf centered on a canvas width pixels larger on every
// side, with the border filled with c. The result is
// (W + 2·width) × (H + 2·width).
func AddBorder(buf *pixel.Buffer, c pixel.Color, width int) (*pixel.Buffer, error) {
	if width < 0 {
		return nil, &pixel.ValidationError{Op: "add border", Reason: fmt.Sprintf("border width must not be negative, got %d", width)}
	}
	if width == 0 {
		return buf.Clone(), nil
	}
	if width > pixel.MaxPixels {
		return nil, &pixel.AllocationError{Op: "add border", Width: width, Height: width}
	}

	dst, err := pixel.NewFilled(buf.Width()+2*width, buf.Height()+2*width, c)
	if err != nil {
		return nil, err
	}
	for y := 0; y < buf.Height(); y++ {
		copy(dst.Row(y + width)[width:], buf.Row(y))
	}
	return dst, nil
}
