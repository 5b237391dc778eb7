package raster

import (
	"fmt"

	"github.com/ironsheep/docimage/geometry"
	"github.com/ironsheep/docimage/pixel"
)

// ClampRect resolves rect against a width×height buffer the way Crop does:
//   - negative X or Y clamp to 0
//   - a Width or Height of zero or less means "to the right/bottom edge"
//   - a right or bottom edge beyond the buffer is truncated
//
// It returns a ValidationError if rect is not in pixel units or if nothing
// of it remains inside the buffer.
func ClampRect(rect geometry.Rect, width, height int) (geometry.Rect, error) {
	if rect.Unit != geometry.Pixels {
		return geometry.Rect{}, &pixel.ValidationError{
			Op:     "crop",
			Reason: fmt.Sprintf("rectangle is in %s, convert it to pixels first", rect.Unit),
		}
	}

	r := rect
	r.X = max(r.X, 0)
	r.Y = max(r.Y, 0)
	// Compare against the space left rather than X+Width, which can overflow.
	if r.Width <= 0 || r.Width > width-r.X {
		r.Width = width - r.X
	}
	if r.Height <= 0 || r.Height > height-r.Y {
		r.Height = height - r.Y
	}

	if r.Empty() {
		return geometry.Rect{}, &pixel.ValidationError{
			Op:     "crop",
			Reason: fmt.Sprintf("rectangle %v leaves nothing of a %dx%d buffer", rect, width, height),
		}
	}
	return r, nil
}

// Crop copies the part of buf covered by rect into a new buffer. The
// rectangle is first resolved with ClampRect, so out-of-range edges shrink
// the result rather than fail.
func Crop(buf *pixel.Buffer, rect geometry.Rect) (*pixel.Buffer, error) {
	r, err := ClampRect(rect, buf.Width(), buf.Height())
	if err != nil {
		return nil, err
	}
	dst, err := pixel.New(r.Width, r.Height)
	if err != nil {
		return nil, err
	}
	for y := 0; y < r.Height; y++ {
		copy(dst.Row(y), buf.Row(r.Y + y)[r.X:r.Right()])
	}
	return dst, nil
}
