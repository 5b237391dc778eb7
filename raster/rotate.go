package raster

import (
	"fmt"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/docimage/pixel"
	"github.com/ironsheep/docimage/skew"
)

// DefaultBackground fills the canvas area a rotation leaves uncovered.
// Opaque white matches the paper of a scanned page.
var DefaultBackground = pixel.White

// RotatedSize returns the bounding box of a width×height image rotated by
// degrees:
//
//	newW = |cos θ|·W + |sin θ|·H
//	newH = |sin θ|·W + |cos θ|·H
//
// rounded up to whole pixels.
func RotatedSize(width, height int, degrees float64) (int, int) {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	sin, cos = math.Abs(sin), math.Abs(cos)
	w := cos*float64(width) + sin*float64(height)
	h := sin*float64(width) + cos*float64(height)
	// Ignore floating point noise such as cos(90°) ≈ 6e-17.
	const eps = 1e-9
	return int(math.Ceil(w - eps)), int(math.Ceil(h - eps))
}

// Rotate rotates buf counter-clockwise by degrees onto a canvas sized by
// RotatedSize and filled with DefaultBackground. The source is centered on
// the canvas and rotated about the canvas center.
//
// Rotating twice by θ is not the same as rotating once by 2θ: each step
// resamples and grows the canvas.
func Rotate(buf *pixel.Buffer, degrees float64) (*pixel.Buffer, error) {
	return RotateWith(buf, degrees, DefaultBackground)
}

// RotateWith is Rotate with an explicit background color.
func RotateWith(buf *pixel.Buffer, degrees float64, background pixel.Color) (*pixel.Buffer, error) {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return nil, &pixel.ValidationError{Op: "rotate", Reason: fmt.Sprintf("angle must be finite, got %v", degrees)}
	}
	w, h := RotatedSize(buf.Width(), buf.Height(), degrees)
	if err := pixel.CheckSize("rotate", w, h); err != nil {
		return nil, err
	}

	bg := background.NRGBA()
	rotated := imaging.Rotate(buf.Image(), degrees, bg)
	canvas := imaging.New(w, h, bg)
	return pixel.FromImage(imaging.PasteCenter(canvas, rotated))
}

// Deskew estimates the skew of buf with the default detector and rotates it
// level on a DefaultBackground canvas. It returns the corrected buffer and
// the angle it rotated by.
func Deskew(buf *pixel.Buffer) (*pixel.Buffer, float64, error) {
	return DeskewWith(buf, skew.Default(), DefaultBackground)
}

// DeskewWith is Deskew with an explicit detector and background.
func DeskewWith(buf *pixel.Buffer, det *skew.Detector, background pixel.Color) (*pixel.Buffer, float64, error) {
	angle := det.Estimate(buf)
	out, err := RotateWith(buf, angle, background)
	if err != nil {
		return nil, 0, err
	}
	return out, angle, nil
}
