package raster

import (
	"fmt"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/docimage/pixel"
)

// Resize scales both axes of buf by scale. The new dimensions are truncated
// to whole pixels.
func Resize(buf *pixel.Buffer, scale float64) (*pixel.Buffer, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, &pixel.ValidationError{Op: "resize", Reason: fmt.Sprintf("scale must be positive, got %v", scale)}
	}
	// Guard the float-to-int conversion; CheckSize does the real limit check.
	w := math.Min(float64(buf.Width())*scale, pixel.MaxPixels+1)
	h := math.Min(float64(buf.Height())*scale, pixel.MaxPixels+1)
	return resample("resize", buf, int(w), int(h))
}

// ResizeTo resamples buf to exactly width×height, scaling each axis
// independently.
func ResizeTo(buf *pixel.Buffer, width, height int) (*pixel.Buffer, error) {
	return resample("resize", buf, width, height)
}

func resample(op string, buf *pixel.Buffer, width, height int) (*pixel.Buffer, error) {
	if err := pixel.CheckSize(op, width, height); err != nil {
		return nil, err
	}
	if width == buf.Width() && height == buf.Height() {
		return buf.Clone(), nil
	}
	resized := imaging.Resize(buf.Image(), width, height, imaging.Lanczos)
	return pixel.FromImage(resized)
}
