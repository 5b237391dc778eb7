package raster

import (
	"errors"
	"testing"

	"github.com/ironsheep/docimage/pixel"
)

// patternBuffer returns a buffer whose pixel at (x, y) is RGB(x, y, x+y),
// so any misplaced copy shows up as a wrong color.
func patternBuffer(t *testing.T, width, height int) *pixel.Buffer {
	t.Helper()
	buf, err := pixel.New(width, height)
	if err != nil {
		t.Fatalf("pixel.New failed: %v", err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.SetPixel(x, y, pixel.RGB(uint8(x), uint8(y), uint8(x+y)))
		}
	}
	return buf
}

func filledBuffer(t *testing.T, width, height int, c pixel.Color) *pixel.Buffer {
	t.Helper()
	buf, err := pixel.NewFilled(width, height, c)
	if err != nil {
		t.Fatalf("pixel.NewFilled failed: %v", err)
	}
	return buf
}

func requireValidationError(t *testing.T, err error) {
	t.Helper()
	var ve *pixel.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *pixel.ValidationError, got %T (%v)", err, err)
	}
}

func requireAllocationError(t *testing.T, err error) {
	t.Helper()
	var ae *pixel.AllocationError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *pixel.AllocationError, got %T (%v)", err, err)
	}
}
