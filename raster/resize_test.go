package raster

import (
	"math"
	"testing"

	"github.com/ironsheep/docimage/pixel"
)

func TestResize_Dimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		scale         float64
		wantW, wantH  int
	}{
		{"double", 100, 60, 2, 200, 120},
		{"half", 100, 60, 0.5, 50, 30},
		{"truncates", 101, 51, 0.5, 50, 25},
		{"identity", 37, 23, 1, 37, 23},
		{"third", 100, 100, 1.0 / 3, 33, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := patternBuffer(t, tt.width, tt.height)
			out, err := Resize(buf, tt.scale)
			if err != nil {
				t.Fatalf("Resize failed: %v", err)
			}
			if out.Width() != tt.wantW || out.Height() != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d", out.Width(), out.Height(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResize_RoundTripDimensions(t *testing.T) {
	buf := patternBuffer(t, 100, 60)

	up, err := Resize(buf, 2)
	if err != nil {
		t.Fatalf("Resize up failed: %v", err)
	}
	down, err := Resize(up, 0.5)
	if err != nil {
		t.Fatalf("Resize down failed: %v", err)
	}
	if down.Width() != 100 || down.Height() != 60 {
		t.Errorf("round trip: got %dx%d, want 100x60", down.Width(), down.Height())
	}
}

func TestResize_InvalidScale(t *testing.T) {
	buf := patternBuffer(t, 10, 10)

	for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Resize(buf, scale)
		if err == nil {
			t.Errorf("Resize(%v) should fail", scale)
			continue
		}
		requireValidationError(t, err)
	}
}

func TestResize_TooSmall(t *testing.T) {
	buf := patternBuffer(t, 10, 10)

	_, err := Resize(buf, 0.01)
	requireValidationError(t, err)
}

func TestResize_TooLarge(t *testing.T) {
	buf := patternBuffer(t, 10, 10)

	_, err := Resize(buf, 1e9)
	requireAllocationError(t, err)

	_, err = ResizeTo(buf, pixel.MaxPixels, 2)
	requireAllocationError(t, err)
}

func TestResizeTo_UniformColor(t *testing.T) {
	c := pixel.RGB(200, 40, 90)
	buf := filledBuffer(t, 50, 30, c)

	out, err := ResizeTo(buf, 80, 17)
	if err != nil {
		t.Fatalf("ResizeTo failed: %v", err)
	}
	if out.Width() != 80 || out.Height() != 17 {
		t.Fatalf("dimensions: got %dx%d, want 80x17", out.Width(), out.Height())
	}

	near := func(a, b uint8) bool { return int(a)-int(b) <= 1 && int(b)-int(a) <= 1 }
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			got := out.Pixel(x, y)
			if !near(got.R, c.R) || !near(got.G, c.G) || !near(got.B, c.B) || !near(got.A, c.A) {
				t.Fatalf("pixel (%d,%d): got %v, want about %v", x, y, got, c)
			}
		}
	}
}
