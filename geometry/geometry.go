// Package geometry provides the rectangle, point and size primitives used to
// address regions of a pixel buffer, together with measurement-unit
// conversion for callers that work in physical units (millimeters, inches,
// typographic points) rather than pixels.
//
// All raster operations work in pixel space. A Rect carrying any other unit
// must be converted with ToPixels before it is handed to package raster.
package geometry

import (
	"fmt"
	"image"
	"math"
)

// Unit is the measurement unit of a Rect's coordinates.
type Unit int

const (
	Pixels Unit = iota
	Millimeters
	Centimeters
	Inches
	Points
)

var unitNames = [...]string{"px", "mm", "cm", "in", "pt"}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnit maps a unit name ("px", "mm", "cm", "in", "pt") to a Unit.
// The empty string is treated as pixels.
func ParseUnit(s string) (Unit, error) {
	if s == "" {
		return Pixels, nil
	}
	for i, name := range unitNames {
		if s == name {
			return Unit(i), nil
		}
	}
	return Pixels, fmt.Errorf("unknown unit: %s", s)
}

// inchesPer returns how many inches one unit u measures. Pixels have no
// physical size and are handled separately.
func inchesPer(u Unit) float64 {
	switch u {
	case Millimeters:
		return 1 / 25.4
	case Centimeters:
		return 1 / 2.54
	case Inches:
		return 1
	case Points:
		return 1.0 / 72
	}
	return 0
}

// Convert converts v from one unit to another at the given resolution in
// dots per inch. dpi only matters when one side of the conversion is Pixels.
func Convert(v float64, from, to Unit, dpi float64) (float64, error) {
	if from == to {
		return v, nil
	}
	if (from == Pixels || to == Pixels) && dpi <= 0 {
		return 0, fmt.Errorf("dpi must be positive to convert %s to %s, got %v", from, to, dpi)
	}
	var inches float64
	if from == Pixels {
		inches = v / dpi
	} else {
		f := inchesPer(from)
		if f == 0 {
			return 0, fmt.Errorf("unknown unit: %s", from)
		}
		inches = v * f
	}
	if to == Pixels {
		return inches * dpi, nil
	}
	f := inchesPer(to)
	if f == 0 {
		return 0, fmt.Errorf("unknown unit: %s", to)
	}
	return inches / f, nil
}

// Point is a 2D integer coordinate. (0,0) is the top-left pixel.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a width and height pair.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle given by its top-left corner and extent.
// Its bounds are not validated at construction; operations that consume a
// Rect decide how to treat negative or oversized values.
type Rect struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Unit   Unit `json:"unit"`
}

// NewRect returns a rectangle in pixel units.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height, Unit: Pixels}
}

// FromImageRect converts an image.Rectangle to a pixel Rect.
func FromImageRect(r image.Rectangle) Rect {
	return NewRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Location returns the top-left corner.
func (r Rect) Location() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle's extent.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Size().Empty() }

// ImageRect returns the equivalent image.Rectangle. Only meaningful for
// pixel-unit rectangles.
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// ToPixels converts the rectangle to pixel units at dpi dots per inch.
// Coordinates are rounded to the nearest pixel; for millimeters that is
// px = mm / 25.4 * dpi.
func (r Rect) ToPixels(dpi float64) (Rect, error) {
	if r.Unit == Pixels {
		return r, nil
	}
	vals := [4]int{r.X, r.Y, r.Width, r.Height}
	var out [4]int
	for i, v := range vals {
		px, err := Convert(float64(v), r.Unit, Pixels, dpi)
		if err != nil {
			return Rect{}, err
		}
		out[i] = int(math.Round(px))
	}
	return NewRect(out[0], out[1], out[2], out[3]), nil
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d %s)", r.X, r.Y, r.Width, r.Height, r.Unit)
}
