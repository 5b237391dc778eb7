package raster

import (
	"github.com/ironsheep/docimage/geometry"
	"github.com/ironsheep/docimage/pixel"
)

var white = pixel.White.ARGB()

// ContentBounds returns the smallest rectangle containing every pixel of buf
// that is not exactly opaque white. ok is false when buf is entirely white.
func ContentBounds(buf *pixel.Buffer) (r geometry.Rect, ok bool) {
	w, h := buf.Width(), buf.Height()
	top, bottom := -1, -1
	left, right := w, -1

	for y := 0; y < h; y++ {
		row := buf.Row(y)
		first := -1
		for x, v := range row {
			if v != white {
				first = x
				break
			}
		}
		if first < 0 {
			continue
		}
		if top < 0 {
			top = y
		}
		bottom = y
		left = min(left, first)
		for x := w - 1; x > right; x-- {
			if row[x] != white {
				right = x
				break
			}
		}
	}

	if top < 0 {
		return geometry.Rect{}, false
	}
	return geometry.NewRect(left, top, right-left+1, bottom-top+1), true
}

// Trim crops away pure white border rows and columns. The test is exact:
// near-white pixels count as content. An all-white buffer, or any failure to
// crop, yields a clone of buf.
func Trim(buf *pixel.Buffer) *pixel.Buffer {
	r, ok := ContentBounds(buf)
	if !ok {
		return buf.Clone()
	}
	out, err := Crop(buf, r)
	if err != nil {
		return buf.Clone()
	}
	return out
}
