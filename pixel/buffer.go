// Package pixel defines Buffer, an in-memory width×height grid of 32-bit ARGB
// pixels, which is the unit of work for skew detection and every raster
// operation.
//
// A Buffer implements image.Image and draw.Image, so it can be handed to any
// code that consumes the standard image interfaces. Conversions in the other
// direction go through FromImage, FromBytes or FromARGB.
//
// # Thread Safety
//
// A Buffer has no internal locking. Concurrent reads are safe; a caller that
// passes a Buffer to an operation must not mutate it until the call returns.
package pixel

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Buffer is a row-major grid of 0xAARRGGBB pixels.
type Buffer struct {
	width  int
	height int
	pix    []uint32
}

// New allocates a buffer filled with transparent black.
func New(width, height int) (*Buffer, error) {
	if err := CheckSize("new", width, height); err != nil {
		return nil, err
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]uint32, width*height),
	}, nil
}

// NewFilled allocates a buffer with every pixel set to c.
func NewFilled(width, height int, c Color) (*Buffer, error) {
	b, err := New(width, height)
	if err != nil {
		return nil, err
	}
	b.Fill(c)
	return b, nil
}

// FromARGB wraps a copy of pix, which must hold width*height packed pixels.
func FromARGB(width, height int, pix []uint32) (*Buffer, error) {
	if err := CheckSize("from argb", width, height); err != nil {
		return nil, err
	}
	if len(pix) != width*height {
		return nil, &ValidationError{
			Op:     "from argb",
			Reason: fmt.Sprintf("have %d pixels, want %d", len(pix), width*height),
		}
	}
	b := &Buffer{width: width, height: height, pix: make([]uint32, len(pix))}
	copy(b.pix, pix)
	return b, nil
}

// FromBytes decodes raw big-endian ARGB bytes, four per pixel.
func FromBytes(width, height int, data []byte) (*Buffer, error) {
	if err := CheckSize("from bytes", width, height); err != nil {
		return nil, err
	}
	if len(data) != width*height*4 {
		return nil, &ValidationError{
			Op:     "from bytes",
			Reason: fmt.Sprintf("have %d bytes, want %d", len(data), width*height*4),
		}
	}
	b := &Buffer{width: width, height: height, pix: make([]uint32, width*height)}
	for i := range b.pix {
		b.pix[i] = binary.BigEndian.Uint32(data[i*4:])
	}
	return b, nil
}

// FromImage copies any image into a new buffer. The image's Bounds().Min
// becomes the buffer's (0,0).
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}
	return fromNRGBA(nrgba)
}

func fromNRGBA(img *image.NRGBA) (*Buffer, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	b, err := New(w, h)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		out := b.pix[y*w : (y+1)*w]
		for x := range out {
			p := row[x*4 : x*4+4 : x*4+4]
			out[x] = uint32(p[3])<<24 | uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
		}
	}
	return b, nil
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Pixels returns the underlying row-major pixel slice. Writes through it
// modify the buffer.
func (b *Buffer) Pixels() []uint32 { return b.pix }

// Row returns row y of the underlying pixel slice.
func (b *Buffer) Row(y int) []uint32 {
	return b.pix[y*b.width : (y+1)*b.width]
}

func (b *Buffer) in(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// ARGB returns the packed pixel at (x, y), or 0 outside the buffer.
func (b *Buffer) ARGB(x, y int) uint32 {
	if !b.in(x, y) {
		return 0
	}
	return b.pix[y*b.width+x]
}

// Pixel returns the color at (x, y), or Transparent outside the buffer.
func (b *Buffer) Pixel(x, y int) Color {
	return ColorFromARGB(b.ARGB(x, y))
}

// SetPixel sets the color at (x, y). Writes outside the buffer are ignored.
func (b *Buffer) SetPixel(x, y int, c Color) {
	if !b.in(x, y) {
		return
	}
	b.pix[y*b.width+x] = c.ARGB()
}

// Luminance returns the luma of the pixel at (x, y).
func (b *Buffer) Luminance(x, y int) float64 {
	return Luminance(b.ARGB(x, y))
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c Color) {
	v := c.ARGB()
	for i := range b.pix {
		b.pix[i] = v
	}
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint32, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{width: b.width, height: b.height, pix: pix}
}

// Equal reports whether both buffers have the same size and pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i, v := range b.pix {
		if other.pix[i] != v {
			return false
		}
	}
	return true
}

// Bytes encodes the buffer as big-endian ARGB, four bytes per pixel.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.pix)*4)
	for i, v := range b.pix {
		binary.BigEndian.PutUint32(out[i*4:], v)
	}
	return out
}

// Image converts the buffer to an *image.NRGBA with origin (0,0).
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		row := img.Pix[y*img.Stride:]
		for x, v := range b.Row(y) {
			row[x*4+0] = uint8(v >> 16)
			row[x*4+1] = uint8(v >> 8)
			row[x*4+2] = uint8(v)
			row[x*4+3] = uint8(v >> 24)
		}
	}
	return img
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// At implements image.Image.
func (b *Buffer) At(x, y int) color.Color { return b.Pixel(x, y).NRGBA() }

// Set implements draw.Image.
func (b *Buffer) Set(x, y int, c color.Color) { b.SetPixel(x, y, ColorOf(c)) }
