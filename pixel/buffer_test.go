package pixel

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNew_InvalidSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestNew_TooLarge(t *testing.T) {
	_, err := New(1<<20, 1<<20)
	var aerr *AllocationError
	if !errors.As(err, &aerr) {
		t.Fatalf("expected AllocationError, got %v", err)
	}
	if aerr.Width != 1<<20 || aerr.Height != 1<<20 {
		t.Errorf("AllocationError size: got %dx%d", aerr.Width, aerr.Height)
	}
}

func TestBuffer_GetSet(t *testing.T) {
	b, err := NewFilled(4, 3, White)
	if err != nil {
		t.Fatalf("NewFilled failed: %v", err)
	}

	red := RGB(255, 0, 0)
	b.SetPixel(2, 1, red)

	if got := b.Pixel(2, 1); got != red {
		t.Errorf("Pixel(2,1): got %v, want %v", got, red)
	}
	if got := b.Pixel(0, 0); got != White {
		t.Errorf("Pixel(0,0): got %v, want %v", got, White)
	}
	if got := b.Pixels()[1*4+2]; got != 0xffff0000 {
		t.Errorf("row-major layout: got %08x, want ffff0000", got)
	}

	// Out of range reads are transparent, writes are ignored.
	b.SetPixel(10, 10, red)
	if got := b.Pixel(-1, 0); got != Transparent {
		t.Errorf("out of range Pixel: got %v, want transparent", got)
	}
}

func TestBuffer_CloneIsDeep(t *testing.T) {
	b, _ := NewFilled(2, 2, Black)
	c := b.Clone()
	c.SetPixel(0, 0, White)

	if b.Pixel(0, 0) != Black {
		t.Error("mutating clone changed the original")
	}
	if b.Equal(c) {
		t.Error("Equal should report the difference")
	}
	c.SetPixel(0, 0, Black)
	if !b.Equal(c) {
		t.Error("Equal should report identical buffers")
	}
}

func TestBuffer_BytesRoundTrip(t *testing.T) {
	b, _ := New(3, 2)
	b.SetPixel(0, 0, Color{A: 1, R: 2, G: 3, B: 4})
	b.SetPixel(2, 1, Color{A: 255, R: 10, G: 20, B: 30})

	data := b.Bytes()
	if len(data) != 3*2*4 {
		t.Fatalf("Bytes length: got %d, want 24", len(data))
	}
	if data[0] != 1 || data[1] != 2 || data[2] != 3 || data[3] != 4 {
		t.Errorf("first pixel bytes: got %v, want [1 2 3 4]", data[:4])
	}

	back, err := FromBytes(3, 2, data)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if !back.Equal(b) {
		t.Error("FromBytes(Bytes()) did not reproduce the buffer")
	}

	if _, err := FromBytes(3, 2, data[:5]); err == nil {
		t.Error("FromBytes should reject short input")
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 14, 23))
	src.Set(10, 20, color.RGBA{255, 0, 0, 255})
	src.Set(13, 22, color.RGBA{0, 0, 255, 255})

	b, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if b.Width() != 4 || b.Height() != 3 {
		t.Fatalf("dimensions: got %dx%d, want 4x3", b.Width(), b.Height())
	}
	if got := b.Pixel(0, 0); got != RGB(255, 0, 0) {
		t.Errorf("Pixel(0,0): got %v, want red", got)
	}
	if got := b.Pixel(3, 2); got != RGB(0, 0, 255) {
		t.Errorf("Pixel(3,2): got %v, want blue", got)
	}
}

func TestBuffer_ImageRoundTrip(t *testing.T) {
	b, _ := NewFilled(5, 4, RGB(12, 34, 56))
	b.SetPixel(4, 3, Color{A: 128, R: 200, G: 100, B: 50})

	img := b.Image()
	if img.Bounds() != image.Rect(0, 0, 5, 4) {
		t.Fatalf("Image bounds: got %v", img.Bounds())
	}
	if got := img.NRGBAAt(4, 3); got != (color.NRGBA{200, 100, 50, 128}) {
		t.Errorf("NRGBAAt(4,3): got %v", got)
	}

	back, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if !back.Equal(b) {
		t.Error("FromImage(Image()) did not reproduce the buffer")
	}
}

func TestBuffer_ImplementsImage(t *testing.T) {
	var _ image.Image = (*Buffer)(nil)

	b, _ := New(2, 2)
	b.Set(1, 1, color.White)
	if got := b.At(1, 1); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("At(1,1): got %v", got)
	}
}

func TestColor_Luminance(t *testing.T) {
	tests := []struct {
		c    Color
		want float64
	}{
		{White, 255},
		{Black, 0},
		{RGB(255, 0, 0), 0.299 * 255},
		{RGB(0, 255, 0), 0.587 * 255},
		{RGB(0, 0, 255), 0.114 * 255},
	}

	for _, tt := range tests {
		got := tt.c.Luminance()
		if got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("%v luminance: got %v, want %v", tt.c, got, tt.want)
		}
		if Luminance(tt.c.ARGB()) != got {
			t.Errorf("%v: packed luminance disagrees", tt.c)
		}
	}
}

func TestColor_ARGB(t *testing.T) {
	c := Color{A: 0x11, R: 0x22, G: 0x33, B: 0x44}
	if c.ARGB() != 0x11223344 {
		t.Errorf("ARGB: got %08x", c.ARGB())
	}
	if ColorFromARGB(0x11223344) != c {
		t.Errorf("ColorFromARGB did not invert ARGB")
	}
	if ColorOf(color.NRGBA{0x22, 0x33, 0x44, 0x11}) != c {
		t.Errorf("ColorOf: got %v", ColorOf(color.NRGBA{0x22, 0x33, 0x44, 0x11}))
	}
}
