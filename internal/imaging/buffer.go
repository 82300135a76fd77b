package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Buffer is a mutable RGBA raster.
//
// Pixels are stored row-major, four bytes per pixel in R, G, B, A order,
// non-premultiplied. The length of Pix is always Width*Height*4.
//
// Operations in this package never modify their input buffer. Each returns a
// freshly allocated Buffer that the caller owns.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer allocates an opaque black buffer of the given size.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
	for i := 3; i < len(b.Pix); i += 4 {
		b.Pix[i] = 255
	}
	return b
}

// NewUniform allocates a buffer filled with a single color.
func NewUniform(width, height int, c color.NRGBA) *Buffer {
	b := NewBuffer(width, height)
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = c.R
		b.Pix[i+1] = c.G
		b.Pix[i+2] = c.B
		b.Pix[i+3] = c.A
	}
	return b
}

// FromImage converts a decoded image into a Buffer anchored at (0,0).
//
// Any color model is accepted; the pixels are converted to 8-bit
// non-premultiplied RGBA.
func FromImage(img image.Image) *Buffer {
	n := imaging.Clone(img)
	return &Buffer{
		Width:  n.Rect.Dx(),
		Height: n.Rect.Dy(),
		Pix:    n.Pix,
	}
}

// Image returns an *image.NRGBA view of the buffer. The view shares Pix with
// the buffer, so writes through either are visible in both.
func (b *Buffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// Equal reports whether two buffers have identical dimensions and pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.Width == other.Width && b.Height == other.Height && bytes.Equal(b.Pix, other.Pix)
}

// Validate checks the Pix length invariant.
func (b *Buffer) Validate() error {
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("invalid buffer dimensions %dx%d", b.Width, b.Height)
	}
	if want := b.Width * b.Height * 4; len(b.Pix) != want {
		return fmt.Errorf("buffer %dx%d has %d bytes, want %d", b.Width, b.Height, len(b.Pix), want)
	}
	return nil
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (b *Buffer) PixOffset(x, y int) int {
	return (y*b.Width + x) * 4
}

// At returns the color of pixel (x, y). Out-of-range coordinates return the
// zero color.
func (b *Buffer) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return color.NRGBA{}
	}
	i := b.PixOffset(x, y)
	return color.NRGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// Set writes the color of pixel (x, y). Out-of-range coordinates are ignored.
func (b *Buffer) Set(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	i := b.PixOffset(x, y)
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}

// Size formats the dimensions the way the editor reports them, e.g. "1280 x 720".
func (b *Buffer) Size() string {
	return fmt.Sprintf("%d x %d", b.Width, b.Height)
}

// clampByte clamps v to [0,255] and rounds half to even, matching the
// conversion performed by a clamped byte array.
func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}
