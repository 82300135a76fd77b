package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createGradientBuffer returns an opaque buffer whose channels vary with
// position so that every interior neighborhood differs.
func createGradientBuffer(width, height int) *Buffer {
	b := NewBuffer(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.Set(x, y, color.NRGBA{
				R: uint8((x * 37) % 256),
				G: uint8((y * 53) % 256),
				B: uint8(((x + y) * 17) % 256),
				A: 255,
			})
		}
	}
	return b
}

func TestNewBuffer(t *testing.T) {
	b := NewBuffer(3, 2)
	require.NoError(t, b.Validate())
	require.Len(t, b.Pix, 3*2*4)
	assertUniform(t, b, color.NRGBA{0, 0, 0, 255})
}

func TestBuffer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		buf     *Buffer
		wantErr bool
	}{
		{"valid", NewBuffer(4, 4), false},
		{"empty", NewBuffer(0, 0), false},
		{"short pix", &Buffer{Width: 2, Height: 2, Pix: make([]uint8, 15)}, true},
		{"long pix", &Buffer{Width: 1, Height: 1, Pix: make([]uint8, 8)}, true},
		{"negative", &Buffer{Width: -1, Height: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr {
				assert.Error(t, tt.buf.Validate())
			} else {
				assert.NoError(t, tt.buf.Validate())
			}
		})
	}
}

func TestFromImage(t *testing.T) {
	// Non-zero origin and a premultiplied source.
	src := image.NewRGBA(image.Rect(10, 10, 14, 13))
	src.Set(10, 10, color.RGBA{255, 0, 0, 255})
	src.Set(13, 12, color.RGBA{0, 0, 128, 128})

	b := FromImage(src)
	require.Equal(t, "4 x 3", b.Size())
	require.NoError(t, b.Validate())

	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, b.At(0, 0))
	got := b.At(3, 2)
	assert.Equal(t, uint8(128), got.A, "alpha")
	assert.Equal(t, uint8(255), got.B, "blue should be un-premultiplied")
}

func TestBuffer_ImageSharesPixels(t *testing.T) {
	b := NewBuffer(2, 2)
	img := b.Image()
	img.SetNRGBA(1, 1, color.NRGBA{1, 2, 3, 4})

	assert.Equal(t, color.NRGBA{1, 2, 3, 4}, b.At(1, 1), "write through Image not visible")
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
}

func TestBuffer_CloneAndEqual(t *testing.T) {
	a := createGradientBuffer(8, 6)
	b := a.Clone()
	require.True(t, a.Equal(b), "clone should equal original")

	b.Pix[0]++
	assert.False(t, a.Equal(b), "modified clone should differ")
	assert.NotEqual(t, a.Pix[0], b.Pix[0], "clone shares pixel storage with original")

	assert.False(t, a.Equal(nil))
	assert.False(t, a.Equal(createGradientBuffer(6, 8)), "buffers of different size should differ")
}

func TestBuffer_AtSetOutOfRange(t *testing.T) {
	b := NewBuffer(2, 2)
	b.Set(-1, 0, color.NRGBA{255, 255, 255, 255})
	b.Set(0, 2, color.NRGBA{255, 255, 255, 255})

	assert.True(t, b.Equal(NewBuffer(2, 2)), "out-of-range Set modified the buffer")
	assert.Equal(t, color.NRGBA{}, b.At(5, 5))
}

func TestClampByte(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{2.5, 2},
		{3.5, 4},
		{127.4, 127},
		{254.6, 255},
		{300, 255},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, clampByte(tt.in), "clampByte(%v)", tt.in)
	}
}

func TestLookupResolution(t *testing.T) {
	tests := []struct {
		key    string
		want   Resolution
		hasErr bool
	}{
		{"SD", Resolution{ResolutionSD, 640, 480}, false},
		{"hd", Resolution{ResolutionHD, 1280, 720}, false},
		{"FULL HD", Resolution{ResolutionFullHD, 1920, 1080}, false},
		{"full_hd", Resolution{ResolutionFullHD, 1920, 1080}, false},
		{"4K", Resolution{}, true},
		{"", Resolution{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := LookupResolution(tt.key)
			if tt.hasErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
