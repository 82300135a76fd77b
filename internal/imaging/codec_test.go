package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in     string
		want   Format
		hasErr bool
	}{
		{"PNG", FormatPNG, false},
		{"png", FormatPNG, false},
		{"jpeg", FormatJPEG, false},
		{"JPG", FormatJPEG, false},
		{" webp ", FormatWEBP, false},
		{"gif", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.hasErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_Properties(t *testing.T) {
	tests := []struct {
		format Format
		ext    string
		mime   string
		lossy  bool
	}{
		{FormatPNG, "png", "image/png", false},
		{FormatJPEG, "jpeg", "image/jpeg", true},
		{FormatWEBP, "webp", "image/webp", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ext, tt.format.Extension(), "%s extension", tt.format)
		assert.Equal(t, tt.mime, tt.format.MimeType(), "%s mime type", tt.format)
		assert.Equal(t, tt.lossy, tt.format.Lossy(), "%s lossy", tt.format)
	}
}

func TestEncodeDecode_PNGRoundTrip(t *testing.T) {
	src := createGradientBuffer(33, 21)

	data, err := EncodeBytes(src, FormatPNG, 0.5)
	require.NoError(t, err)

	got, format, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.True(t, got.Equal(src), "PNG round trip changed pixels")
}

func TestEncode_LossyFormats(t *testing.T) {
	src := NewUniform(40, 30, color.NRGBA{200, 100, 50, 255})

	for _, format := range []Format{FormatJPEG, FormatWEBP} {
		t.Run(string(format), func(t *testing.T) {
			data, err := EncodeBytes(src, format, 0.9)
			require.NoError(t, err)

			got, detected, err := Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, format.Extension(), detected)
			assert.Equal(t, "40 x 30", got.Size())

			c := got.At(20, 15)
			assert.LessOrEqual(t, absDiff(c.R, 200), uint8(8), "red drifted: %v", c)
			assert.LessOrEqual(t, absDiff(c.G, 100), uint8(8), "green drifted: %v", c)
			assert.LessOrEqual(t, absDiff(c.B, 50), uint8(8), "blue drifted: %v", c)
		})
	}
}

func TestEncode_QualityAffectsJPEGSize(t *testing.T) {
	src := createGradientBuffer(128, 128)

	low, err := EncodeBytes(src, FormatJPEG, 0.1)
	require.NoError(t, err)
	high, err := EncodeBytes(src, FormatJPEG, 1.0)
	require.NoError(t, err)

	assert.Less(t, len(low), len(high))
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	var out bytes.Buffer
	err := Encode(&out, NewBuffer(2, 2), Format("TIFF"), 0.9)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecode_Invalid(t *testing.T) {
	_, _, err := Decode(strings.NewReader("definitely not an image"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid image")
}

func TestDecode_Paletted(t *testing.T) {
	pal := image.NewPaletted(image.Rect(0, 0, 3, 3), color.Palette{
		color.RGBA{0, 0, 0, 255},
		color.RGBA{0, 255, 0, 255},
	})
	pal.SetColorIndex(1, 1, 1)

	var data bytes.Buffer
	require.NoError(t, png.Encode(&data, pal))

	got, _, err := Decode(&data)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, got.At(1, 1))
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
