package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }

func TestConfigPatch_Apply(t *testing.T) {
	base := DefaultConfig()

	tests := []struct {
		name  string
		patch ConfigPatch
		check func(t *testing.T, c Config)
	}{
		{
			name:  "brightness",
			patch: ConfigPatch{Brightness: intPtr(80)},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, 80, c.Brightness)
				assert.Equal(t, 50, c.Contrast)
			},
		},
		{
			name:  "percentages clamp",
			patch: ConfigPatch{Brightness: intPtr(150), Contrast: intPtr(-20), Saturation: intPtr(101)},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, 100, c.Brightness)
				assert.Equal(t, 0, c.Contrast)
				assert.Equal(t, 100, c.Saturation)
			},
		},
		{
			name:  "negative blur",
			patch: ConfigPatch{Blur: floatPtr(-3)},
			check: func(t *testing.T, c Config) {
				assert.Zero(t, c.Blur)
			},
		},
		{
			name:  "resolution alias",
			patch: ConfigPatch{Resolution: stringPtr("fhd")},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, imaging.ResolutionFullHD, c.Resolution)
			},
		},
		{
			name:  "format alias",
			patch: ConfigPatch{Format: stringPtr("jpg")},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, imaging.FormatJPEG, c.Format)
			},
		},
		{
			name:  "quality clamps",
			patch: ConfigPatch{Quality: floatPtr(3)},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, 1.0, c.Quality)
			},
		},
		{
			name:  "zero quality",
			patch: ConfigPatch{Quality: floatPtr(0)},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, 0.01, c.Quality)
			},
		},
		{
			name:  "empty patch",
			patch: ConfigPatch{},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, base, c)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.patch.Apply(base)
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

func TestConfigPatch_ApplyRejectsUnknownNames(t *testing.T) {
	base := DefaultConfig()

	got, err := ConfigPatch{Brightness: intPtr(10), Resolution: stringPtr("4K")}.Apply(base)
	require.Error(t, err)
	assert.Equal(t, base, got, "config must be unchanged on error")

	got, err = ConfigPatch{Brightness: intPtr(10), Format: stringPtr("gif")}.Apply(base)
	require.ErrorIs(t, err, imaging.ErrUnsupportedFormat)
	assert.Equal(t, base, got)
}

func TestConfigPatch_Empty(t *testing.T) {
	assert.True(t, ConfigPatch{}.Empty())
	assert.False(t, ConfigPatch{Blur: floatPtr(0)}.Empty())
}

func TestConfig_Normalize(t *testing.T) {
	c := Config{
		Brightness: 120,
		Contrast:   -1,
		Saturation: 40,
		Blur:       -2,
		Resolution: "full_hd",
		Format:     "webp",
		Quality:    0,
	}

	got, err := c.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Config{
		Brightness: 100,
		Contrast:   0,
		Saturation: 40,
		Blur:       0,
		Resolution: imaging.ResolutionFullHD,
		Format:     imaging.FormatWEBP,
		Quality:    0.01,
	}, got)

	_, err = Config{Resolution: "nope", Format: "PNG"}.Normalize()
	assert.Error(t, err)
}

func TestConfig_Adjustments(t *testing.T) {
	c := DefaultConfig()
	c.Brightness = 70
	c.Blur = 1.5
	c.Resolution = imaging.ResolutionSD

	adj, err := c.Adjustments()
	require.NoError(t, err)
	assert.Equal(t, imaging.Adjustments{
		Brightness: 70,
		Contrast:   50,
		Saturation: 50,
		Blur:       1.5,
		Width:      640,
		Height:     480,
	}, adj)
}

func TestConfig_FileName(t *testing.T) {
	tests := []struct {
		resolution string
		format     imaging.Format
		want       string
	}{
		{imaging.ResolutionHD, imaging.FormatPNG, "edited_image_HD.png"},
		{imaging.ResolutionSD, imaging.FormatJPEG, "edited_image_SD.jpeg"},
		{imaging.ResolutionFullHD, imaging.FormatWEBP, "edited_image_FULL HD.webp"},
	}

	for _, tt := range tests {
		c := DefaultConfig()
		c.Resolution = tt.resolution
		c.Format = tt.format
		assert.Equal(t, tt.want, c.FileName())
	}
}
