package editor

import (
	"fmt"

	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// Config is the editing configuration of a session.
type Config struct {
	Brightness int            `json:"brightness" yaml:"brightness"`
	Contrast   int            `json:"contrast" yaml:"contrast"`
	Saturation int            `json:"saturation" yaml:"saturation"`
	Blur       float64        `json:"blur" yaml:"blur"`
	Resolution string         `json:"resolution" yaml:"resolution"`
	Format     imaging.Format `json:"format" yaml:"format"`
	Quality    float64        `json:"quality" yaml:"quality"`
}

// DefaultConfig returns the neutral configuration: all sliders at 50, no
// blur, HD output, PNG export at quality 0.9.
func DefaultConfig() Config {
	return Config{
		Brightness: 50,
		Contrast:   50,
		Saturation: 50,
		Blur:       0,
		Resolution: imaging.ResolutionHD,
		Format:     imaging.FormatPNG,
		Quality:    0.9,
	}
}

// ConfigPatch is a partial configuration update. Nil fields are left as they
// are.
type ConfigPatch struct {
	Brightness *int     `json:"brightness,omitempty"`
	Contrast   *int     `json:"contrast,omitempty"`
	Saturation *int     `json:"saturation,omitempty"`
	Blur       *float64 `json:"blur,omitempty"`
	Resolution *string  `json:"resolution,omitempty"`
	Format     *string  `json:"format,omitempty"`
	Quality    *float64 `json:"quality,omitempty"`
}

// Apply returns c with the patch merged in.
//
// Percentages are clamped to [0,100], blur to >= 0 and quality to (0,1].
// Unknown resolution or format names are rejected and c is returned
// unchanged.
func (p ConfigPatch) Apply(c Config) (Config, error) {
	out := c
	if p.Resolution != nil {
		r, err := imaging.LookupResolution(*p.Resolution)
		if err != nil {
			return c, err
		}
		out.Resolution = r.Key
	}
	if p.Format != nil {
		f, err := imaging.ParseFormat(*p.Format)
		if err != nil {
			return c, err
		}
		out.Format = f
	}
	if p.Brightness != nil {
		out.Brightness = clampPercent(*p.Brightness)
	}
	if p.Contrast != nil {
		out.Contrast = clampPercent(*p.Contrast)
	}
	if p.Saturation != nil {
		out.Saturation = clampPercent(*p.Saturation)
	}
	if p.Blur != nil {
		out.Blur = *p.Blur
		if out.Blur < 0 {
			out.Blur = 0
		}
	}
	if p.Quality != nil {
		out.Quality = clampQuality(*p.Quality)
	}
	return out, nil
}

// Empty reports whether the patch changes nothing.
func (p ConfigPatch) Empty() bool {
	return p.Brightness == nil && p.Contrast == nil && p.Saturation == nil &&
		p.Blur == nil && p.Resolution == nil && p.Format == nil && p.Quality == nil
}

// Normalize clamps every field into range and resolves aliases. It is used on
// configurations read from settings files.
func (c Config) Normalize() (Config, error) {
	res, format := c.Resolution, string(c.Format)
	return ConfigPatch{
		Brightness: &c.Brightness,
		Contrast:   &c.Contrast,
		Saturation: &c.Saturation,
		Blur:       &c.Blur,
		Resolution: &res,
		Format:     &format,
		Quality:    &c.Quality,
	}.Apply(c)
}

// Adjustments converts the configuration into pipeline parameters.
func (c Config) Adjustments() (imaging.Adjustments, error) {
	r, err := imaging.LookupResolution(c.Resolution)
	if err != nil {
		return imaging.Adjustments{}, err
	}
	return imaging.Adjustments{
		Brightness: c.Brightness,
		Contrast:   c.Contrast,
		Saturation: c.Saturation,
		Blur:       c.Blur,
		Width:      r.Width,
		Height:     r.Height,
	}, nil
}

// FileName returns the export file name, e.g. "edited_image_HD.png".
func (c Config) FileName() string {
	return fmt.Sprintf("edited_image_%s.%s", c.Resolution, c.Format.Extension())
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampQuality(q float64) float64 {
	if q <= 0 {
		return 0.01
	}
	if q > 1 {
		return 1
	}
	return q
}
