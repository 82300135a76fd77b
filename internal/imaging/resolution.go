package imaging

import (
	"fmt"
	"strings"
)

// Resolution is a fixed output size the adjustment pipeline resamples to.
type Resolution struct {
	Key    string `json:"key" yaml:"key"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
}

// Resolution keys.
const (
	ResolutionSD     = "SD"
	ResolutionHD     = "HD"
	ResolutionFullHD = "FULL HD"
)

// Resolutions is the static lookup table of supported output sizes.
var Resolutions = map[string]Resolution{
	ResolutionSD:     {Key: ResolutionSD, Width: 640, Height: 480},
	ResolutionHD:     {Key: ResolutionHD, Width: 1280, Height: 720},
	ResolutionFullHD: {Key: ResolutionFullHD, Width: 1920, Height: 1080},
}

// ResolutionKeys lists the table keys from smallest to largest.
var ResolutionKeys = []string{ResolutionSD, ResolutionHD, ResolutionFullHD}

// LookupResolution resolves a resolution key. Matching is case-insensitive and
// "FULL_HD", "FULLHD" and "FHD" are accepted for "FULL HD".
func LookupResolution(key string) (Resolution, error) {
	k := strings.ToUpper(strings.TrimSpace(key))
	switch k {
	case "FULL_HD", "FULLHD", "FULL-HD", "FHD":
		k = ResolutionFullHD
	}
	r, ok := Resolutions[k]
	if !ok {
		return Resolution{}, fmt.Errorf("unknown resolution %q (want one of %s)", key, strings.Join(ResolutionKeys, ", "))
	}
	return r, nil
}

// String formats the resolution as "W x H".
func (r Resolution) String() string {
	return fmt.Sprintf("%d x %d", r.Width, r.Height)
}
