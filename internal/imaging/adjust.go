package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// NeutralPercent is the slider position at which an adjustment has no effect.
const NeutralPercent = 50

// Luma weights used for saturation. These are the weights of the CSS
// saturate() filter matrix.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Adjustments parameterizes one run of the adjustment pipeline.
//
// Brightness, Contrast and Saturation are slider percentages in [0,100] where
// 50 is neutral. Blur is the Gaussian standard deviation in pixels; 0
// disables it. Width and Height are the output size; when either is not
// positive the source size is kept.
type Adjustments struct {
	Brightness int
	Contrast   int
	Saturation int
	Blur       float64
	Width      int
	Height     int
}

// Multiplier maps a slider percentage to the effective multiplier in percent:
// 0 -> 0, 50 -> 100, 100 -> 200.
func Multiplier(percent int) int {
	return (percent-NeutralPercent)*2 + 100
}

// IsNeutral reports whether grading would leave pixel values unchanged.
func (a Adjustments) IsNeutral() bool {
	return a.Brightness == NeutralPercent && a.Contrast == NeutralPercent && a.Saturation == NeutralPercent
}

// Adjust runs the adjustment pipeline over src and returns a new buffer.
//
// # Stages
//
// The stages run in a fixed order, each consuming the previous stage's output:
//
//  1. Resample to Width x Height with a Lanczos filter
//  2. Brightness: out = in * m/100
//  3. Contrast: out = (in - 128) * m/100 + 128
//  4. Saturation: out = gray + (in - gray) * m/100, gray being the pixel's luma
//  5. Gaussian blur with sigma = Blur
//
// m is Multiplier(percent) for the respective slider. Channel values are
// clamped to [0,255] after every grading stage and rounded once at the end.
// Alpha passes through grading untouched.
func Adjust(src *Buffer, adj Adjustments) *Buffer {
	width, height := adj.Width, adj.Height
	if width <= 0 || height <= 0 {
		width, height = src.Width, src.Height
	}
	if src.Width == 0 || src.Height == 0 {
		return NewBuffer(width, height)
	}

	out := imaging.Resize(src.Image(), width, height, imaging.Lanczos)

	if !adj.IsNeutral() {
		out = imaging.AdjustFunc(out, gradeFunc(
			float64(Multiplier(adj.Brightness))/100,
			float64(Multiplier(adj.Contrast))/100,
			float64(Multiplier(adj.Saturation))/100,
		))
	}

	if adj.Blur > 0 {
		out = imaging.Blur(out, adj.Blur)
	}

	return fromNRGBA(out)
}

// gradeFunc builds the per-pixel brightness/contrast/saturation transform.
// A factor of exactly 1 skips its stage.
func gradeFunc(brightness, contrast, saturation float64) func(color.NRGBA) color.NRGBA {
	return func(c color.NRGBA) color.NRGBA {
		r, g, b := float64(c.R), float64(c.G), float64(c.B)

		if brightness != 1 {
			r = clampFloat(r * brightness)
			g = clampFloat(g * brightness)
			b = clampFloat(b * brightness)
		}

		if contrast != 1 {
			r = clampFloat((r-128)*contrast + 128)
			g = clampFloat((g-128)*contrast + 128)
			b = clampFloat((b-128)*contrast + 128)
		}

		if saturation != 1 {
			gray := lumaR*r + lumaG*g + lumaB*b
			r = clampFloat(gray + (r-gray)*saturation)
			g = clampFloat(gray + (g-gray)*saturation)
			b = clampFloat(gray + (b-gray)*saturation)
		}

		return color.NRGBA{R: clampByte(r), G: clampByte(g), B: clampByte(b), A: c.A}
	}
}

func clampFloat(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// fromNRGBA wraps an origin-anchored NRGBA image whose stride equals 4*width.
func fromNRGBA(img *image.NRGBA) *Buffer {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Rect.Min == (image.Point{}) && img.Stride == w*4 && len(img.Pix) == w*h*4 {
		return &Buffer{Width: w, Height: h, Pix: img.Pix}
	}
	return FromImage(img)
}
