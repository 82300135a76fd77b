package imaging

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// Luminance returns the integer gray level of an RGB triple using the
// weights 0.3, 0.59 and 0.11. Halves round up.
func Luminance(r, g, b uint8) uint8 {
	v := math.Floor(float64(r)*0.3 + float64(g)*0.59 + float64(b)*0.11 + 0.5)
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// LuminanceHistogram counts the pixels of buf per luminance level.
func LuminanceHistogram(buf *Buffer) [256]int {
	var hist [256]int
	for i := 0; i+3 < len(buf.Pix); i += 4 {
		hist[Luminance(buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2])]++
	}
	return hist
}

// CumulativeHistogram returns the running sum of hist.
func CumulativeHistogram(hist [256]int) [256]int {
	var cdf [256]int
	sum := 0
	for i, n := range hist {
		sum += n
		cdf[i] = sum
	}
	return cdf
}

// EqualizationTable builds the luminance remapping table for buf.
//
// Each level v maps to round((cdf[v]-cdfMin) / (total-cdfMin) * 255), where
// cdfMin is the cumulative count at the darkest occupied level and total is
// the pixel count. The second return value is false when the table is
// undefined: an empty buffer, or one whose pixels all share a single
// luminance (total == cdfMin).
func EqualizationTable(buf *Buffer) ([256]uint8, bool) {
	var lut [256]uint8

	total := buf.Width * buf.Height
	if total == 0 {
		return lut, false
	}

	cdf := CumulativeHistogram(LuminanceHistogram(buf))
	cdfMin := 0
	for _, v := range cdf {
		if v > 0 {
			cdfMin = v
			break
		}
	}
	if total == cdfMin {
		return lut, false
	}

	span := float64(total - cdfMin)
	for v, c := range cdf {
		n := math.Floor(float64(c-cdfMin)/span*255 + 0.5)
		lut[v] = uint8(clampFloat(n))
	}
	return lut, true
}

// Equalize performs luminance histogram equalization and returns a new buffer
// of the same size.
//
// Every pixel's R, G and B are replaced by the remapped luminance, so the
// result is grayscale. Alpha is left untouched. Buffers whose table is
// undefined (see EqualizationTable) are returned as an unchanged copy.
func Equalize(src *Buffer) *Buffer {
	dst := src.Clone()

	lut, ok := EqualizationTable(src)
	if !ok {
		return dst
	}

	parallel.Line(src.Height, func(start, end int) {
		for i := start * src.Width * 4; i < end*src.Width*4; i += 4 {
			v := lut[Luminance(src.Pix[i], src.Pix[i+1], src.Pix[i+2])]
			dst.Pix[i] = v
			dst.Pix[i+1] = v
			dst.Pix[i+2] = v
		}
	})

	return dst
}

// HistogramStats summarizes the luminance distribution of a buffer.
type HistogramStats struct {
	Histogram []int   `json:"histogram"`
	Pixels    int     `json:"pixels"`
	Min       int     `json:"min"`
	Max       int     `json:"max"`
	Mean      float64 `json:"mean"`
	Distinct  int     `json:"distinct_levels"`
}

// ComputeHistogramStats returns the luminance histogram of buf with its
// minimum, maximum and mean level. Min and Max are -1 for an empty buffer.
func ComputeHistogramStats(buf *Buffer) *HistogramStats {
	hist := LuminanceHistogram(buf)
	stats := &HistogramStats{
		Histogram: hist[:],
		Min:       -1,
		Max:       -1,
	}

	var sum float64
	for v, n := range hist {
		if n == 0 {
			continue
		}
		if stats.Min < 0 {
			stats.Min = v
		}
		stats.Max = v
		stats.Distinct++
		stats.Pixels += n
		sum += float64(v * n)
	}
	if stats.Pixels > 0 {
		stats.Mean = sum / float64(stats.Pixels)
	}
	return stats
}
