package imaging

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/parallel"
)

// ErrInvalidKernel is returned for kernels that are empty, not square, or of
// even size.
var ErrInvalidKernel = errors.New("invalid convolution kernel")

// Kernel is an odd-sized square matrix of convolution weights, indexed
// [row][column].
type Kernel [][]float64

// SharpenKernel is the default sharpening kernel. Its weights sum to 1, so
// flat regions are fixed points.
var SharpenKernel = Kernel{
	{0, -1, 0},
	{-1, 5, -1},
	{0, -1, 0},
}

// namedKernels are the built-in kernels selectable by name.
var namedKernels = map[string]Kernel{
	"sharpen": SharpenKernel,
	"identity": {
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	},
	"edge": {
		{-1, -1, -1},
		{-1, 8, -1},
		{-1, -1, -1},
	},
	"emboss": {
		{-2, -1, 0},
		{-1, 1, 1},
		{0, 1, 2},
	},
	"box": {
		{1.0 / 9, 1.0 / 9, 1.0 / 9},
		{1.0 / 9, 1.0 / 9, 1.0 / 9},
		{1.0 / 9, 1.0 / 9, 1.0 / 9},
	},
}

// KernelNames returns the names accepted by KernelByName, sorted.
func KernelNames() []string {
	names := make([]string, 0, len(namedKernels))
	for name := range namedKernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KernelByName returns a copy of a built-in kernel.
func KernelByName(name string) (Kernel, error) {
	k, ok := namedKernels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown kernel %q (want one of %s)", name, strings.Join(KernelNames(), ", "))
	}
	return k.Clone(), nil
}

// Clone returns a deep copy of the kernel.
func (k Kernel) Clone() Kernel {
	out := make(Kernel, len(k))
	for i, row := range k {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Size returns the kernel's side length.
func (k Kernel) Size() int {
	return len(k)
}

// Offset returns the kernel radius, floor(size/2).
func (k Kernel) Offset() int {
	return len(k) / 2
}

// Validate checks that the kernel is a non-empty odd-sized square matrix.
func (k Kernel) Validate() error {
	n := len(k)
	if n == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidKernel)
	}
	if n%2 == 0 {
		return fmt.Errorf("%w: size %d is even", ErrInvalidKernel, n)
	}
	for i, row := range k {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d weights, want %d", ErrInvalidKernel, i, len(row), n)
		}
	}
	return nil
}

// Convolve applies kernel to every interior pixel of src and returns the
// filtered buffer.
//
// # Border Handling
//
// The output starts as a copy of src. Only pixels at least Offset() away from
// every edge are recomputed; border pixels keep their source bytes exactly.
// When the buffer has no interior (width or height <= 2*Offset()) the result
// is an unchanged copy.
//
// # Channels
//
// For each processed pixel the weighted neighborhood sum is computed
// independently for R, G and B, clamped to [0,255] and rounded half to even.
// Alpha of processed pixels is set to 255.
//
// Rows are processed in parallel. Workers read only from src and write only
// their own rows of the output.
func Convolve(src *Buffer, kernel Kernel) (*Buffer, error) {
	if err := kernel.Validate(); err != nil {
		return nil, err
	}

	dst := src.Clone()
	offset := kernel.Offset()
	width, height := src.Width, src.Height
	if width <= 2*offset || height <= 2*offset {
		return dst, nil
	}

	interior := height - 2*offset
	parallel.Line(interior, func(start, end int) {
		for y := start + offset; y < end+offset; y++ {
			for x := offset; x < width-offset; x++ {
				var r, g, b float64
				for j := -offset; j <= offset; j++ {
					row := kernel[j+offset]
					base := ((y+j)*width + x - offset) * 4
					for i := range row {
						w := row[i]
						idx := base + i*4
						r += float64(src.Pix[idx]) * w
						g += float64(src.Pix[idx+1]) * w
						b += float64(src.Pix[idx+2]) * w
					}
				}

				idx := (y*width + x) * 4
				dst.Pix[idx] = clampByte(r)
				dst.Pix[idx+1] = clampByte(g)
				dst.Pix[idx+2] = clampByte(b)
				dst.Pix[idx+3] = 255
			}
		}
	})

	return dst, nil
}
