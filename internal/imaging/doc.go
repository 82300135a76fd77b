// Package imaging provides the pixel-processing core of the image editor.
//
// All operations work on Buffer, a row-major 8-bit RGBA raster with (0,0) at
// the top-left corner. Decoding and encoding are handled at the edges by
// Decode and Encode; everything in between is a pure transform from one
// Buffer to a new one.
//
// # Operations
//
//   - Adjust: resample to a fixed resolution, then brightness, contrast,
//     saturation and Gaussian blur
//   - Convolve: apply an odd-sized square kernel to interior pixels
//   - Equalize: luminance histogram equalization (grayscale output)
//
// # Ownership
//
// No operation writes to its input. Each returns a newly allocated Buffer,
// which lets callers hand the same source to several operations and swap
// results in atomically.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Convolve and Equalize shard
// rows across goroutines internally; workers only read the source and only
// write their own rows of the destination.
//
// # Numeric Semantics
//
// Every per-pixel result is clamped to [0,255]. Convolution sums and grading
// results round half to even; luminance rounds half up.
package imaging
