package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"math"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrUnsupportedFormat is returned when asked to encode to an unknown format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an export format.
type Format string

// Export formats.
const (
	FormatPNG  Format = "PNG"
	FormatJPEG Format = "JPEG"
	FormatWEBP Format = "WEBP"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatPNG, FormatJPEG, FormatWEBP}

// ParseFormat resolves a format name case-insensitively. "JPG" is accepted
// for JPEG.
func ParseFormat(name string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "PNG":
		return FormatPNG, nil
	case "JPEG", "JPG":
		return FormatJPEG, nil
	case "WEBP":
		return FormatWEBP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Extension returns the lower-case file extension without the dot.
func (f Format) Extension() string {
	return strings.ToLower(string(f))
}

// MimeType returns the MIME type of the format.
func (f Format) MimeType() string {
	return "image/" + f.Extension()
}

// Lossy reports whether the quality parameter affects the encoding.
func (f Format) Lossy() bool {
	return f == FormatJPEG || f == FormatWEBP
}

// Decode reads an encoded image and converts it into a Buffer.
//
// PNG, JPEG, GIF, WebP, BMP and TIFF are supported. EXIF orientation is
// applied for JPEG and TIFF input. The returned string is the detected format
// name as registered with the image package (e.g. "png", "jpeg").
func Decode(r io.Reader) (*Buffer, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("invalid image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	return FromImage(img), format, nil
}

// Encode writes buf to w in the given format.
//
// quality is in (0,1] and is used by JPEG and WebP only; values outside that
// range fall back to 0.9. PNG ignores it.
func Encode(w io.Writer, buf *Buffer, format Format, quality float64) error {
	if quality <= 0 || quality > 1 {
		quality = 0.9
	}
	img := buf.Image()

	var err error
	switch format {
	case FormatPNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case FormatJPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(int(math.Round(quality*100))))
	case FormatWEBP:
		err = webp.Encode(w, img, &webp.Options{Quality: float32(quality * 100)})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// EncodeBytes is Encode into a byte slice.
func EncodeBytes(buf *Buffer, format Format, quality float64) ([]byte, error) {
	var out bytes.Buffer
	if err := Encode(&out, buf, format, quality); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
