// Package imageio decodes source photos and encodes finished images.
//
// Decoding accepts PNG, JPEG and GIF from the standard library plus BMP,
// TIFF and WebP from golang.org/x/image. Decoded images are normalized to a
// premultiplied *image.RGBA whose bounds start at (0, 0).
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when an output format is not supported.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// DefaultJPEGQuality is used when no quality is given.
const DefaultJPEGQuality = 92

// Format is an output encoding.
type Format int

const (
	// FormatPNG encodes lossless PNG.
	FormatPNG Format = iota
	// FormatJPEG encodes baseline JPEG.
	FormatJPEG
)

// String returns the canonical name of the format.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	default:
		return ".png"
	}
}

// ParseFormat parses a format name or file extension ("png", ".jpg", ...).
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Decode decodes an image from r, auto-detecting the format. It returns the
// normalized image and the registered format name.
func Decode(r io.Reader) (*image.RGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	return Normalize(img), format, nil
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (*image.RGBA, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Load decodes the image file at path.
func Load(path string) (*image.RGBA, string, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, "", fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Normalize returns a premultiplied RGBA copy of img whose bounds start at
// (0, 0). The copy never shares pixels with img.
func Normalize(img image.Image) *image.RGBA {
	rgba := clone.AsRGBA(img)
	if rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	// clone allocates a fresh buffer for the source bounds, so Pix starts at
	// the first pixel and only the rectangle needs rebasing.
	return &image.RGBA{
		Pix:    rgba.Pix,
		Stride: rgba.Stride,
		Rect:   image.Rect(0, 0, rgba.Rect.Dx(), rgba.Rect.Dy()),
	}
}

// Encode writes img to w in the given format. quality applies to JPEG and
// is clamped to 1..100; zero selects DefaultJPEGQuality.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	switch f {
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("imageio: encode PNG: %w", err)
		}
		return nil
	case FormatJPEG:
		if quality == 0 {
			quality = DefaultJPEGQuality
		}
		quality = max(1, min(quality, 100))
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("imageio: encode JPEG: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}

// Save encodes img into a new file at path. The file is written next to
// its final name and renamed into place, so a failed save never leaves a
// truncated image behind. Errors wrap the underlying *fs.PathError, so
// callers can test for fs.ErrPermission.
func Save(path string, img image.Image, f Format, quality int) (err error) {
	path = filepath.Clean(path)
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := Encode(tmp, img, f, quality); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("imageio: chmod file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("imageio: close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("imageio: rename file: %w", err)
	}
	return nil
}
