package blurmate

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/junhyuckkkk/BlurMate/internal/imageio"
)

// Orientation is an EXIF-style orientation tag (1..8). The core never
// interprets it; it is carried from the source to the exported image so the
// sink can write it back.
type Orientation uint8

// OrientationUp is the default orientation.
const OrientationUp Orientation = 1

// Image is a full-resolution photo: 8-bit premultiplied RGBA pixels with
// bounds starting at (0, 0), plus its orientation. An Image is never
// modified after construction.
type Image struct {
	rgba        *image.RGBA
	orientation Orientation
}

// NewImage copies img into a new Image with OrientationUp.
func NewImage(img image.Image) *Image {
	return &Image{rgba: imageio.Normalize(img), orientation: OrientationUp}
}

// NewImageWithOrientation is NewImage with an explicit orientation. Values
// outside 1..8 are treated as OrientationUp.
func NewImageWithOrientation(img image.Image, o Orientation) *Image {
	im := NewImage(img)
	im.orientation = validOrientation(o)
	return im
}

// wrapRGBA adopts rgba without copying. rgba must have bounds starting at
// (0, 0) and must not be modified afterwards.
func wrapRGBA(rgba *image.RGBA, o Orientation) *Image {
	return &Image{rgba: rgba, orientation: o}
}

func validOrientation(o Orientation) Orientation {
	if o < 1 || o > 8 {
		return OrientationUp
	}
	return o
}

// DecodeImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image from r.
func DecodeImage(r io.Reader) (*Image, error) {
	rgba, _, err := imageio.Decode(r)
	if err != nil {
		return nil, err
	}
	return wrapRGBA(rgba, OrientationUp), nil
}

// DecodeImageBytes decodes an image held in memory.
// Empty data fails with ErrNoImage.
func DecodeImageBytes(data []byte) (*Image, error) {
	rgba, _, err := imageio.DecodeBytes(data)
	if errors.Is(err, imageio.ErrEmptyData) {
		return nil, fmt.Errorf("%w: %w", ErrNoImage, err)
	}
	if err != nil {
		return nil, err
	}
	return wrapRGBA(rgba, OrientationUp), nil
}

// LoadImage decodes the image file at path.
func LoadImage(path string) (*Image, error) {
	rgba, _, err := imageio.Load(path)
	if err != nil {
		return nil, err
	}
	return wrapRGBA(rgba, OrientationUp), nil
}

// Width returns the width in pixels.
func (im *Image) Width() int { return im.rgba.Rect.Dx() }

// Height returns the height in pixels.
func (im *Image) Height() int { return im.rgba.Rect.Dy() }

// Orientation returns the orientation tag.
func (im *Image) Orientation() Orientation { return im.orientation }

// Empty reports whether the image has no pixels.
func (im *Image) Empty() bool {
	return im == nil || im.rgba == nil || im.Width() == 0 || im.Height() == 0
}

// ColorModel implements image.Image.
func (im *Image) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (im *Image) Bounds() image.Rectangle { return im.rgba.Rect }

// At implements image.Image.
func (im *Image) At(x, y int) color.Color { return im.rgba.RGBAAt(x, y) }

// RGBA returns a copy of the pixels.
func (im *Image) RGBA() *image.RGBA {
	out := image.NewRGBA(im.rgba.Rect)
	copy(out.Pix, im.rgba.Pix)
	return out
}

// Encode writes the image to w as PNG or JPEG. quality applies to JPEG;
// zero selects a default.
func (im *Image) Encode(w io.Writer, format string, quality int) error {
	f, err := imageio.ParseFormat(format)
	if err != nil {
		return err
	}
	return imageio.Encode(w, im.rgba, f, quality)
}

// SavePNG writes the image to path as PNG.
func (im *Image) SavePNG(path string) error {
	return imageio.Save(path, im.rgba, imageio.FormatPNG, 0)
}
