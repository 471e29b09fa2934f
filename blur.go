package blurmate

import (
	"context"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/junhyuckkkk/BlurMate/internal/filter"
)

// BlurStyle selects how the masked region is obscured.
type BlurStyle int

const (
	// StyleGaussian is a separable Gaussian blur with sigma equal to the
	// blur radius.
	StyleGaussian BlurStyle = iota

	// StyleMosaic replaces the image with square blocks of averaged color.
	StyleMosaic

	// StylePixel is a finer mosaic with softened block edges.
	StylePixel
)

// String returns the style name.
func (s BlurStyle) String() string {
	switch s {
	case StyleGaussian:
		return "gaussian"
	case StyleMosaic:
		return "mosaic"
	case StylePixel:
		return "pixel"
	default:
		return fmt.Sprintf("BlurStyle(%d)", int(s))
	}
}

// ParseBlurStyle parses a style name as returned by String.
func ParseBlurStyle(s string) (BlurStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gaussian", "blur", "":
		return StyleGaussian, nil
	case "mosaic":
		return StyleMosaic, nil
	case "pixel", "pixelate":
		return StylePixel, nil
	}
	return StyleGaussian, fmt.Errorf("blurmate: unknown blur style %q", s)
}

// Defaults and UI ranges for BlurParams.
const (
	DefaultBrushSize     = 30
	DefaultBlurIntensity = 8

	MinBrushSize = 10
	MaxBrushSize = 100

	MinBlurIntensity = 0
	MaxBlurIntensity = 15
)

// BlurParams holds the user-adjustable parameters of an edit. BrushSize is a
// diameter in display units; Intensity is the blur radius in display units.
type BlurParams struct {
	BrushSize float64
	Intensity float64
	Style     BlurStyle
}

// DefaultBlurParams returns brush 30, intensity 8, Gaussian.
func DefaultBlurParams() BlurParams {
	return BlurParams{
		BrushSize: DefaultBrushSize,
		Intensity: DefaultBlurIntensity,
		Style:     StyleGaussian,
	}
}

// sanitize replaces negative or non-finite values with zero.
func (p BlurParams) sanitize() BlurParams {
	if !(p.BrushSize >= 0) || math.IsInf(p.BrushSize, 0) {
		p.BrushSize = 0
	}
	if !(p.Intensity >= 0) || math.IsInf(p.Intensity, 0) {
		p.Intensity = 0
	}
	return p
}

// ApplyBlur returns a blurred copy of src in the given style. radius is in
// source pixels. A radius of zero, a negative radius or NaN returns an
// unchanged copy for every style. The result has the same dimensions as src
// with bounds starting at (0, 0).
func ApplyBlur(ctx context.Context, src *image.RGBA, style BlurStyle, radius float64) (*image.RGBA, error) {
	if !(radius > 0) {
		return filter.Clone(src), nil
	}

	switch style {
	case StyleMosaic:
		return filter.Mosaic(ctx, src, mosaicBlock(radius*2))
	case StylePixel:
		return filter.Pixelate(ctx, src, mosaicBlock(radius), radius/4)
	default:
		return filter.Gaussian(ctx, src, radius)
	}
}

// mosaicBlock rounds a block size to whole pixels, at least 2.
func mosaicBlock(v float64) int {
	r := math.Round(v)
	if r > math.MaxInt32 {
		return math.MaxInt32
	}
	return max(2, int(r))
}
