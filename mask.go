package blurmate

import (
	"image"

	"github.com/junhyuckkkk/BlurMate/internal/raster"
)

// Mask is a single-channel alpha raster with the source image's dimensions.
// Values range from 0 (keep the source) to 255 (fully blurred).
type Mask struct {
	width  int
	height int
	data   []uint8
}

// NewMask creates a new empty mask with the given dimensions.
// All values are initialized to 0.
func NewMask(width, height int) *Mask {
	width, height = max(width, 0), max(height, 0)
	return &Mask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// RasterizeMask renders strokes given in pixel space into a new mask of
// width×height. Strokes are drawn at full opacity with round caps and round
// joins; overlapping strokes combine by maximum, so a later stroke never
// erases an earlier one. A single-point stroke renders as a dot of the
// stroke's diameter.
func RasterizeMask(width, height int, strokes []Stroke) *Mask {
	m := NewMask(width, height)
	if len(strokes) == 0 || m.width == 0 || m.height == 0 {
		return m
	}

	cov := raster.Coverage{Width: m.width, Height: m.height, Data: m.data}
	cov.DrawStrokes(toRaster(strokes))
	return m
}

func toRaster(strokes []Stroke) []raster.Stroke {
	out := make([]raster.Stroke, len(strokes))
	for i, s := range strokes {
		pts := make([]raster.Point, len(s.points))
		for j, p := range s.points {
			pts[j] = raster.Point{X: p.X, Y: p.Y}
		}
		out[i] = raster.Stroke{Points: pts, Width: s.width}
	}
	return out
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// At returns the mask value at (x, y).
// Returns 0 for coordinates outside the mask bounds.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Opacity returns the blur opacity at (x, y) in [0, 1].
func (m *Mask) Opacity(x, y int) float64 {
	return float64(m.At(x, y)) / 255
}

// Set sets the mask value at (x, y).
// Coordinates outside the mask bounds are ignored.
func (m *Mask) Set(x, y int, value uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = value
}

// Fill fills the entire mask with a value.
func (m *Mask) Fill(value uint8) {
	for i := range m.data {
		m.data[i] = value
	}
}

// IsEmpty reports whether every value is zero.
func (m *Mask) IsEmpty() bool {
	for _, v := range m.data {
		if v != 0 {
			return false
		}
	}
	return true
}

// Alpha returns a copy of the mask as an *image.Alpha, for saving or
// inspection with the image packages.
func (m *Mask) Alpha() *image.Alpha {
	a := image.NewAlpha(m.Bounds())
	copy(a.Pix, m.data)
	return a
}

// Clone creates a copy of the mask.
func (m *Mask) Clone() *Mask {
	clone := NewMask(m.width, m.height)
	copy(clone.data, m.data)
	return clone
}

// Data returns the underlying mask data slice, row-major with a stride of
// Width.
func (m *Mask) Data() []uint8 {
	return m.data
}
