package blurmate

import (
	"fmt"
	"math"
)

// Point represents a 2D position, either in display units or in source
// pixels depending on context.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Scale returns the point with x multiplied by sx and y by sy.
func (p Point) Scale(sx, sy float64) Point {
	return Point{X: p.X * sx, Y: p.Y * sy}
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// DisplayGeometry is the size of the viewport the photo is currently drawn
// into, in display units. Strokes are captured relative to it.
type DisplayGeometry struct {
	Width, Height float64
}

// FallbackDisplayWidth is the viewport width assumed when the real viewport
// size is unknown or degenerate.
const FallbackDisplayWidth = 300

// Valid reports whether both dimensions are positive and finite.
func (g DisplayGeometry) Valid() bool {
	return g.Width > 0 && g.Height > 0 && isFinite(g.Width) && isFinite(g.Height)
}

// FallbackGeometry returns the aspect-preserving viewport used for an image
// of the given pixel size when no valid geometry is known: 300 units wide
// and as tall as the image's aspect ratio requires.
func FallbackGeometry(width, height int) DisplayGeometry {
	if width <= 0 || height <= 0 {
		return DisplayGeometry{Width: FallbackDisplayWidth, Height: FallbackDisplayWidth}
	}
	return DisplayGeometry{
		Width:  FallbackDisplayWidth,
		Height: FallbackDisplayWidth * float64(height) / float64(width),
	}
}

// FitGeometry returns the largest viewport with the image's aspect ratio
// that fits inside a container of the given size, matching an aspect-fit
// layout. A degenerate container yields the fallback geometry.
func FitGeometry(containerW, containerH float64, width, height int) DisplayGeometry {
	c := DisplayGeometry{Width: containerW, Height: containerH}
	if !c.Valid() || width <= 0 || height <= 0 {
		return FallbackGeometry(width, height)
	}
	s := math.Min(containerW/float64(width), containerH/float64(height))
	return DisplayGeometry{Width: float64(width) * s, Height: float64(height) * s}
}

// pixelSize rounds the geometry to whole pixels, at least 1×1.
func (g DisplayGeometry) pixelSize() (int, int) {
	return max(1, int(math.Round(g.Width))), max(1, int(math.Round(g.Height)))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
