package blurmate

import "math"

// Mapping is the result of converting a stroke set from display space into
// the source image's pixel space.
type Mapping struct {
	// Geometry is the viewport actually used: the session's geometry, or the
	// fallback when that was degenerate.
	Geometry DisplayGeometry

	// ScaleX and ScaleY convert display units to source pixels per axis.
	ScaleX, ScaleY float64

	// Width and Height are the source image's pixel dimensions.
	Width, Height int

	// Strokes are the strokes in source pixel space, widths included.
	Strokes []Stroke

	// BrushSize and BlurRadius are the session parameters in source pixels.
	BrushSize  float64
	BlurRadius float64
}

// Scale returns min(ScaleX, ScaleY), the factor applied to lengths. Using
// the smaller axis keeps brush and blur at the size the user saw and never
// over-wide on the axis with the larger ratio.
func (m Mapping) Scale() float64 {
	return math.Min(m.ScaleX, m.ScaleY)
}

// Map converts strokes captured in the viewport geom into the pixel space of
// a width×height source image. Every point is scaled independently per axis;
// stroke widths, the brush size and the blur intensity are scaled by
// min(sx, sy).
//
// A degenerate geometry falls back to FallbackGeometry. Map returns
// ErrNoImage for an empty source and ErrNoStrokes when there is nothing to
// export.
func Map(geom DisplayGeometry, width, height int, strokes []Stroke, params BlurParams) (Mapping, error) {
	if width <= 0 || height <= 0 {
		return Mapping{}, ErrNoImage
	}
	if len(strokes) == 0 {
		return Mapping{}, ErrNoStrokes
	}

	if !geom.Valid() {
		geom = FallbackGeometry(width, height)
	}

	sx := float64(width) / geom.Width
	sy := float64(height) / geom.Height
	if !(sx > 0) || !(sy > 0) || !isFinite(sx) || !isFinite(sy) {
		// Only reachable for sub-ulp geometries; fall back rather than
		// produce an unusable mask.
		geom = FallbackGeometry(width, height)
		sx = float64(width) / geom.Width
		sy = float64(height) / geom.Height
	}
	s := math.Min(sx, sy)

	mapped := make([]Stroke, len(strokes))
	for i, st := range strokes {
		mapped[i] = st.mapped(sx, sy, s)
	}

	return Mapping{
		Geometry:   geom,
		ScaleX:     sx,
		ScaleY:     sy,
		Width:      width,
		Height:     height,
		Strokes:    mapped,
		BrushSize:  params.BrushSize * s,
		BlurRadius: params.Intensity * s,
	}, nil
}
