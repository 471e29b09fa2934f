// Package raster renders brush strokes into single-channel coverage buffers.
//
// A stroke of width w through points p0..pn covers every position whose
// distance to the polyline is at most w/2. That shape is the union of one
// capsule per segment, which gives round caps and round joins for free and
// turns a single point into a disk. Coverage is computed from the signed
// distance to the capsule and anti-aliased with a smoothstep ramp.
package raster

import "math"

// aaWidth controls the half-width of the anti-aliasing ramp in pixels.
const aaWidth = 0.7

// Point is a position in pixel space. Pixel (x, y) has its center at
// (x+0.5, y+0.5).
type Point struct {
	X, Y float64
}

// Stroke is one polyline with its diameter in pixels.
type Stroke struct {
	Points []Point
	Width  float64
}

// Coverage is an 8-bit coverage buffer of Width×Height values, row-major.
type Coverage struct {
	Width  int
	Height int
	Data   []uint8
}

// NewCoverage allocates a zeroed buffer.
func NewCoverage(width, height int) *Coverage {
	return &Coverage{
		Width:  width,
		Height: height,
		Data:   make([]uint8, width*height),
	}
}

// DrawStrokes renders every stroke into c. Coverage accumulates as the
// maximum of what is already there and the new stroke, so strokes only ever
// add to the buffer.
func (c *Coverage) DrawStrokes(strokes []Stroke) {
	for _, s := range strokes {
		c.DrawStroke(s)
	}
}

// DrawStroke renders a single stroke into c. Strokes with no points or a
// non-positive or non-finite width draw nothing.
func (c *Coverage) DrawStroke(s Stroke) {
	r := s.Width / 2
	if !(r > 0) || math.IsInf(r, 0) || len(s.Points) == 0 {
		return
	}

	prev := s.Points[0]
	if !finite(prev) {
		return
	}
	c.drawCapsule(prev, prev, r)

	for _, p := range s.Points[1:] {
		if p == prev || !finite(p) {
			continue
		}
		c.drawCapsule(prev, p, r)
		prev = p
	}
}

// drawCapsule renders the set of positions within r of segment ab.
func (c *Coverage) drawCapsule(a, b Point, r float64) {
	pad := r + aaWidth + 1
	x0, x1 := pixelSpan(math.Min(a.X, b.X)-pad, math.Max(a.X, b.X)+pad, c.Width)
	y0, y1 := pixelSpan(math.Min(a.Y, b.Y)-pad, math.Max(a.Y, b.Y)+pad, c.Height)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	// Unit direction and length keep the projection finite for endpoints
	// far outside the buffer.
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	ux, uy := 0.0, 0.0
	if length > 0 {
		ux, uy = dx/length, dy/length
	}

	for y := y0; y < y1; y++ {
		py := float64(y) + 0.5
		row := c.Data[y*c.Width : (y+1)*c.Width]
		for x := x0; x < x1; x++ {
			if row[x] == 255 {
				continue
			}
			px := float64(x) + 0.5

			d := segmentDistance(px, py, a, ux, uy, length)
			cov := smoothstepCoverage(d - r)
			if cov <= 0 {
				continue
			}
			if v := uint8(cov*255 + 0.5); v > row[x] {
				row[x] = v
			}
		}
	}
}

// pixelSpan returns the pixel range [i0, i1) covering [lo, hi], clipped to
// [0, n). Clipping happens before the int conversion so that huge
// coordinates cannot wrap.
func pixelSpan(lo, hi float64, n int) (i0, i1 int) {
	limit := float64(n)
	lo = math.Max(0, math.Min(limit, math.Floor(lo)))
	hi = math.Max(0, math.Min(limit, math.Ceil(hi)))
	return int(lo), int(hi)
}

// segmentDistance returns the distance from (px, py) to the segment that
// starts at a, runs along the unit vector (ux, uy) and has the given length.
func segmentDistance(px, py float64, a Point, ux, uy, length float64) float64 {
	t := math.Max(0, math.Min(length, (px-a.X)*ux+(py-a.Y)*uy))
	return math.Hypot(px-(a.X+t*ux), py-(a.Y+t*uy))
}

// smoothstepCoverage maps a signed distance (negative inside) to coverage
// in [0, 1] using a Hermite smoothstep over [-aaWidth, aaWidth].
func smoothstepCoverage(sdf float64) float64 {
	if sdf >= aaWidth {
		return 0
	}
	if sdf <= -aaWidth {
		return 1
	}
	t := (sdf + aaWidth) / (2 * aaWidth)
	return 1 - (t * t * (3 - 2*t))
}

func finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
