// Package preview renders the on-screen approximation of an edit: the photo
// scaled to the viewport, blurred at display resolution and composited
// through a mask traced with fogleman/gg, the same way the editing canvas
// strokes its paths.
//
// The exported image never comes from here; it is rebuilt at full
// resolution from the mapped strokes.
package preview

import (
	"context"
	"errors"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/junhyuckkkk/BlurMate/internal/blend"
	"github.com/junhyuckkkk/BlurMate/internal/cache"
	"github.com/junhyuckkkk/BlurMate/internal/raster"
)

// ErrEmptyViewport is returned for a viewport without area.
var ErrEmptyViewport = errors.New("preview: empty viewport")

// BlurFunc blurs an image by a radius in its own pixel space.
type BlurFunc func(ctx context.Context, src *image.RGBA, radius float64) (*image.RGBA, error)

// DefaultOverlay is the translucent red used to outline strokes.
var DefaultOverlay = color.NRGBA{R: 255, A: 128}

// Options configures Render.
type Options struct {
	// Width and Height are the viewport size in pixels.
	Width, Height int

	// Radius is the blur radius in display units.
	Radius float64

	// Blur produces the blurred layer. Required.
	Blur BlurFunc

	// Outline, when non-nil, strokes every path on top of the result in
	// this color.
	Outline color.Color
}

// Render draws the preview of src with strokes given in viewport
// coordinates.
func Render(ctx context.Context, src *image.RGBA, strokes []raster.Stroke, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, ErrEmptyViewport
	}

	display := scaled(src, opts.Width, opts.Height)

	blurred, err := opts.Blur(ctx, display, opts.Radius)
	if err != nil {
		return nil, err
	}

	mask := Mask(opts.Width, opts.Height, strokes)
	out, err := blend.MaskLerp(ctx, display, blurred, mask.Pix)
	if err != nil {
		return nil, err
	}

	if opts.Outline != nil {
		dc := gg.NewContextForRGBA(out)
		dc.SetColor(opts.Outline)
		traceStrokes(dc, strokes)
	}
	return out, nil
}

// scaleKey identifies a viewport-sized copy of a source image.
type scaleKey struct {
	src           *image.RGBA
	width, height int
}

// scaledSources keeps the last few viewport-sized copies, since a preview is
// redrawn for every drag sample at the same size. Cached images are never
// modified.
var scaledSources = cache.New[scaleKey, *image.RGBA](4)

// scaled returns src resampled to width×height. src must not be modified
// afterwards.
func scaled(src *image.RGBA, width, height int) *image.RGBA {
	return scaledSources.GetOrCreate(scaleKey{src, width, height}, func() *image.RGBA {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
		return dst
	})
}

// Mask rasterizes strokes into an alpha mask of the given size.
func Mask(width, height int, strokes []raster.Stroke) *image.Alpha {
	dc := gg.NewContext(width, height)
	dc.SetRGBA(1, 1, 1, 1)
	traceStrokes(dc, strokes)
	return dc.AsMask()
}

// traceStrokes strokes every path with round caps and joins using the
// current color. A path with a single distinct point is drawn as a disk,
// since a zero-length stroke leaves no ink.
func traceStrokes(dc *gg.Context, strokes []raster.Stroke) {
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, s := range strokes {
		pts := dedupe(s.Points)
		if len(pts) == 0 || !(s.Width > 0) {
			continue
		}
		if len(pts) == 1 {
			dc.DrawCircle(pts[0].X, pts[0].Y, s.Width/2)
			dc.Fill()
			continue
		}

		dc.SetLineWidth(s.Width)
		dc.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
	}
}

// dedupe drops consecutive repeated points.
func dedupe(pts []raster.Point) []raster.Point {
	out := make([]raster.Point, 0, len(pts))
	for i, p := range pts {
		if i > 0 && p == pts[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}
