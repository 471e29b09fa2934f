package blurmate

import (
	"context"
	"image"

	"github.com/junhyuckkkk/BlurMate/internal/preview"
)

// RenderPreview draws the on-screen approximation of an edit at the size of
// geom: src scaled to the viewport, blurred at display resolution and
// composited through the strokes, which are given in display coordinates.
// When outline is true the strokes are also traced in translucent red, as
// the editing canvas shows them.
//
// The preview is for display only; Export always renders from the full
// resolution source.
func RenderPreview(ctx context.Context, src *Image, geom DisplayGeometry, strokes []Stroke, params BlurParams, outline bool) (*image.RGBA, error) {
	if src.Empty() {
		return nil, ErrNoImage
	}
	if !geom.Valid() {
		geom = FallbackGeometry(src.Width(), src.Height())
	}
	w, h := geom.pixelSize()
	params = params.sanitize()

	opts := preview.Options{
		Width:  w,
		Height: h,
		Radius: params.Intensity,
		Blur: func(ctx context.Context, img *image.RGBA, radius float64) (*image.RGBA, error) {
			return ApplyBlur(ctx, img, params.Style, radius)
		},
	}
	if outline {
		opts.Outline = preview.DefaultOverlay
	}
	return preview.Render(ctx, src.rgba, toRaster(strokes), opts)
}

// Preview renders the session's preview, including the stroke in progress.
func (s *Session) Preview(ctx context.Context, outline bool) (*image.RGBA, error) {
	s.mu.Lock()
	img := s.img
	geom := s.geometry
	params := s.params
	strokes := s.rec.Strokes()
	if cur, ok := s.rec.InProgress(); ok {
		strokes = append(strokes, cur)
	}
	s.mu.Unlock()

	return RenderPreview(ctx, img, geom, strokes, params, outline)
}
