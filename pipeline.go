package blurmate

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Render runs the export pipeline on the calling goroutine: it maps strokes
// captured in geom onto src, rasterizes them into a full-resolution mask,
// blurs the whole source and composites the two through the mask.
//
// Render returns ErrNoImage or ErrNoStrokes before doing any work. Every
// later failure, including cancellation of ctx, wraps ErrCompositeFailure.
func Render(ctx context.Context, src *Image, geom DisplayGeometry, strokes []Stroke, params BlurParams) (*Image, error) {
	return render(ctx, Logger(), src, geom, strokes, params)
}

func render(ctx context.Context, log *slog.Logger, src *Image, geom DisplayGeometry, strokes []Stroke, params BlurParams) (*Image, error) {
	if src.Empty() {
		return nil, ErrNoImage
	}
	params = params.sanitize()

	m, err := Map(geom, src.Width(), src.Height(), strokes, params)
	if err != nil {
		return nil, err
	}
	log.Debug("blurmate: mapped strokes",
		"strokes", len(m.Strokes),
		"scaleX", m.ScaleX,
		"scaleY", m.ScaleY,
		"blurRadius", m.BlurRadius)

	start := time.Now()
	mask := RasterizeMask(m.Width, m.Height, m.Strokes)
	log.Debug("blurmate: mask rasterized", "elapsed", time.Since(start))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompositeFailure, err)
	}

	start = time.Now()
	blurred, err := ApplyBlur(ctx, src.rgba, params.Style, m.BlurRadius)
	if err != nil {
		return nil, fmt.Errorf("%w: blur: %w", ErrCompositeFailure, err)
	}
	log.Debug("blurmate: source blurred", "style", params.Style, "elapsed", time.Since(start))

	start = time.Now()
	out, err := Composite(ctx, src, blurred, mask)
	if err != nil {
		return nil, err
	}
	log.Debug("blurmate: composited", "elapsed", time.Since(start))
	return out, nil
}
