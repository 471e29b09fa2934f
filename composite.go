package blurmate

import (
	"context"
	"fmt"
	"image"

	"github.com/junhyuckkkk/BlurMate/internal/blend"
)

// Composite blends src toward blurred through mask:
//
//	out = src*(1-m) + blurred*m
//
// per pixel and channel, with m the mask opacity. Where the mask is 0 the
// result equals src exactly; where it is 255 it equals blurred exactly.
// The result keeps src's dimensions and orientation.
//
// All three inputs must have the same dimensions; otherwise Composite
// returns an error wrapping ErrCompositeFailure.
func Composite(ctx context.Context, src *Image, blurred *image.RGBA, mask *Mask) (*Image, error) {
	if src.Empty() {
		return nil, ErrNoImage
	}
	if blurred == nil || mask == nil {
		return nil, fmt.Errorf("%w: missing blurred layer or mask", ErrCompositeFailure)
	}
	if mask.Width() != src.Width() || mask.Height() != src.Height() {
		return nil, fmt.Errorf("%w: mask is %dx%d, image is %dx%d",
			ErrCompositeFailure, mask.Width(), mask.Height(), src.Width(), src.Height())
	}

	out, err := blend.MaskLerp(ctx, src.rgba, blurred, mask.Data())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompositeFailure, err)
	}
	return wrapRGBA(out, src.orientation), nil
}
