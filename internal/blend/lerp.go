// Package blend composites two images through a coverage mask.
//
// Both images are premultiplied RGBA. For every pixel and channel the result
// is the linear interpolation
//
//	out = a*(255-m)/255 + b*m/255
//
// rounded to nearest, so m == 0 returns a exactly and m == 255 returns b
// exactly.
package blend

import (
	"context"
	"errors"
	"image"

	"github.com/junhyuckkkk/BlurMate/internal/parallel"
)

// ErrSizeMismatch is returned when the inputs do not share dimensions.
var ErrSizeMismatch = errors.New("blend: image and mask sizes differ")

// MaskLerp returns a new image where each pixel is a interpolated toward b by
// the mask value at that pixel. mask holds one byte per pixel, row-major,
// with a stride equal to the image width.
func MaskLerp(ctx context.Context, a, b *image.RGBA, mask []uint8) (*image.RGBA, error) {
	ab, bb := a.Bounds(), b.Bounds()
	w, h := ab.Dx(), ab.Dy()
	if bb.Dx() != w || bb.Dy() != h || len(mask) != w*h {
		return nil, ErrSizeMismatch
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	err := parallel.Bands(ctx, h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			ar := a.Pix[a.PixOffset(ab.Min.X, ab.Min.Y+y):][:w*4]
			br := b.Pix[b.PixOffset(bb.Min.X, bb.Min.Y+y):][:w*4]
			dr := dst.Pix[y*dst.Stride:][:w*4]
			lerpRow(dr, ar, br, mask[y*w:(y+1)*w])
		}
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// lerpRow blends one row of RGBA bytes. len(m)*4 == len(dst).
func lerpRow(dst, a, b, m []uint8) {
	for x, mv := range m {
		i := x * 4
		switch mv {
		case 0:
			copy(dst[i:i+4], a[i:i+4])
		case 255:
			copy(dst[i:i+4], b[i:i+4])
		default:
			inv := 255 - uint16(mv)
			w := uint16(mv)
			dst[i+0] = div255Round(uint16(a[i+0])*inv + uint16(b[i+0])*w)
			dst[i+1] = div255Round(uint16(a[i+1])*inv + uint16(b[i+1])*w)
			dst[i+2] = div255Round(uint16(a[i+2])*inv + uint16(b[i+2])*w)
			dst[i+3] = div255Round(uint16(a[i+3])*inv + uint16(b[i+3])*w)
		}
	}
}
