package filter

import (
	"context"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Mosaic returns a copy of src made of block×block tiles, each filled with
// a tent-weighted average of the pixels around the tile. A block size of 1 or less
// returns an unchanged copy.
func Mosaic(ctx context.Context, src *image.RGBA, block int) (*image.RGBA, error) {
	if block <= 1 {
		return Clone(src), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Clone(src), nil
	}

	// BiLinear widens its support when downscaling, so each small pixel is
	// an area average of its block.
	small := image.NewRGBA(image.Rect(0, 0, ceilDiv(w, block), ceilDiv(h, block)))
	xdraw.BiLinear.Scale(small, small.Bounds(), src, b, xdraw.Src, nil)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// Pixelate is Mosaic followed by a Gaussian of radius soften, which takes
// the hard edges off the blocks.
func Pixelate(ctx context.Context, src *image.RGBA, block int, soften float64) (*image.RGBA, error) {
	m, err := Mosaic(ctx, src, block)
	if err != nil {
		return nil, err
	}
	return Gaussian(ctx, m, soften)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
