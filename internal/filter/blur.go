package filter

import (
	"context"
	"image"
	"math"

	"github.com/junhyuckkkk/BlurMate/internal/parallel"
)

// boxPasses is the number of box blurs used to approximate a wide Gaussian.
const boxPasses = 3

// Gaussian returns a copy of src blurred with a Gaussian of standard
// deviation radius. A radius that is zero, negative or NaN returns an
// unchanged copy. Radii far larger than the image degrade toward a uniform
// image rather than failing.
//
// The operation uses a two-pass separable algorithm:
//  1. Horizontal pass: convolve each row with a 1D kernel
//  2. Vertical pass: convolve each column with a 1D kernel
func Gaussian(ctx context.Context, src *image.RGBA, radius float64) (*image.RGBA, error) {
	if !(radius > 0) {
		return Clone(src), nil
	}

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if w == 0 || h == 0 {
		return Clone(src), nil
	}

	temp := toFloat(src)

	sigma := math.Min(radius, float64(4*max(w, h)))
	if KernelHalfSize(sigma) <= exactKernelMaxHalf {
		kernel := CachedGaussianKernel(sigma, 0)
		if err := convolveRows(ctx, temp, w, h, kernel); err != nil {
			return nil, err
		}
		if err := convolveColumns(ctx, temp, w, h, kernel); err != nil {
			return nil, err
		}
	} else {
		radii := BoxRadiiForGaussian(sigma, boxPasses)
		if err := boxRows(ctx, temp, w, h, radii); err != nil {
			return nil, err
		}
		if err := boxColumns(ctx, temp, w, h, radii); err != nil {
			return nil, err
		}
	}

	return fromFloat(temp, w, h), nil
}

// convolveRows applies the kernel along every row of buf in place.
func convolveRows(ctx context.Context, buf []float32, w, h int, kernel []float32) error {
	return parallel.Bands(ctx, h, func(y0, y1 int) {
		scratch := make([]float32, w*4)
		for y := y0; y < y1; y++ {
			convolveLine(buf, y*w*4, 4, w, kernel, scratch)
		}
	})
}

// convolveColumns applies the kernel along every column of buf in place.
func convolveColumns(ctx context.Context, buf []float32, w, h int, kernel []float32) error {
	return parallel.Bands(ctx, w, func(x0, x1 int) {
		scratch := make([]float32, h*4)
		for x := x0; x < x1; x++ {
			convolveLine(buf, x*4, w*4, h, kernel, scratch)
		}
	})
}

// convolveLine convolves the n pixels of buf starting at off, spaced step
// floats apart, with kernel. Samples outside the line are clamped to the
// nearest edge pixel.
func convolveLine(buf []float32, off, step, n int, kernel []float32, scratch []float32) {
	gatherLine(buf, off, step, n, scratch)

	half := len(kernel) / 2
	for i := 0; i < n; i++ {
		var r, g, b, a float32
		for k, weight := range kernel {
			j := clampInt(i+k-half, 0, n-1)
			s := scratch[j*4 : j*4+4 : j*4+4]
			r += s[0] * weight
			g += s[1] * weight
			b += s[2] * weight
			a += s[3] * weight
		}
		d := buf[off+i*step : off+i*step+4 : off+i*step+4]
		d[0], d[1], d[2], d[3] = r, g, b, a
	}
}

// boxRows runs the box passes along every row of buf in place.
func boxRows(ctx context.Context, buf []float32, w, h int, radii []int) error {
	return parallel.Bands(ctx, h, func(y0, y1 int) {
		scratch := make([]float32, w*4)
		for y := y0; y < y1; y++ {
			for _, r := range radii {
				boxLine(buf, y*w*4, 4, w, min(r, w), scratch)
			}
		}
	})
}

// boxColumns runs the box passes along every column of buf in place.
func boxColumns(ctx context.Context, buf []float32, w, h int, radii []int) error {
	return parallel.Bands(ctx, w, func(x0, x1 int) {
		scratch := make([]float32, h*4)
		for x := x0; x < x1; x++ {
			for _, r := range radii {
				boxLine(buf, x*4, w*4, h, min(r, h), scratch)
			}
		}
	})
}

// boxLine replaces every pixel of a line with the mean of the 2r+1 pixels
// around it, using a running sum. Samples outside the line are clamped.
func boxLine(buf []float32, off, step, n, r int, scratch []float32) {
	if r <= 0 {
		return
	}
	gatherLine(buf, off, step, n, scratch)

	var sum [4]float32
	for j := -r; j <= r; j++ {
		c := clampInt(j, 0, n-1) * 4
		sum[0] += scratch[c]
		sum[1] += scratch[c+1]
		sum[2] += scratch[c+2]
		sum[3] += scratch[c+3]
	}

	inv := 1 / float32(2*r+1)
	for i := 0; i < n; i++ {
		d := off + i*step
		buf[d] = sum[0] * inv
		buf[d+1] = sum[1] * inv
		buf[d+2] = sum[2] * inv
		buf[d+3] = sum[3] * inv

		in := clampInt(i+r+1, 0, n-1) * 4
		out := clampInt(i-r, 0, n-1) * 4
		sum[0] += scratch[in] - scratch[out]
		sum[1] += scratch[in+1] - scratch[out+1]
		sum[2] += scratch[in+2] - scratch[out+2]
		sum[3] += scratch[in+3] - scratch[out+3]
	}
}

// gatherLine copies a strided line of RGBA floats into a packed scratch slice.
func gatherLine(buf []float32, off, step, n int, scratch []float32) {
	for i := 0; i < n; i++ {
		copy(scratch[i*4:i*4+4], buf[off+i*step:off+i*step+4])
	}
}

// toFloat copies src into a packed RGBA float32 buffer.
func toFloat(src *image.RGBA) []float32 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]float32, w*h*4)
	for y := 0; y < h; y++ {
		row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):][:w*4]
		o := out[y*w*4 : (y+1)*w*4]
		for i, v := range row {
			o[i] = float32(v)
		}
	}
	return out
}

// fromFloat converts a packed RGBA float32 buffer back to an image.
func fromFloat(buf []float32, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, v := range buf {
		dst.Pix[i] = clampUint8(v)
	}
	return dst
}

// Clone returns a copy of src whose bounds start at (0, 0).
func Clone(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w*4], src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):])
	}
	return dst
}

// clampInt clamps an integer to [minVal, maxVal].
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}
