package filter

import (
	"math"

	"github.com/junhyuckkkk/BlurMate/internal/cache"
)

// exactKernelMaxHalf is the largest kernel half-size convolved directly.
// Wider Gaussians are approximated with three box passes.
const exactKernelMaxHalf = 48

// GaussianKernel generates a normalized 1D Gaussian kernel with the given
// sigma. The half-size is ceil(3*sigma), limited to maxHalf when maxHalf > 0.
//
// For sigma <= 0, returns a single-element kernel [1.0] (identity).
func GaussianKernel(sigma float64, maxHalf int) []float32 {
	if !(sigma > 0) {
		return []float32{1.0}
	}

	halfSize := KernelHalfSize(sigma)
	if maxHalf > 0 && halfSize > maxHalf {
		halfSize = maxHalf
	}
	size := halfSize*2 + 1

	kernel := make([]float32, size)

	// G(x) = exp(-x²/(2σ²)); the constant factor cancels on normalization.
	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)
	vals := make([]float64, size)

	for i := 0; i < size; i++ {
		x := float64(i - halfSize)
		vals[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += vals[i]
	}

	for i := range kernel {
		kernel[i] = float32(vals[i] / sum)
	}

	return kernel
}

// KernelHalfSize returns ceil(3*sigma), the half-width that covers 99.7% of
// the distribution. Non-positive sigma yields 0.
func KernelHalfSize(sigma float64) int {
	if !(sigma > 0) {
		return 0
	}
	h := math.Ceil(sigma * 3)
	if h > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(h)
}

// BoxRadiiForGaussian returns the radii of n successive box blurs whose
// combined variance approximates a Gaussian with the given sigma.
func BoxRadiiForGaussian(sigma float64, n int) []int {
	radii := make([]int, n)
	if !(sigma > 0) || n <= 0 {
		return radii
	}

	// Ideal box width for n passes: sqrt(12σ²/n + 1), split between an odd
	// width wl and wl+2 so the summed variance matches.
	wIdeal := math.Sqrt(12*sigma*sigma/float64(n) + 1)
	wl := int(math.Floor(wIdeal))
	if wl%2 == 0 {
		wl--
	}
	wu := wl + 2

	mIdeal := (12*sigma*sigma - float64(n*wl*wl) - 4*float64(n*wl) - 3*float64(n)) /
		(-4*float64(wl) - 4)
	m := int(math.Round(mIdeal))

	for i := range radii {
		w := wu
		if i < m {
			w = wl
		}
		radii[i] = (w - 1) / 2
	}
	return radii
}

// kernelKey identifies a cached kernel.
type kernelKey struct {
	sigma   uint64 // math.Float64bits(sigma)
	maxHalf int
}

// kernels holds recently used Gaussian kernels. Export runs with the same
// radius over and over while the user tweaks a single slider.
var kernels = cache.New[kernelKey, []float32](64)

// CachedGaussianKernel returns a cached Gaussian kernel for sigma. The
// returned slice is shared and must not be modified.
func CachedGaussianKernel(sigma float64, maxHalf int) []float32 {
	key := kernelKey{sigma: math.Float64bits(sigma), maxHalf: maxHalf}
	return kernels.GetOrCreate(key, func() []float32 {
		return GaussianKernel(sigma, maxHalf)
	})
}
