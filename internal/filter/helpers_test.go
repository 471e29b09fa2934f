package filter

import (
	"image"
	"image/color"
)

// Test helper functions shared across filter tests.

// solidImage creates an image filled with the given color.
func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// colorApproxEqual compares two colors channel by channel with tolerance.
func colorApproxEqual(a, b color.RGBA, tolerance int) bool {
	return absInt(int(a.R)-int(b.R)) <= tolerance &&
		absInt(int(a.G)-int(b.G)) <= tolerance &&
		absInt(int(a.B)-int(b.B)) <= tolerance &&
		absInt(int(a.A)-int(b.A)) <= tolerance
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
)
