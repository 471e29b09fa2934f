// Package filter provides the blur filters applied to the source photo
// before it is composited through the stroke mask.
//
// This package contains:
//   - Gaussian blur (separable; exact kernel for small sigma, three box
//     passes for large sigma so cost does not grow with the radius)
//   - Mosaic (block averaging)
//   - Pixelate (block averaging softened with a small Gaussian)
//
// All filters work on premultiplied *image.RGBA buffers, never modify their
// input, and return an image with the same size whose bounds start at (0, 0).
// Edge pixels are extended (clamped), never wrapped.
package filter
