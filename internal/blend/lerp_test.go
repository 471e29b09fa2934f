package blend

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
)

func fill(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7)
	}
	// Keep it a valid premultiplied image.
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+3] = 255
	}
	return img
}

func TestMaskLerpZeroMaskReturnsA(t *testing.T) {
	a := gradient(33, 17)
	b := fill(33, 17, color.RGBA{R: 9, G: 8, B: 7, A: 255})
	mask := make([]uint8, 33*17)

	got, err := MaskLerp(context.Background(), a, b, mask)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Pix {
		if got.Pix[i] != a.Pix[i] {
			t.Fatalf("byte %d = %d, want %d", i, got.Pix[i], a.Pix[i])
		}
	}
}

func TestMaskLerpFullMaskReturnsB(t *testing.T) {
	a := fill(33, 17, color.RGBA{R: 9, G: 8, B: 7, A: 255})
	b := gradient(33, 17)
	mask := make([]uint8, 33*17)
	for i := range mask {
		mask[i] = 255
	}

	got, err := MaskLerp(context.Background(), a, b, mask)
	if err != nil {
		t.Fatal(err)
	}
	for i := range b.Pix {
		if got.Pix[i] != b.Pix[i] {
			t.Fatalf("byte %d = %d, want %d", i, got.Pix[i], b.Pix[i])
		}
	}
}

func TestMaskLerpPartial(t *testing.T) {
	a := fill(2, 1, color.RGBA{R: 0, G: 100, B: 200, A: 255})
	b := fill(2, 1, color.RGBA{R: 200, G: 100, B: 0, A: 255})

	got, err := MaskLerp(context.Background(), a, b, []uint8{128, 51})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		x    int
		want color.RGBA
	}{
		{0, color.RGBA{R: 100, G: 100, B: 100, A: 255}}, // 200*128/255 = 100.4
		{1, color.RGBA{R: 40, G: 100, B: 160, A: 255}},  // 200*51/255 = 40
	}
	for _, tt := range tests {
		if c := got.RGBAAt(tt.x, 0); c != tt.want {
			t.Errorf("pixel %d = %+v, want %+v", tt.x, c, tt.want)
		}
	}
}

func TestMaskLerpSizeMismatch(t *testing.T) {
	a := fill(4, 4, color.RGBA{A: 255})
	tests := []struct {
		name string
		b    *image.RGBA
		mask []uint8
	}{
		{"image size", fill(5, 4, color.RGBA{A: 255}), make([]uint8, 16)},
		{"mask size", fill(4, 4, color.RGBA{A: 255}), make([]uint8, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := MaskLerp(context.Background(), a, tt.b, tt.mask); !errors.Is(err, ErrSizeMismatch) {
				t.Errorf("err = %v, want ErrSizeMismatch", err)
			}
		})
	}
}

func TestMaskLerpOffsetBounds(t *testing.T) {
	a := image.NewRGBA(image.Rect(5, 5, 7, 6))
	a.SetRGBA(5, 5, color.RGBA{R: 10, A: 255})
	a.SetRGBA(6, 5, color.RGBA{R: 20, A: 255})
	b := fill(2, 1, color.RGBA{R: 250, A: 255})

	got, err := MaskLerp(context.Background(), a, b, []uint8{0, 255})
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	if r := got.RGBAAt(0, 0).R; r != 10 {
		t.Errorf("pixel 0 R = %d, want 10", r)
	}
	if r := got.RGBAAt(1, 0).R; r != 250 {
		t.Errorf("pixel 1 R = %d, want 250", r)
	}
}

func BenchmarkMaskLerp(b *testing.B) {
	src := gradient(1024, 1024)
	blur := fill(1024, 1024, color.RGBA{R: 128, G: 128, B: 128, A: 255})
	mask := make([]uint8, 1024*1024)
	for i := range mask {
		mask[i] = uint8(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MaskLerp(context.Background(), src, blur, mask)
	}
}
