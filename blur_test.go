package blurmate

import (
	"bytes"
	"context"
	"math"
	"testing"
)

func TestParseBlurStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    BlurStyle
		wantErr bool
	}{
		{"gaussian", StyleGaussian, false},
		{"", StyleGaussian, false},
		{"Mosaic", StyleMosaic, false},
		{" pixel ", StylePixel, false},
		{"pixelate", StylePixel, false},
		{"swirl", StyleGaussian, true},
	}
	for _, tt := range tests {
		got, err := ParseBlurStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBlurStyle(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBlurStyle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, s := range []BlurStyle{StyleGaussian, StyleMosaic, StylePixel} {
		got, err := ParseBlurStyle(s.String())
		if err != nil || got != s {
			t.Errorf("ParseBlurStyle(%q) = %v, %v", s.String(), got, err)
		}
	}
}

func TestDefaultBlurParams(t *testing.T) {
	p := DefaultBlurParams()
	if p.BrushSize != 30 || p.Intensity != 8 || p.Style != StyleGaussian {
		t.Errorf("DefaultBlurParams() = %+v", p)
	}
}

func TestBlurParamsSanitize(t *testing.T) {
	p := BlurParams{BrushSize: -3, Intensity: math.NaN()}.sanitize()
	if p.BrushSize != 0 || p.Intensity != 0 {
		t.Errorf("sanitize() = %+v, want zeros", p)
	}
	p = BlurParams{BrushSize: math.Inf(1), Intensity: 4}.sanitize()
	if p.BrushSize != 0 || p.Intensity != 4 {
		t.Errorf("sanitize() = %+v, want {0 4}", p)
	}
}

func TestApplyBlurZeroRadiusIsIdentity(t *testing.T) {
	src := stripes(40, 20)
	for _, style := range []BlurStyle{StyleGaussian, StyleMosaic, StylePixel} {
		for _, r := range []float64{0, -2, math.NaN()} {
			got, err := ApplyBlur(context.Background(), src, style, r)
			if err != nil {
				t.Fatalf("%v radius %v: %v", style, r, err)
			}
			if !bytes.Equal(got.Pix, src.Pix) {
				t.Errorf("%v radius %v changed the image", style, r)
			}
			if &got.Pix[0] == &src.Pix[0] {
				t.Errorf("%v radius %v returned the source buffer", style, r)
			}
		}
	}
}

func TestApplyBlurStylesKeepSize(t *testing.T) {
	src := stripes(45, 31)
	for _, style := range []BlurStyle{StyleGaussian, StyleMosaic, StylePixel} {
		got, err := ApplyBlur(context.Background(), src, style, 3)
		if err != nil {
			t.Fatalf("%v: %v", style, err)
		}
		if got.Bounds() != src.Bounds() {
			t.Errorf("%v: bounds = %v, want %v", style, got.Bounds(), src.Bounds())
		}
		if bytes.Equal(got.Pix, src.Pix) {
			t.Errorf("%v: image unchanged", style)
		}
	}
}

func TestApplyBlurHugeRadius(t *testing.T) {
	src := stripes(32, 16)
	got, err := ApplyBlur(context.Background(), src, StyleGaussian, 1e9)
	if err != nil {
		t.Fatalf("ApplyBlur(huge) = %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Errorf("bounds = %v", got.Bounds())
	}
}

func TestMosaicBlock(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.2, 2},
		{1, 2},
		{2.4, 2},
		{2.6, 3},
		{16, 16},
		{1e20, math.MaxInt32},
	}
	for _, tt := range tests {
		if got := mosaicBlock(tt.in); got != tt.want {
			t.Errorf("mosaicBlock(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
