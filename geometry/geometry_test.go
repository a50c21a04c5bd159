package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogo(t *testing.T) {
	tests := []struct {
		name                 string
		size, logo, m, r     float64
		pos, bgSize, bgRound float64
	}{
		{
			name: "centred",
			size: 100, logo: 20, m: 2, r: 0,
			pos: 38, bgSize: 24, bgRound: 0,
		},
		{
			name: "concentric radius",
			size: 100, logo: 40, m: 2, r: 4,
			pos: 28, bgSize: 44, bgRound: 4.2,
		},
		{
			name: "no margin keeps radius",
			size: 200, logo: 40, m: 0, r: 8,
			pos: 80, bgSize: 40, bgRound: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Logo(tt.size, tt.logo, tt.m, tt.r)
			assert.InDelta(t, tt.pos, got.Position, 1e-9)
			assert.InDelta(t, tt.bgSize, got.BackgroundSize, 1e-9)
			assert.InDelta(t, tt.bgRound, got.BackgroundCornerRadius, 1e-9)
		})
	}
}

func TestLogo_RadiusFormula(t *testing.T) {
	for _, r := range []float64{0, 1, 4, 12.5} {
		for _, m := range []float64{0, 2, 5} {
			for _, s := range []float64{10, 40, 60} {
				got := Logo(100, s, m, r).BackgroundCornerRadius
				assert.InDelta(t, r+(m/s)*r, got, 1e-9, "r=%v m=%v s=%v", r, m, s)
			}
		}
	}
}

func TestLogo_Boundaries(t *testing.T) {
	// a logo larger than the symbol is clamped to the symbol
	got := Logo(100, 150, 2, 4)
	assert.Equal(t, 100.0, got.LogoSize)
	assert.Equal(t, -2.0, got.Position, "background overflows by the margin")
	assert.Equal(t, 104.0, got.BackgroundSize)

	// negative margin behaves like no margin
	got = Logo(100, 20, -5, 4)
	assert.Equal(t, 0.0, got.Margin)
	assert.Equal(t, 40.0, got.Position)
	assert.Equal(t, 20.0, got.BackgroundSize)
	assert.Equal(t, 4.0, got.BackgroundCornerRadius)

	// zero logo size must not divide by zero
	got = Logo(100, 0, 2, 4)
	assert.Equal(t, 4.0, got.BackgroundCornerRadius)
	assert.Equal(t, 48.0, got.Position)

	got = Logo(100, math.NaN(), math.Inf(1), -1)
	assert.False(t, math.IsNaN(got.Position))
	assert.Equal(t, 50.0, got.Position)
}

func TestViewportFor(t *testing.T) {
	v := ViewportFor(100, 10, false, 100)
	assert.Equal(t, [4]float64{-10, -10, 120, 120}, v.ViewBox())
	assert.Equal(t, 120.0, v.BackgroundHeight())

	v = ViewportFor(100, 10, true, 50)
	assert.Equal(t, [4]float64{-10, -10, 120, 120}, v.ViewBox(), "caption never grows the view box")
	assert.Equal(t, 170.0, v.BackgroundHeight())

	v = ViewportFor(100, -3, false, 0)
	assert.Equal(t, [4]float64{0, 0, 100, 100}, v.ViewBox())

	v = ViewportFor(100, 0, false, 0)
	assert.False(t, math.Signbit(v.MinX), "no negative zero origin")
	assert.False(t, math.Signbit(v.MinY))
}

func TestDimensions(t *testing.T) {
	w, h := Dimensions(100, false, 80)
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 100.0, h)

	w, h = Dimensions(100, true, 80)
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 180.0, h)
}

func TestCaptionAnchor(t *testing.T) {
	assert.Equal(t, Point{X: 50, Y: 135}, CaptionAnchor(100, 10, 25))
	assert.Equal(t, Point{X: 50, Y: 125}, CaptionAnchor(100, 0, 25))
	assert.Equal(t, Point{X: 50, Y: 90}, CaptionAnchor(100, 0, -10))
}
