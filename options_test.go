package qrsvg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mictilt/qrsvg/matrix"
	"github.com/Mictilt/qrsvg/scene"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, "this is a QR code", o.Payload)
	assert.Equal(t, 100.0, o.Size)
	assert.Equal(t, "black", o.Color)
	assert.Equal(t, "white", o.BackgroundColor)
	assert.Equal(t, scene.Style{"font-size": "30"}, o.CaptionStyle)
	assert.Equal(t, 25.0, o.CaptionMarginTop)
	assert.Equal(t, 100.0, o.CaptionHeight)
	assert.Equal(t, "transparent", o.LogoBackgroundColor)
	assert.Equal(t, 2.0, o.LogoMargin)
	assert.Zero(t, o.LogoBorderRadius)
	assert.Zero(t, o.QuietZone)
	assert.False(t, o.Gradient)
	assert.Equal(t, "0%", o.GradientDirection[0].String())
	assert.Equal(t, "100%", o.GradientDirection[3].String())
	assert.Equal(t, [2]string{"rgb(255,0,0)", "rgb(0,255,255)"}, o.GradientColors)
	assert.Equal(t, matrix.LevelM, o.Level)
	assert.Equal(t, 20.0, o.resolvedLogoSize())
}

func TestNewOptions(t *testing.T) {
	o := NewOptions("payload",
		WithSize(300),
		WithColor(""),
		WithBackgroundColor("#000"),
		nil,
		WithLogoSize(50),
		WithLevel(matrix.LevelH),
	)
	assert.Equal(t, "payload", o.Payload)
	assert.Equal(t, 300.0, o.Size)
	assert.Equal(t, "black", o.Color, "empty colours are ignored")
	assert.Equal(t, "#000", o.BackgroundColor)
	assert.Equal(t, 50.0, o.resolvedLogoSize())
	assert.Equal(t, matrix.LevelH, o.Level)
}

func TestRenderOptions_With(t *testing.T) {
	base := NewOptions("a", WithCaptionStyle(scene.Style{"font-size": "10"}))
	derived := base.With(WithSize(50))
	derived.CaptionStyle["fill"] = "red"

	assert.Equal(t, 100.0, base.Size)
	assert.Equal(t, 50.0, derived.Size)
	assert.NotContains(t, base.CaptionStyle, "fill", "copies do not share the style bag")
}

func TestWithGradient(t *testing.T) {
	o := NewOptions("a", WithGradient("", "navy"))
	assert.True(t, o.Gradient)
	assert.Equal(t, [2]string{"rgb(255,0,0)", "navy"}, o.GradientColors)
}

func TestWithLogo(t *testing.T) {
	assert.Nil(t, NewOptions("a", WithLogoImage(nil)).Logo)
	assert.Nil(t, NewOptions("a", WithLogoURL("")).Logo)
	assert.Nil(t, NewOptions("a", WithLogoFile("")).Logo)
	assert.Equal(t, URLLogo("x.png"), NewOptions("a", WithLogo(URLLogo("x.png"))).Logo)
}
