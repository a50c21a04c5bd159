// Package geometry derives the layout numbers of a rendered symbol.
//
// All functions are pure and total: non-finite or out of range inputs are
// clamped rather than reported, so a layout can always be produced.
//
// Coordinates are in the symbol's own space, where (0, 0) is the top left
// corner of the first module and size is the edge of the module area. The
// quiet zone extends outward into negative coordinates.
package geometry

import "math"

// LogoLayout places the logo block at the centre of the symbol.
type LogoLayout struct {
	// Position is the top left offset of the background block, equal on
	// both axes.
	Position float64
	// BackgroundSize is the edge of the background block, the logo plus a
	// margin on each side.
	BackgroundSize float64
	// BackgroundCornerRadius is the logo radius scaled by
	// BackgroundSize/logoSize so both rounded corners share a centre.
	BackgroundCornerRadius float64
	// LogoSize, Margin and CornerRadius are the clamped inputs.
	LogoSize     float64
	Margin       float64
	CornerRadius float64
}

// Logo computes the logo layout for a symbol of the given size.
//
// Negative margin, logo size and radius clamp to 0 and a logo larger than
// the symbol clamps to size. A margin still lets the background block
// overflow the symbol edge by up to the margin; that overflow is kept.
// With a logo size of 0 the radius is not scaled.
func Logo(size, logoSize, logoMargin, logoBorderRadius float64) LogoLayout {
	size = nonNegative(size)
	logoSize = math.Min(nonNegative(logoSize), size)
	margin := nonNegative(logoMargin)
	radius := nonNegative(logoBorderRadius)

	bgRadius := radius
	if logoSize > 0 {
		bgRadius = radius + (margin/logoSize)*radius
	}

	return LogoLayout{
		Position:               (size - logoSize - margin*2) / 2,
		BackgroundSize:         logoSize + margin*2,
		BackgroundCornerRadius: bgRadius,
		LogoSize:               logoSize,
		Margin:                 margin,
		CornerRadius:           radius,
	}
}

// Viewport is the declared coordinate frame of a scene.
type Viewport struct {
	MinX, MinY    float64
	Width, Height float64
	// CaptionHeight is the strip appended below the symbol when a caption is
	// shown. It does not change the view box.
	CaptionHeight float64
}

// BackgroundHeight is the height the background has to cover, the view box
// plus the caption strip.
func (v Viewport) BackgroundHeight() float64 {
	return v.Height + v.CaptionHeight
}

// ViewBox returns the four view box numbers in SVG order.
func (v Viewport) ViewBox() [4]float64 {
	return [4]float64{v.MinX, v.MinY, v.Width, v.Height}
}

// ViewportFor returns the frame of a symbol of the given size surrounded by
// quietZone on every side. The caption strip is recorded but never grows the
// view box.
func ViewportFor(size, quietZone float64, hasCaption bool, captionHeight float64) Viewport {
	size = nonNegative(size)
	qz := nonNegative(quietZone)
	v := Viewport{
		MinX:   0 - qz,
		MinY:   0 - qz,
		Width:  size + qz*2,
		Height: size + qz*2,
	}
	if hasCaption {
		v.CaptionHeight = nonNegative(captionHeight)
	}
	return v
}

// Dimensions returns the rendered element size: the width is always size,
// the height grows by captionHeight when a caption is shown.
func Dimensions(size float64, hasCaption bool, captionHeight float64) (width, height float64) {
	size = nonNegative(size)
	if !hasCaption {
		return size, size
	}
	return size, size + nonNegative(captionHeight)
}

// Point is a position in symbol space.
type Point struct {
	X, Y float64
}

// CaptionAnchor returns the baseline anchor of the caption, centred on the
// module area (not on the quiet zone).
func CaptionAnchor(size, quietZone, captionMarginTop float64) Point {
	size = nonNegative(size)
	return Point{
		X: size / 2,
		Y: size + nonNegative(quietZone) + finite(captionMarginTop),
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
