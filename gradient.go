package qrsvg

import "github.com/Mictilt/qrsvg/scene"

// resolveGradient builds the two stop gradient used to stroke the symbol.
func resolveGradient(id string, direction [4]scene.Length, colors [2]string) *scene.LinearGradient {
	return &scene.LinearGradient{
		ID: id,
		X1: direction[0],
		Y1: direction[1],
		X2: direction[2],
		Y2: direction[3],
		Stops: []scene.Stop{
			{Offset: 0, Color: colors[0], Opacity: 1},
			{Offset: 1, Color: colors[1], Opacity: 1},
		},
	}
}

// symbolPaint is the stroke of the symbol path: a reference to the gradient
// when it is enabled, the solid colour otherwise.
func symbolPaint(o RenderOptions, gradientID string) scene.Paint {
	if o.Gradient {
		return scene.URL(gradientID)
	}
	return scene.Solid(o.Color)
}
