package qrsvg

import (
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/Mictilt/qrsvg/geometry"
	"github.com/Mictilt/qrsvg/scene"
)

const logoAspect = "xMidYMid slice"

// captionDefaults apply under any caller supplied caption style.
var captionDefaults = scene.Style{
	"fill":         "#101043",
	"stroke-width": "0",
	"text-anchor":  "middle",
}

// average glyph advance relative to the font size, used to estimate how wide
// a caption renders.
const captionAdvance = 0.6

// elementIDs are the identifiers a scene defines.
type elementIDs struct {
	gradient       string
	logoBackground string
	logo           string
}

func fixedIDs(prefix string) elementIDs {
	return elementIDs{
		gradient:       prefix + "grad",
		logoBackground: prefix + "clip-logo-background",
		logo:           prefix + "clip-logo",
	}
}

// composeBackground covers the whole viewport, caption strip included.
func composeBackground(vp geometry.Viewport, color string) *scene.Rect {
	return &scene.Rect{
		X:      vp.MinX,
		Y:      vp.MinY,
		Width:  vp.Width,
		Height: vp.BackgroundHeight(),
		Fill:   scene.Solid(color),
	}
}

// composeSymbol is the single stroked path holding every dark module.
func composeSymbol(sym Symbol, stroke scene.Paint) *scene.Path {
	return &scene.Path{
		D:           sym.Path,
		Stroke:      stroke,
		StrokeWidth: sym.CellSize,
	}
}

// composeLogo places the logo and its rounded background at the centre of
// the symbol. Both are clipped to their own rounded square.
func composeLogo(o RenderOptions, ids elementIDs) (*scene.Group, error) {
	href, img, err := o.Logo.Resolve()
	if err != nil {
		return nil, errors.Wrap(err, "resolve logo")
	}

	l := geometry.Logo(o.Size, o.resolvedLogoSize(), o.LogoMargin, o.LogoBorderRadius)

	return &scene.Group{
		X: l.Position,
		Y: l.Position,
		Children: []scene.Node{
			&scene.Defs{Children: []scene.Node{
				&scene.ClipPath{ID: ids.logoBackground, Children: []scene.Node{
					&scene.Rect{
						Width:  l.BackgroundSize,
						Height: l.BackgroundSize,
						RX:     l.BackgroundCornerRadius,
						RY:     l.BackgroundCornerRadius,
					},
				}},
				&scene.ClipPath{ID: ids.logo, Children: []scene.Node{
					&scene.Rect{
						Width:  l.LogoSize,
						Height: l.LogoSize,
						RX:     l.CornerRadius,
						RY:     l.CornerRadius,
					},
				}},
			}},
			&scene.Rect{
				Width:    l.BackgroundSize,
				Height:   l.BackgroundSize,
				Fill:     scene.Solid(o.LogoBackgroundColor),
				ClipPath: ids.logoBackground,
			},
			&scene.Group{
				X: l.Margin,
				Y: l.Margin,
				Children: []scene.Node{
					&scene.Image{
						Width:               l.LogoSize,
						Height:              l.LogoSize,
						Href:                href,
						Source:              img,
						PreserveAspectRatio: logoAspect,
						ClipPath:            ids.logo,
					},
				},
			},
		},
	}, nil
}

// composeCaption anchors the caption baseline under the symbol, centred on
// the module area.
func (r *Renderer) composeCaption(o RenderOptions) *scene.Group {
	at := geometry.CaptionAnchor(o.Size, o.QuietZone, o.CaptionMarginTop)
	style := scene.Merge(captionDefaults, o.CaptionStyle)

	fontSize := style.Float("font-size", 16)
	if w := float64(runewidth.StringWidth(o.Caption)) * fontSize * captionAdvance; w > o.Size {
		r.logger.Warn("caption wider than symbol", "caption", o.Caption, "estimated", w, "size", o.Size)
	}

	return &scene.Group{
		X: at.X,
		Y: at.Y,
		Children: []scene.Node{
			&scene.Text{Content: o.Caption, Style: style},
		},
	}
}
