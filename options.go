package qrsvg

import (
	"image"

	"github.com/Mictilt/qrsvg/matrix"
	"github.com/Mictilt/qrsvg/scene"
)

// RenderOptions is the full input of a render. It is a plain value; build
// it with NewOptions or DefaultOptions and copy it freely.
type RenderOptions struct {
	Payload string
	// Size is the edge length of the symbol in logical pixels, quiet zone
	// excluded.
	Size            float64
	Color           string
	BackgroundColor string

	// Caption is drawn under the symbol when it is not empty.
	Caption          string
	CaptionStyle     scene.Style
	CaptionMarginTop float64
	CaptionHeight    float64

	Logo Logo
	// LogoSize of 0 means a fifth of Size.
	LogoSize            float64
	LogoBackgroundColor string
	LogoMargin          float64
	LogoBorderRadius    float64

	QuietZone float64

	Gradient          bool
	GradientDirection [4]scene.Length
	GradientColors    [2]string

	Level matrix.Level

	// Ref receives every scene produced from these options.
	Ref func(*scene.Scene)
	// OnError receives encode failures instead of the caller of Render.
	OnError func(error)
}

const defaultLogoRatio = 0.2

// DefaultOptions returns the options used when nothing is overridden.
func DefaultOptions() RenderOptions {
	return RenderOptions{
		Payload:             "this is a QR code",
		Size:                100,
		Color:               "black",
		BackgroundColor:     "white",
		CaptionStyle:        scene.Style{"font-size": "30"},
		CaptionMarginTop:    25,
		CaptionHeight:       100,
		LogoBackgroundColor: "transparent",
		LogoMargin:          2,
		QuietZone:           0,
		GradientDirection: [4]scene.Length{
			scene.MustParseLength("0%"), scene.MustParseLength("0%"),
			scene.MustParseLength("100%"), scene.MustParseLength("100%"),
		},
		GradientColors: [2]string{"rgb(255,0,0)", "rgb(0,255,255)"},
		Level:          matrix.LevelM,
	}
}

// NewOptions returns DefaultOptions for payload with opts applied in order.
func NewOptions(payload string, opts ...Option) RenderOptions {
	o := DefaultOptions()
	o.Payload = payload
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&o)
		}
	}
	return o
}

// With returns a copy of o with opts applied.
func (o RenderOptions) With(opts ...Option) RenderOptions {
	o.CaptionStyle = scene.Merge(o.CaptionStyle)
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&o)
		}
	}
	return o
}

func (o RenderOptions) hasCaption() bool {
	return o.Caption != ""
}

func (o RenderOptions) resolvedLogoSize() float64 {
	if o.LogoSize == 0 {
		return o.Size * defaultLogoRatio
	}
	return o.LogoSize
}

// Option configures RenderOptions.
type Option interface {
	apply(o *RenderOptions)
}

// funcOption wraps a function that modifies RenderOptions into an
// implementation of the Option interface.
type funcOption struct {
	f func(o *RenderOptions)
}

func (fo *funcOption) apply(o *RenderOptions) {
	fo.f(o)
}

func newFuncOption(f func(o *RenderOptions)) *funcOption {
	return &funcOption{
		f: f,
	}
}

// WithSize sets the symbol edge length.
func WithSize(size float64) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.Size = size
	})
}

// WithColor sets the solid colour of the modules.
func WithColor(c string) Option {
	return newFuncOption(func(o *RenderOptions) {
		if c == "" {
			return
		}

		o.Color = c
	})
}

// WithBackgroundColor background color
func WithBackgroundColor(c string) Option {
	return newFuncOption(func(o *RenderOptions) {
		if c == "" {
			return
		}

		o.BackgroundColor = c
	})
}

// WithCaption shows text under the symbol.
func WithCaption(text string) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.Caption = text
	})
}

// WithCaptionStyle replaces the caption attributes, keyed by SVG attribute
// name ("font-size", "fill", "font-family"...). The built in caption colour,
// stroke width and anchor still apply unless style overrides them.
func WithCaptionStyle(style scene.Style) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.CaptionStyle = scene.Merge(style)
	})
}

// WithCaptionMarginTop sets the gap between the symbol and the caption
// baseline.
func WithCaptionMarginTop(margin float64) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.CaptionMarginTop = margin
	})
}

// WithCaptionHeight sets the height added to the rendered element when a
// caption is shown.
func WithCaptionHeight(height float64) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.CaptionHeight = height
	})
}

// WithLogo draws logo over the centre of the symbol.
func WithLogo(logo Logo) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.Logo = logo
	})
}

// WithLogoImage embeds img as the logo. A logo should cover a fifth of the
// symbol at most, or a higher error-correction level is needed to keep the
// symbol readable.
func WithLogoImage(img image.Image) Option {
	return newFuncOption(func(o *RenderOptions) {
		if img == nil {
			return
		}

		o.Logo = ImageLogo(img)
	})
}

// WithLogoFile loads the logo from a PNG or JPEG file at render time.
func WithLogoFile(path string) Option {
	return newFuncOption(func(o *RenderOptions) {
		if path == "" {
			return
		}

		o.Logo = FileLogo(path)
	})
}

// WithLogoURL references the logo by URL.
func WithLogoURL(href string) Option {
	return newFuncOption(func(o *RenderOptions) {
		if href == "" {
			return
		}

		o.Logo = URLLogo(href)
	})
}

// WithLogoSize sets the logo edge length.
func WithLogoSize(size float64) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.LogoSize = size
	})
}

// WithLogoBackgroundColor fills the area behind the logo.
func WithLogoBackgroundColor(c string) Option {
	return newFuncOption(func(o *RenderOptions) {
		if c == "" {
			return
		}

		o.LogoBackgroundColor = c
	})
}

// WithLogoMargin sets the padding between the logo and its background edge.
func WithLogoMargin(margin float64) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.LogoMargin = margin
	})
}

// WithLogoBorderRadius rounds the logo corners.
func WithLogoBorderRadius(radius float64) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.LogoBorderRadius = radius
	})
}

// WithQuietZone pads every side of the symbol.
func WithQuietZone(width float64) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.QuietZone = width
	})
}

// WithGradient strokes the modules with a linear gradient from one colour
// to the other. Empty colours keep the current ones.
func WithGradient(from, to string) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.Gradient = true
		if from != "" {
			o.GradientColors[0] = from
		}
		if to != "" {
			o.GradientColors[1] = to
		}
	})
}

// WithGradientDirection sets the gradient vector, in the bounding box of the
// symbol path.
func WithGradientDirection(x1, y1, x2, y2 scene.Length) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.GradientDirection = [4]scene.Length{x1, y1, x2, y2}
	})
}

// WithLevel sets the error-correction level.
func WithLevel(level matrix.Level) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.Level = level
	})
}

// WithRef registers a handle that receives each produced scene.
func WithRef(ref func(*scene.Scene)) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.Ref = ref
	})
}

// WithErrorHandler routes encode failures to fn. Render then returns an
// empty scene instead of the error.
func WithErrorHandler(fn func(error)) Option {
	return newFuncOption(func(o *RenderOptions) {
		o.OnError = fn
	})
}
