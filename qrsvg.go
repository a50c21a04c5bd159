// Package qrsvg renders QR symbols as vector scenes.
//
// A Renderer encodes the payload, compresses the module grid into one
// stroked path and lays out the background, the symbol, an optional logo and
// an optional caption:
//
//	r := qrsvg.New()
//	err := r.WriteSVG(w, qrsvg.NewOptions("https://example.com",
//		qrsvg.WithSize(256),
//		qrsvg.WithQuietZone(16),
//		qrsvg.WithLogoFile("logo.png"),
//	))
//
// The encoded symbol is memoised on (payload, size, level) so changes to
// colours, logo or caption never re-encode.
package qrsvg

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Mictilt/qrsvg/geometry"
	"github.com/Mictilt/qrsvg/matrix"
	"github.com/Mictilt/qrsvg/pathcomp"
	"github.com/Mictilt/qrsvg/scene"
	"github.com/Mictilt/qrsvg/writer/svg"
)

// Symbol is an encoded payload sized for rendering.
type Symbol struct {
	// Path strokes every dark module.
	Path string
	// CellSize is the module edge length, also the stroke width of Path.
	CellSize float64
	// Modules is the number of modules along one edge.
	Modules int
}

// Renderer turns RenderOptions into scenes. It owns one symbol cache and is
// safe for concurrent use; distinct renderers never share their caches.
type Renderer struct {
	encoder    matrix.Encoder
	compressor pathcomp.Compressor
	logger     *log.Logger
	ids        elementIDs

	mu    sync.Mutex
	cache *cacheEntry
}

// RendererOption configures a Renderer.
type RendererOption func(r *Renderer)

// WithEncoder replaces the default matrix.QRCode encoder.
func WithEncoder(enc matrix.Encoder) RendererOption {
	return func(r *Renderer) {
		if enc != nil {
			r.encoder = enc
		}
	}
}

// WithCompressor replaces the default pathcomp.Rows compressor.
func WithCompressor(c pathcomp.Compressor) RendererOption {
	return func(r *Renderer) {
		if c != nil {
			r.compressor = c
		}
	}
}

// WithLogger sets the logger, discarded output by default.
func WithLogger(l *log.Logger) RendererOption {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithUniqueIDs prefixes the gradient and clip path identifiers with a
// random token, so scenes of several renderers can be inlined in one
// document.
func WithUniqueIDs() RendererOption {
	return func(r *Renderer) {
		r.ids = fixedIDs("qr-" + uuid.NewString()[:8] + "-")
	}
}

// New returns a Renderer.
func New(opts ...RendererOption) *Renderer {
	r := &Renderer{
		encoder:    matrix.QRCode{},
		compressor: pathcomp.Rows{},
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
		ids:        fixedIDs(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render builds the scene for o.
//
// When encoding fails and o.OnError is set, the error is handed to it once
// per failing (payload, size, level) and Render returns an empty scene and
// a nil error. Without OnError the *EncodeError is returned on every call.
// Ref is called with every non empty scene.
func (r *Renderer) Render(o RenderOptions) (*scene.Scene, error) {
	res, notify := r.resolve(newEncodeKey(o.Payload, o.Size, o.Level), o.OnError != nil)
	if !res.Ok() {
		if o.OnError == nil {
			return nil, res.err
		}
		if notify {
			o.OnError(res.err)
		}
		return scene.Empty(), nil
	}

	s, err := r.assemble(o, res.symbol)
	if err != nil {
		return nil, err
	}
	if o.Ref != nil {
		o.Ref(s)
	}
	return s, nil
}

// assemble lays out the layers of an encoded symbol, bottom to top.
func (r *Renderer) assemble(o RenderOptions, sym Symbol) (*scene.Scene, error) {
	vp := geometry.ViewportFor(o.Size, o.QuietZone, o.hasCaption(), o.CaptionHeight)
	width, height := geometry.Dimensions(o.Size, o.hasCaption(), o.CaptionHeight)

	s := &scene.Scene{
		ViewBox: vp.ViewBox(),
		Width:   width,
		Height:  height,
	}
	if o.Gradient {
		s.Defs = append(s.Defs, resolveGradient(r.ids.gradient, o.GradientDirection, o.GradientColors))
	}

	s.Children = append(s.Children,
		composeBackground(vp, o.BackgroundColor),
		composeSymbol(sym, symbolPaint(o, r.ids.gradient)),
	)

	if o.Logo != nil {
		logo, err := composeLogo(o, r.ids)
		if err != nil {
			return nil, err
		}
		s.Children = append(s.Children, logo)
	}
	if o.hasCaption() {
		s.Children = append(s.Children, r.composeCaption(o))
	}
	return s, nil
}

// WriteSVG renders o and writes it as SVG markup. An empty scene writes
// nothing.
func (r *Renderer) WriteSVG(w io.Writer, o RenderOptions) error {
	s, err := r.Render(o)
	if err != nil {
		return err
	}
	return svg.Encode(w, s)
}
