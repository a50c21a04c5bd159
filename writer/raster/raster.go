// Package raster draws a scene onto a bitmap with github.com/fogleman/gg.
//
// The renderer covers the primitives the symbol scenes use: filled and
// rounded rectangles, stroked line paths with solid or linear gradient
// paint, clip paths made of rectangles, embedded images and single line
// text. The view box is mapped onto the bitmap the way SVG does by default
// (xMidYMid meet).
package raster

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/Mictilt/qrsvg/imgkit"
	"github.com/Mictilt/qrsvg/scene"
)

// Options tune the bitmap.
type Options struct {
	// Scale is the number of pixels per rendered unit, 1 when zero.
	Scale float64
	// FontFile is a TrueType font used for text. The built in bitmap face
	// is used when it is empty.
	FontFile string
	// Logger receives notes about content that could not be drawn.
	Logger *log.Logger
}

// GraphicsContext is the subset of *gg.Context the renderer draws with.
type GraphicsContext interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	NewSubPath()
	DrawRectangle(x, y, w, h float64)
	DrawRoundedRectangle(x, y, w, h, r float64)
	SetColor(c color.Color)
	SetFillStyle(pattern gg.Pattern)
	SetStrokeStyle(pattern gg.Pattern)
	SetLineWidth(lineWidth float64)
	SetLineCapButt()
	Fill()
	Stroke()
	Clip()
	ResetClip()
	DrawImage(im image.Image, x, y int)
	SetFontFace(fontFace font.Face)
	DrawStringAnchored(s string, x, y, ax, ay float64)
}

var _ GraphicsContext = (*gg.Context)(nil)

// Size returns the bitmap size of s at the given scale.
func Size(s *scene.Scene, scale float64) (w, h int) {
	if scale <= 0 {
		scale = 1
	}
	return int(math.Ceil(s.Width * scale)), int(math.Ceil(s.Height * scale))
}

// Render draws s onto a new bitmap sized Width×Height times the scale. An
// empty scene yields an empty image.
func Render(s *scene.Scene, opts Options) (image.Image, error) {
	if s.IsEmpty() {
		return image.NewRGBA(image.Rect(0, 0, 0, 0)), nil
	}

	w, h := Size(s, opts.Scale)
	dc := gg.NewContext(w, h)
	if err := Draw(dc, s, opts); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Draw paints s onto dc, which must be w×h as returned by Size.
func Draw(dc GraphicsContext, s *scene.Scene, opts Options) error {
	if s.IsEmpty() {
		return nil
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	r := &renderer{
		dc:   dc,
		opts: opts,
		ids:  scene.Lookup(s),
		t:    viewBoxTransform(s, opts.Scale),
	}
	dc.SetLineCapButt()
	return r.nodes(s.Children, r.t)
}

// transform maps user units to pixels: uniform scale then translation.
type transform struct {
	s, tx, ty float64
}

func (t transform) apply(x, y float64) (float64, float64) {
	return x*t.s + t.tx, y*t.s + t.ty
}

func (t transform) translate(x, y float64) transform {
	return transform{s: t.s, tx: t.tx + x*t.s, ty: t.ty + y*t.s}
}

// viewBoxTransform centres the view box in the element and scales it to fit
// the smaller dimension.
func viewBoxTransform(s *scene.Scene, scale float64) transform {
	vb := s.ViewBox
	w, h := s.Width*scale, s.Height*scale
	if vb[2] <= 0 || vb[3] <= 0 {
		return transform{s: scale}
	}

	k := math.Min(w/vb[2], h/vb[3])
	return transform{
		s:  k,
		tx: (w-vb[2]*k)/2 - vb[0]*k,
		ty: (h-vb[3]*k)/2 - vb[1]*k,
	}
}

// clip is an applied clip path and the transform it was referenced under.
type clip struct {
	path *scene.ClipPath
	t    transform
}

type renderer struct {
	dc    GraphicsContext
	opts  Options
	ids   map[string]scene.Node
	t     transform
	clips []clip
}

func (r *renderer) nodes(nodes []scene.Node, t transform) error {
	for _, n := range nodes {
		if err := r.node(n, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) node(n scene.Node, t transform) error {
	switch v := n.(type) {
	case *scene.Group:
		gt := t.translate(v.X, v.Y)
		return r.clipped(v.ClipPath, gt, func() error {
			return r.nodes(v.Children, gt)
		})
	case *scene.Rect:
		return r.clipped(v.ClipPath, t, func() error {
			return r.rect(v, t)
		})
	case *scene.Path:
		return r.path(v, t)
	case *scene.Image:
		return r.clipped(v.ClipPath, t, func() error {
			return r.image(v, t)
		})
	case *scene.Text:
		return r.text(v, t)
	}
	// definitions draw nothing by themselves
	return nil
}

// clipped runs draw with the clip path id intersected into the current
// clip, then restores the previous clip.
func (r *renderer) clipped(id string, t transform, draw func() error) error {
	if id == "" {
		return draw()
	}
	cp, ok := r.ids[id].(*scene.ClipPath)
	if !ok {
		return errors.Errorf("unknown clip path %q", id)
	}

	r.clips = append(r.clips, clip{path: cp, t: t})
	r.applyClips()
	err := draw()
	r.clips = r.clips[:len(r.clips)-1]
	r.applyClips()
	return err
}

// applyClips rebuilds the mask from the clip stack, gg has no way to
// restore a previous mask.
func (r *renderer) applyClips() {
	r.dc.ResetClip()
	for _, c := range r.clips {
		for _, n := range c.path.Children {
			if rect, ok := n.(*scene.Rect); ok {
				r.rectPath(rect, c.t)
			}
		}
		r.dc.Clip()
	}
}

func (r *renderer) rectPath(v *scene.Rect, t transform) {
	x, y := t.apply(v.X, v.Y)
	w, h := v.Width*t.s, v.Height*t.s
	rad := math.Min(math.Max(v.RX, v.RY)*t.s, math.Min(w, h)/2)
	if rad > 0 {
		r.dc.DrawRoundedRectangle(x, y, w, h, rad)
		return
	}
	r.dc.DrawRectangle(x, y, w, h)
}

func (r *renderer) rect(v *scene.Rect, t transform) error {
	x, y := t.apply(v.X, v.Y)
	pattern, visible, err := r.pattern(v.Fill, x, y, x+v.Width*t.s, y+v.Height*t.s)
	if err != nil || !visible {
		return err
	}
	r.dc.SetFillStyle(pattern)
	r.rectPath(v, t)
	r.dc.Fill()
	return nil
}

func (r *renderer) path(v *scene.Path, t transform) error {
	paths, err := parsePath(v.D)
	if err != nil {
		return err
	}
	minX, minY, maxX, maxY, ok := bounds(paths)
	if !ok {
		return nil
	}

	x0, y0 := t.apply(minX, minY)
	x1, y1 := t.apply(maxX, maxY)
	if !v.Fill.IsZero() {
		fill, visible, err := r.pattern(v.Fill, x0, y0, x1, y1)
		if err != nil {
			return err
		}
		if visible {
			r.dc.SetFillStyle(fill)
			r.trace(paths, t)
			r.dc.Fill()
		}
	}

	stroke, visible, err := r.pattern(v.Stroke, x0, y0, x1, y1)
	if err != nil || !visible || v.StrokeWidth <= 0 {
		return err
	}
	r.dc.SetStrokeStyle(stroke)
	r.dc.SetLineWidth(v.StrokeWidth * t.s)
	r.trace(paths, t)
	r.dc.Stroke()
	return nil
}

func (r *renderer) trace(paths []subpath, t transform) {
	for _, sp := range paths {
		r.dc.NewSubPath()
		for i, p := range sp.points {
			x, y := t.apply(p.X, p.Y)
			if i == 0 {
				r.dc.MoveTo(x, y)
			} else {
				r.dc.LineTo(x, y)
			}
		}
		if sp.closed {
			r.dc.ClosePath()
		}
	}
}

// pattern resolves a paint for an element whose device bounding box is
// (x0, y0)-(x1, y1). Gradients use objectBoundingBox units.
func (r *renderer) pattern(p scene.Paint, x0, y0, x1, y1 float64) (gg.Pattern, bool, error) {
	if p.IsZero() {
		return nil, false, nil
	}
	if p.Ref == "" {
		c, err := scene.ParseColor(p.Color)
		if err != nil {
			return nil, false, err
		}
		return gg.NewSolidPattern(c), c.A > 0, nil
	}

	g, ok := r.ids[p.Ref].(*scene.LinearGradient)
	if !ok {
		return nil, false, errors.Errorf("unknown paint server %q", p.Ref)
	}
	w, h := x1-x0, y1-y0
	grad := gg.NewLinearGradient(
		x0+g.X1.Fraction()*w, y0+g.Y1.Fraction()*h,
		x0+g.X2.Fraction()*w, y0+g.Y2.Fraction()*h,
	)
	for _, s := range g.Stops {
		c, err := scene.ParseColor(s.Color)
		if err != nil {
			return nil, false, err
		}
		c.A = uint8(math.Round(float64(c.A) * math.Max(0, math.Min(1, s.Opacity))))
		grad.AddColorStop(s.Offset, c)
	}
	return grad, true, nil
}

func (r *renderer) image(v *scene.Image, t transform) error {
	src := v.Source
	if src == nil {
		var err error
		if src, err = imgkit.DecodeDataURL(v.Href); err != nil {
			r.opts.Logger.Warn("image not drawn", "href", truncate(v.Href, 64), "err", err)
			return nil
		}
	}

	x, y := t.apply(v.X, v.Y)
	w, h := int(math.Round(v.Width*t.s)), int(math.Round(v.Height*t.s))
	if w <= 0 || h <= 0 {
		return nil
	}

	var (
		fitted image.Image
		ox, oy int
	)
	switch v.PreserveAspectRatio {
	case "none":
		fitted = imgkit.Scale(src, image.Rect(0, 0, w, h), draw.CatmullRom)
	case "xMidYMid slice":
		fitted = imgkit.Cover(src, w, h)
	default:
		fw, fh := contain(src.Bounds(), w, h)
		fitted = imgkit.Scale(src, image.Rect(0, 0, fw, fh), draw.CatmullRom)
		ox, oy = (w-fw)/2, (h-fh)/2
	}
	r.dc.DrawImage(fitted, int(math.Round(x))+ox, int(math.Round(y))+oy)
	return nil
}

// contain returns the largest size with the aspect of b fitting in w×h.
func contain(b image.Rectangle, w, h int) (int, int) {
	sw, sh := b.Dx(), b.Dy()
	if sw == 0 || sh == 0 {
		return w, h
	}
	if sw*h > sh*w {
		return w, max(1, sh*w/sw)
	}
	return max(1, sw*h/sh), h
}

func (r *renderer) text(v *scene.Text, t transform) error {
	fill := v.Style.Get("fill", "black")
	c, err := scene.ParseColor(fill)
	if err != nil {
		return err
	}

	if r.opts.FontFile != "" {
		size := v.Style.Float("font-size", 16) * t.s
		face, err := gg.LoadFontFace(r.opts.FontFile, size)
		if err != nil {
			return errors.Wrapf(err, "load font %s", r.opts.FontFile)
		}
		r.dc.SetFontFace(face)
	}

	ax := 0.0
	switch v.Style.Get("text-anchor", "start") {
	case "middle":
		ax = 0.5
	case "end":
		ax = 1
	}

	x, y := t.apply(v.X, v.Y)
	r.dc.SetColor(c)
	r.dc.DrawStringAnchored(v.Content, x, y, ax, 0)
	return nil
}

// flatten composites img over white.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.White, image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
