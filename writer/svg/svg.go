// Package svg serialises a scene as SVG markup.
package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	svgo "github.com/ajstarks/svgo/float"
	"github.com/pkg/errors"

	"github.com/Mictilt/qrsvg/scene"
)

// DefaultDecimals is the number of digits written after the decimal point.
const DefaultDecimals = 3

// Encoder writes scenes with a fixed number of decimals.
type Encoder struct {
	Decimals int
}

// Encode writes s to w with DefaultDecimals.
func Encode(w io.Writer, s *scene.Scene) error {
	return Encoder{Decimals: DefaultDecimals}.Encode(w, s)
}

// Encode writes s to w. An empty scene writes nothing.
func (e Encoder) Encode(w io.Writer, s *scene.Scene) error {
	if s.IsEmpty() {
		return nil
	}

	ew := &errWriter{w: w}
	canvas := svgo.New(ew)
	if e.Decimals > 0 {
		canvas.Decimals = e.Decimals
	}

	enc := &sceneEncoder{canvas: canvas}
	vb := s.ViewBox
	canvas.Startview(s.Width, s.Height, vb[0], vb[1], vb[2], vb[3])
	if len(s.Defs) > 0 {
		canvas.Def()
		enc.nodes(s.Defs)
		canvas.DefEnd()
	}
	enc.nodes(s.Children)
	canvas.End()

	return ew.err
}

type sceneEncoder struct {
	canvas *svgo.SVG
}

func (e *sceneEncoder) nodes(nodes []scene.Node) {
	for _, n := range nodes {
		e.node(n)
	}
}

func (e *sceneEncoder) node(n scene.Node) {
	c := e.canvas
	switch v := n.(type) {
	case *scene.Group:
		var attrs []string
		if v.ID != "" {
			attrs = append(attrs, attr("id", v.ID))
		}
		if v.Translated() {
			attrs = append(attrs, attr("transform", fmt.Sprintf("translate(%s,%s)", e.num(v.X), e.num(v.Y))))
		}
		if v.ClipPath != "" {
			attrs = append(attrs, clipAttr(v.ClipPath))
		}
		c.Group(attrs...)
		e.nodes(v.Children)
		c.Gend()
	case *scene.Defs:
		c.Def()
		e.nodes(v.Children)
		c.DefEnd()
	case *scene.ClipPath:
		c.ClipPath(attr("id", v.ID))
		e.nodes(v.Children)
		c.ClipEnd()
	case *scene.Rect:
		var attrs []string
		if !v.Fill.IsZero() {
			attrs = append(attrs, attr("fill", v.Fill.String()))
		}
		if v.ClipPath != "" {
			attrs = append(attrs, clipAttr(v.ClipPath))
		}
		if v.RX != 0 || v.RY != 0 {
			c.Roundrect(v.X, v.Y, v.Width, v.Height, v.RX, v.RY, attrs...)
		} else {
			c.Rect(v.X, v.Y, v.Width, v.Height, attrs...)
		}
	case *scene.Path:
		var attrs []string
		if !v.Fill.IsZero() {
			attrs = append(attrs, attr("fill", v.Fill.String()))
		}
		attrs = append(attrs,
			attr("stroke", v.Stroke.String()),
			attr("stroke-width", e.num(v.StrokeWidth)),
		)
		c.Path(v.D, attrs...)
	case *scene.Image:
		e.image(v)
	case *scene.Text:
		attrs := make([]string, 0, len(v.Style))
		for _, k := range v.Style.Keys() {
			attrs = append(attrs, attr(k, v.Style[k]))
		}
		c.Text(v.X, v.Y, v.Content, attrs...)
	case *scene.LinearGradient:
		e.gradient(v)
	}
}

// image is written by hand: svgo only takes integer image sizes.
func (e *sceneEncoder) image(v *scene.Image) {
	attrs := []string{
		attr("x", e.num(v.X)),
		attr("y", e.num(v.Y)),
		attr("width", e.num(v.Width)),
		attr("height", e.num(v.Height)),
	}
	if v.PreserveAspectRatio != "" {
		attrs = append(attrs, attr("preserveAspectRatio", v.PreserveAspectRatio))
	}
	attrs = append(attrs, attr("xlink:href", v.Href))
	if v.ClipPath != "" {
		attrs = append(attrs, clipAttr(v.ClipPath))
	}
	fmt.Fprintf(e.canvas.Writer, "<image %s/>\n", strings.Join(attrs, " "))
}

// gradient uses svgo when the vector is made of whole percentages, the
// only form it supports, and writes the element by hand otherwise.
func (e *sceneEncoder) gradient(g *scene.LinearGradient) {
	if pct, ok := percentVector(g); ok {
		stops := make([]svgo.Offcolor, 0, len(g.Stops))
		for _, s := range g.Stops {
			stops = append(stops, svgo.Offcolor{
				Offset:  uint8(math.Round(clamp01(s.Offset) * 100)),
				Color:   escape(s.Color),
				Opacity: s.Opacity,
			})
		}
		e.canvas.LinearGradient(escape(g.ID), pct[0], pct[1], pct[2], pct[3], stops)
		return
	}

	w := e.canvas.Writer
	fmt.Fprintf(w, "<linearGradient %s %s %s %s %s>\n",
		attr("id", g.ID),
		attr("x1", g.X1.String()), attr("y1", g.Y1.String()),
		attr("x2", g.X2.String()), attr("y2", g.Y2.String()),
	)
	for _, s := range g.Stops {
		fmt.Fprintf(w, "<stop %s %s %s/>\n",
			attr("offset", e.num(clamp01(s.Offset))),
			attr("stop-color", s.Color),
			attr("stop-opacity", e.num(s.Opacity)),
		)
	}
	fmt.Fprintln(w, "</linearGradient>")
}

func percentVector(g *scene.LinearGradient) ([4]uint8, bool) {
	var out [4]uint8
	for i, l := range []scene.Length{g.X1, g.Y1, g.X2, g.Y2} {
		if l.Unit != scene.UnitPercent || l.Value < 0 || l.Value > 100 || l.Value != math.Trunc(l.Value) {
			return out, false
		}
		out[i] = uint8(l.Value)
	}
	return out, true
}

func (e *sceneEncoder) num(v float64) string {
	return fmt.Sprintf("%.*f", e.canvas.Decimals, v)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func clipAttr(id string) string {
	return attr("clip-path", "url(#"+id+")")
}

func attr(name, value string) string {
	return name + `="` + escape(value) + `"`
}

func escape(s string) string {
	var sb strings.Builder
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// errWriter keeps the first write error, svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	if err != nil {
		w.err = errors.Wrap(err, "write svg")
	}
	return n, err
}
