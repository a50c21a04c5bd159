// Package scene describes a rendered symbol as a tree of vector primitives.
//
// A Scene is backend neutral: writer/svg serialises it to markup and
// writer/raster draws it onto a bitmap. Nodes reference clip paths and
// gradients by identifier, the same way SVG does.
package scene

import "image"

// Node is a primitive of the scene tree.
type Node interface {
	isNode()
}

// Scene is a finished drawing with its declared coordinate frame.
type Scene struct {
	// ViewBox is min-x, min-y, width, height of the coordinate frame.
	ViewBox [4]float64
	// Width and Height are the rendered element size.
	Width, Height float64
	// Defs hold reusable paint servers such as gradients.
	Defs []Node
	// Children are drawn in order, the first one bottommost.
	Children []Node
}

// Empty returns a scene with nothing to draw.
func Empty() *Scene {
	return &Scene{}
}

// IsEmpty reports whether the scene draws nothing.
func (s *Scene) IsEmpty() bool {
	return s == nil || (len(s.Defs) == 0 && len(s.Children) == 0)
}

// Group collects children under an optional translation and clip.
type Group struct {
	ID string
	// X and Y translate the group's coordinate system.
	X, Y     float64
	ClipPath string
	Children []Node
}

// Translated reports whether the group moves its children.
func (g *Group) Translated() bool {
	return g.X != 0 || g.Y != 0
}

// Defs holds definitions local to a subtree.
type Defs struct {
	Children []Node
}

// ClipPath is a clip region referenced by its ID.
type ClipPath struct {
	ID       string
	Children []Node
}

// Rect is an axis aligned rectangle with optional rounded corners.
type Rect struct {
	X, Y          float64
	Width, Height float64
	RX, RY        float64
	Fill          Paint
	ClipPath      string
}

// Path is a path descriptor painted with a stroke and an optional fill.
type Path struct {
	D           string
	Fill        Paint
	Stroke      Paint
	StrokeWidth float64
}

// Image places a bitmap or an external reference in a box.
type Image struct {
	X, Y          float64
	Width, Height float64
	// Href is what the image element points at, a URL or a data URL.
	Href string
	// Source is the decoded bitmap when it is known, used by raster
	// backends.
	Source              image.Image
	PreserveAspectRatio string
	ClipPath            string
}

// Text is a single line of text anchored at (X, Y).
type Text struct {
	X, Y    float64
	Content string
	Style   Style
}

// LinearGradient is a two point gradient paint server.
type LinearGradient struct {
	ID             string
	X1, Y1, X2, Y2 Length
	Stops          []Stop
}

// Stop is a gradient colour stop; Offset is in [0, 1].
type Stop struct {
	Offset  float64
	Color   string
	Opacity float64
}

func (*Group) isNode()          {}
func (*Defs) isNode()           {}
func (*ClipPath) isNode()       {}
func (*Rect) isNode()           {}
func (*Path) isNode()           {}
func (*Image) isNode()          {}
func (*Text) isNode()           {}
func (*LinearGradient) isNode() {}

// Walk visits the scene's defs then its children, depth first. Returning
// false from fn skips the node's descendants.
func Walk(s *Scene, fn func(Node) bool) {
	if s == nil {
		return
	}
	walk(s.Defs, fn)
	walk(s.Children, fn)
}

func walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		switch v := n.(type) {
		case *Group:
			walk(v.Children, fn)
		case *Defs:
			walk(v.Children, fn)
		case *ClipPath:
			walk(v.Children, fn)
		}
	}
}

// Lookup indexes every node carrying an ID.
func Lookup(s *Scene) map[string]Node {
	ids := make(map[string]Node)
	Walk(s, func(n Node) bool {
		switch v := n.(type) {
		case *Group:
			if v.ID != "" {
				ids[v.ID] = v
			}
		case *ClipPath:
			ids[v.ID] = v
		case *LinearGradient:
			ids[v.ID] = v
		}
		return true
	})
	return ids
}
