package geom

import "image/color"

// Primitive is one drawing command in output space. The set is closed:
// CircleFill, RectFill, MeshFill and RectStroke.
type Primitive interface {
	primitive()
}

// CircleFill is a filled disc.
type CircleFill struct {
	Center Vec2
	Radius float64
	Color  color.RGBA
}

// RectFill is a filled axis aligned rectangle.
type RectFill struct {
	Rect  Rect
	Color color.RGBA
}

// Vertex is a colored mesh vertex.
type Vertex struct {
	Pos   Vec2
	Color color.RGBA
}

// MeshFill is a triangle list. Indices address Vertices three at a time.
type MeshFill struct {
	Vertices []Vertex
	Indices  []uint16
}

// RectStroke is the unfilled outline of a rectangle, centred on its edges.
type RectStroke struct {
	Rect  Rect
	Width float64
	Color color.RGBA
}

func (CircleFill) primitive() {}
func (RectFill) primitive()   {}
func (MeshFill) primitive()   {}
func (RectStroke) primitive() {}
