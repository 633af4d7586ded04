package geom

import (
	"image/color"

	"github.com/milk9111/manifest/chart"
)

// GridStroke is the outline width of grid overlay cells, in output units.
const GridStroke = 1.0

// Project returns the primitives for s followed, depth first, by those of
// its auto-shapes, drawn into out. An empty out yields no primitives. A color
// index outside table panics; decoded documents never contain one.
func Project(s *chart.Shape, out Rect, table *chart.ColorTable) []Primitive {
	t := NewGridTransform(out)
	if !t.Valid() {
		return nil
	}
	return AppendShape(nil, t, s, table)
}

// AppendShape appends the primitives of s and its auto-shapes to dst using
// an existing transform.
func AppendShape(dst []Primitive, t Transform, s *chart.Shape, table *chart.ColorTable) []Primitive {
	dst = append(dst, shapePrimitive(t, s, table.Resolve(s.Color)))
	for i := range s.AutoShapes {
		dst = AppendShape(dst, t, &s.AutoShapes[i], table)
	}
	return dst
}

func shapePrimitive(t Transform, s *chart.Shape, c color.RGBA) Primitive {
	x, y, size := s.Pos.X, s.Pos.Y, s.Size
	switch s.Type {
	case chart.Circle:
		return CircleFill{
			Center: t.Apply(chart.Vec2{X: x + 0.5, Y: y + 0.5}),
			// Non-square outputs still use the larger axis scale.
			Radius: t.Scale().MaxElem() * (size + 0.5),
			Color:  c,
		}
	case chart.Square:
		return RectFill{
			Rect: Rect{
				Min: t.Apply(chart.Vec2{X: x - size, Y: y - size}),
				Max: t.Apply(chart.Vec2{X: x + size + 1, Y: y + size + 1}),
			},
			Color: c,
		}
	case chart.Triangle:
		return MeshFill{
			Vertices: []Vertex{
				{Pos: t.Apply(chart.Vec2{X: x - size, Y: y + 1 + size}), Color: c},
				{Pos: t.Apply(chart.Vec2{X: x + 1 + size, Y: y + 1 + size}), Color: c},
				{Pos: t.Apply(chart.Vec2{X: x + 0.5, Y: y - size}), Color: c},
			},
			Indices: []uint16{0, 1, 2},
		}
	default:
		panic("geom: unknown shape type " + s.Type.String())
	}
}

// GridOverlay returns the 15x15 lattice of one unit cell outlines, row by
// row. It does not depend on any document.
func GridOverlay(out Rect) []Primitive {
	t := NewGridTransform(out)
	if !t.Valid() {
		return nil
	}
	return appendGrid(make([]Primitive, 0, chart.GridSize*chart.GridSize), t)
}

func appendGrid(dst []Primitive, t Transform) []Primitive {
	black := color.RGBA{A: 0xff}
	for i := 0; i < chart.GridSize*chart.GridSize; i++ {
		x, y := float64(i%chart.GridSize), float64(i/chart.GridSize)
		dst = append(dst, RectStroke{
			Rect: Rect{
				Min: t.Apply(chart.Vec2{X: x, Y: y}),
				Max: t.Apply(chart.Vec2{X: x + 1, Y: y + 1}),
			},
			Width: GridStroke,
			Color: black,
		})
	}
	return dst
}

// ProjectDocument returns a full frame for doc: the background color over
// out, every shape in paint order, then the grid overlay on top.
func ProjectDocument(doc *chart.Document, out Rect) []Primitive {
	t := NewGridTransform(out)
	if !t.Valid() {
		return nil
	}
	table := &doc.Header.ColorTable

	prims := make([]Primitive, 0, 1+len(doc.Shapes)+chart.GridSize*chart.GridSize)
	prims = append(prims, RectFill{Rect: out, Color: table.Resolve(doc.Header.BgColor())})
	for i := range doc.Shapes {
		prims = AppendShape(prims, t, &doc.Shapes[i], table)
	}
	return appendGrid(prims, t)
}
