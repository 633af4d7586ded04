// Package pick finds the shape under a point in grid space using a static
// chipmunk space of shape footprints.
package pick

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/manifest/chart"
)

type entry struct {
	path  []int
	order int
}

// Index holds one static collision shape per chart shape, auto-shapes
// included. It is a snapshot; rebuild it after the shapes change.
type Index struct {
	space *cp.Space
	count int
}

// NewIndex builds an index over shapes in paint order.
func NewIndex(shapes []chart.Shape) *Index {
	idx := &Index{space: cp.NewSpace()}
	for i := range shapes {
		shapes[i].Walk(func(sub []int, s *chart.Shape) {
			path := append([]int{i}, sub...)
			idx.add(s, path)
		})
	}
	return idx
}

// Len returns the number of indexed shapes.
func (idx *Index) Len() int {
	return idx.count
}

func (idx *Index) add(s *chart.Shape, path []int) {
	body := idx.space.StaticBody
	x, y, size := s.Pos.X, s.Pos.Y, s.Size

	var shape *cp.Shape
	switch s.Type {
	case chart.Circle:
		if size+0.5 <= 0 {
			return
		}
		shape = cp.NewCircle(body, size+0.5, cp.Vector{X: x + 0.5, Y: y + 0.5})
	case chart.Square:
		bb := cp.BB{L: x - size, B: y - size, R: x + size + 1, T: y + size + 1}
		if bb.R <= bb.L {
			return
		}
		shape = cp.NewBox2(body, bb, 0)
	case chart.Triangle:
		// Wound counter clockwise for chipmunk's poly normals.
		verts := []cp.Vector{
			{X: x - size, Y: y + 1 + size},
			{X: x + 0.5, Y: y - size},
			{X: x + 1 + size, Y: y + 1 + size},
		}
		if verts[2].X <= verts[0].X {
			return
		}
		shape = cp.NewPolyShapeRaw(body, 3, verts, 0)
	default:
		return
	}

	shape.UserData = entry{path: path, order: idx.count}
	idx.space.AddShape(shape)
	idx.count++
}

// At returns the path of the topmost shape containing p, top-level index
// first. Later paint order wins. ok is false when nothing is hit.
func (idx *Index) At(p chart.Vec2) (path []int, ok bool) {
	best := -1
	v := cp.Vector{X: p.X, Y: p.Y}
	idx.space.BBQuery(cp.BB{L: p.X, B: p.Y, R: p.X, T: p.Y}, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if shape.PointQuery(v).Distance > 0 {
			return
		}
		e, isEntry := shape.UserData.(entry)
		if !isEntry || e.order <= best {
			return
		}
		best = e.order
		path = e.path
	}, nil)
	return path, best >= 0
}
