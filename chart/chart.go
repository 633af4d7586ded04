// Package chart is the data model of a rhythm-game level chart: a header of
// song metadata plus shapes placed on a 15x15 grid, and its JSON wire format.
package chart

import "fmt"

// Document is a whole chart. Shapes are kept in paint order.
type Document struct {
	Header Header
	Shapes []Shape
}

// NewDefault returns a chart with a default header and no shapes.
func NewDefault() *Document {
	return &Document{Header: DefaultHeader()}
}

// NewDemo returns a default chart populated with one shape of each kind.
func NewDemo() *Document {
	d := NewDefault()
	d.Shapes = []Shape{
		{Pos: Vec2{X: 0, Y: 0}, Size: 0, Type: Triangle},
		{Pos: Vec2{X: 4, Y: 3}, Size: 1, Type: Square},
		{Pos: Vec2{X: 8, Y: 7}, Size: 2, Type: Circle},
	}
	return d
}

// AppendShape adds s on top of every other shape.
func (d *Document) AppendShape(s Shape) {
	d.Shapes = append(d.Shapes, s)
}

// InsertShape places s at index i, shifting later shapes up.
func (d *Document) InsertShape(i int, s Shape) error {
	if i < 0 || i > len(d.Shapes) {
		return fmt.Errorf("chart: insert shape at %d: index out of range [0,%d]", i, len(d.Shapes))
	}
	d.Shapes = append(d.Shapes, Shape{})
	copy(d.Shapes[i+1:], d.Shapes[i:])
	d.Shapes[i] = s
	return nil
}

// RemoveShape deletes the shape at index i together with its auto-shapes
// and returns it.
func (d *Document) RemoveShape(i int) (Shape, error) {
	if i < 0 || i >= len(d.Shapes) {
		return Shape{}, fmt.Errorf("chart: remove shape %d: index out of range [0,%d)", i, len(d.Shapes))
	}
	s := d.Shapes[i]
	d.Shapes = append(d.Shapes[:i], d.Shapes[i+1:]...)
	return s, nil
}

// ShapeAt resolves a path produced by Shape.Walk or pick.Index: the first
// element indexes Shapes, the rest index AutoShapes downwards.
func (d *Document) ShapeAt(path []int) (*Shape, bool) {
	if len(path) == 0 || path[0] < 0 || path[0] >= len(d.Shapes) {
		return nil, false
	}
	s := &d.Shapes[path[0]]
	for _, i := range path[1:] {
		if i < 0 || i >= len(s.AutoShapes) {
			return nil, false
		}
		s = &s.AutoShapes[i]
	}
	return s, true
}

// Validate checks every invariant of the document. Decoded documents always
// pass; it exists for callers that write fields directly.
func (d *Document) Validate() error {
	if err := d.Header.Validate(); err != nil {
		return err
	}
	for i := range d.Shapes {
		if err := d.Shapes[i].Validate(); err != nil {
			return fmt.Errorf("shapes[%d]: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	out := &Document{Header: d.Header}
	if d.Shapes != nil {
		out.Shapes = make([]Shape, len(d.Shapes))
		for i, s := range d.Shapes {
			out.Shapes[i] = s.Clone()
		}
	}
	return out
}
