package chart

import (
	"fmt"
	"math"
)

// GridSize is the number of cells along each axis of the playfield.
const GridSize = 15

// Vec2 is a position in grid units.
type Vec2 struct {
	X, Y float64
}

// ShapeType is the closed set of shape kinds. The numeric values are the
// wire encoding.
type ShapeType uint8

const (
	Circle ShapeType = iota
	Square
	Triangle
)

func (t ShapeType) String() string {
	switch t {
	case Circle:
		return "Circle"
	case Square:
		return "Square"
	case Triangle:
		return "Triangle"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is one of the known kinds.
func (t ShapeType) Valid() bool {
	return t <= Triangle
}

// MoveStep is a planned relocation or resize of a shape. Steps are kept in
// memory only and are not written to chart files.
type MoveStep uint8

const (
	MoveUp MoveStep = iota
	MoveDown
	MoveLeft
	MoveRight
	MoveExpand
	MoveShrink
)

func (m MoveStep) String() string {
	switch m {
	case MoveUp:
		return "Up"
	case MoveDown:
		return "Down"
	case MoveLeft:
		return "Left"
	case MoveRight:
		return "Right"
	case MoveExpand:
		return "Expand"
	case MoveShrink:
		return "Shrink"
	default:
		return "Unknown"
	}
}

// Shape is a placed shape. AutoShapes are owned by the shape and drawn right
// after it, depth first.
type Shape struct {
	Pos        Vec2
	Size       float64
	Type       ShapeType
	Color      ColorIndex
	Moves      []MoveStep
	AutoShapes []Shape
}

// DefaultShape is the shape the editor places when nothing else is chosen:
// a minimum size circle in the middle of the grid.
func DefaultShape() Shape {
	return Shape{Pos: Vec2{X: 7, Y: 7}, Type: Circle}
}

// ClampPos clamps both axes of p to the playfield, [0, GridSize-1].
func ClampPos(p Vec2) Vec2 {
	return Vec2{X: clamp(p.X, 0, GridSize-1), Y: clamp(p.Y, 0, GridSize-1)}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// AddMove appends a step to the shape's movement sequence.
func (s *Shape) AddMove(m MoveStep) {
	s.Moves = append(s.Moves, m)
}

// Validate checks the kind, color index and size of s and of every
// auto-shape. Size may not go below -1, the smallest value whose scale
// (Size+1) can be written.
func (s *Shape) Validate() error {
	if !s.Type.Valid() {
		return fmt.Errorf("chart: shape: %w", ErrInvalidShapeKind)
	}
	if !s.Color.Valid() {
		return fmt.Errorf("chart: shape: %w", ErrInvalidColorIndex)
	}
	if !finite(s.Size) || s.Size < -1 {
		return fmt.Errorf("chart: shape: size %v: %w", s.Size, ErrInvalidScale)
	}
	if !finite(s.Pos.X) || !finite(s.Pos.Y) {
		return fmt.Errorf("chart: shape: position (%v, %v) is not finite", s.Pos.X, s.Pos.Y)
	}
	for i := range s.AutoShapes {
		if err := s.AutoShapes[i].Validate(); err != nil {
			return fmt.Errorf("auto_shapes[%d]: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s Shape) Clone() Shape {
	out := s
	if s.Moves != nil {
		out.Moves = append([]MoveStep(nil), s.Moves...)
	}
	if s.AutoShapes != nil {
		out.AutoShapes = make([]Shape, len(s.AutoShapes))
		for i, child := range s.AutoShapes {
			out.AutoShapes[i] = child.Clone()
		}
	}
	return out
}

// Walk calls fn for s and then, depth first, for each auto-shape, in paint
// order. path holds the child indices below s.
func (s *Shape) Walk(fn func(path []int, shape *Shape)) {
	s.walk(nil, fn)
}

func (s *Shape) walk(path []int, fn func(path []int, shape *Shape)) {
	fn(path, s)
	for i := range s.AutoShapes {
		s.AutoShapes[i].walk(append(path[:len(path):len(path)], i), fn)
	}
}
