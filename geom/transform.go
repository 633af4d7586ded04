// Package geom maps chart shapes from grid units onto screen space and
// describes them as renderer independent primitives.
package geom

import "github.com/milk9111/manifest/chart"

// ViewUnits is the edge length, in grid units, of the square region mapped
// onto an output rectangle: the 15 cell playfield plus one unit of margin on
// each side.
const ViewUnits = chart.GridSize + 2

// Vec2 is a point or extent in output space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Mul multiplies component-wise.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{X: v.X * o.X, Y: v.Y * o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }

// MaxElem returns the larger component.
func (v Vec2) MaxElem() float64 { return max(v.X, v.Y) }

// Rect is an axis aligned rectangle, Min inclusive.
type Rect struct {
	Min, Max Vec2
}

// RectFromSize builds a rectangle from its origin and extent.
func RectFromSize(x, y, w, h float64) Rect {
	return Rect{Min: Vec2{X: x, Y: y}, Max: Vec2{X: x + w, Y: y + h}}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
func (r Rect) Size() Vec2      { return r.Max.Sub(r.Min) }

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// squareProportions returns the aspect of r normalised so the shorter side
// is 1.
func squareProportions(r Rect) Vec2 {
	w, h := r.Width(), r.Height()
	if w > h {
		return Vec2{X: w / h, Y: 1}
	}
	return Vec2{X: 1, Y: h / w}
}

// Transform is a linear map from one rectangle onto another.
type Transform struct {
	from, to Rect
	scale    Vec2
}

// NewTransform maps from onto to. Both rectangles must have area.
func NewTransform(from, to Rect) Transform {
	fs := from.Size()
	ts := to.Size()
	return Transform{from: from, to: to, scale: Vec2{X: ts.X / fs.X, Y: ts.Y / fs.Y}}
}

// NewGridTransform maps grid units onto out. The source region is ViewUnits
// tall or wide, whichever is shorter on out, and stretched along the longer
// axis so the per-axis scale stays uniform. An empty out yields a transform
// whose Valid reports false.
func NewGridTransform(out Rect) Transform {
	if out.Empty() {
		return Transform{to: out}
	}
	from := Rect{Max: squareProportions(out).Scale(ViewUnits)}
	return NewTransform(from, out)
}

// Valid reports whether the transform maps onto a non-empty rectangle.
func (t Transform) Valid() bool {
	return t.scale.X > 0 && t.scale.Y > 0
}

// Scale is the per-axis scale factor, output units per grid unit.
func (t Transform) Scale() Vec2 {
	return t.scale
}

// Apply maps a grid point into output space.
func (t Transform) Apply(p chart.Vec2) Vec2 {
	return Vec2{
		X: t.to.Min.X + (p.X-t.from.Min.X)*t.scale.X,
		Y: t.to.Min.Y + (p.Y-t.from.Min.Y)*t.scale.Y,
	}
}

// Invert maps an output point back into grid units.
func (t Transform) Invert(p Vec2) chart.Vec2 {
	if !t.Valid() {
		return chart.Vec2{}
	}
	return chart.Vec2{
		X: t.from.Min.X + (p.X-t.to.Min.X)/t.scale.X,
		Y: t.from.Min.Y + (p.Y-t.to.Min.Y)/t.scale.Y,
	}
}
