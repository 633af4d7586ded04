package geom

import (
	"image"
	"image/color"
	"math"
	"reflect"
	"testing"

	"github.com/milk9111/manifest/chart"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func nearVec(a, b Vec2) bool {
	return near(a.X, b.X) && near(a.Y, b.Y)
}

var square170 = RectFromSize(0, 0, 170, 170)

func TestGridTransform(t *testing.T) {
	cases := []struct {
		name  string
		out   Rect
		scale Vec2
		p     chart.Vec2
		want  Vec2
	}{
		{"square", square170, Vec2{X: 10, Y: 10}, chart.Vec2{X: 1, Y: 2}, Vec2{X: 10, Y: 20}},
		{"wide", RectFromSize(0, 0, 340, 170), Vec2{X: 10, Y: 10}, chart.Vec2{X: 3, Y: 3}, Vec2{X: 30, Y: 30}},
		{"tall", RectFromSize(0, 0, 170, 340), Vec2{X: 10, Y: 10}, chart.Vec2{X: 3, Y: 3}, Vec2{X: 30, Y: 30}},
		{"offset", RectFromSize(100, 50, 34, 34), Vec2{X: 2, Y: 2}, chart.Vec2{X: 1, Y: 1}, Vec2{X: 102, Y: 52}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr := NewGridTransform(c.out)
			if !tr.Valid() {
				t.Fatalf("transform invalid")
			}
			if !nearVec(tr.Scale(), c.scale) {
				t.Fatalf("scale = %v, want %v", tr.Scale(), c.scale)
			}
			got := tr.Apply(c.p)
			if !nearVec(got, c.want) {
				t.Fatalf("Apply(%v) = %v, want %v", c.p, got, c.want)
			}
			back := tr.Invert(got)
			if !near(back.X, c.p.X) || !near(back.Y, c.p.Y) {
				t.Fatalf("Invert(%v) = %v, want %v", got, back, c.p)
			}
		})
	}
}

func TestEmptyOutputProjectsNothing(t *testing.T) {
	table := chart.DefaultColorTable()
	s := chart.DefaultShape()
	for _, out := range []Rect{{}, RectFromSize(0, 0, 0, 100), RectFromSize(0, 0, 100, -1)} {
		if NewGridTransform(out).Valid() {
			t.Errorf("transform onto %v reported valid", out)
		}
		if got := Project(&s, out, &table); len(got) != 0 {
			t.Errorf("Project onto %v = %v", out, got)
		}
		if got := GridOverlay(out); len(got) != 0 {
			t.Errorf("GridOverlay onto %v returned %d primitives", out, len(got))
		}
	}
}

func TestProjectShapes(t *testing.T) {
	table := chart.DefaultColorTable()
	red := table.Resolve(4)

	cases := []struct {
		name  string
		shape chart.Shape
		want  Primitive
	}{
		{
			name:  "circle",
			shape: chart.Shape{Pos: chart.Vec2{X: 4, Y: 3}, Size: 1, Type: chart.Circle, Color: 4},
			want:  CircleFill{Center: Vec2{X: 45, Y: 35}, Radius: 15, Color: red},
		},
		{
			name:  "square",
			shape: chart.Shape{Pos: chart.Vec2{X: 4, Y: 3}, Size: 1, Type: chart.Square, Color: 4},
			want:  RectFill{Rect: Rect{Min: Vec2{X: 30, Y: 20}, Max: Vec2{X: 60, Y: 50}}, Color: red},
		},
		{
			name:  "triangle",
			shape: chart.Shape{Type: chart.Triangle, Color: 4},
			want: MeshFill{
				Vertices: []Vertex{
					{Pos: Vec2{X: 0, Y: 10}, Color: red},
					{Pos: Vec2{X: 10, Y: 10}, Color: red},
					{Pos: Vec2{X: 5, Y: 0}, Color: red},
				},
				Indices: []uint16{0, 1, 2},
			},
		},
		{
			name:  "circle_size_zero",
			shape: chart.Shape{Pos: chart.Vec2{X: 0, Y: 0}, Type: chart.Circle, Color: 4},
			want:  CircleFill{Center: Vec2{X: 5, Y: 5}, Radius: 5, Color: red},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Project(&c.shape, square170, &table)
			if len(got) != 1 {
				t.Fatalf("got %d primitives, want 1", len(got))
			}
			if !reflect.DeepEqual(got[0], c.want) {
				t.Fatalf("got %+v, want %+v", got[0], c.want)
			}
		})
	}
}

func TestProjectNonSquareKeepsUniformScale(t *testing.T) {
	table := chart.DefaultColorTable()
	s := chart.Shape{Pos: chart.Vec2{X: 4, Y: 3}, Size: 1, Type: chart.Circle}
	got := Project(&s, RectFromSize(0, 0, 340, 170), &table)
	c, ok := got[0].(CircleFill)
	if !ok {
		t.Fatalf("got %T, want CircleFill", got[0])
	}
	if !near(c.Radius, 15) || !nearVec(c.Center, Vec2{X: 45, Y: 35}) {
		t.Fatalf("circle = %+v", c)
	}
}

func TestProjectAutoShapesDepthFirst(t *testing.T) {
	table := chart.DefaultColorTable()
	s := chart.Shape{
		Type:  chart.Square,
		Color: 1,
		AutoShapes: []chart.Shape{
			{Type: chart.Circle, Color: 2, AutoShapes: []chart.Shape{{Type: chart.Triangle, Color: 3}}},
			{Type: chart.Circle, Color: 5},
		},
	}

	got := Project(&s, square170, &table)
	if len(got) != 4 {
		t.Fatalf("got %d primitives, want 4", len(got))
	}
	wantColors := []chart.ColorIndex{1, 2, 3, 5}
	for i, p := range got {
		if c := primitiveColor(t, p); c != table.Resolve(wantColors[i]) {
			t.Errorf("primitive %d color = %v, want palette %d", i, c, wantColors[i])
		}
	}
	if _, ok := got[2].(MeshFill); !ok {
		t.Errorf("nested triangle projected as %T", got[2])
	}
}

func primitiveColor(t *testing.T, p Primitive) color.RGBA {
	t.Helper()
	switch p := p.(type) {
	case CircleFill:
		return p.Color
	case RectFill:
		return p.Color
	case MeshFill:
		return p.Vertices[0].Color
	case RectStroke:
		return p.Color
	}
	t.Fatalf("unknown primitive %T", p)
	return color.RGBA{}
}

func TestProjectIsDeterministic(t *testing.T) {
	doc := chart.NewDemo()
	a := ProjectDocument(doc, square170)
	b := ProjectDocument(doc, square170)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two projections of the same document differ")
	}
}

func TestProjectPanicsOnBadColor(t *testing.T) {
	table := chart.DefaultColorTable()
	s := chart.Shape{Type: chart.Circle, Color: chart.PaletteSize}
	defer func() {
		if recover() == nil {
			t.Fatalf("out of palette color did not panic")
		}
	}()
	Project(&s, square170, &table)
}

func TestGridOverlay(t *testing.T) {
	grid := GridOverlay(square170)
	if len(grid) != chart.GridSize*chart.GridSize {
		t.Fatalf("got %d cells, want %d", len(grid), chart.GridSize*chart.GridSize)
	}

	first := grid[0].(RectStroke)
	want := RectStroke{Rect: Rect{Max: Vec2{X: 10, Y: 10}}, Width: 1, Color: color.RGBA{A: 0xff}}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("first cell = %+v, want %+v", first, want)
	}

	// Row major: index 15 starts the second row.
	second := grid[chart.GridSize].(RectStroke)
	if !nearVec(second.Rect.Min, Vec2{X: 0, Y: 10}) {
		t.Fatalf("cell 15 at %v", second.Rect.Min)
	}
	last := grid[len(grid)-1].(RectStroke)
	if !nearVec(last.Rect.Max, Vec2{X: 150, Y: 150}) {
		t.Fatalf("last cell ends at %v", last.Rect.Max)
	}
}

func TestProjectDocumentOrder(t *testing.T) {
	doc := chart.NewDemo()
	prims := ProjectDocument(doc, square170)
	if want := 1 + len(doc.Shapes) + chart.GridSize*chart.GridSize; len(prims) != want {
		t.Fatalf("got %d primitives, want %d", len(prims), want)
	}

	bg, ok := prims[0].(RectFill)
	if !ok || bg.Rect != square170 || bg.Color != doc.Header.ColorTable.Resolve(doc.Header.BgColor()) {
		t.Fatalf("background = %+v", prims[0])
	}
	if _, ok := prims[1].(MeshFill); !ok {
		t.Fatalf("first shape projected as %T", prims[1])
	}
	if _, ok := prims[len(prims)-1].(RectStroke); !ok {
		t.Fatalf("grid not drawn last")
	}
}

func TestRasterize(t *testing.T) {
	table := chart.DefaultColorTable()
	red := table.Resolve(4)
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	img := image.NewRGBA(image.Rect(0, 0, 170, 170))
	Rasterize(img, []Primitive{
		RectFill{Rect: square170, Color: white},
		CircleFill{Center: Vec2{X: 45, Y: 35}, Radius: 15, Color: red},
		RectStroke{Rect: Rect{Min: Vec2{X: 100, Y: 100}, Max: Vec2{X: 150, Y: 150}}, Width: 2, Color: color.RGBA{A: 0xff}},
		MeshFill{
			Vertices: []Vertex{
				{Pos: Vec2{X: 0, Y: 160}, Color: red},
				{Pos: Vec2{X: 40, Y: 160}, Color: red},
				{Pos: Vec2{X: 20, Y: 120}, Color: red},
			},
			Indices: []uint16{0, 1, 2},
		},
	})

	cases := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"background", 160, 10, white},
		{"circle_centre", 45, 35, red},
		{"outside_circle", 45, 55, white},
		{"stroke_edge", 125, 100, color.RGBA{A: 0xff}},
		{"stroke_interior", 125, 125, white},
		{"triangle", 20, 150, red},
		{"beside_triangle", 2, 125, white},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := img.RGBAAt(c.x, c.y); got != c.want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
			}
		})
	}
}

func TestRasterizeEmptyTargetIsNoop(t *testing.T) {
	img := image.NewRGBA(image.Rectangle{})
	Rasterize(img, []Primitive{RectFill{Rect: square170, Color: color.RGBA{A: 0xff}}})
}
