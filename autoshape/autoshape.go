// Package autoshape derives auto-shapes for a parent shape by running a
// tengo script.
//
// A script sees the parent as a map named parent with the keys x, y, size,
// shape and color, and reports its result by assigning an array of maps with
// the same keys to shapes. A result map may carry its own auto_shapes array.
// The global grid_size holds the playfield width in cells.
package autoshape

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/manifest/chart"
)

// ErrBadOutput reports a script result that does not describe shapes.
var ErrBadOutput = errors.New("bad script output")

// Mirror reflects the parent across both centre lines of the playfield,
// producing up to three copies. Copies that land on the parent are skipped.
const Mirror = `
last := grid_size - 1
points := [
	[last - parent.x, parent.y],
	[parent.x, last - parent.y],
	[last - parent.x, last - parent.y]
]
for p in points {
	if p[0] == parent.x && p[1] == parent.y {
		continue
	}
	shapes = append(shapes, {
		x: p[0],
		y: p[1],
		size: parent.size,
		shape: parent.shape,
		color: parent.color
	})
}
`

// Generate runs src against parent and returns the shapes it produced. Each
// shape is validated as if it had been decoded from a chart file.
func Generate(ctx context.Context, src string, parent chart.Shape) ([]chart.Shape, error) {
	script := tengo.NewScript([]byte(src))
	if err := script.Add("parent", shapeMap(&parent)); err != nil {
		return nil, fmt.Errorf("autoshape: bind parent: %w", err)
	}
	if err := script.Add("shapes", []interface{}{}); err != nil {
		return nil, fmt.Errorf("autoshape: bind shapes: %w", err)
	}
	if err := script.Add("grid_size", chart.GridSize); err != nil {
		return nil, fmt.Errorf("autoshape: bind grid_size: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("autoshape: compile: %w", err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("autoshape: run: %w", err)
	}

	out := compiled.Get("shapes")
	if out.ValueType() != "array" {
		return nil, fmt.Errorf("autoshape: shapes is %s: %w", out.ValueType(), ErrBadOutput)
	}
	return toShapes(out.Array(), "shapes")
}

func shapeMap(s *chart.Shape) map[string]interface{} {
	return map[string]interface{}{
		"x":     s.Pos.X,
		"y":     s.Pos.Y,
		"size":  s.Size,
		"shape": int(s.Type),
		"color": int(s.Color),
	}
}

func toShapes(items []interface{}, path string) ([]chart.Shape, error) {
	shapes := make([]chart.Shape, 0, len(items))
	for i, item := range items {
		s, err := toShape(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}

func toShape(item interface{}, path string) (chart.Shape, error) {
	m, ok := item.(map[string]interface{})
	if !ok {
		return chart.Shape{}, fmt.Errorf("autoshape: %s is %T: %w", path, item, ErrBadOutput)
	}

	var s chart.Shape
	var err error
	if s.Pos.X, err = number(m, "x", path); err != nil {
		return s, err
	}
	if s.Pos.Y, err = number(m, "y", path); err != nil {
		return s, err
	}
	if _, ok := m["size"]; ok {
		if s.Size, err = number(m, "size", path); err != nil {
			return s, err
		}
	}
	if s.Type, err = shapeType(m["shape"], path); err != nil {
		return s, err
	}
	color, err := number(m, "color", path)
	if err != nil {
		return s, err
	}
	if color < 0 || color != float64(int(color)) || color >= chart.PaletteSize {
		return s, fmt.Errorf("autoshape: %s.color %v: %w", path, color, chart.ErrInvalidColorIndex)
	}
	s.Color = chart.ColorIndex(color)

	if nested, ok := m["auto_shapes"]; ok {
		arr, ok := nested.([]interface{})
		if !ok {
			return s, fmt.Errorf("autoshape: %s.auto_shapes is %T: %w", path, nested, ErrBadOutput)
		}
		if s.AutoShapes, err = toShapes(arr, path+".auto_shapes"); err != nil {
			return s, err
		}
	}

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("autoshape: %s: %w", path, err)
	}
	return s, nil
}

func number(m map[string]interface{}, key, path string) (float64, error) {
	switch v := m[key].(type) {
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case nil:
		return 0, fmt.Errorf("autoshape: %s.%s missing: %w", path, key, ErrBadOutput)
	default:
		return 0, fmt.Errorf("autoshape: %s.%s is %T: %w", path, key, v, ErrBadOutput)
	}
}

func shapeType(v interface{}, path string) (chart.ShapeType, error) {
	var t chart.ShapeType
	switch v := v.(type) {
	case int64:
		if v < 0 || v > int64(chart.Triangle) {
			return 0, fmt.Errorf("autoshape: %s.shape %d: %w", path, v, chart.ErrInvalidShapeKind)
		}
		t = chart.ShapeType(v)
	case string:
		for k := chart.Circle; k <= chart.Triangle; k++ {
			if strings.EqualFold(v, k.String()) {
				return k, nil
			}
		}
		return 0, fmt.Errorf("autoshape: %s.shape %q: %w", path, v, chart.ErrInvalidShapeKind)
	default:
		return 0, fmt.Errorf("autoshape: %s.shape is %T: %w", path, v, chart.ErrInvalidShapeKind)
	}
	return t, nil
}
