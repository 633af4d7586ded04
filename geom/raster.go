package geom

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Rasterize draws prims onto dst in order, compositing each one over the
// previous ones. Output coordinates are relative to dst's origin.
func Rasterize(dst draw.Image, prims []Primitive) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	z := vector.NewRasterizer(w, h)
	for _, p := range prims {
		z.Reset(w, h)
		var c color.RGBA
		switch p := p.(type) {
		case CircleFill:
			circlePath(z, p.Center, p.Radius)
			c = p.Color
		case RectFill:
			rectPath(z, p.Rect, false)
			c = p.Color
		case MeshFill:
			if len(p.Vertices) == 0 {
				continue
			}
			for i := 0; i+2 < len(p.Indices); i += 3 {
				a, bb, cc := p.Vertices[p.Indices[i]], p.Vertices[p.Indices[i+1]], p.Vertices[p.Indices[i+2]]
				z.MoveTo(float32(a.Pos.X), float32(a.Pos.Y))
				z.LineTo(float32(bb.Pos.X), float32(bb.Pos.Y))
				z.LineTo(float32(cc.Pos.X), float32(cc.Pos.Y))
				z.ClosePath()
			}
			c = p.Vertices[0].Color
		case RectStroke:
			half := p.Width / 2
			outer := Rect{Min: p.Rect.Min.Sub(Vec2{X: half, Y: half}), Max: p.Rect.Max.Add(Vec2{X: half, Y: half})}
			inner := Rect{Min: p.Rect.Min.Add(Vec2{X: half, Y: half}), Max: p.Rect.Max.Sub(Vec2{X: half, Y: half})}
			rectPath(z, outer, false)
			if !inner.Empty() {
				rectPath(z, inner, true)
			}
			c = p.Color
		}
		z.Draw(dst, b, image.NewUniform(c), image.Point{})
	}
}

func rectPath(z *vector.Rasterizer, r Rect, reverse bool) {
	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)
	z.MoveTo(x0, y0)
	if reverse {
		z.LineTo(x0, y1)
		z.LineTo(x1, y1)
		z.LineTo(x1, y0)
	} else {
		z.LineTo(x1, y0)
		z.LineTo(x1, y1)
		z.LineTo(x0, y1)
	}
	z.ClosePath()
}

func circlePath(z *vector.Rasterizer, c Vec2, r float64) {
	if r <= 0 {
		return
	}
	k := kappa * r
	cx, cy := c.X, c.Y
	z.MoveTo(float32(cx+r), float32(cy))
	z.CubeTo(float32(cx+r), float32(cy+k), float32(cx+k), float32(cy+r), float32(cx), float32(cy+r))
	z.CubeTo(float32(cx-k), float32(cy+r), float32(cx-r), float32(cy+k), float32(cx-r), float32(cy))
	z.CubeTo(float32(cx-r), float32(cy-k), float32(cx-k), float32(cy-r), float32(cx), float32(cy-r))
	z.CubeTo(float32(cx+k), float32(cy-r), float32(cx+r), float32(cy-k), float32(cx+r), float32(cy))
	z.ClosePath()
}
