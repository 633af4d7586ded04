package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/manifest/chart"
	"github.com/milk9111/manifest/geom"
	"golang.org/x/image/colornames"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// drawPrimitives renders prims onto dst in order.
func drawPrimitives(dst *ebiten.Image, prims []geom.Primitive) {
	for _, p := range prims {
		switch p := p.(type) {
		case geom.CircleFill:
			vector.FillCircle(dst, float32(p.Center.X), float32(p.Center.Y), float32(p.Radius), p.Color, true)
		case geom.RectFill:
			r := p.Rect
			vector.FillRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Width()), float32(r.Height()), p.Color, false)
		case geom.RectStroke:
			r := p.Rect
			vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Width()), float32(r.Height()), float32(p.Width), p.Color, false)
		case geom.MeshFill:
			drawMesh(dst, p)
		}
	}
}

func drawMesh(dst *ebiten.Image, m geom.MeshFill) {
	vs := make([]ebiten.Vertex, len(m.Vertices))
	for i, v := range m.Vertices {
		vs[i] = ebiten.Vertex{
			DstX:   float32(v.Pos.X),
			DstY:   float32(v.Pos.Y),
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(v.Color.R) / 0xff,
			ColorG: float32(v.Color.G) / 0xff,
			ColorB: float32(v.Color.B) / 0xff,
			ColorA: float32(v.Color.A) / 0xff,
		}
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs, m.Indices, whiteSubImage, op)
}

// drawSelection outlines the footprint of the selected shape.
func drawSelection(dst *ebiten.Image, t geom.Transform, s *chart.Shape) {
	lo := t.Apply(chart.Vec2{X: s.Pos.X - s.Size, Y: s.Pos.Y - s.Size})
	hi := t.Apply(chart.Vec2{X: s.Pos.X + s.Size + 1, Y: s.Pos.Y + s.Size + 1})
	vector.StrokeRect(dst, float32(lo.X), float32(lo.Y), float32(hi.X-lo.X), float32(hi.Y-lo.Y), 3, colornames.Gold, false)
}
