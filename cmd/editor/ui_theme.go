package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

// palette is the set of flat colors the panel is drawn with.
type palette struct {
	panel     color.RGBA
	label     color.RGBA
	input     color.RGBA
	inputText color.RGBA
	button    [3]color.RGBA // idle, hover, pressed
	canvas    color.RGBA
}

func themePalette(dark bool) palette {
	if dark {
		return palette{
			panel:     color.RGBA{40, 40, 40, 255},
			label:     color.RGBA{230, 230, 230, 255},
			input:     color.RGBA{245, 245, 245, 255},
			inputText: color.RGBA{0, 0, 0, 255},
			button:    [3]color.RGBA{{180, 180, 180, 255}, {200, 200, 200, 255}, {160, 160, 160, 255}},
			canvas:    color.RGBA{24, 24, 24, 255},
		}
	}
	return palette{
		panel:     color.RGBA{228, 228, 232, 255},
		label:     color.RGBA{20, 20, 20, 255},
		input:     color.RGBA{255, 255, 255, 255},
		inputText: color.RGBA{0, 0, 0, 255},
		button:    [3]color.RGBA{{200, 200, 210, 255}, {215, 215, 225, 255}, {175, 175, 190, 255}},
		canvas:    color.RGBA{200, 200, 200, 255},
	}
}

func newEditorTheme(fontFace *text.Face, p palette) *widget.Theme {
	return &widget.Theme{
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(p.panel),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:    solidNineSlice(p.button[0]),
				Hover:   solidNineSlice(p.button[1]),
				Pressed: solidNineSlice(p.button[2]),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle:     color.Black,
				Disabled: color.Gray{Y: 128},
			},
		},
	}
}
