package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/manifest/options"
	"golang.org/x/image/font/gofont/goregular"
)

// BuildEditorUI creates the widget tree: the control panel docked on the
// left, leaving the rest of the window to the canvas.
func BuildEditorUI(opts *options.Options, h PanelHandlers) (*ebitenui.UI, *LeftPanelUI) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}

	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	p := themePalette(opts.DarkTheme)
	ui.PrimaryTheme = newEditorTheme(&fontFace, p)

	leftPanel := buildLeftPanelUI(ui.PrimaryTheme, &fontFace, p, opts, h)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	leftPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	root.AddChild(leftPanel.Container)

	ui.Container = root
	return ui, leftPanel
}
