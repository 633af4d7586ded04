package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/manifest/chart"
	"github.com/milk9111/manifest/options"
)

const leftPanelWidth = 260

// LeftPanelUI groups the widgets of the control panel.
type LeftPanelUI struct {
	Container *widget.Container
	Header    *HeaderUI
	File      *FileUI
	Options   *OptionsUI
}

// PanelHandlers are the editor actions the panel can trigger.
type PanelHandlers struct {
	Header      func() *chart.Header
	New         func()
	Import      func(path string)
	Export      func(path string)
	Play        func(path string)
	SaveOptions func()
}

func buildLeftPanelUI(theme *widget.Theme, fontFace *text.Face, p palette, opts *options.Options, h PanelHandlers) *LeftPanelUI {
	leftPanel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(leftPanelWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(p.panel)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(4),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 16, Right: 16}),
			),
		),
	)

	addLabel(leftPanel, fontFace, p, "Manifest")
	file := addFileSection(leftPanel, theme, fontFace, p, h.New, h.Import, h.Export, h.Play)
	header := newHeaderSection(leftPanel, theme, fontFace, p, h.Header)
	opt := newOptionsSection(leftPanel, theme, fontFace, p, opts, h.SaveOptions)

	return &LeftPanelUI{
		Container: leftPanel,
		Header:    header,
		File:      file,
		Options:   opt,
	}
}
