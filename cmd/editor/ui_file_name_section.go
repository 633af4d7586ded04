package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func addLabel(parent *widget.Container, fontFace *text.Face, p palette, label string) *widget.Label {
	l := widget.NewLabel(
		widget.LabelOpts.Text(label, fontFace, &widget.LabelColor{Idle: p.label, Disabled: p.label}),
	)
	parent.AddChild(l)
	return l
}

// addTextInput adds a labelled single line input. onChange sees every edit.
func addTextInput(parent *widget.Container, fontFace *text.Face, p palette, label string, onChange func(text string)) *widget.TextInput {
	addLabel(parent, fontFace, p, label)
	input := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 26),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(p.input),
			Disabled: solidNineSlice(p.panel),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     p.inputText,
			Disabled: p.label,
			Caret:    p.inputText,
		}),
		widget.TextInputOpts.Face(fontFace),
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			if onChange != nil {
				onChange(args.InputText)
			}
		}),
	)
	parent.AddChild(input)
	return input
}

func addFileSection(
	parent *widget.Container,
	theme *widget.Theme,
	fontFace *text.Face,
	p palette,
	onNew func(),
	onImport func(path string),
	onExport func(path string),
	onPlay func(path string),
) *FileUI {
	ui := &FileUI{}
	ui.path = addTextInput(parent, fontFace, p, "File", nil)
	addButton(parent, theme, fontFace, "Browse...", func() {
		path, err := openChartDialog()
		if err != nil {
			ui.SetStatus(err.Error())
			return
		}
		ui.SetPath(path)
	})

	row := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(4),
			),
		),
	)
	addButton(row, theme, fontFace, "New", func() {
		if onNew != nil {
			onNew()
		}
	})
	addButton(row, theme, fontFace, "Import", func() {
		if onImport != nil {
			onImport(ui.Path())
		}
	})
	addButton(row, theme, fontFace, "Export", func() {
		if onExport != nil {
			onExport(ui.Path())
		}
	})
	addButton(row, theme, fontFace, "Play", func() {
		if onPlay != nil {
			onPlay(ui.Path())
		}
	})
	parent.AddChild(row)

	ui.status = addLabel(parent, fontFace, p, "")
	return ui
}

func addButton(parent *widget.Container, theme *widget.Theme, fontFace *text.Face, label string, onClick func()) *widget.Button {
	btn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(52, 28),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
	parent.AddChild(btn)
	return btn
}
