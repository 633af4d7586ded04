package main

import (
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/manifest/options"
)

// newOptionsSection adds the preference controls. Changes are held in opts
// until Save is pressed; the theme applies on the next start.
func newOptionsSection(
	parent *widget.Container,
	theme *widget.Theme,
	fontFace *text.Face,
	p palette,
	opts *options.Options,
	onSave func(),
) *OptionsUI {
	addLabel(parent, fontFace, p, "Options")
	ui := &OptionsUI{}

	ui.themeBtn = addButton(parent, theme, fontFace, "Theme: Dark", func() {
		opts.DarkTheme = !opts.DarkTheme
		ui.SetDark(opts.DarkTheme)
	})
	ui.SetDark(opts.DarkTheme)

	ui.exePath = addTextInput(parent, fontFace, p, "Game executable", func(v string) {
		opts.ExecutablePath = v
	})
	ui.exePath.SetText(opts.ExecutablePath)

	addButton(parent, theme, fontFace, "Save options", func() {
		if onSave != nil {
			onSave()
		}
	})
	return ui
}
