package main

import (
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/manifest/chart"
)

// HeaderUI holds the widgets bound to the chart header.
type HeaderUI struct {
	name             *widget.TextInput
	genre            *widget.TextInput
	levelAuthor      *widget.TextInput
	songAuthor       *widget.TextInput
	backgroundEffect *widget.TextInput
	bpm              *widget.TextInput
	sigTop           *widget.TextInput
	sigBottom        *widget.TextInput
	bgColor          *widget.TextInput
	offset           *widget.TextInput

	manualBtn *widget.Button

	// offsetForm is shown only while the offset is set by hand.
	offsetForm     *widget.Container
	relayoutTarget *widget.Container

	suppress bool
}

// Sync copies h into the widgets without feeding the edits back.
func (u *HeaderUI) Sync(h *chart.Header) {
	if u == nil || h == nil {
		return
	}
	u.suppress = true
	defer func() { u.suppress = false }()

	u.name.SetText(h.Name)
	u.genre.SetText(h.Genre)
	u.levelAuthor.SetText(h.LevelAuthor)
	u.songAuthor.SetText(h.SongAuthor)
	u.backgroundEffect.SetText(h.BackgroundEffect)
	u.bpm.SetText(strconv.Itoa(int(h.BPM())))
	top, bottom := h.TimeSignature()
	u.sigTop.SetText(strconv.Itoa(int(top)))
	u.sigBottom.SetText(strconv.Itoa(int(bottom)))
	u.bgColor.SetText(strconv.Itoa(int(h.BgColor())))
	u.offset.SetText(strconv.Itoa(int(h.Offset())))
	u.SetManual(h.ManualOffset)
}

// SetManual updates the toggle label and the offset field visibility.
func (u *HeaderUI) SetManual(manual bool) {
	if u == nil || u.manualBtn == nil {
		return
	}
	label := "Manual offset: Off"
	if manual {
		label = "Manual offset: On"
	}
	if text := u.manualBtn.Text(); text != nil {
		text.Label = label
	}
	if u.offsetForm == nil {
		return
	}
	if manual {
		u.offsetForm.GetWidget().Visibility = widget.Visibility_Show
	} else {
		u.offsetForm.GetWidget().Visibility = widget.Visibility_Hide
	}
	if u.relayoutTarget != nil {
		u.relayoutTarget.RequestRelayout()
	}
	u.offsetForm.RequestRelayout()
}

// FileUI holds the file path field shared by import and export.
type FileUI struct {
	path   *widget.TextInput
	status *widget.Label
}

// Path returns the trimmed path typed by the user.
func (u *FileUI) Path() string {
	if u == nil || u.path == nil {
		return ""
	}
	return strings.TrimSpace(u.path.GetText())
}

// SetPath shows path in the file field.
func (u *FileUI) SetPath(path string) {
	if u != nil && u.path != nil {
		u.path.SetText(path)
	}
}

// SetStatus shows a one-line message under the file buttons.
func (u *FileUI) SetStatus(msg string) {
	if u != nil && u.status != nil {
		u.status.Label = msg
	}
}

// OptionsUI holds the preference widgets.
type OptionsUI struct {
	themeBtn *widget.Button
	exePath  *widget.TextInput
}

// SetDark updates the theme toggle label.
func (u *OptionsUI) SetDark(dark bool) {
	if u == nil || u.themeBtn == nil {
		return
	}
	label := "Theme: Light"
	if dark {
		label = "Theme: Dark"
	}
	if text := u.themeBtn.Text(); text != nil {
		text.Label = label
	}
}
