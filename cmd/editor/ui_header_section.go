package main

import (
	"strconv"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/manifest/chart"
)

// newHeaderSection adds one field per header value. Edits go straight into
// the header returned by header; numeric text that does not parse or that
// the header rejects is ignored until it becomes valid.
func newHeaderSection(
	parent *widget.Container,
	theme *widget.Theme,
	fontFace *text.Face,
	p palette,
	header func() *chart.Header,
) *HeaderUI {
	ui := &HeaderUI{relayoutTarget: parent}

	textField := func(label string, set func(h *chart.Header, v string)) *widget.TextInput {
		return addTextInput(parent, fontFace, p, label, func(v string) {
			if ui.suppress {
				return
			}
			set(header(), v)
		})
	}
	numberField := func(into *widget.Container, label string, bits int, set func(h *chart.Header, n uint64) error) *widget.TextInput {
		return addTextInput(into, fontFace, p, label, func(v string) {
			if ui.suppress {
				return
			}
			n, err := strconv.ParseUint(strings.TrimSpace(v), 10, bits)
			if err != nil {
				return
			}
			_ = set(header(), n)
		})
	}

	ui.name = textField("Name", func(h *chart.Header, v string) { h.Name = v })
	ui.genre = textField("Genre", func(h *chart.Header, v string) { h.Genre = v })
	ui.levelAuthor = textField("Level author", func(h *chart.Header, v string) { h.LevelAuthor = v })
	ui.songAuthor = textField("Song author", func(h *chart.Header, v string) { h.SongAuthor = v })
	ui.backgroundEffect = textField("Background effect", func(h *chart.Header, v string) { h.BackgroundEffect = v })

	ui.bpm = numberField(parent, "BPM", 16, func(h *chart.Header, n uint64) error {
		return h.SetBPM(uint16(n))
	})
	ui.sigTop = numberField(parent, "Beats per bar", 8, func(h *chart.Header, n uint64) error {
		_, bottom := h.TimeSignature()
		return h.SetTimeSignature(uint8(n), bottom)
	})
	ui.sigBottom = numberField(parent, "Beat unit", 8, func(h *chart.Header, n uint64) error {
		top, _ := h.TimeSignature()
		return h.SetTimeSignature(top, uint8(n))
	})
	ui.bgColor = numberField(parent, "Background color", 8, func(h *chart.Header, n uint64) error {
		return h.SetBgColor(chart.ColorIndex(n))
	})

	ui.manualBtn = addButton(parent, theme, fontFace, "Manual offset: Off", func() {
		h := header()
		h.ManualOffset = !h.ManualOffset
		if !h.ManualOffset {
			h.RecomputeOffset()
		}
		ui.Sync(h)
	})

	ui.offsetForm = widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(4),
			),
		),
	)
	ui.offset = numberField(ui.offsetForm, "Offset", 16, func(h *chart.Header, n uint64) error {
		return h.SetOffset(uint16(n))
	})
	parent.AddChild(ui.offsetForm)

	ui.Sync(header())
	return ui
}
