package chart

import (
	"fmt"
	"math"
)

const (
	defaultName             = "Untitled"
	defaultGenre            = "Unknown"
	defaultAuthor           = "Anonymous"
	defaultBackgroundEffect = "none"
	defaultBPM              = 120
	defaultTimeSignature    = 4
	defaultBgColor          = ColorIndex(15)
)

// Header holds the document level metadata. Tempo, offset, time signature
// and background color are kept behind setters so they can never be zero or
// out of range.
type Header struct {
	Name             string
	Genre            string
	LevelAuthor      string
	SongAuthor       string
	BackgroundEffect string
	ColorTable       ColorTable

	// ManualOffset marks the offset as user supplied. When false the
	// offset follows the time signature.
	ManualOffset bool

	bpm     uint16
	offset  uint16
	sigTop  uint8
	sigBot  uint8
	bgColor ColorIndex
}

// DefaultHeader returns a header at the documented defaults.
func DefaultHeader() Header {
	h := Header{
		Name:             defaultName,
		Genre:            defaultGenre,
		LevelAuthor:      defaultAuthor,
		SongAuthor:       defaultAuthor,
		BackgroundEffect: defaultBackgroundEffect,
		ColorTable:       DefaultColorTable(),
		bpm:              defaultBPM,
		sigTop:           defaultTimeSignature,
		sigBot:           defaultTimeSignature,
		bgColor:          defaultBgColor,
	}
	h.offset = DerivedOffset(h.sigTop, h.sigBot)
	return h
}

// DerivedOffset is the offset implied by a time signature: top*bottom*2,
// saturating at the largest uint16.
func DerivedOffset(top, bottom uint8) uint16 {
	v := uint32(top) * uint32(bottom) * 2
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}

func (h *Header) BPM() uint16 { return h.bpm }

func (h *Header) Offset() uint16 { return h.offset }

func (h *Header) BgColor() ColorIndex { return h.bgColor }

func (h *Header) TimeSignature() (top, bottom uint8) { return h.sigTop, h.sigBot }

// SetBPM sets the tempo. Zero is rejected.
func (h *Header) SetBPM(bpm uint16) error {
	if bpm == 0 {
		return fmt.Errorf("chart: set bpm: %w", ErrInvalidBpm)
	}
	h.bpm = bpm
	return nil
}

// SetOffset sets the timing offset. Zero is rejected. The value is stored
// regardless of ManualOffset; a later time signature change recomputes it
// unless ManualOffset is set.
func (h *Header) SetOffset(offset uint16) error {
	if offset == 0 {
		return fmt.Errorf("chart: set offset: %w", ErrInvalidOffset)
	}
	h.offset = offset
	return nil
}

// SetTimeSignature sets both halves of the time signature and, unless the
// offset is manual, recomputes the offset from them.
func (h *Header) SetTimeSignature(top, bottom uint8) error {
	if top == 0 || bottom == 0 {
		return fmt.Errorf("chart: set time signature %d/%d: %w", top, bottom, ErrInvalidTimeSignature)
	}
	h.sigTop, h.sigBot = top, bottom
	if !h.ManualOffset {
		h.RecomputeOffset()
	}
	return nil
}

// RecomputeOffset resets the offset to the value derived from the time
// signature.
func (h *Header) RecomputeOffset() {
	h.offset = DerivedOffset(h.sigTop, h.sigBot)
}

// SetBgColor selects the background entry of the color table.
func (h *Header) SetBgColor(i ColorIndex) error {
	if !i.Valid() {
		return fmt.Errorf("chart: set bg color %d: %w", i, ErrInvalidColorIndex)
	}
	h.bgColor = i
	return nil
}

// Validate checks the header invariants. A header obtained from
// DefaultHeader or FromWire and only changed through its setters always
// passes; a zero Header{} does not.
func (h *Header) Validate() error {
	switch {
	case h.bpm == 0:
		return fmt.Errorf("chart: header: %w", ErrInvalidBpm)
	case h.offset == 0:
		return fmt.Errorf("chart: header: %w", ErrInvalidOffset)
	case h.sigTop == 0 || h.sigBot == 0:
		return fmt.Errorf("chart: header: %w", ErrInvalidTimeSignature)
	case !h.bgColor.Valid():
		return fmt.Errorf("chart: header: %w", ErrInvalidColorIndex)
	}
	return nil
}
