package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// PaletteSize is the fixed number of entries in a color table.
const PaletteSize = 16

// ColorIndex addresses an entry of the header's color table.
type ColorIndex uint8

// Valid reports whether i addresses an entry of a color table.
func (i ColorIndex) Valid() bool {
	return int(i) < PaletteSize
}

// RGB is an opaque color table entry.
type RGB [3]uint8

// RGBA converts the entry to an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}
}

// Hex formats the entry as #RRGGBB with uppercase digits.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c[0], c[1], c[2])
}

// ParseHex parses a #RRGGBB string. The leading '#' is required and alpha is
// not accepted.
func ParseHex(s string) (RGB, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid color format: %q", s)
	}

	var c RGB
	for i := range c {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid color format: %q", s)
		}
		c[i] = uint8(v)
	}
	return c, nil
}

// ColorTable is the indexed palette shapes and the background refer to.
type ColorTable [PaletteSize]RGB

// DefaultColorTable returns the stock palette.
func DefaultColorTable() ColorTable {
	return ColorTable{
		{0xFF, 0xFF, 0xFF},
		{0x00, 0x00, 0xFF},
		{0x00, 0xFF, 0x00},
		{0x00, 0xFF, 0xFF},
		{0xFF, 0x00, 0x00},
		{0xFF, 0x00, 0xFF},
		{0xFF, 0x66, 0x00},
		{0xAA, 0xAA, 0xAA},
		{0x66, 0x66, 0x66},
		{0x66, 0x66, 0xFF},
		{0x66, 0xFF, 0x66},
		{0x66, 0xFF, 0xFF},
		{0xFF, 0x66, 0x66},
		{0xFF, 0x66, 0xFF},
		{0xFF, 0xFF, 0x22},
		{0x00, 0x00, 0x00},
	}
}

// Resolve returns the color at index i. An out of range index means the
// document was corrupted after validation and is treated as a programming
// error.
func (t *ColorTable) Resolve(i ColorIndex) color.RGBA {
	if !i.Valid() {
		panic(fmt.Sprintf("chart: color index %d out of range", i))
	}
	return t[i].RGBA()
}
