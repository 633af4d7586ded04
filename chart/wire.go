package chart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
)

// wireHeader is element 0 of a chart file. Field order is the on-disk key
// order.
type wireHeader struct {
	Name                string              `json:"name"`
	Genre               string              `json:"genre"`
	LevelAuthor         string              `json:"level_author"`
	SongAuthor          string              `json:"song_author"`
	BackgroundEffect    string              `json:"background_effect"`
	BPM                 uint16              `json:"bpm"`
	Offset              uint16              `json:"offset"`
	TimeSignatureTop    uint8               `json:"time_signature_top"`
	TimeSignatureBottom uint8               `json:"time_signature_bottom"`
	BgColor             uint8               `json:"bg_color"`
	ColorTable          [PaletteSize]string `json:"color_table"`
	ManualOffset        bool                `json:"manual_offset,omitempty"`
}

// wireShape is a shape object. Scale is Size+1 so the minimum footprint is
// written as 1.0.
type wireShape struct {
	Shape      uint8       `json:"shape"`
	Color      uint8       `json:"color"`
	X          wireFloat   `json:"x"`
	Y          wireFloat   `json:"y"`
	Scale      wireFloat   `json:"scale"`
	AutoShapes []wireShape `json:"auto_shapes,omitempty"`
}

// wireFloat always carries a fraction or exponent so 4 is written as 4.0.
type wireFloat float64

func (f wireFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("chart: cannot encode non-finite value %v", v)
	}
	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, v, format, -1, 64)
	if !bytes.ContainsAny(b, ".e") {
		b = append(b, '.', '0')
	}
	return b, nil
}

func encodeHeader(h *Header) wireHeader {
	w := wireHeader{
		Name:                h.Name,
		Genre:               h.Genre,
		LevelAuthor:         h.LevelAuthor,
		SongAuthor:          h.SongAuthor,
		BackgroundEffect:    h.BackgroundEffect,
		BPM:                 h.bpm,
		Offset:              h.offset,
		TimeSignatureTop:    h.sigTop,
		TimeSignatureBottom: h.sigBot,
		BgColor:             uint8(h.bgColor),
		ManualOffset:        h.ManualOffset,
	}
	for i, c := range h.ColorTable {
		w.ColorTable[i] = c.Hex()
	}
	return w
}

func encodeShape(s *Shape) wireShape {
	w := wireShape{
		Shape: uint8(s.Type),
		Color: uint8(s.Color),
		X:     wireFloat(s.Pos.X),
		Y:     wireFloat(s.Pos.Y),
		Scale: wireFloat(s.Size + 1),
	}
	if len(s.AutoShapes) > 0 {
		w.AutoShapes = make([]wireShape, len(s.AutoShapes))
		for i := range s.AutoShapes {
			w.AutoShapes[i] = encodeShape(&s.AutoShapes[i])
		}
	}
	return w
}

// ToWire returns the chart as the top level JSON array: the header object
// followed by one object per shape, in paint order.
func (d *Document) ToWire() []any {
	out := make([]any, 0, len(d.Shapes)+1)
	out = append(out, encodeHeader(&d.Header))
	for i := range d.Shapes {
		out = append(out, encodeShape(&d.Shapes[i]))
	}
	return out
}

func (d *Document) MarshalJSON() ([]byte, error) {
	return marshalCompact(d.ToWire())
}

func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := FromWire(data)
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}

// Encode writes the chart to w. Pretty output is indented with four spaces.
func (d *Document) Encode(w io.Writer, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "    ")
	}
	return enc.Encode(d.ToWire())
}

// EncodeShape returns the wire object of a single shape. Moves are not
// written.
func EncodeShape(s Shape) ([]byte, error) {
	return marshalCompact(encodeShape(&s))
}

func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode reads a whole chart from r.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("chart: read: %w", err)
	}
	return FromWire(data)
}

// FromWire decodes a chart. The header's legacy fields are required; fields
// added later (offset, time signature, color table, manual offset) fall back
// to defaults when absent. Any invalid value aborts the decode and no
// document is returned.
func FromWire(data []byte) (*Document, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, decodeErr(ErrMalformedJSON, "", err)
	}
	if len(elems) == 0 {
		return nil, decodeErrf(ErrMalformedJSON, "", "missing header")
	}

	header, err := decodeHeader(elems[0])
	if err != nil {
		return nil, err
	}

	doc := &Document{Header: header}
	if len(elems) > 1 {
		doc.Shapes = make([]Shape, 0, len(elems)-1)
	}
	for i, raw := range elems[1:] {
		s, err := decodeShape(raw, fmt.Sprintf("shapes[%d]", i))
		if err != nil {
			return nil, err
		}
		doc.Shapes = append(doc.Shapes, s)
	}
	return doc, nil
}

// DecodeShape decodes a single shape object. Moves are always empty.
func DecodeShape(data []byte) (Shape, error) {
	return decodeShape(data, "shape")
}

func decodeHeader(raw json.RawMessage) (Header, error) {
	obj, err := decodeObject(raw, "header")
	if err != nil {
		return Header{}, err
	}

	h := DefaultHeader()
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"name", &h.Name},
		{"genre", &h.Genre},
		{"level_author", &h.LevelAuthor},
		{"song_author", &h.SongAuthor},
		{"background_effect", &h.BackgroundEffect},
	} {
		if *f.dst, err = obj.str(f.key, "header."+f.key); err != nil {
			return Header{}, err
		}
	}

	bpm, err := obj.uintField("bpm", 16)
	if err != nil || bpm == 0 {
		return Header{}, decodeErr(ErrInvalidBpm, "header.bpm", err)
	}
	h.bpm = uint16(bpm)

	bg, err := obj.uintField("bg_color", 8)
	if err != nil || bg >= PaletteSize {
		return Header{}, decodeErr(ErrInvalidColorIndex, "header.bg_color", err)
	}
	h.bgColor = ColorIndex(bg)

	for _, f := range []struct {
		key string
		dst *uint8
	}{
		{"time_signature_top", &h.sigTop},
		{"time_signature_bottom", &h.sigBot},
	} {
		if !obj.has(f.key) {
			continue
		}
		v, err := obj.uintField(f.key, 8)
		if err != nil || v == 0 {
			return Header{}, decodeErr(ErrInvalidTimeSignature, "header."+f.key, err)
		}
		*f.dst = uint8(v)
	}

	if obj.has("offset") {
		v, err := obj.uintField("offset", 16)
		if err != nil || v == 0 {
			return Header{}, decodeErr(ErrInvalidOffset, "header.offset", err)
		}
		h.offset = uint16(v)
	} else {
		h.RecomputeOffset()
	}

	if obj.has("color_table") {
		var table []string
		if err := json.Unmarshal(obj["color_table"], &table); err != nil {
			return Header{}, decodeErr(ErrInvalidColorTable, "header.color_table", err)
		}
		if len(table) != PaletteSize {
			return Header{}, decodeErrf(ErrInvalidColorTable, "header.color_table", "got %d entries, want %d", len(table), PaletteSize)
		}
		for i, s := range table {
			c, err := ParseHex(s)
			if err != nil {
				return Header{}, decodeErr(ErrInvalidColorTable, fmt.Sprintf("header.color_table[%d]", i), err)
			}
			h.ColorTable[i] = c
		}
	}

	if obj.has("manual_offset") {
		if err := json.Unmarshal(obj["manual_offset"], &h.ManualOffset); err != nil {
			return Header{}, decodeErr(ErrMalformedJSON, "header.manual_offset", err)
		}
	}

	return h, nil
}

func decodeShape(raw json.RawMessage, path string) (Shape, error) {
	obj, err := decodeObject(raw, path)
	if err != nil {
		return Shape{}, err
	}

	var s Shape
	if s.Pos.X, err = obj.floatField("x", path+".x"); err != nil {
		return Shape{}, err
	}
	if s.Pos.Y, err = obj.floatField("y", path+".y"); err != nil {
		return Shape{}, err
	}

	kind, err := obj.uintField("shape", 8)
	if err != nil || !ShapeType(kind).Valid() {
		if err == nil {
			err = fmt.Errorf("unknown shape kind %d", kind)
		}
		return Shape{}, decodeErr(ErrInvalidShapeKind, path+".shape", err)
	}
	s.Type = ShapeType(kind)

	scale, err := obj.floatField("scale", path+".scale")
	if err != nil {
		return Shape{}, err
	}
	if scale < 0 {
		return Shape{}, decodeErrf(ErrInvalidScale, path+".scale", "negative scale %v", scale)
	}
	s.Size = scale - 1

	color, err := obj.uintField("color", 8)
	if err != nil || color >= PaletteSize {
		if err == nil {
			err = fmt.Errorf("index %d outside palette of %d", color, PaletteSize)
		}
		return Shape{}, decodeErr(ErrInvalidColorIndex, path+".color", err)
	}
	s.Color = ColorIndex(color)

	if obj.has("auto_shapes") {
		var children []json.RawMessage
		if err := json.Unmarshal(obj["auto_shapes"], &children); err != nil {
			return Shape{}, decodeErr(ErrMalformedJSON, path+".auto_shapes", err)
		}
		if len(children) > 0 {
			s.AutoShapes = make([]Shape, 0, len(children))
		}
		for i, c := range children {
			child, err := decodeShape(c, fmt.Sprintf("%s.auto_shapes[%d]", path, i))
			if err != nil {
				return Shape{}, err
			}
			s.AutoShapes = append(s.AutoShapes, child)
		}
	}

	return s, nil
}

// object is a decoded JSON object whose values are parsed on demand.
type object map[string]json.RawMessage

func decodeObject(raw json.RawMessage, path string) (object, error) {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, decodeErr(ErrMalformedJSON, path, err)
	}
	if obj == nil {
		return nil, decodeErrf(ErrMalformedJSON, path, "expected an object")
	}
	return obj, nil
}

func (o object) has(key string) bool {
	_, ok := o[key]
	return ok
}

func (o object) str(key, path string) (string, error) {
	raw, ok := o[key]
	if !ok {
		return "", decodeErrf(ErrMalformedJSON, path, "missing field")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", decodeErrf(ErrMalformedJSON, path, "expected a string")
	}
	return s, nil
}

// number returns the raw JSON number stored at key. Strings holding digits
// are not numbers.
func (o object) number(key string) (json.Number, error) {
	raw, ok := o[key]
	if !ok {
		return "", fmt.Errorf("missing field %q", key)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	n, ok := v.(json.Number)
	if !ok {
		return "", fmt.Errorf("field %q is not a number", key)
	}
	return n, nil
}

// uintField parses key as an unsigned integer of the given bit size. The caller
// maps any error to its own failure kind.
func (o object) uintField(key string, bits int) (uint64, error) {
	n, err := o.number(key)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(n.String(), 10, bits)
}

func (o object) floatField(key, path string) (float64, error) {
	n, err := o.number(key)
	if err != nil {
		return 0, decodeErr(ErrMalformedJSON, path, err)
	}
	v, err := n.Float64()
	if err != nil {
		return 0, decodeErr(ErrMalformedJSON, path, err)
	}
	return v, nil
}
