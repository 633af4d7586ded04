package chart

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestHeaderSetters(t *testing.T) {
	cases := []struct {
		name string
		set  func(h *Header) error
		want error
	}{
		{"zero_bpm", func(h *Header) error { return h.SetBPM(0) }, ErrInvalidBpm},
		{"bpm", func(h *Header) error { return h.SetBPM(200) }, nil},
		{"zero_offset", func(h *Header) error { return h.SetOffset(0) }, ErrInvalidOffset},
		{"offset", func(h *Header) error { return h.SetOffset(1) }, nil},
		{"zero_top", func(h *Header) error { return h.SetTimeSignature(0, 4) }, ErrInvalidTimeSignature},
		{"zero_bottom", func(h *Header) error { return h.SetTimeSignature(4, 0) }, ErrInvalidTimeSignature},
		{"bg_color_out_of_palette", func(h *Header) error { return h.SetBgColor(PaletteSize) }, ErrInvalidColorIndex},
		{"bg_color", func(h *Header) error { return h.SetBgColor(0) }, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := DefaultHeader()
			before := h
			err := c.set(&h)
			if c.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
			if h != before {
				t.Fatalf("rejected value changed the header")
			}
		})
	}
}

func TestTimeSignatureDrivesOffset(t *testing.T) {
	h := DefaultHeader()
	mustNoErr(t, h.SetTimeSignature(3, 8))
	if h.Offset() != 48 {
		t.Fatalf("offset = %d, want 48", h.Offset())
	}

	h.ManualOffset = true
	mustNoErr(t, h.SetOffset(10))
	mustNoErr(t, h.SetTimeSignature(6, 8))
	if h.Offset() != 10 {
		t.Fatalf("manual offset overwritten: %d", h.Offset())
	}

	h.RecomputeOffset()
	if h.Offset() != 96 {
		t.Fatalf("recomputed offset = %d, want 96", h.Offset())
	}
}

func TestDerivedOffsetSaturates(t *testing.T) {
	if got := DerivedOffset(255, 255); got != math.MaxUint16 {
		t.Fatalf("DerivedOffset(255, 255) = %d, want %d", got, math.MaxUint16)
	}
	if got := DerivedOffset(4, 4); got != 32 {
		t.Fatalf("DerivedOffset(4, 4) = %d, want 32", got)
	}
}

func TestZeroHeaderFailsValidation(t *testing.T) {
	var h Header
	if err := h.Validate(); !errors.Is(err, ErrInvalidBpm) {
		t.Fatalf("err = %v, want ErrInvalidBpm", err)
	}
	d := DefaultHeader()
	if err := d.Validate(); err != nil {
		t.Fatalf("default header invalid: %v", err)
	}
}

func TestDocumentShapeEditing(t *testing.T) {
	d := NewDemo()
	if len(d.Shapes) != 3 {
		t.Fatalf("demo has %d shapes, want 3", len(d.Shapes))
	}

	marker := Shape{Pos: Vec2{X: 1, Y: 2}, Type: Square, Color: 5}
	mustNoErr(t, d.InsertShape(1, marker))
	if !reflect.DeepEqual(d.Shapes[1], marker) || d.Shapes[2].Type != Square || d.Shapes[0].Type != Triangle {
		t.Fatalf("insert placed shapes wrong: %+v", d.Shapes)
	}
	if err := d.InsertShape(10, marker); err == nil {
		t.Fatalf("insert past the end should fail")
	}

	d.Shapes[3].AutoShapes = []Shape{{Type: Triangle}}
	removed, err := d.RemoveShape(3)
	mustNoErr(t, err)
	if removed.Type != Circle || len(removed.AutoShapes) != 1 {
		t.Fatalf("removed %+v", removed)
	}
	if len(d.Shapes) != 3 {
		t.Fatalf("len = %d after remove", len(d.Shapes))
	}
	if _, err := d.RemoveShape(-1); err == nil {
		t.Fatalf("remove of negative index should fail")
	}

	d.AppendShape(DefaultShape())
	if last := d.Shapes[len(d.Shapes)-1]; last.Pos != (Vec2{X: 7, Y: 7}) || last.Type != Circle {
		t.Fatalf("appended %+v", last)
	}
}

func TestShapeAtAndWalk(t *testing.T) {
	d := NewDefault()
	d.AppendShape(Shape{
		Type: Square,
		AutoShapes: []Shape{
			{Type: Circle, AutoShapes: []Shape{{Type: Triangle, Color: 9}}},
			{Type: Circle, Color: 1},
		},
	})

	s, ok := d.ShapeAt([]int{0, 0, 0})
	if !ok || s.Color != 9 {
		t.Fatalf("ShapeAt = %+v, %v", s, ok)
	}
	if _, ok := d.ShapeAt([]int{0, 2}); ok {
		t.Fatalf("out of range child resolved")
	}
	if _, ok := d.ShapeAt(nil); ok {
		t.Fatalf("empty path resolved")
	}

	var order [][]int
	d.Shapes[0].Walk(func(path []int, _ *Shape) {
		order = append(order, append([]int(nil), path...))
	})
	want := [][]int{nil, {0}, {0, 0}, {1}}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("walk order = %v, want %v", order, want)
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := NewDemo()
	d.Shapes[0].AutoShapes = []Shape{{Type: Circle}}
	d.Shapes[0].AddMove(MoveUp)

	c := d.Clone()
	c.Shapes[0].AutoShapes[0].Color = 4
	c.Shapes[0].Moves[0] = MoveDown
	c.Header.Name = "changed"

	if d.Shapes[0].AutoShapes[0].Color != 0 || d.Shapes[0].Moves[0] != MoveUp || d.Header.Name != "Untitled" {
		t.Fatalf("clone shares state with the original")
	}
}

func TestValidateCatchesDirectWrites(t *testing.T) {
	d := NewDemo()
	d.Shapes[2].AutoShapes = []Shape{{Color: PaletteSize}}
	if err := d.Validate(); !errors.Is(err, ErrInvalidColorIndex) {
		t.Fatalf("err = %v, want ErrInvalidColorIndex", err)
	}

	d = NewDemo()
	d.Shapes[0].Type = ShapeType(7)
	if err := d.Validate(); !errors.Is(err, ErrInvalidShapeKind) {
		t.Fatalf("err = %v, want ErrInvalidShapeKind", err)
	}

	d = NewDemo()
	d.Shapes[1].Size = math.NaN()
	if err := d.Validate(); !errors.Is(err, ErrInvalidScale) {
		t.Fatalf("err = %v, want ErrInvalidScale", err)
	}
}

func TestValidateSizeMatchesDecodableScale(t *testing.T) {
	cases := []struct {
		name string
		size float64
		ok   bool
	}{
		{"zero", 0, true},
		{"scale_zero", -1, true},
		{"scale_half", -0.5, true},
		{"negative_scale", -3, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := NewDemo()
			d.Shapes[2].AutoShapes = []Shape{{Pos: Vec2{X: 1, Y: 1}, Size: c.size}}
			err := d.Validate()
			if !c.ok {
				if !errors.Is(err, ErrInvalidScale) {
					t.Fatalf("err = %v, want ErrInvalidScale", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			var buf bytes.Buffer
			if err := d.Encode(&buf, false); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if _, err := FromWire(buf.Bytes()); err != nil {
				t.Fatalf("valid document did not decode: %v", err)
			}
		})
	}
}

func TestClampPos(t *testing.T) {
	cases := []struct {
		in, want Vec2
	}{
		{Vec2{X: -1, Y: 3}, Vec2{X: 0, Y: 3}},
		{Vec2{X: 20, Y: 14.5}, Vec2{X: 14, Y: 14}},
		{Vec2{X: 7.5, Y: 0}, Vec2{X: 7.5, Y: 0}},
	}
	for _, c := range cases {
		if got := ClampPos(c.in); got != c.want {
			t.Errorf("ClampPos(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestColorHex(t *testing.T) {
	c, err := ParseHex("#ff6600")
	mustNoErr(t, err)
	if c != (RGB{0xFF, 0x66, 0x00}) || c.Hex() != "#FF6600" {
		t.Fatalf("parsed %v (%s)", c, c.Hex())
	}
	for _, bad := range []string{"FF6600", "#FF66", "#FF660011", "#GG6600", ""} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
}

func TestResolvePanicsOutOfRange(t *testing.T) {
	table := DefaultColorTable()
	if got := table.Resolve(4); got.R != 0xFF || got.G != 0 || got.A != 0xFF {
		t.Fatalf("Resolve(4) = %v", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("Resolve(16) did not panic")
		}
	}()
	table.Resolve(PaletteSize)
}

func TestSaveFileAppendsExtension(t *testing.T) {
	dir := t.TempDir()
	d := NewDemo()

	path, err := SaveFile(filepath.Join(dir, "song"), d)
	mustNoErr(t, err)
	if filepath.Base(path) != "song.json" {
		t.Fatalf("saved to %s", path)
	}

	got, err := LoadFile(path)
	mustNoErr(t, err)
	if !reflect.DeepEqual(got, d) {
		t.Fatalf("loaded %+v, want %+v", got, d)
	}

	keep := filepath.Join(dir, "song.chart")
	path, err = SaveFile(keep, d)
	mustNoErr(t, err)
	if path != keep {
		t.Fatalf("explicit extension replaced: %s", path)
	}

	entries, err := os.ReadDir(dir)
	mustNoErr(t, err)
	if len(entries) != 2 {
		t.Fatalf("temporary files left behind: %v", entries)
	}
}

func TestSaveFileIOErrorIsNotDecodeError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	mustNoErr(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := SaveFile(filepath.Join(blocker, "song.json"), NewDefault())
	if err == nil {
		t.Fatalf("save under a regular file should fail")
	}
	var de *DecodeError
	if errors.As(err, &de) {
		t.Fatalf("I/O failure reported as decode error: %v", err)
	}
}

func TestLoadFileRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	mustNoErr(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0644))
	if _, err := LoadFile(path); !errors.Is(err, ErrMalformedJSON) {
		t.Fatalf("err = %v, want ErrMalformedJSON", err)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not exist", err)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.json")
	mustNoErr(t, os.WriteFile(path, []byte("[]"), 0644))

	w, err := NewWatcher(path)
	mustNoErr(t, err)
	defer w.Close()

	other := filepath.Join(filepath.Dir(path), "other.json")
	mustNoErr(t, os.WriteFile(other, []byte("[]"), 0644))
	mustNoErr(t, os.WriteFile(path, []byte("[1]"), 0644))

	select {
	case name := <-w.Events:
		if name != w.Path() {
			t.Fatalf("event for %s, want %s", name, w.Path())
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for %s", path)
	}
}

func TestWatcherReportsLastWriteOfBurst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burst.json")
	mustNoErr(t, os.WriteFile(path, []byte("[]"), 0644))

	w, err := NewWatcher(path)
	mustNoErr(t, err)
	defer w.Close()

	mustNoErr(t, os.WriteFile(path, []byte("[1]"), 0644))
	time.Sleep(watchDebounce / 2)
	if n := len(w.Events); n != 0 {
		t.Fatalf("%d events before the burst ended", n)
	}
	mustNoErr(t, os.WriteFile(path, []byte("[1,2]"), 0644))

	select {
	case <-w.Events:
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for %s", path)
	}
	got, err := os.ReadFile(path)
	mustNoErr(t, err)
	if string(got) != "[1,2]" {
		t.Fatalf("read %q after event, want final write", got)
	}

	select {
	case <-w.Events:
		t.Fatalf("second event for a single burst")
	case <-time.After(3 * watchDebounce):
	}
}
