package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/manifest/chart"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeChart(t *testing.T, doc *chart.Document) string {
	t.Helper()
	path, err := chart.SaveFile(filepath.Join(t.TempDir(), "chart"), doc)
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	return path
}

func TestValidate(t *testing.T) {
	good := writeChart(t, chart.NewDemo())
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"name":"x"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "validate", good)
	if err != nil || !strings.Contains(out, "ok (3 shapes)") {
		t.Fatalf("validate good: err=%v out=%q", err, out)
	}

	out, err = run(t, "validate", good, bad)
	if err == nil {
		t.Fatalf("validate accepted %s", bad)
	}
	if !strings.Contains(out, "bad.json: chart: malformed json") {
		t.Fatalf("validate output %q", out)
	}
}

func TestNewAndFmt(t *testing.T) {
	out, err := run(t, "new", "--demo")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	doc, err := chart.FromWire([]byte(out))
	if err != nil || len(doc.Shapes) != 3 {
		t.Fatalf("new --demo printed %q (%v)", out, err)
	}

	path := filepath.Join(t.TempDir(), "song.json")
	compact := `[{"name":"a","genre":"b","level_author":"c","song_author":"d","background_effect":"e","bpm":99,"bg_color":1}]`
	if err := os.WriteFile(path, []byte(compact), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "fmt", "-w", path); err != nil {
		t.Fatalf("fmt: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `    {`+"\n"+`        "name": "a",`) || !strings.Contains(string(got), `"offset": 32`) {
		t.Fatalf("fmt wrote %s", got)
	}
}

func TestNewToFileAddsExtension(t *testing.T) {
	base := filepath.Join(t.TempDir(), "fresh")
	if _, err := run(t, "new", "-o", base); err != nil {
		t.Fatalf("new: %v", err)
	}
	doc, err := chart.LoadFile(base + ".json")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(doc.Shapes) != 0 || doc.Header.Name != "Untitled" {
		t.Fatalf("new wrote %+v", doc)
	}
}

func TestRender(t *testing.T) {
	path := writeChart(t, chart.NewDemo())
	png170 := filepath.Join(t.TempDir(), "out.png")
	if _, err := run(t, "render", path, "-o", png170, "--size", "170"); err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := os.Open(png170)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 170 || b.Dy() != 170 {
		t.Fatalf("image bounds %v", b)
	}
	// Inside the demo square, which uses palette entry 0 (white).
	if r, g, b, _ := img.At(45, 35).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
		t.Fatalf("square pixel = %v", img.At(45, 35))
	}
	// Background outside the grid is palette entry 15 (black).
	if r, g, b, _ := img.At(165, 165).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Fatalf("background pixel = %v", img.At(165, 165))
	}

	if _, err := run(t, "render", path); err == nil {
		t.Fatalf("render without --output succeeded")
	}
}

func TestAutoshapeMirror(t *testing.T) {
	path := writeChart(t, chart.NewDemo())
	if _, err := run(t, "autoshape", path, "--index", "1", "-w"); err != nil {
		t.Fatalf("autoshape: %v", err)
	}
	doc, err := chart.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := len(doc.Shapes[1].AutoShapes); got != 3 {
		t.Fatalf("square has %d auto-shapes, want 3", got)
	}

	if _, err := run(t, "autoshape", path, "--index", "9"); err == nil {
		t.Fatalf("out of range index accepted")
	}

	script := filepath.Join(t.TempDir(), "bad.tengo")
	if err := os.WriteFile(script, []byte(`shapes = [{x: 1, y: 1, shape: 5, color: 0}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "autoshape", path, "--script", script); err == nil {
		t.Fatalf("invalid script output accepted")
	}
}
