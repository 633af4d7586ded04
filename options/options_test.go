package options

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	opts, err := LoadFrom(filepath.Join(t.TempDir(), "nope", FileName))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if opts != Default() {
		t.Fatalf("got %+v, want defaults", opts)
	}
	if !opts.DarkTheme || opts.ExecutablePath != "" {
		t.Fatalf("defaults = %+v", opts)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest", FileName)
	want := Options{DarkTheme: false, ExecutablePath: "/opt/game/run"}
	if err := SaveTo(path, want); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestLoadPartialFile(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want Options
	}{
		{"path_only", "executable_path: game.exe\n", Options{DarkTheme: true, ExecutablePath: "game.exe"}},
		{"light", "dark_theme: false\n", Options{}},
		{"empty", "", Default()},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			if err := os.WriteFile(path, []byte(c.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := LoadFrom(path)
			if err != nil {
				t.Fatalf("LoadFrom: %v", err)
			}
			if got != c.want {
				t.Fatalf("got %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("dark_theme: [nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadFrom(path)
	if err == nil {
		t.Fatalf("malformed file loaded")
	}
	if opts != Default() {
		t.Fatalf("failed load returned %+v", opts)
	}
}
