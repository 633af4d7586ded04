// Package options persists editor preferences in a YAML file under the
// user's config directory.
package options

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the options file inside Dir.
const FileName = "config.yaml"

// Options are the user-level editor settings.
type Options struct {
	DarkTheme bool `yaml:"dark_theme"`

	// ExecutablePath points at the game binary used to play a chart.
	ExecutablePath string `yaml:"executable_path"`
}

// Default returns the settings used when no file exists.
func Default() Options {
	return Options{DarkTheme: true}
}

// Dir returns the directory holding the options file.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("options: config dir: %w", err)
	}
	return filepath.Join(base, "manifest"), nil
}

// Path returns the full path of the options file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the options file from its default location.
func Load() (Options, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads options from path. A missing file yields Default with no
// error. Keys absent from the file keep their default values.
func LoadFrom(path string) (Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("options: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Default(), fmt.Errorf("options: unmarshal %s: %w", path, err)
	}
	return opts, nil
}

// Save writes opts to the default location.
func Save(opts Options) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, opts)
}

// SaveTo writes opts to path, creating parent directories.
func SaveTo(path string, opts Options) error {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("options: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("options: save %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("options: save %s: %w", path, err)
	}
	return nil
}
