package chart

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Ext is the chart file extension.
const Ext = ".json"

// WithExt appends Ext to path when it has no extension at all.
func WithExt(path string) string {
	if filepath.Ext(path) == "" {
		return path + Ext
	}
	return path
}

// SaveFile writes doc as pretty JSON and returns the path actually written.
// The data goes to a temporary file in the same directory first, so a failed
// save leaves any previous file intact.
func SaveFile(path string, doc *Document) (string, error) {
	path = WithExt(path)

	var buf bytes.Buffer
	if err := doc.Encode(&buf, true); err != nil {
		return "", fmt.Errorf("chart: encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return path, nil
}

// LoadFile reads and decodes the chart at path. I/O failures are returned
// as-is; format failures are *DecodeError.
func LoadFile(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromWire(b)
}
