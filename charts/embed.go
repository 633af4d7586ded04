// Package charts bundles the sample charts shipped with the editor.
package charts

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/milk9111/manifest/chart"
)

// Demo is the chart the editor opens when no file is given.
const Demo = "demo.json"

//go:embed *.json
var ChartsFS embed.FS

// Names lists the embedded charts in lexical order.
func Names() []string {
	matches, _ := fs.Glob(ChartsFS, "*"+chart.Ext)
	sort.Strings(matches)
	return matches
}

// Load decodes the embedded chart called name.
func Load(name string) (*chart.Document, error) {
	data, err := fs.ReadFile(ChartsFS, name)
	if err != nil {
		return nil, fmt.Errorf("charts: read %s: %w", name, err)
	}
	doc, err := chart.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("charts: decode %s: %w", name, err)
	}
	return doc, nil
}
