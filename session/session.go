// Package session holds the editor's working state: the open chart, the file
// it came from and the current shape selection.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/milk9111/manifest/autoshape"
	"github.com/milk9111/manifest/chart"
	"github.com/milk9111/manifest/geom"
	"github.com/milk9111/manifest/pick"
)

// ErrNoSelection is returned by operations that need a selected shape.
var ErrNoSelection = errors.New("session: no shape selected")

// Session owns one Document. It is not safe for concurrent use.
type Session struct {
	doc      *chart.Document
	path     string
	selected []int

	index *pick.Index

	// written is the last content saved to path, used to ignore watcher
	// events caused by our own saves.
	written []byte
}

// New starts a session on doc with no backing file.
func New(doc *chart.Document) *Session {
	if doc == nil {
		doc = chart.NewDefault()
	}
	return &Session{doc: doc}
}

// Document returns the open chart. Callers that edit it directly must call
// Touch afterwards.
func (s *Session) Document() *chart.Document {
	return s.doc
}

// Path returns the file the chart was last imported from or exported to.
func (s *Session) Path() string {
	return s.path
}

// Touch drops cached state derived from the shapes.
func (s *Session) Touch() {
	s.index = nil
}

func (s *Session) replace(doc *chart.Document) {
	s.doc = doc
	s.selected = nil
	s.Touch()
}

// NewDocument discards the open chart and starts an empty one. The file path
// is kept so the next export goes to the same place.
func (s *Session) NewDocument() {
	s.replace(chart.NewDefault())
}

// Import replaces the open chart with the file at path. On failure the open
// chart is left untouched.
func (s *Session) Import(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("session: import %s: %w", path, err)
	}
	doc, err := chart.FromWire(data)
	if err != nil {
		return fmt.Errorf("session: import %s: %w", path, err)
	}
	s.replace(doc)
	s.path = path
	s.written = data
	return nil
}

// Export saves the open chart to path, adding the chart extension when path
// has none, and returns the path written.
func (s *Session) Export(path string) (string, error) {
	saved, err := chart.SaveFile(path, s.doc)
	if err != nil {
		return "", fmt.Errorf("session: export: %w", err)
	}
	s.path = saved
	if data, err := os.ReadFile(saved); err == nil {
		s.written = data
	}
	return saved, nil
}

// Reload re-reads the backing file after an external change. It reports
// whether the open chart was replaced; content identical to the last import
// or export is ignored. A file that no longer decodes leaves the open chart
// in place and returns the error.
func (s *Session) Reload() (bool, error) {
	if s.path == "" {
		return false, nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false, fmt.Errorf("session: reload %s: %w", s.path, err)
	}
	if bytes.Equal(data, s.written) {
		return false, nil
	}
	doc, err := chart.FromWire(data)
	if err != nil {
		return false, fmt.Errorf("session: reload %s: %w", s.path, err)
	}
	s.replace(doc)
	s.written = data
	return true, nil
}

// Frame projects the open chart into out.
func (s *Session) Frame(out geom.Rect) []geom.Primitive {
	return geom.ProjectDocument(s.doc, out)
}

// SelectAt selects the topmost shape under p, in grid units, and reports
// whether anything was hit. A miss clears the selection.
func (s *Session) SelectAt(p chart.Vec2) bool {
	if s.index == nil {
		s.index = pick.NewIndex(s.doc.Shapes)
	}
	path, ok := s.index.At(p)
	s.selected = path
	return ok
}

// Select selects the shape at path. An unknown path clears the selection.
func (s *Session) Select(path []int) bool {
	if _, ok := s.doc.ShapeAt(path); !ok {
		s.selected = nil
		return false
	}
	s.selected = append([]int(nil), path...)
	return true
}

// ClearSelection deselects any shape.
func (s *Session) ClearSelection() {
	s.selected = nil
}

// Selected returns the selected shape and its path.
func (s *Session) Selected() (*chart.Shape, []int, bool) {
	if len(s.selected) == 0 {
		return nil, nil, false
	}
	shape, ok := s.doc.ShapeAt(s.selected)
	if !ok {
		s.selected = nil
		return nil, nil, false
	}
	return shape, s.selected, true
}

// AddShape places shape on top of the chart and selects it.
func (s *Session) AddShape(shape chart.Shape) {
	s.doc.AppendShape(shape)
	s.selected = []int{len(s.doc.Shapes) - 1}
	s.Touch()
}

// RemoveSelected deletes the selected shape together with its auto-shapes.
func (s *Session) RemoveSelected() error {
	if len(s.selected) == 0 {
		return ErrNoSelection
	}
	if len(s.selected) == 1 {
		if _, err := s.doc.RemoveShape(s.selected[0]); err != nil {
			return err
		}
	} else {
		parentPath := s.selected[:len(s.selected)-1]
		parent, ok := s.doc.ShapeAt(parentPath)
		if !ok {
			return ErrNoSelection
		}
		i := s.selected[len(s.selected)-1]
		if i < 0 || i >= len(parent.AutoShapes) {
			return ErrNoSelection
		}
		parent.AutoShapes = append(parent.AutoShapes[:i], parent.AutoShapes[i+1:]...)
	}
	s.selected = nil
	s.Touch()
	return nil
}

// Step applies m to the selected shape and records it in the shape's move
// list. Positions stay on the playfield and size never drops below zero.
func (s *Session) Step(m chart.MoveStep) error {
	shape, _, ok := s.Selected()
	if !ok {
		return ErrNoSelection
	}
	switch m {
	case chart.MoveUp:
		shape.Pos.Y--
	case chart.MoveDown:
		shape.Pos.Y++
	case chart.MoveLeft:
		shape.Pos.X--
	case chart.MoveRight:
		shape.Pos.X++
	case chart.MoveExpand:
		shape.Size++
	case chart.MoveShrink:
		shape.Size = max(shape.Size-1, 0)
	default:
		return fmt.Errorf("session: unknown move %d", m)
	}
	shape.Pos = chart.ClampPos(shape.Pos)
	shape.AddMove(m)
	s.Touch()
	return nil
}

// SetType changes the kind of the selected shape.
func (s *Session) SetType(t chart.ShapeType) error {
	if !t.Valid() {
		return fmt.Errorf("session: set type: %w", chart.ErrInvalidShapeKind)
	}
	shape, _, ok := s.Selected()
	if !ok {
		return ErrNoSelection
	}
	shape.Type = t
	s.Touch()
	return nil
}

// CycleColor moves the selected shape's color by delta, wrapping around the
// palette.
func (s *Session) CycleColor(delta int) error {
	shape, _, ok := s.Selected()
	if !ok {
		return ErrNoSelection
	}
	n := (int(shape.Color) + delta) % chart.PaletteSize
	if n < 0 {
		n += chart.PaletteSize
	}
	shape.Color = chart.ColorIndex(n)
	s.Touch()
	return nil
}

// CopySelected returns the selected shape in its wire form.
func (s *Session) CopySelected() ([]byte, error) {
	shape, _, ok := s.Selected()
	if !ok {
		return nil, ErrNoSelection
	}
	return chart.EncodeShape(*shape)
}

// Paste decodes a shape in wire form and adds it on top.
func (s *Session) Paste(data []byte) error {
	shape, err := chart.DecodeShape(bytes.TrimSpace(data))
	if err != nil {
		return fmt.Errorf("session: paste: %w", err)
	}
	s.AddShape(shape)
	return nil
}

// GenerateAutoShapes replaces the selected shape's auto-shapes with the
// output of the script src.
func (s *Session) GenerateAutoShapes(ctx context.Context, src string) error {
	shape, _, ok := s.Selected()
	if !ok {
		return ErrNoSelection
	}
	generated, err := autoshape.Generate(ctx, src, *shape)
	if err != nil {
		return err
	}
	shape.AutoShapes = generated
	s.Touch()
	return nil
}
