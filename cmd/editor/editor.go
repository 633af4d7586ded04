package main

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/manifest/autoshape"
	"github.com/milk9111/manifest/chart"
	"github.com/milk9111/manifest/geom"
	"github.com/milk9111/manifest/options"
	"github.com/milk9111/manifest/session"
	"golang.design/x/clipboard"
)

// scriptTimeout bounds a single auto-shape script run.
const scriptTimeout = time.Second

// Editor is the ebiten game driving the chart editor window.
type Editor struct {
	session *session.Session
	opts    options.Options

	ui    *ebitenui.UI
	panel *LeftPanelUI

	watcher      *chart.Watcher
	clipboardOK  bool
	width        int
	height       int
	canvasColors palette
}

// NewEditor builds the window state around s.
func NewEditor(s *session.Session, opts options.Options, clipboardOK bool) *Editor {
	e := &Editor{
		session:      s,
		opts:         opts,
		clipboardOK:  clipboardOK,
		canvasColors: themePalette(opts.DarkTheme),
	}
	e.ui, e.panel = BuildEditorUI(&e.opts, PanelHandlers{
		Header:      func() *chart.Header { return &e.session.Document().Header },
		New:         e.newDocument,
		Import:      e.importFile,
		Export:      e.exportFile,
		Play:        e.play,
		SaveOptions: e.saveOptions,
	})
	if path := s.Path(); path != "" {
		e.panel.File.SetPath(path)
		e.watch(path)
	}
	return e
}

func (e *Editor) status(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Print(msg)
	e.panel.File.SetStatus(msg)
}

func (e *Editor) newDocument() {
	e.session.NewDocument()
	e.panel.Header.Sync(&e.session.Document().Header)
	e.status("new chart")
}

func (e *Editor) importFile(path string) {
	if path == "" {
		e.status("import: no file name")
		return
	}
	if err := e.session.Import(path); err != nil {
		e.status("import failed: %v", err)
		return
	}
	e.panel.Header.Sync(&e.session.Document().Header)
	e.watch(path)
	e.status("imported %s", path)
}

func (e *Editor) exportFile(path string) {
	if path == "" {
		e.status("export: no file name")
		return
	}
	saved, err := e.session.Export(path)
	if err != nil {
		e.status("export failed: %v", err)
		return
	}
	e.panel.File.SetPath(saved)
	e.watch(saved)
	e.status("saved to %s", saved)
}

// play exports the chart and hands it to the configured game executable.
func (e *Editor) play(path string) {
	if e.opts.ExecutablePath == "" {
		e.status("play: no game executable set in options")
		return
	}
	e.exportFile(path)
	if e.session.Path() == "" {
		return
	}
	cmd := exec.Command(e.opts.ExecutablePath, e.session.Path())
	if err := cmd.Start(); err != nil {
		e.status("play failed: %v", err)
		return
	}
	go cmd.Wait()
}

func (e *Editor) saveOptions() {
	if err := options.Save(e.opts); err != nil {
		e.status("options: %v", err)
		return
	}
	e.status("options saved")
}

// watch follows path for external edits, replacing any previous watch.
func (e *Editor) watch(path string) {
	if e.watcher != nil {
		if e.watcher.Path() == path {
			return
		}
		e.watcher.Close()
		e.watcher = nil
	}
	w, err := chart.NewWatcher(path)
	if err != nil {
		log.Printf("watch %s: %v", path, err)
		return
	}
	e.watcher = w
}

func (e *Editor) drainWatcher() {
	if e.watcher == nil {
		return
	}
	for {
		select {
		case _, ok := <-e.watcher.Events:
			if !ok {
				e.watcher = nil
				return
			}
			changed, err := e.session.Reload()
			if err != nil {
				e.status("reload failed: %v", err)
				continue
			}
			if changed {
				e.panel.Header.Sync(&e.session.Document().Header)
				e.status("reloaded %s", e.session.Path())
			}
		case err := <-e.watcher.Errors:
			if err != nil {
				log.Printf("watcher: %v", err)
			}
		default:
			return
		}
	}
}

// canvas is the screen area right of the control panel.
func (e *Editor) canvas() geom.Rect {
	return geom.Rect{
		Min: geom.Vec2{X: leftPanelWidth},
		Max: geom.Vec2{X: float64(e.width), Y: float64(e.height)},
	}
}

func (e *Editor) typing() bool {
	if fw := e.ui.GetFocusedWidget(); fw != nil {
		if _, ok := fw.(*widget.TextInput); ok {
			return true
		}
	}
	return false
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

func (e *Editor) Update() error {
	e.ui.Update()
	e.drainWatcher()

	if !e.typing() {
		e.handleKeys()
	}
	e.handleMouse()
	return nil
}

var moveKeys = map[ebiten.Key]chart.MoveStep{
	ebiten.KeyArrowUp:    chart.MoveUp,
	ebiten.KeyArrowDown:  chart.MoveDown,
	ebiten.KeyArrowLeft:  chart.MoveLeft,
	ebiten.KeyArrowRight: chart.MoveRight,
	ebiten.KeyEqual:      chart.MoveExpand,
	ebiten.KeyMinus:      chart.MoveShrink,
}

var typeKeys = map[ebiten.Key]chart.ShapeType{
	ebiten.KeyDigit1: chart.Circle,
	ebiten.KeyDigit2: chart.Square,
	ebiten.KeyDigit3: chart.Triangle,
}

func (e *Editor) handleKeys() {
	if ctrlPressed() {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			e.exportFile(e.panel.File.Path())
		case inpututil.IsKeyJustPressed(ebiten.KeyO):
			e.importFile(e.panel.File.Path())
		case inpututil.IsKeyJustPressed(ebiten.KeyC):
			e.copySelected()
		case inpututil.IsKeyJustPressed(ebiten.KeyV):
			e.paste()
		}
		return
	}

	for key, step := range moveKeys {
		if inpututil.IsKeyJustPressed(key) {
			_ = e.session.Step(step)
		}
	}
	for key, t := range typeKeys {
		if inpututil.IsKeyJustPressed(key) {
			_ = e.session.SetType(t)
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		_ = e.session.CycleColor(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		_ = e.session.CycleColor(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		e.session.AddShape(chart.DefaultShape())
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		_ = e.session.RemoveSelected()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		e.mirror()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		e.session.ClearSelection()
	}
}

func (e *Editor) handleMouse() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	canvas := e.canvas()
	p := geom.Vec2{X: float64(mx), Y: float64(my)}
	if !canvas.Contains(p) {
		return
	}
	t := geom.NewGridTransform(canvas)
	e.session.SelectAt(t.Invert(p))
}

func (e *Editor) mirror() {
	ctx, cancel := context.WithTimeout(context.Background(), scriptTimeout)
	defer cancel()
	if err := e.session.GenerateAutoShapes(ctx, autoshape.Mirror); err != nil {
		e.status("mirror: %v", err)
	}
}

func (e *Editor) copySelected() {
	if !e.clipboardOK {
		e.status("clipboard unavailable")
		return
	}
	data, err := e.session.CopySelected()
	if err != nil {
		e.status("copy: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
}

func (e *Editor) paste() {
	if !e.clipboardOK {
		e.status("clipboard unavailable")
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	if err := e.session.Paste(data); err != nil {
		e.status("paste: %v", err)
	}
}

func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(e.canvasColors.canvas)

	canvas := e.canvas()
	drawPrimitives(screen, e.session.Frame(canvas))
	if shape, _, ok := e.session.Selected(); ok {
		drawSelection(screen, geom.NewGridTransform(canvas), shape)
	}

	e.ui.Draw(screen)
}

func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.width, e.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close stops the file watcher.
func (e *Editor) Close() {
	if e.watcher != nil {
		e.watcher.Close()
	}
}
