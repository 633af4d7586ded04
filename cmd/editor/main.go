package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/manifest/chart"
	"github.com/milk9111/manifest/charts"
	"github.com/milk9111/manifest/options"
	"github.com/milk9111/manifest/session"
	"golang.design/x/clipboard"
)

func main() {
	chartPath := flag.String("chart", "", "Chart file to open (.json optional)")
	flag.Parse()

	log.Println("Editor starting...")

	opts, err := options.Load()
	if err != nil {
		log.Printf("options: %v; using defaults", err)
	}

	s := session.New(nil)
	if *chartPath != "" {
		path := chart.WithExt(*chartPath)
		if err := s.Import(path); err != nil {
			log.Printf("Failed to open chart %s: %v", path, err)
		}
	}
	if s.Path() == "" {
		demo, err := charts.Load(charts.Demo)
		if err != nil {
			log.Printf("Failed to load demo chart: %v", err)
			demo = chart.NewDemo()
		}
		s = session.New(demo)
	}

	clipboardOK := true
	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
		clipboardOK = false
	}

	editor := NewEditor(s, opts, clipboardOK)
	defer editor.Close()

	ebiten.SetWindowTitle("Manifest")
	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(editor); err != nil {
		log.Fatal(err)
	}
}
