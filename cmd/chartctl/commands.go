package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/milk9111/manifest/autoshape"
	"github.com/milk9111/manifest/chart"
	"github.com/milk9111/manifest/charts"
	"github.com/milk9111/manifest/geom"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check that chart files decode",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				doc, err := chart.LoadFile(path)
				if err == nil {
					err = doc.Validate()
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "%s: ok (%d shapes)\n", path, len(doc.Shapes))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d charts invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newFmtCmd() *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Rewrite a chart in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := chart.LoadFile(args[0])
			if err != nil {
				return err
			}
			return emit(cmd, doc, args[0], write)
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to FILE instead of stdout")
	return cmd
}

func newNewCmd() *cobra.Command {
	var (
		output string
		demo   bool
	)
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a chart with default header",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := chart.NewDefault()
			if demo {
				var err error
				if doc, err = charts.Load(charts.Demo); err != nil {
					return err
				}
			}
			return emit(cmd, doc, output, output != "")
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&demo, "demo", false, "Start from the demo chart")
	return cmd
}

func newRenderCmd() *cobra.Command {
	var (
		output string
		size   int
	)
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Draw a chart to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("render: --output is required")
			}
			if size <= 0 {
				return fmt.Errorf("render: invalid size %d", size)
			}
			doc, err := chart.LoadFile(args[0])
			if err != nil {
				return err
			}

			img := image.NewRGBA(image.Rect(0, 0, size, size))
			geom.Rasterize(img, geom.ProjectDocument(doc, geom.RectFromSize(0, 0, float64(size), float64(size))))

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("render: %w", err)
			}
			if err := png.Encode(f, img); err != nil {
				f.Close()
				return fmt.Errorf("render: encode %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file to write")
	cmd.Flags().IntVar(&size, "size", 17*32, "Edge length of the image in pixels")
	return cmd
}

func newAutoshapeCmd() *cobra.Command {
	var (
		script  string
		index   int
		write   bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "autoshape FILE",
		Short: "Generate auto-shapes for one shape with a tengo script",
		Long: `autoshape runs a tengo script for the top-level shape at --index and
replaces that shape's auto-shapes with the script output. --script is a path
to a script file or "mirror" for the built-in mirror script.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadScript(script)
			if err != nil {
				return err
			}
			doc, err := chart.LoadFile(args[0])
			if err != nil {
				return err
			}
			if index < 0 || index >= len(doc.Shapes) {
				return fmt.Errorf("autoshape: index %d out of range [0, %d)", index, len(doc.Shapes))
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			shapes, err := autoshape.Generate(ctx, src, doc.Shapes[index])
			if err != nil {
				return err
			}
			doc.Shapes[index].AutoShapes = shapes
			return emit(cmd, doc, args[0], write)
		},
	}
	cmd.Flags().StringVar(&script, "script", "mirror", `Script file, or "mirror"`)
	cmd.Flags().IntVar(&index, "index", 0, "Index of the top-level shape")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to FILE instead of stdout")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Script run time limit")
	return cmd
}

func loadScript(name string) (string, error) {
	if strings.EqualFold(name, "mirror") {
		return autoshape.Mirror, nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("autoshape: %w", err)
	}
	return string(b), nil
}

// emit writes doc to path when toFile is set, otherwise to stdout.
func emit(cmd *cobra.Command, doc *chart.Document, path string, toFile bool) error {
	if !toFile {
		return doc.Encode(cmd.OutOrStdout(), true)
	}
	saved, err := chart.SaveFile(path, doc)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", saved)
	return nil
}
