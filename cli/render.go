package cli

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/viberender/config"
	"github.com/chrisuehlinger/viberender/layout"
	"github.com/chrisuehlinger/viberender/paint"
	"github.com/chrisuehlinger/viberender/pipeline"
	"github.com/chrisuehlinger/viberender/render"
)

var errPNGSingleDocument = errors.New("png output takes exactly one document")

func newRenderCmd(a *app) *cobra.Command {
	var (
		cssFiles []string
		outFile  string
	)
	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Lay out and paint HTML documents",
		Long: `Render parses each HTML file, applies the user agent sheet, the document's
own <style> elements and every --css file in that order, and prints the
result as a box tree, a paint command listing, JSON commands or a PNG image.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, args, cssFiles, outFile)
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&cssFiles, "css", nil, "stylesheet applied to every document (repeatable)")
	f.StringVarP(&outFile, "out", "o", "", "write output to this file instead of stdout")
	f.Float64P("width", "w", 800, "available width in pixels")
	f.StringP("format", "f", config.FormatTree, "output format: tree, commands, json or png")
	f.Bool("debug-outlines", false, "outline every box")
	f.Int("concurrency", 4, "documents rendered at once, 0 for no limit")
	f.Bool("user-agent", true, "apply the default user agent sheet")
	f.Bool("embedded", true, "apply the documents' <style> elements")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, args, cssFiles []string, outFile string) error {
	rc := a.cfg.Render
	if rc.Format == config.FormatPNG && len(args) != 1 {
		return errPNGSingleDocument
	}

	sheet, err := readCSS(cssFiles)
	if err != nil {
		return err
	}
	sources := make([]pipeline.Source, 0, len(args))
	for _, path := range args {
		data, err := readDocument(path)
		if err != nil {
			return err
		}
		sources = append(sources, pipeline.Source{Name: path, HTML: data, CSS: sheet})
	}

	frames, err := pipeline.RenderAll(cmd.Context(), sources, rc.Width,
		pipeline.WithLogger(a.log),
		pipeline.WithUserAgentStyles(rc.UserAgentStyles),
		pipeline.WithEmbeddedStyles(rc.EmbeddedStyles),
		pipeline.WithDebugOutlines(rc.DebugOutlines),
		pipeline.WithConcurrency(rc.Concurrency),
		pipeline.WithSheetCache(pipeline.NewSheetCache(0, 0)),
	)
	if err != nil {
		return err
	}

	return withOutput(cmd, outFile, func(w io.Writer) error {
		for i, frame := range frames {
			if len(frames) > 1 && rc.Format != config.FormatJSON {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "== %s ==\n", sources[i].Name)
			}
			if err := writeFrame(w, rc.Format, frame); err != nil {
				return fmt.Errorf("writing %s: %w", sources[i].Name, err)
			}
		}
		a.log.Debug("wrote output", zap.String("format", rc.Format), zap.Int("documents", len(frames)))
		return nil
	})
}

// readCSS concatenates the files in order. Rules keep their file order in
// the cascade.
func readCSS(paths []string) (string, error) {
	var sb strings.Builder
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading stylesheet %s: %w", path, err)
		}
		sb.Write(data)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func writeFrame(w io.Writer, format string, frame *pipeline.Frame) error {
	switch format {
	case config.FormatTree:
		_, err := io.WriteString(w, layout.Dump(frame.Root))
		return err
	case config.FormatCommands:
		for _, c := range frame.Commands {
			if _, err := fmt.Fprintln(w, paint.Format(c)); err != nil {
				return err
			}
		}
		return nil
	case config.FormatJSON:
		data, err := paint.MarshalCommands(frame.Commands)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case config.FormatPNG:
		width, height := pixels(frame.Width), pixels(frame.Height())
		canvas := render.Rasterize(frame.Commands, width, height)
		return png.Encode(w, canvas.ToImage())
	}
	return fmt.Errorf("unknown format %q", format)
}

// pixels rounds a layout length up to a whole, non-empty image side no
// larger than render.MaxSide.
func pixels(v float64) int {
	if math.IsNaN(v) || v < 1 {
		return 1
	}
	if v > render.MaxSide {
		return render.MaxSide
	}
	return int(math.Ceil(v))
}

// withOutput runs fn against the command's stdout, or against path when it
// is set.
func withOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) (err error) {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()
	return fn(f)
}
