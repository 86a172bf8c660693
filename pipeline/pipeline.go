// Package pipeline ties the stages together: it parses a document and its
// styles once and renders frames from them at any width.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chrisuehlinger/viberender/css"
	"github.com/chrisuehlinger/viberender/dom"
	"github.com/chrisuehlinger/viberender/html"
	"github.com/chrisuehlinger/viberender/layout"
	"github.com/chrisuehlinger/viberender/paint"
	"github.com/chrisuehlinger/viberender/style"
)

// UntitledTitle is shown for documents without a <title>.
const UntitledTitle = "Untitled"

// Source is one document to render.
type Source struct {
	Name string
	HTML string
	CSS  string
}

// Page is a parsed document with its combined stylesheet.
type Page struct {
	Name       string
	Document   *dom.Node
	Stylesheet *css.Stylesheet
	CSSErrors  []*css.ParseError
	// Title is empty when the markup has no <title>; HasTitle tells the
	// two cases apart.
	Title    string
	HasTitle bool

	opts *options
}

// Frame is one rendering of a page.
type Frame struct {
	Width    float64
	Styles   style.Map
	Root     *layout.LayoutBox
	Commands []paint.Command
}

// Height returns the height of the laid out content.
func (f *Frame) Height() float64 {
	if f.Root == nil {
		return 0
	}
	return f.Root.Dimensions.MarginBox().Height
}

// DisplayTitle returns the page title, or UntitledTitle if there is none.
func (p *Page) DisplayTitle() string {
	if !p.HasTitle || p.Title == "" {
		return UntitledTitle
	}
	return p.Title
}

// Load parses src. Sheets are combined in cascade order: the user agent
// sheet, then the document's <style> elements, then src.CSS.
func Load(src Source, opts ...Option) *Page {
	return load(src, newOptions(opts))
}

func load(src Source, o *options) *Page {
	log := o.log.With(zap.String("document", src.Name))
	start := time.Now()

	p := &Page{
		Name:       src.Name,
		Document:   html.Parse(src.HTML),
		Stylesheet: &css.Stylesheet{},
		opts:       o,
	}
	p.Title, p.HasTitle = html.ExtractTitle(src.HTML)

	var sheets []string
	if o.userAgent {
		sheets = append(sheets, css.UserAgentCSS)
	}
	if o.embedded {
		sheets = append(sheets, html.StyleText(p.Document)...)
	}
	if src.CSS != "" {
		sheets = append(sheets, src.CSS)
	}
	for _, text := range sheets {
		sheet, errs := o.parseSheet(text)
		p.Stylesheet = p.Stylesheet.Append(sheet)
		p.CSSErrors = append(p.CSSErrors, errs...)
	}
	for _, err := range p.CSSErrors {
		log.Warn("skipped css", zap.Error(err))
	}

	log.Debug("loaded document",
		zap.Int("elements", len(dom.Elements(p.Document))),
		zap.Int("sheets", len(sheets)),
		zap.Int("rules", len(p.Stylesheet.Rules)),
		zap.Int("css_errors", len(p.CSSErrors)),
		zap.Duration("elapsed", time.Since(start)))
	return p
}

// Render resolves styles, lays the page out at width and paints it. The
// page is not modified, so Render may be called repeatedly.
func (p *Page) Render(width float64) *Frame {
	o := p.opts
	if o == nil {
		o = newOptions(nil)
	}
	start := time.Now()

	styles := style.Resolve(p.Document, p.Stylesheet, style.WithLogger(o.log))

	var layoutOpts []layout.Option
	if o.measurer != nil {
		layoutOpts = append(layoutOpts, layout.WithTextMeasurer(o.measurer))
	}
	root := layout.Layout(p.Document, styles, width, layoutOpts...)

	var paintOpts []paint.Option
	if o.debug {
		paintOpts = append(paintOpts, paint.WithDebugOutlines())
	}
	cmds := paint.Paint(root, paintOpts...)

	f := &Frame{Width: width, Styles: styles, Root: root, Commands: cmds}
	o.log.Debug("rendered frame",
		zap.String("document", p.Name),
		zap.Float64("width", width),
		zap.Float64("height", f.Height()),
		zap.Int("commands", len(cmds)),
		zap.Duration("elapsed", time.Since(start)))
	return f
}

// RenderAll loads and renders every source at width, several at a time.
// Frames are returned in source order. The only error is ctx being done
// before every document has started.
func RenderAll(ctx context.Context, sources []Source, width float64, opts ...Option) ([]*Frame, error) {
	o := newOptions(opts)
	frames := make([]*Frame, len(sources))

	g, groupCtx := errgroup.WithContext(ctx)
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}
	for i, src := range sources {
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			frames[i] = load(src, o).Render(width)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rendering %d documents: %w", len(sources), err)
	}
	return frames, nil
}
