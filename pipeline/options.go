package pipeline

import (
	"go.uber.org/zap"

	"github.com/chrisuehlinger/viberender/layout"
)

// Option configures Load and RenderAll.
type Option func(*options)

type options struct {
	log         *zap.Logger
	userAgent   bool
	embedded    bool
	debug       bool
	measurer    layout.TextMeasurer
	sheets      *SheetCache
	concurrency int
}

func newOptions(opts []Option) *options {
	o := &options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithUserAgentStyles puts the default user agent sheet before any other
// styles.
func WithUserAgentStyles(enabled bool) Option {
	return func(o *options) { o.userAgent = enabled }
}

// WithEmbeddedStyles applies the document's own <style> elements before the
// caller's CSS.
func WithEmbeddedStyles(enabled bool) Option {
	return func(o *options) { o.embedded = enabled }
}

// WithDebugOutlines paints an outline around every box.
func WithDebugOutlines(enabled bool) Option {
	return func(o *options) { o.debug = enabled }
}

// WithTextMeasurer sets how text height is measured during layout.
func WithTextMeasurer(m layout.TextMeasurer) Option {
	return func(o *options) { o.measurer = m }
}

// WithSheetCache shares parsed stylesheets between loads.
func WithSheetCache(c *SheetCache) Option {
	return func(o *options) { o.sheets = c }
}

// WithConcurrency bounds how many documents RenderAll works on at once.
// Zero or less means no bound.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}
