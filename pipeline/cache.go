package pipeline

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/chrisuehlinger/viberender/css"
)

// SheetCache keeps parsed stylesheets keyed by their source text. It is
// safe for concurrent use. Cached sheets are shared and must not be
// modified.
type SheetCache struct {
	cache *cache.Cache
}

type parsedSheet struct {
	sheet *css.Stylesheet
	errs  []*css.ParseError
}

// NewSheetCache creates a cache whose entries expire after ttl and are
// purged every cleanup interval. A ttl of zero or less keeps entries until
// the cache is dropped.
func NewSheetCache(ttl, cleanup time.Duration) *SheetCache {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &SheetCache{cache: cache.New(ttl, cleanup)}
}

// Parse returns the parsed form of text, parsing it on a miss.
func (c *SheetCache) Parse(text string) (*css.Stylesheet, []*css.ParseError) {
	if x, found := c.cache.Get(text); found {
		p := x.(parsedSheet)
		return p.sheet, p.errs
	}
	sheet, errs := css.Parse(text)
	c.cache.Set(text, parsedSheet{sheet: sheet, errs: errs}, cache.DefaultExpiration)
	return sheet, errs
}

// Len returns the number of cached sheets, including expired ones not yet
// purged.
func (c *SheetCache) Len() int {
	return c.cache.ItemCount()
}

func (o *options) parseSheet(text string) (*css.Stylesheet, []*css.ParseError) {
	if o.sheets != nil {
		return o.sheets.Parse(text)
	}
	return css.Parse(text)
}
