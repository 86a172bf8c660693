// Package style computes a style for every element of a document from a
// stylesheet, the elements' inline style attributes and inheritance.
package style

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/viberender/css"
	"github.com/chrisuehlinger/viberender/dom"
)

// ComputedStyle maps property names to their computed values.
type ComputedStyle map[string]string

// Get returns the value of a property, or "" if it has none.
func (cs ComputedStyle) Get(name string) string {
	return cs[name]
}

// FontSize returns the element's font size in px.
func (cs ComputedStyle) FontSize() float64 {
	if l, ok := css.ParseLength(cs["font-size"]); ok && l.Unit == "px" && l.Value > 0 {
		return l.Value
	}
	return DefaultFontSize
}

// Map holds the computed style of every element node of a tree.
type Map map[*dom.Node]ComputedStyle

// Option configures Resolve.
type Option func(*resolver)

// WithLogger sets the logger for inline style problems.
func WithLogger(log *zap.Logger) Option {
	return func(r *resolver) {
		if log != nil {
			r.log = log
		}
	}
}

type resolver struct {
	log          *zap.Logger
	sheet        *css.Stylesheet
	styles       Map
	rootFontSize float64
}

// Resolve computes the style of every element under root. The tree is not
// modified. A nil sheet is the same as an empty one.
func Resolve(root *dom.Node, sheet *css.Stylesheet, opts ...Option) Map {
	r := &resolver{
		log:          zap.NewNop(),
		sheet:        sheet,
		styles:       Map{},
		rootFontSize: DefaultFontSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sheet == nil {
		r.sheet = &css.Stylesheet{}
	}
	r.walk(root, nil, true)
	return r.styles
}

func (r *resolver) walk(n *dom.Node, parent ComputedStyle, root bool) {
	if n == nil {
		return
	}
	if n.IsElement() {
		cs := r.compute(n, parent, root)
		r.styles[n] = cs
		if root {
			r.rootFontSize = cs.FontSize()
		}
		parent, root = cs, false
	}
	for _, c := range n.Children {
		r.walk(c, parent, root)
	}
}

type matchedDeclaration struct {
	spec  css.Specificity
	rule  int
	index int
	decl  css.Declaration
}

func (r *resolver) compute(el *dom.Node, parent ComputedStyle, root bool) ComputedStyle {
	cs := make(ComputedStyle, len(Properties))
	for name, def := range Properties {
		if def.Inherited && parent != nil {
			if v, ok := parent[name]; ok {
				cs[name] = v
				continue
			}
		}
		cs[name] = def.Initial
	}

	matched := r.matchRules(el)
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if c := a.spec.Compare(b.spec); c != 0 {
			return c < 0
		}
		if a.rule != b.rule {
			return a.rule < b.rule
		}
		return a.index < b.index
	})
	for _, m := range matched {
		applyDeclaration(cs, parent, m.decl.Name, m.decl.Value)
	}

	if inline, ok := el.GetAttribute("style"); ok {
		r.applyInlineStyle(cs, parent, el, inline)
	}

	parentSize := DefaultFontSize
	if parent != nil {
		parentSize = parent.FontSize()
	}
	rootSize := r.rootFontSize
	if root {
		rootSize = DefaultFontSize
	}
	resolveRelativeValues(cs, parentSize, rootSize)
	return cs
}

// matchRules collects the declarations of every rule with a selector that
// matches el. A rule counts once, at its most specific matching selector.
func (r *resolver) matchRules(el *dom.Node) []matchedDeclaration {
	tag, id, classes := el.TagName(), el.ID(), el.Classes()
	var out []matchedDeclaration
	for ri, rule := range r.sheet.Rules {
		var (
			best    css.Specificity
			matches bool
		)
		for _, sel := range rule.Selectors {
			if !sel.Matches(tag, id, classes) {
				continue
			}
			if spec := sel.Specificity(); !matches || best.Less(spec) {
				best = spec
			}
			matches = true
		}
		if !matches {
			continue
		}
		for di, d := range rule.Declarations {
			out = append(out, matchedDeclaration{spec: best, rule: ri, index: di, decl: d})
		}
	}
	return out
}

// applyDeclaration folds one declaration into cs, handling the CSS-wide
// keywords and shorthand expansion.
func applyDeclaration(cs, parent ComputedStyle, name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return
	}

	switch keyword := strings.ToLower(value); keyword {
	case "inherit", "initial", "unset":
		applyKeyword(cs, parent, name, keyword)
		for _, lh := range longhands(name) {
			applyKeyword(cs, parent, lh, keyword)
		}
		return
	}

	cs[name] = value
	if expanded, ok := expand(name, value); ok {
		for k, v := range expanded {
			cs[k] = v
		}
	}
}

func applyKeyword(cs, parent ComputedStyle, name, keyword string) {
	def, known := Properties[name]
	inherit := keyword == "inherit" || (keyword == "unset" && Inherited(name))
	if inherit && parent != nil {
		if v, ok := parent[name]; ok {
			cs[name] = v
			return
		}
	}
	if known {
		cs[name] = def.Initial
		return
	}
	delete(cs, name)
}

// resolveRelativeValues turns font-size and relative line-height into px
// and zeroes the widths of borders that have no style.
func resolveRelativeValues(cs ComputedStyle, parentFontSize, rootFontSize float64) {
	size := resolveFontSize(cs["font-size"], parentFontSize, rootFontSize)
	cs["font-size"] = formatPx(size)

	if l, ok := css.ParseLength(cs["line-height"]); ok && l.Unit != "" && l.Unit != "px" {
		cs["line-height"] = formatPx(l.Resolve(size, rootFontSize, size))
	}

	for _, side := range sides {
		switch cs["border-"+side+"-style"] {
		case "none", "hidden":
			cs["border-"+side+"-width"] = "0"
		}
	}
}

func resolveFontSize(value string, parent, root float64) float64 {
	value = strings.ToLower(value)
	if px, ok := absoluteFontSizes[value]; ok {
		return px
	}
	switch value {
	case "smaller":
		return parent / 1.2
	case "larger":
		return parent * 1.2
	}
	l, ok := css.ParseLength(value)
	if !ok || l.Value < 0 {
		return parent
	}
	return l.Resolve(parent, root, parent)
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
