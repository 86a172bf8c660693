package layout

import (
	"math"
	"strings"

	"github.com/chrisuehlinger/viberender/css"
	"github.com/chrisuehlinger/viberender/dom"
	"github.com/chrisuehlinger/viberender/style"
)

// Option configures Layout.
type Option func(*engine)

// WithTextMeasurer sets how text boxes get their height. The default is
// LineHeight.
func WithTextMeasurer(m TextMeasurer) Option {
	return func(e *engine) {
		if m != nil {
			e.measure = m
		}
	}
}

type engine struct {
	styles       style.Map
	measure      TextMeasurer
	rootFontSize float64
}

// Layout builds and positions the box tree for root in a viewport of the
// given width. Elements missing from styles are laid out with an empty
// style. A width that is negative, NaN or infinite is treated as zero.
func Layout(root *dom.Node, styles style.Map, availableWidth float64, opts ...Option) *LayoutBox {
	e := &engine{
		styles:       styles,
		measure:      LineHeight,
		rootFontSize: style.DefaultFontSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	if root == nil {
		return &LayoutBox{Type: BlockBox}
	}
	if first := firstElement(root); first != nil {
		e.rootFontSize = e.styles[first].FontSize()
	}

	box := e.build(root, nil)
	if box == nil {
		// A root that generates no box still gets an empty viewport box.
		box = &LayoutBox{Type: BlockBox, Node: root, Style: e.styles[root]}
	}
	e.layout(box, 0, 0, finite(availableWidth))
	return box
}

func firstElement(n *dom.Node) *dom.Node {
	if n.IsElement() {
		return n
	}
	for _, c := range n.Children {
		if el := firstElement(c); el != nil {
			return el
		}
	}
	return nil
}

// build creates the box for n and its descendants. parent is the style of
// the nearest element ancestor.
func (e *engine) build(n *dom.Node, parent style.ComputedStyle) *LayoutBox {
	var box *LayoutBox
	switch n.Type {
	case dom.DocumentNode:
		box = &LayoutBox{Type: BlockBox, Node: n}
	case dom.TextNode:
		return &LayoutBox{Type: InlineBox, Node: n, Style: parent}
	case dom.ElementNode:
		cs := e.styles[n]
		typ, ok := boxTypeOf(n, cs)
		if !ok {
			return nil
		}
		box = &LayoutBox{Type: typ, Node: n, Style: cs}
		parent = cs
	default:
		return nil
	}

	for _, c := range n.Children {
		if child := e.build(c, parent); child != nil {
			box.Children = append(box.Children, child)
		}
	}
	if box.Type == BlockBox {
		box.Children = wrapInlineRuns(box.Children)
	}
	return box
}

// wrapInlineRuns puts each run of inline children into an anonymous block
// when the children mix inline and block boxes.
func wrapInlineRuns(children []*LayoutBox) []*LayoutBox {
	var hasBlock, hasInline bool
	for _, c := range children {
		if c.Type == InlineBox {
			hasInline = true
		} else {
			hasBlock = true
		}
	}
	if !hasBlock || !hasInline {
		return children
	}

	out := make([]*LayoutBox, 0, len(children))
	var run *LayoutBox
	for _, c := range children {
		if c.Type != InlineBox {
			run = nil
			out = append(out, c)
			continue
		}
		if run == nil {
			run = &LayoutBox{Type: AnonymousBox}
			out = append(out, run)
		}
		run.Children = append(run.Children, c)
	}
	return out
}

// layout positions b with the top left of its margin box at (x, y) inside
// a containing block of the given width.
func (e *engine) layout(b *LayoutBox, x, y, available float64) {
	d := &b.Dimensions
	fontSize := b.Style.FontSize()

	if b.Node != nil && b.Node.IsElement() {
		d.Padding = e.edges(b.Style, "padding-%s", fontSize, available).clamped()
		d.Border = e.borders(b.Style, fontSize, available)
		d.Margin = e.edges(b.Style, "margin-%s", fontSize, available).saturated()
	}

	width := available - d.Margin.horizontal() - d.Border.horizontal() - d.Padding.horizontal()
	if w, ok := e.length(b.Style, "width", fontSize, available); ok {
		width = w
		e.centre(b, available)
	}
	d.Content.Width = finite(width)
	d.Content.X = saturate(x + d.Margin.Left + d.Border.Left + d.Padding.Left)
	d.Content.Y = saturate(y + d.Margin.Top + d.Border.Top + d.Padding.Top)

	var height float64
	if b.IsText() {
		height = e.measure.MeasureText(b.Node.Data, b.Style, d.Content.Width)
	}
	for _, c := range b.Children {
		e.layout(c, d.Content.X, d.Content.Y+height, d.Content.Width)
		height = saturate(height + c.Dimensions.MarginBox().Height)
	}
	if h, ok := e.length(b.Style, "height", fontSize, math.NaN()); ok {
		height = h
	}
	d.Content.Height = finite(height)
}

// centre splits the free space between auto left and right margins of a
// box with an explicit width.
func (e *engine) centre(b *LayoutBox, available float64) {
	if !strings.EqualFold(b.Style["margin-left"], "auto") || !strings.EqualFold(b.Style["margin-right"], "auto") {
		return
	}
	d := &b.Dimensions
	w, _ := e.length(b.Style, "width", b.Style.FontSize(), available)
	free := available - w - d.Border.horizontal() - d.Padding.horizontal()
	if free > 0 {
		d.Margin.Left, d.Margin.Right = free/2, free/2
	}
}

func (e *engine) edges(cs style.ComputedStyle, pattern string, fontSize, available float64) EdgeSizes {
	side := func(s string) float64 {
		v, _ := e.length(cs, strings.Replace(pattern, "%s", s, 1), fontSize, available)
		return v
	}
	return EdgeSizes{Top: side("top"), Right: side("right"), Bottom: side("bottom"), Left: side("left")}
}

var borderKeywords = map[string]float64{"thin": 1, "medium": 3, "thick": 5}

func (e *engine) borders(cs style.ComputedStyle, fontSize, available float64) EdgeSizes {
	side := func(s string) float64 {
		name := "border-" + s + "-width"
		if px, ok := borderKeywords[strings.ToLower(cs[name])]; ok {
			return px
		}
		v, _ := e.length(cs, name, fontSize, available)
		return finite(v)
	}
	return EdgeSizes{Top: side("top"), Right: side("right"), Bottom: side("bottom"), Left: side("left")}
}

// length resolves a length property to px. Percentages are taken of base;
// a NaN base makes percentages unresolvable.
func (e *engine) length(cs style.ComputedStyle, name string, fontSize, base float64) (float64, bool) {
	l, ok := css.ParseLength(cs[name])
	if !ok || (l.Unit == "%" && math.IsNaN(base)) {
		return 0, false
	}
	v := l.Resolve(fontSize, e.rootFontSize, base)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// maxCoord bounds every size, edge and position so that sums of them stay
// finite.
const maxCoord = 1e15

func (e EdgeSizes) clamped() EdgeSizes {
	return EdgeSizes{finite(e.Top), finite(e.Right), finite(e.Bottom), finite(e.Left)}
}

func (e EdgeSizes) saturated() EdgeSizes {
	return EdgeSizes{saturate(e.Top), saturate(e.Right), saturate(e.Bottom), saturate(e.Left)}
}

// finite clamps NaN, infinite and negative sizes to zero and caps the rest
// at maxCoord.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Min(v, maxCoord)
}

// saturate is finite for values that may be negative, such as margins and
// positions.
func saturate(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-maxCoord, math.Min(v, maxCoord))
}
