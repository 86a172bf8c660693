package layout

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chrisuehlinger/viberender/css"
	"github.com/chrisuehlinger/viberender/dom"
	"github.com/chrisuehlinger/viberender/html"
	"github.com/chrisuehlinger/viberender/style"
)

func TestDimensionsBoxCalculations(t *testing.T) {
	dims := Dimensions{
		Content: Rect{X: 20, Y: 20, Width: 200, Height: 40},
		Padding: EdgeSizes{Top: 4, Right: 4, Bottom: 4, Left: 4},
		Border:  EdgeSizes{Top: 1, Right: 1, Bottom: 1, Left: 1},
		Margin:  EdgeSizes{Top: 8, Right: 8, Bottom: 8, Left: 8},
	}

	tests := []struct {
		name string
		got  Rect
		want Rect
	}{
		{"padding box", dims.PaddingBox(), Rect{X: 16, Y: 16, Width: 208, Height: 48}},
		{"border box", dims.BorderBox(), Rect{X: 15, Y: 15, Width: 210, Height: 50}},
		{"margin box", dims.MarginBox(), Rect{X: 7, Y: 7, Width: 226, Height: 66}},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %+v, want %+v", tt.name, tt.got, tt.want)
		}
	}
}

func TestRectExpandedBy(t *testing.T) {
	rect := Rect{X: 10, Y: 10, Width: 100, Height: 50}
	edge := EdgeSizes{Top: 5, Right: 10, Bottom: 15, Left: 20}

	want := Rect{X: -10, Y: 5, Width: 130, Height: 70}
	if got := rect.ExpandedBy(edge); got != want {
		t.Errorf("ExpandedBy = %+v, want %+v", got, want)
	}
}

func layoutOf(t *testing.T, markup, sheet string, width float64, opts ...Option) (*dom.Node, *LayoutBox) {
	t.Helper()
	doc := html.Parse(markup)
	ss, errs := css.Parse(sheet)
	if len(errs) != 0 {
		t.Fatalf("css errors: %v", errs)
	}
	return doc, Layout(doc, style.Resolve(doc, ss), width, opts...)
}

// boxFor returns the box generated by the first element with the given tag
// or id.
func boxFor(t *testing.T, root *LayoutBox, key string) *LayoutBox {
	t.Helper()
	var found *LayoutBox
	var visit func(b *LayoutBox)
	visit = func(b *LayoutBox) {
		if found != nil {
			return
		}
		if b.Node != nil && b.Node.IsElement() && (b.Node.TagName() == key || b.Node.ID() == key) {
			found = b
			return
		}
		for _, c := range b.Children {
			visit(c)
		}
	}
	visit(root)
	if found == nil {
		t.Fatalf("no box for %q in\n%s", key, Dump(root))
	}
	return found
}

func allBoxes(b *LayoutBox) []*LayoutBox {
	out := []*LayoutBox{b}
	for _, c := range b.Children {
		out = append(out, allBoxes(c)...)
	}
	return out
}

func TestLayout_BlockStacking(t *testing.T) {
	_, root := layoutOf(t,
		`<div id="outer"><div id="a"></div><div id="b"></div></div>`,
		"#a{height:10px} #b{height:20px}", 800)

	outer := boxFor(t, root, "outer")
	a := boxFor(t, root, "a")
	b := boxFor(t, root, "b")

	if a.Dimensions.Content.Y != 0 || a.Dimensions.Content.Height != 10 {
		t.Errorf("a content = %+v, want y=0 h=10", a.Dimensions.Content)
	}
	if b.Dimensions.Content.Y != 10 || b.Dimensions.Content.Height != 20 {
		t.Errorf("b content = %+v, want y=10 h=20", b.Dimensions.Content)
	}
	if outer.Dimensions.Content.Height != 30 {
		t.Errorf("outer height = %v, want 30", outer.Dimensions.Content.Height)
	}
	for _, box := range []*LayoutBox{outer, a, b} {
		if box.Dimensions.Content.Width != 800 {
			t.Errorf("width = %v, want 800", box.Dimensions.Content.Width)
		}
	}
	if root.Dimensions.Content.Height != 30 {
		t.Errorf("root height = %v, want 30", root.Dimensions.Content.Height)
	}
}

func TestLayout_Edges(t *testing.T) {
	_, root := layoutOf(t, `<div><p>x</p></div><section>y</section>`,
		"div{margin:10px; padding:5px; border:2px solid black}", 800)

	div := boxFor(t, root, "div")
	c := div.Dimensions.Content
	if c.X != 17 || c.Y != 17 || c.Width != 766 {
		t.Errorf("div content = %+v, want x=17 y=17 w=766", c)
	}
	if got := div.Dimensions.MarginBox().Width; got != 800 {
		t.Errorf("div margin box width = %v, want 800", got)
	}
	p := boxFor(t, root, "p")
	if math.Abs(p.Dimensions.Content.Height-19.2) > 1e-9 {
		t.Errorf("p height = %v, want 19.2", p.Dimensions.Content.Height)
	}

	section := boxFor(t, root, "section")
	wantY := div.Dimensions.MarginBox().Height
	if math.Abs(section.Dimensions.Content.Y-wantY) > 1e-9 {
		t.Errorf("section y = %v, want %v", section.Dimensions.Content.Y, wantY)
	}
}

func TestLayout_HiddenElements(t *testing.T) {
	_, root := layoutOf(t,
		`<html><head><title>t</title><style>p{}</style></head><body><p style="display:none">x</p><div>y</div><script>z</script></body></html>`,
		"", 800)

	htmlBox := boxFor(t, root, "html")
	if len(htmlBox.Children) != 1 || htmlBox.Children[0].Node.TagName() != "body" {
		t.Fatalf("html children:\n%s", Dump(htmlBox))
	}
	body := htmlBox.Children[0]
	if len(body.Children) != 1 || body.Children[0].Node.TagName() != "div" {
		t.Errorf("body children:\n%s", Dump(body))
	}
}

func TestLayout_BoxTypes(t *testing.T) {
	_, root := layoutOf(t, `<div><span>a</span><em>b</em></div><p>c</p><custom-el>d</custom-el>`,
		"em{display:block} p{display:inline} custom-el{display:table}", 800)

	tests := []struct {
		key  string
		want BoxType
	}{
		{"div", BlockBox},
		{"span", InlineBox},
		{"em", BlockBox},
		{"p", InlineBox},
		{"custom-el", BlockBox},
	}
	for _, tt := range tests {
		if got := boxFor(t, root, tt.key).Type; got != tt.want {
			t.Errorf("<%s> box type = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestLayout_AnonymousBoxes(t *testing.T) {
	_, root := layoutOf(t, `<div>a<p>b</p>c<span>d</span></div>`, "", 800)

	div := boxFor(t, root, "div")
	if len(div.Children) != 3 {
		t.Fatalf("div has %d children, want 3:\n%s", len(div.Children), Dump(div))
	}
	first, mid, last := div.Children[0], div.Children[1], div.Children[2]
	if first.Type != AnonymousBox || len(first.Children) != 1 || !first.Children[0].IsText() {
		t.Errorf("first child:\n%s", Dump(first))
	}
	if mid.Type != BlockBox || mid.Node.TagName() != "p" {
		t.Errorf("middle child:\n%s", Dump(mid))
	}
	if last.Type != AnonymousBox || len(last.Children) != 2 {
		t.Errorf("last child:\n%s", Dump(last))
	}

	_, root = layoutOf(t, `<p>a<span>b</span></p>`, "", 800)
	for _, c := range boxFor(t, root, "p").Children {
		if c.Type != InlineBox {
			t.Errorf("all-inline children should not be wrapped, got %v", c.Type)
		}
	}
}

func TestLayout_ExplicitSizes(t *testing.T) {
	_, root := layoutOf(t, `<div id="fixed">x</div><div id="half"></div><div id="pct"></div>`,
		"#fixed{width:100px; height:50px; margin:0 auto} #half{width:50%} #pct{height:50%}", 400)

	fixed := boxFor(t, root, "fixed").Dimensions
	if fixed.Content.Width != 100 || fixed.Content.Height != 50 || fixed.Content.X != 150 {
		t.Errorf("fixed content = %+v, want x=150 w=100 h=50", fixed.Content)
	}
	if fixed.Margin.Left != 150 || fixed.Margin.Right != 150 {
		t.Errorf("fixed margins = %+v, want auto margins of 150", fixed.Margin)
	}
	if got := boxFor(t, root, "half").Dimensions.Content.Width; got != 200 {
		t.Errorf("half width = %v, want 200", got)
	}
	if got := boxFor(t, root, "pct").Dimensions.Content.Height; got != 0 {
		t.Errorf("percentage height = %v, want 0 (no definite containing height)", got)
	}
}

func TestLayout_TextHeight(t *testing.T) {
	_, root := layoutOf(t, `<p id="px">a</p><p id="num">b</p><p id="normal">c</p>`,
		"#px{line-height:30px} #num{line-height:2} #normal{font-size:10px}", 800)

	tests := []struct {
		id   string
		want float64
	}{
		{"px", 30},
		{"num", 32},
		{"normal", 12},
	}
	for _, tt := range tests {
		if got := boxFor(t, root, tt.id).Dimensions.Content.Height; math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("#%s height = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestLayout_TextMeasurer(t *testing.T) {
	var widths []float64
	m := TextMeasurerFunc(func(text string, cs style.ComputedStyle, width float64) float64 {
		widths = append(widths, width)
		return float64(len(text))
	})
	_, root := layoutOf(t, `<div>abcdefg</div>`, "div{padding:0 10px}", 300, WithTextMeasurer(m))

	if got := boxFor(t, root, "div").Dimensions.Content.Height; got != 7 {
		t.Errorf("div height = %v, want 7", got)
	}
	if len(widths) != 1 || widths[0] != 280 {
		t.Errorf("measurer widths = %v, want [280]", widths)
	}
}

func TestLayout_DegenerateWidths(t *testing.T) {
	markup := `<div><p>x</p><span>y</span></div><section>z</section>`
	sheet := "div{padding:10px; margin:-4px; border:3px solid} p{width:-20px; height:-5px}"

	for _, w := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, root := layoutOf(t, markup, sheet, w)
		if root.Dimensions.Content.Width != 0 {
			t.Errorf("width %v: root width = %v, want 0", w, root.Dimensions.Content.Width)
		}
		for _, b := range allBoxes(root) {
			c := b.Dimensions.Content
			for _, v := range []float64{c.X, c.Y, c.Width, c.Height} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("width %v: non-finite rect %+v", w, c)
				}
			}
			if c.Width < 0 || c.Height < 0 {
				t.Errorf("width %v: negative size %+v", w, c)
			}
		}
	}
}

func TestLayout_HugeMarginsStayFinite(t *testing.T) {
	markup := `<div class="a"></div><div class="b"></div><div class="c"></div><p class="d">x</p>`
	sheet := ".a{margin:1e308px 0} .b{margin:-1e308px 0} .c{height:5px} .d{padding:1e308px; width:1e308px}"

	_, root := layoutOf(t, markup, sheet, 100)
	for _, b := range allBoxes(root) {
		c := b.Dimensions.Content
		for _, v := range []float64{c.X, c.Y, c.Width, c.Height, b.Dimensions.MarginBox().Height} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite geometry %+v", b.Dimensions)
			}
		}
	}
	if h := root.Dimensions.Content.Height; math.IsNaN(h) || math.IsInf(h, 0) || h < 5 {
		t.Errorf("root height = %v, want a finite height holding the 5px block", h)
	}
}

func TestLayout_Idempotent(t *testing.T) {
	doc := html.Parse(`<div class="a">one<p>two</p><span>three</span></div><ul><li>x</li></ul>`)
	sheet, _ := css.Parse(css.UserAgentCSS + ".a{margin:1em; padding:2%}")
	styles := style.Resolve(doc, sheet)

	first := Layout(doc, styles, 640)
	second := Layout(doc, styles, 640)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("layout differs between runs (-first +second):\n%s", diff)
	}
}

func TestLayout_NilAndEmpty(t *testing.T) {
	if box := Layout(nil, nil, 100); box == nil || len(box.Children) != 0 {
		t.Errorf("Layout(nil) = %+v", box)
	}
	doc := dom.NewDocument()
	box := Layout(doc, nil, 100)
	if box.Dimensions.Content.Width != 100 || box.Dimensions.Content.Height != 0 {
		t.Errorf("empty document box = %+v", box.Dimensions.Content)
	}
}

func TestLayout_MissingStyles(t *testing.T) {
	doc := html.Parse(`<div><span>x</span></div>`)
	root := Layout(doc, style.Map{}, 100)
	if got := boxFor(t, root, "span").Type; got != InlineBox {
		t.Errorf("span type = %v, want inline from the tag table", got)
	}
}

func TestDump(t *testing.T) {
	_, root := layoutOf(t, `<div>x<p>y</p></div>`, "", 100)
	out := Dump(root)
	for _, want := range []string{"viewport", "block <div>", "anonymous", `inline "x"`, "block <p>", "w=100"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump missing %q in:\n%s", want, out)
		}
	}
	if Dump(nil) != "" {
		t.Error("Dump(nil) should be empty")
	}
}

func TestBoxType_String(t *testing.T) {
	for typ, want := range map[BoxType]string{BlockBox: "block", InlineBox: "inline", AnonymousBox: "anonymous", BoxType(9): "unknown"} {
		if got := typ.String(); got != want {
			t.Errorf("BoxType(%d).String() = %q, want %q", int(typ), got, want)
		}
	}
}
