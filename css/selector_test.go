package css

import (
	"testing"

	"github.com/chrisuehlinger/viberender/dom"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		input string
		want  Selector
	}{
		{"div", Selector{Tag: "div"}},
		{"DIV", Selector{Tag: "div"}},
		{"#main", Selector{ID: "main"}},
		{".note", Selector{Classes: []string{"note"}}},
		{"div#main.b.a.b", Selector{Tag: "div", ID: "main", Classes: []string{"a", "b"}}},
		{"*", Selector{}},
		{"*.x", Selector{Classes: []string{"x"}}},
		{"  h1  ", Selector{Tag: "h1"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSelector(tt.input)
			if err != nil {
				t.Fatalf("ParseSelector(%q) error: %v", tt.input, err)
			}
			if got.String() != tt.want.String() {
				t.Errorf("ParseSelector(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSelector_Invalid(t *testing.T) {
	for _, in := range []string{"", "div p", "a > b", "a:hover", "a,b", "#", ".", ".5", "a[href]", "#a#b", "div*", `"x`} {
		if sel, err := ParseSelector(in); err == nil {
			t.Errorf("ParseSelector(%q) = %s, want error", in, sel)
		}
	}
}

func TestSelector_Matches(t *testing.T) {
	classes := map[string]bool{"a": true, "b": true}
	tests := []struct {
		sel  string
		want bool
	}{
		{"div", true},
		{"p", false},
		{"#x", true},
		{"#y", false},
		{".a", true},
		{".a.b", true},
		{".a.c", false},
		{"div#x.b", true},
		{"*", true},
	}
	for _, tt := range tests {
		sel, err := ParseSelector(tt.sel)
		if err != nil {
			t.Fatalf("ParseSelector(%q): %v", tt.sel, err)
		}
		if got := sel.Matches("div", "x", classes); got != tt.want {
			t.Errorf("%s.Matches(div, x, a b) = %v, want %v", tt.sel, got, tt.want)
		}
	}
}

func TestSelector_MatchElement(t *testing.T) {
	el := dom.NewElement("p", map[string]string{"id": "intro", "class": " lead  big "})
	for _, s := range []string{"p", "#intro", ".lead", ".big.lead", "p#intro.lead"} {
		sel, _ := ParseSelector(s)
		if !sel.MatchElement(el) {
			t.Errorf("%s does not match %s", s, dom.Outline(el))
		}
	}
	sel, _ := ParseSelector("*")
	if sel.MatchElement(dom.NewText("x")) {
		t.Error("selector matched a text node")
	}
}

func TestSpecificity(t *testing.T) {
	spec := func(s string) Specificity {
		sel, err := ParseSelector(s)
		if err != nil {
			t.Fatalf("ParseSelector(%q): %v", s, err)
		}
		return sel.Specificity()
	}

	if got := spec("div#a.b.c"); got != (Specificity{1, 2, 1}) {
		t.Errorf("specificity = %+v, want {1 2 1}", got)
	}
	if got := spec("*"); got != (Specificity{}) {
		t.Errorf("specificity of * = %+v, want zero", got)
	}

	order := []string{"*", "div", ".a", "div.a", ".a.b", "#x", "div#x"}
	for i := 1; i < len(order); i++ {
		lo, hi := spec(order[i-1]), spec(order[i])
		if !lo.Less(hi) || hi.Less(lo) {
			t.Errorf("%s (%v) should be less than %s (%v)", order[i-1], lo, order[i], hi)
		}
	}
	if spec(".a").Compare(spec(".b")) != 0 {
		t.Error("equal specificities should compare as 0")
	}
}
