package css

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_SimpleRule(t *testing.T) {
	sheet, errs := Parse("div { color: red; margin: 0 auto; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(sheet.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(sheet.Rules))
	}
	rule := sheet.Rules[0]
	if len(rule.Selectors) != 1 || rule.Selectors[0].Tag != "div" {
		t.Errorf("selectors = %+v, want [div]", rule.Selectors)
	}
	want := []Declaration{{"color", "red"}, {"margin", "0 auto"}}
	if len(rule.Declarations) != len(want) {
		t.Fatalf("declarations = %+v, want %+v", rule.Declarations, want)
	}
	for i, d := range want {
		if rule.Declarations[i] != d {
			t.Errorf("declaration %d = %+v, want %+v", i, rule.Declarations[i], d)
		}
	}
}

func TestParse_WhitespaceNormalized(t *testing.T) {
	sheet, errs := Parse("  p\n{\n  MARGIN :   1px \t  2px\n ;  }  ")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	got := sheet.Rules[0].Declarations
	if len(got) != 1 || got[0].Name != "margin" || got[0].Value != "1px 2px" {
		t.Errorf("declarations = %+v", got)
	}
}

func TestParse_LastDeclarationWithoutSemicolon(t *testing.T) {
	sheet, errs := Parse("a{color:blue}b{color:green}")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(sheet.Rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(sheet.Rules))
	}
	if d := sheet.Rules[1].Declarations; len(d) != 1 || d[0].Value != "green" {
		t.Errorf("second rule declarations = %+v", d)
	}
}

func TestParse_SelectorGroup(t *testing.T) {
	sheet, errs := Parse("h1, .title ,#x{font-weight:bold}")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	sels := sheet.Rules[0].Selectors
	if len(sels) != 3 {
		t.Fatalf("got %d selectors, want 3", len(sels))
	}
	if sels[0].Tag != "h1" || len(sels[1].Classes) != 1 || sels[1].Classes[0] != "title" || sels[2].ID != "x" {
		t.Errorf("selectors = %+v", sels)
	}
}

func TestParse_MalformedLeadingRuleSkipped(t *testing.T) {
	sheet, errs := Parse("{bad} .ok{color:red;}")
	if len(sheet.Rules) != 1 {
		t.Fatalf("got %d rules, want 1", len(sheet.Rules))
	}
	r := sheet.Rules[0]
	if len(r.Selectors) != 1 || r.Selectors[0].Classes[0] != "ok" {
		t.Errorf("selectors = %+v, want [.ok]", r.Selectors)
	}
	if len(r.Declarations) != 1 || r.Declarations[0] != (Declaration{"color", "red"}) {
		t.Errorf("declarations = %+v", r.Declarations)
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Kind != UnterminatedSelector || !errors.Is(errs[0], ErrUnterminatedSelector) {
		t.Errorf("error = %v, want an unterminated selector", errs[0])
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantRules int
		wantDecls int
		wantKinds []ErrorKind
	}{
		{"descendant combinator", "div p{x:y} q{c:d}", 1, 1, []ErrorKind{UnterminatedSelector}},
		{"child combinator", "a > b{x:y}", 0, 0, []ErrorKind{UnterminatedSelector}},
		{"pseudo class", "a:hover{x:y}", 0, 0, []ErrorKind{UnterminatedSelector}},
		{"empty group member", "a,,b{x:y}", 0, 0, []ErrorKind{UnterminatedSelector}},
		{"nested braces skipped", "a b{x:{y}} c{d:e}", 1, 1, []ErrorKind{UnterminatedSelector}},
		{"eof before brace", "p{a:b} div", 1, 1, []ErrorKind{UnterminatedSelector}},
		{"missing colon", "p{color red; margin:0}", 1, 1, []ErrorKind{UnterminatedDeclaration}},
		{"missing name", "p{:red; color:blue}", 1, 1, []ErrorKind{UnterminatedDeclaration}},
		{"empty value", "p{color:;top:1px}", 1, 1, []ErrorKind{UnterminatedDeclaration}},
		{"eof in body", "p{a:b;", 1, 1, nil},
		{"eof after value", "p{a:b;c:d", 1, 1, []ErrorKind{UnterminatedDeclaration}},
		{"eof in declaration", "p{a:b;c:", 1, 1, []ErrorKind{UnterminatedDeclaration}},
		{"eof after name", "p{a:b;c", 1, 1, []ErrorKind{UnterminatedDeclaration}},
		{"two bad declarations", "p{1:2;;x y;z:w}", 1, 1, []ErrorKind{UnterminatedDeclaration, UnterminatedDeclaration}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, errs := Parse(tt.input)
			if len(sheet.Rules) != tt.wantRules {
				t.Fatalf("got %d rules, want %d", len(sheet.Rules), tt.wantRules)
			}
			decls := 0
			for _, r := range sheet.Rules {
				decls += len(r.Declarations)
			}
			if decls != tt.wantDecls {
				t.Errorf("got %d declarations, want %d", decls, tt.wantDecls)
			}
			if len(errs) != len(tt.wantKinds) {
				t.Fatalf("got errors %v, want kinds %v", errs, tt.wantKinds)
			}
			for i, k := range tt.wantKinds {
				if errs[i].Kind != k {
					t.Errorf("error %d kind = %v, want %v", i, errs[i].Kind, k)
				}
			}
		})
	}
}

func TestParse_DeclarationErrorSentinel(t *testing.T) {
	_, errs := Parse("p{color red}")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	var err error = errs[0]
	if !errors.Is(err, ErrUnterminatedDeclaration) {
		t.Errorf("errors.Is(%v, ErrUnterminatedDeclaration) = false", err)
	}
	if errors.Is(err, ErrUnterminatedSelector) {
		t.Errorf("errors.Is(%v, ErrUnterminatedSelector) = true", err)
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, errs := Parse("p {\n  color red;\n}")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].Line != 2 {
		t.Errorf("error line = %d, want 2", errs[0].Line)
	}

	_, errs = Parse("{x}")
	if len(errs) != 1 || errs[0].Line != 1 || errs[0].Column != 1 {
		t.Errorf("errors = %v, want one at 1:1", errs)
	}
}

func TestParse_SkipsAtRulesAndComments(t *testing.T) {
	input := `
@import url(base.css);
@media screen { p { color: red } }
/* comment */ a { /* inner */ color: blue; }
;
`
	sheet, errs := Parse(input)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(sheet.Rules) != 1 || sheet.Rules[0].Selectors[0].Tag != "a" {
		t.Fatalf("rules = %+v, want only the a rule", sheet.Rules)
	}
	if d := sheet.Rules[0].Declarations; len(d) != 1 || d[0].Value != "blue" {
		t.Errorf("declarations = %+v", d)
	}
}

func TestParse_ValueTokensKeptVerbatim(t *testing.T) {
	sheet, errs := Parse(`p{border:1px solid #FF0000;font-family:"Times New Roman", serif;width:50%}`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []Declaration{
		{"border", "1px solid #FF0000"},
		{"font-family", `"Times New Roman", serif`},
		{"width", "50%"},
	}
	got := sheet.Rules[0].Declarations
	if len(got) != len(want) {
		t.Fatalf("declarations = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("declaration %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestParse_UnclosedString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantSels  []string
		wantDecls int
		wantKind  ErrorKind
		wantLine  int
		wantCol   int
	}{
		{"in value", ".a { content: \"oops; }\n.ok { color: red; }", []string{".a", ".ok"}, 1, UnterminatedDeclaration, 1, 15},
		{"between rules", ".ok0{color:red} ' .ok{color:blue}", []string{".ok0"}, 1, UnterminatedSelector, 1, 17},
		{"in selector", "a \"x\nb{c:d}", []string{"b"}, 1, UnterminatedSelector, 1, 3},
		{"keeps earlier declarations", "p{a:b; c:'x\n}\nq{e:f}", []string{"p", "q"}, 2, UnterminatedDeclaration, 1, 10},
		{"at end of input", "p{a:'x", []string{"p"}, 0, UnterminatedDeclaration, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, errs := Parse(tt.input)
			var sels []string
			decls := 0
			for _, r := range sheet.Rules {
				sels = append(sels, r.Selectors[0].String())
				decls += len(r.Declarations)
			}
			if strings.Join(sels, " ") != strings.Join(tt.wantSels, " ") {
				t.Errorf("rules = %v, want %v", sels, tt.wantSels)
			}
			if decls != tt.wantDecls {
				t.Errorf("got %d declarations, want %d", decls, tt.wantDecls)
			}
			if len(errs) != 1 {
				t.Fatalf("got errors %v, want one", errs)
			}
			e := errs[0]
			if e.Kind != tt.wantKind || e.Line != tt.wantLine || e.Column != tt.wantCol {
				t.Errorf("error = %v (%v at %d:%d), want %v at %d:%d",
					e, e.Kind, e.Line, e.Column, tt.wantKind, tt.wantLine, tt.wantCol)
			}
		})
	}
}

func TestParse_PositionsAfterUnclosedString(t *testing.T) {
	_, errs := Parse("p{a:\"x\n}\nq{c:d}\nr{e f}")
	if len(errs) != 2 {
		t.Fatalf("got errors %v, want two", errs)
	}
	if errs[1].Line != 4 || errs[1].Column != 5 {
		t.Errorf("second error at %d:%d, want 4:5", errs[1].Line, errs[1].Column)
	}
}

func TestParse_UnclosedComment(t *testing.T) {
	tests := []struct {
		input     string
		wantDecls int
	}{
		{"p{color:red} /* never closed q{c:d}", 1},
		{"p{color:red; /* open", 1},
	}
	for _, tt := range tests {
		sheet, errs := Parse(tt.input)
		if len(errs) != 0 {
			t.Errorf("Parse(%q) errors = %v, want none", tt.input, errs)
		}
		if len(sheet.Rules) != 1 || len(sheet.Rules[0].Declarations) != tt.wantDecls {
			t.Errorf("Parse(%q) rules = %+v", tt.input, sheet.Rules)
		}
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "/* only */", "}}}", ";;"} {
		sheet, errs := Parse(in)
		if sheet == nil || len(sheet.Rules) != 0 || len(errs) != 0 {
			t.Errorf("Parse(%q) = %+v, %v; want an empty sheet", in, sheet, errs)
		}
	}
}

func TestParse_UserAgentCSS(t *testing.T) {
	sheet, errs := Parse(UserAgentCSS)
	if len(errs) != 0 {
		t.Fatalf("user agent sheet has errors: %v", errs)
	}
	if len(sheet.Rules) == 0 {
		t.Fatal("user agent sheet has no rules")
	}
}

func TestStylesheet_Append(t *testing.T) {
	a, _ := Parse("a{x:1}")
	b, _ := Parse("b{y:2}c{z:3}")
	got := a.Append(b)
	if len(got.Rules) != 3 || got.Rules[0].Selectors[0].Tag != "a" || got.Rules[2].Selectors[0].Tag != "c" {
		t.Errorf("Append rules = %+v", got.Rules)
	}
	if len(a.Rules) != 1 || len(b.Rules) != 2 {
		t.Error("Append modified its inputs")
	}
	var nilSheet *Stylesheet
	if got := nilSheet.Append(b); len(got.Rules) != 2 {
		t.Errorf("nil.Append rules = %d, want 2", len(got.Rules))
	}
}
