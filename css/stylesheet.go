// Package css parses stylesheets into rules of simple selectors and
// declarations.
//
// Only simple selectors are understood: an optional tag name, an optional
// id and any number of classes. Declaration values are kept as
// uninterpreted strings; ParseColor and ParseLength interpret them on
// demand for the later stages.
package css

import (
	"sort"
	"strings"

	"github.com/chrisuehlinger/viberender/dom"
)

// Stylesheet is an ordered list of rules. Rule order is source order and
// breaks cascade ties.
type Stylesheet struct {
	Rules []Rule
}

// Rule pairs a selector group with its declarations. The rule applies to an
// element when any one of its selectors matches.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

// Declaration is a single property: value pair. Name is lower case; Value
// is the trimmed token text with internal whitespace collapsed.
type Declaration struct {
	Name  string
	Value string
}

// Selector is a simple selector. An empty Tag matches any element. Classes
// is a sorted set: every class must be present on the element.
type Selector struct {
	Tag     string
	ID      string
	Classes []string
}

// Append returns a stylesheet holding the rules of s followed by the rules
// of other. Neither input is modified.
func (s *Stylesheet) Append(other *Stylesheet) *Stylesheet {
	out := &Stylesheet{}
	if s != nil {
		out.Rules = append(out.Rules, s.Rules...)
	}
	if other != nil {
		out.Rules = append(out.Rules, other.Rules...)
	}
	return out
}

// String returns the selector in CSS syntax.
func (s Selector) String() string {
	var sb strings.Builder
	if s.Tag == "" && s.ID == "" && len(s.Classes) == 0 {
		return "*"
	}
	sb.WriteString(s.Tag)
	if s.ID != "" {
		sb.WriteByte('#')
		sb.WriteString(s.ID)
	}
	for _, c := range s.Classes {
		sb.WriteByte('.')
		sb.WriteString(c)
	}
	return sb.String()
}

// Matches reports whether the selector matches an element with the given
// tag name, id and class set.
func (s Selector) Matches(tag, id string, classes map[string]bool) bool {
	if s.Tag != "" && s.Tag != tag {
		return false
	}
	if s.ID != "" && s.ID != id {
		return false
	}
	for _, c := range s.Classes {
		if !classes[c] {
			return false
		}
	}
	return true
}

// MatchElement reports whether the selector matches el. Only the element's
// own tag, id and classes are consulted.
func (s Selector) MatchElement(el *dom.Node) bool {
	if !el.IsElement() {
		return false
	}
	return s.Matches(el.TagName(), el.ID(), el.Classes())
}

// Specificity returns the selector's weight as (has id, class count, has tag).
func (s Selector) Specificity() Specificity {
	var spec Specificity
	if s.ID != "" {
		spec.A = 1
	}
	spec.B = len(s.Classes)
	if s.Tag != "" {
		spec.C = 1
	}
	return spec
}

// Specificity is a selector's precedence weight.
type Specificity struct {
	A int // ID selectors
	B int // Class selectors
	C int // Type selectors
}

// Compare compares two specificities. Returns -1, 0, or 1.
func (s Specificity) Compare(other Specificity) int {
	if s.A != other.A {
		if s.A > other.A {
			return 1
		}
		return -1
	}
	if s.B != other.B {
		if s.B > other.B {
			return 1
		}
		return -1
	}
	if s.C != other.C {
		if s.C > other.C {
			return 1
		}
		return -1
	}
	return 0
}

// Less returns true if this specificity is less than the other.
func (s Specificity) Less(other Specificity) bool {
	return s.Compare(other) < 0
}

// classSet sorts and deduplicates class names.
func classSet(classes []string) []string {
	if len(classes) == 0 {
		return nil
	}
	sort.Strings(classes)
	out := classes[:1]
	for _, c := range classes[1:] {
		if c != out[len(out)-1] {
			out = append(out, c)
		}
	}
	return out
}
