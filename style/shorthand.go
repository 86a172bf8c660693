package style

import (
	"strings"

	"github.com/chrisuehlinger/viberender/css"
)

var sides = [4]string{"top", "right", "bottom", "left"}

// boxShorthands expand one to four values over the four sides.
var boxShorthands = map[string]func(side string) string{
	"margin":       func(side string) string { return "margin-" + side },
	"padding":      func(side string) string { return "padding-" + side },
	"border-width": func(side string) string { return "border-" + side + "-width" },
	"border-style": func(side string) string { return "border-" + side + "-style" },
	"border-color": func(side string) string { return "border-" + side + "-color" },
}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

// longhands returns the properties a shorthand sets, or nil if name is not
// a shorthand.
func longhands(name string) []string {
	if f, ok := boxShorthands[name]; ok {
		out := make([]string, 0, 4)
		for _, s := range sides {
			out = append(out, f(s))
		}
		return out
	}
	if name == "border" {
		var out []string
		for _, s := range sides {
			out = append(out, borderSide(s)...)
		}
		return out
	}
	if side, ok := strings.CutPrefix(name, "border-"); ok && isSide(side) {
		return borderSide(side)
	}
	return nil
}

func borderSide(side string) []string {
	return []string{"border-" + side + "-width", "border-" + side + "-style", "border-" + side + "-color"}
}

func isSide(s string) bool {
	for _, side := range sides {
		if s == side {
			return true
		}
	}
	return false
}

// expand returns the longhand values for a shorthand declaration. The
// second result is false if name is not a shorthand or value does not fit
// its grammar.
func expand(name, value string) (map[string]string, bool) {
	parts := splitValue(value)
	if f, ok := boxShorthands[name]; ok {
		vals, ok := boxValues(parts)
		if !ok {
			return nil, false
		}
		out := make(map[string]string, 4)
		for i, s := range sides {
			out[f(s)] = vals[i]
		}
		return out, true
	}

	var targets []string
	switch {
	case name == "border":
		targets = sides[:]
	default:
		side, ok := strings.CutPrefix(name, "border-")
		if !ok || !isSide(side) {
			return nil, false
		}
		targets = []string{side}
	}
	width, style, color, ok := borderValues(parts)
	if !ok {
		return nil, false
	}
	out := make(map[string]string, 3*len(targets))
	for _, s := range targets {
		out["border-"+s+"-width"] = width
		out["border-"+s+"-style"] = style
		out["border-"+s+"-color"] = color
	}
	return out, true
}

// boxValues applies the one-to-four value rule: top, right, bottom, left.
func boxValues(parts []string) ([4]string, bool) {
	switch len(parts) {
	case 1:
		return [4]string{parts[0], parts[0], parts[0], parts[0]}, true
	case 2:
		return [4]string{parts[0], parts[1], parts[0], parts[1]}, true
	case 3:
		return [4]string{parts[0], parts[1], parts[2], parts[1]}, true
	case 4:
		return [4]string{parts[0], parts[1], parts[2], parts[3]}, true
	}
	return [4]string{}, false
}

// borderValues sorts the components of a border shorthand. Omitted
// components take their initial values.
func borderValues(parts []string) (width, style, color string, ok bool) {
	if len(parts) == 0 || len(parts) > 3 {
		return "", "", "", false
	}
	width = Properties["border-top-width"].Initial
	style = Properties["border-top-style"].Initial
	color = Properties["border-top-color"].Initial
	var seenWidth, seenStyle, seenColor bool
	for _, p := range parts {
		lower := strings.ToLower(p)
		switch {
		case !seenWidth && isBorderWidth(lower):
			width, seenWidth = lower, true
		case !seenStyle && borderStyles[lower]:
			style, seenStyle = lower, true
		case !seenColor && isColor(lower):
			color, seenColor = p, true
		default:
			return "", "", "", false
		}
	}
	return width, style, color, true
}

func isBorderWidth(s string) bool {
	switch s {
	case "thin", "medium", "thick":
		return true
	}
	_, ok := css.ParseLength(s)
	return ok
}

func isColor(s string) bool {
	if s == "currentcolor" {
		return true
	}
	_, ok := css.ParseColor(s)
	return ok
}

// splitValue splits a value on whitespace outside parentheses, so that
// "1px solid rgb(0, 0, 0)" yields three parts.
func splitValue(v string) []string {
	var (
		parts []string
		depth int
		start = -1
	)
	for i, r := range v {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n'):
			if start >= 0 {
				parts = append(parts, v[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		parts = append(parts, v[start:])
	}
	return parts
}
