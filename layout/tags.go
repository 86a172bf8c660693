package layout

import (
	"strings"

	"github.com/chrisuehlinger/viberender/dom"
	"github.com/chrisuehlinger/viberender/style"
)

// hiddenTags never generate boxes.
var hiddenTags = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"title":    true,
	"meta":     true,
	"link":     true,
	"base":     true,
	"template": true,
	"noscript": true,
}

var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "br": true,
	"button": true, "cite": true, "code": true, "data": true, "dfn": true,
	"em": true, "i": true, "img": true, "input": true, "kbd": true,
	"label": true, "mark": true, "q": true, "s": true, "samp": true,
	"select": true, "small": true, "span": true, "strong": true, "sub": true,
	"sup": true, "textarea": true, "time": true, "u": true, "var": true,
	"wbr": true,
}

// boxTypeOf returns the type of box n generates. The second result is
// false when n generates no box at all.
func boxTypeOf(n *dom.Node, cs style.ComputedStyle) (BoxType, bool) {
	if n.IsText() {
		return InlineBox, true
	}
	switch strings.ToLower(cs["display"]) {
	case "none":
		return 0, false
	case "inline":
		return InlineBox, true
	case "":
	default:
		return BlockBox, true
	}

	tag := n.TagName()
	switch {
	case hiddenTags[tag]:
		return 0, false
	case inlineTags[tag]:
		return InlineBox, true
	}
	return BlockBox, true
}
