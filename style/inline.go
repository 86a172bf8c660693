package style

import (
	"strings"

	"github.com/aymerick/douceur/parser"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/viberender/dom"
)

// applyInlineStyle applies the declarations of a style attribute after all
// stylesheet declarations. A style attribute that does not parse is
// ignored.
func (r *resolver) applyInlineStyle(cs, parent ComputedStyle, el *dom.Node, text string) {
	decls, err := parser.ParseDeclarations(terminated(text))
	if err != nil {
		r.log.Debug("ignoring inline style",
			zap.String("element", el.TagName()),
			zap.String("style", text),
			zap.Error(err))
		return
	}
	for _, d := range decls {
		applyDeclaration(cs, parent, d.Property, d.Value)
	}
}

// terminated appends the final ';' that style attributes usually omit.
// douceur leaves the value of an unterminated last declaration empty.
func terminated(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasSuffix(text, ";") {
		return text
	}
	return text + ";"
}
