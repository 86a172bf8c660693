// Package html builds dom trees from markup using the tokenizer from
// golang.org/x/net/html.
//
// Tree construction is deliberately simpler than the HTML5 algorithm: open
// tags push, matching close tags pop, stray close tags are dropped and
// anything still open at the end of input is closed implicitly. Parsing
// never fails.
package html

import (
	"strings"

	"github.com/chrisuehlinger/viberender/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// voidElements never receive children, so they are never pushed on the
// open element stack.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Keygen: true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// IsVoidElement reports whether tag is an element that can never have
// children.
func IsVoidElement(tag string) bool {
	return voidElements[atom.Lookup([]byte(strings.ToLower(tag)))]
}

// Parse parses markup and returns the document root.
func Parse(text string) *dom.Node {
	b := newTreeBuilder()
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF is the only error a strings.Reader produces.
			b.flushText()
			return b.doc
		case html.TextToken:
			b.text.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			b.flushText()
			b.startTag(z.Token(), tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			b.flushText()
			b.endTag(z.Token().Data)
		default:
			// Comments and doctypes end a text run but add nothing.
			b.flushText()
		}
	}
}

// treeBuilder holds the open element stack. stack[0] is always the document.
type treeBuilder struct {
	doc   *dom.Node
	stack []*dom.Node
	text  strings.Builder
}

func newTreeBuilder() *treeBuilder {
	doc := dom.NewDocument()
	return &treeBuilder{doc: doc, stack: []*dom.Node{doc}}
}

func (b *treeBuilder) top() *dom.Node {
	return b.stack[len(b.stack)-1]
}

// flushText emits the pending text run. Runs made only of whitespace are
// insignificant and dropped.
func (b *treeBuilder) flushText() {
	if b.text.Len() == 0 {
		return
	}
	s := b.text.String()
	b.text.Reset()
	if strings.TrimSpace(s) == "" {
		return
	}
	b.top().AppendChild(dom.NewText(s))
}

func (b *treeBuilder) startTag(tok html.Token, selfClosing bool) {
	el := dom.NewElement(tok.Data, nil)
	// The tokenizer reports duplicates in source order; the last one wins.
	for _, a := range tok.Attr {
		el.SetAttribute(a.Key, a.Val)
	}
	b.top().AppendChild(el)
	if selfClosing || voidElements[tok.DataAtom] {
		return
	}
	b.stack = append(b.stack, el)
}

// endTag closes the innermost open element named tag together with every
// element opened after it. A close tag without a matching open element is
// ignored.
func (b *treeBuilder) endTag(tag string) {
	for i := len(b.stack) - 1; i > 0; i-- {
		if b.stack[i].Data == tag {
			b.stack = b.stack[:i]
			return
		}
	}
}

// StyleText returns the text of every <style> element in document order.
func StyleText(root *dom.Node) []string {
	var sheets []string
	dom.Walk(root, func(n *dom.Node) bool {
		if n.TagName() == "style" {
			if css := n.TextContent(); strings.TrimSpace(css) != "" {
				sheets = append(sheets, css)
			}
			return false
		}
		return true
	})
	return sheets
}
