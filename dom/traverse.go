package dom

import (
	"fmt"
	"strconv"
	"strings"

	tp "github.com/xlab/treeprint"
)

// Walk visits n and its descendants in document order (pre-order). If fn
// returns false the children of that node are skipped.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Elements returns every element in the tree rooted at n, in document order.
func Elements(n *Node) []*Node {
	var out []*Node
	Walk(n, func(c *Node) bool {
		if c.Type == ElementNode {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Outline serializes the tag structure of a tree. Elements are written as
// <tag>...</tag>, text as a quoted string, and attributes are omitted, so two
// trees with the same nesting produce the same outline. The document node
// itself contributes nothing.
//
//	Outline(html.Parse("<div><p>Hi</p></div>")) == `<div><p>"Hi"</p></div>`
func Outline(n *Node) string {
	var sb strings.Builder
	writeOutline(&sb, n)
	return sb.String()
}

func writeOutline(sb *strings.Builder, n *Node) {
	switch n.Type {
	case TextNode:
		sb.WriteString(strconv.Quote(n.Data))
	case ElementNode:
		sb.WriteByte('<')
		sb.WriteString(n.Data)
		sb.WriteByte('>')
		for _, c := range n.Children {
			writeOutline(sb, c)
		}
		sb.WriteString("</")
		sb.WriteString(n.Data)
		sb.WriteByte('>')
	case DocumentNode:
		for _, c := range n.Children {
			writeOutline(sb, c)
		}
	}
}

// Dump renders the tree as an indented listing, one node per line.
func Dump(n *Node) string {
	if n == nil {
		return ""
	}
	root := tp.New()
	dumpNode(root, n)
	return root.String()
}

func dumpNode(t tp.Tree, n *Node) {
	label := nodeLabel(n)
	if len(n.Children) == 0 {
		t.AddNode(label)
		return
	}
	branch := t.AddBranch(label)
	for _, c := range n.Children {
		dumpNode(branch, c)
	}
}

func nodeLabel(n *Node) string {
	switch n.Type {
	case DocumentNode:
		return "#document"
	case TextNode:
		return fmt.Sprintf("#text %q", n.Data)
	}
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(n.Data)
	for _, k := range n.sortedAttributeKeys() {
		fmt.Fprintf(&sb, " %s=%q", k, n.Attributes[k])
	}
	sb.WriteByte('>')
	return sb.String()
}
