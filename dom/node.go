package dom

import (
	"sort"
	"strings"
)

// Node is a document, element or text node.
//
// Data is the lower-case tag name for elements and the character data for
// text nodes; it is empty for the document. Attributes and Children are only
// populated on element and document nodes.
type Node struct {
	Type       NodeType
	Data       string
	Attributes map[string]string
	Children   []*Node
}

// NewDocument creates a document node owning the given children.
func NewDocument(children ...*Node) *Node {
	doc := &Node{Type: DocumentNode}
	for _, c := range children {
		doc.AppendChild(c)
	}
	return doc
}

// NewElement creates an element node. The attribute map is copied.
func NewElement(tag string, attrs map[string]string, children ...*Node) *Node {
	el := &Node{
		Type: ElementNode,
		Data: strings.ToLower(tag),
	}
	if len(attrs) > 0 {
		el.Attributes = make(map[string]string, len(attrs))
		for k, v := range attrs {
			el.Attributes[k] = v
		}
	}
	for _, c := range children {
		el.AppendChild(c)
	}
	return el
}

// NewText creates a text node.
func NewText(content string) *Node {
	return &Node{Type: TextNode, Data: content}
}

// AppendChild adds c as the last child of n. Text nodes are always leaves, so
// appending to one is a no-op and reports false. A nil child is ignored.
func (n *Node) AppendChild(c *Node) bool {
	if c == nil || n.Type == TextNode {
		return false
	}
	n.Children = append(n.Children, c)
	return true
}

// SetAttribute sets an attribute on an element, replacing any earlier value.
func (n *Node) SetAttribute(key, value string) {
	if n.Type != ElementNode {
		return
	}
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[key] = value
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool { return n != nil && n.Type == ElementNode }

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n != nil && n.Type == TextNode }

// TagName returns the tag name of an element, or "" for other node types.
func (n *Node) TagName() string {
	if n.Type != ElementNode {
		return ""
	}
	return n.Data
}

// Text returns the character data of a text node, or "" for other node types.
func (n *Node) Text() string {
	if n.Type != TextNode {
		return ""
	}
	return n.Data
}

// GetAttribute returns the value of the named attribute.
func (n *Node) GetAttribute(key string) (string, bool) {
	v, ok := n.Attributes[key]
	return v, ok
}

// ID returns the element's id attribute.
func (n *Node) ID() string {
	return n.Attributes["id"]
}

// Classes returns the set of class names in the element's class attribute.
func (n *Node) Classes() map[string]bool {
	fields := strings.Fields(n.Attributes["class"])
	if len(fields) == 0 {
		return nil
	}
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// ElementChildren returns the element children of n in document order.
func (n *Node) ElementChildren() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Type == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.collectTextContent(&sb)
	return sb.String()
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	if n.Type == TextNode {
		sb.WriteString(n.Data)
		return
	}
	for _, c := range n.Children {
		c.collectTextContent(sb)
	}
}

// sortedAttributeKeys returns attribute names in lexical order so output
// built from them is deterministic.
func (n *Node) sortedAttributeKeys() []string {
	keys := make([]string, 0, len(n.Attributes))
	for k := range n.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
