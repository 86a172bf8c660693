// Package dom provides the document tree shared by every rendering stage.
//
// A tree is rooted at a Document node. Each node owns its children
// exclusively and holds no reference back to its parent, so a parsed tree
// can be read by several style and layout passes at once without locking.
package dom

// NodeType represents the type of a Node. The numeric values follow the DOM
// Living Standard so they read the same in dumps.
type NodeType uint16

const (
	// ElementNode represents an Element node.
	ElementNode NodeType = 1
	// TextNode represents a Text node.
	TextNode NodeType = 3
	// DocumentNode represents a Document node.
	DocumentNode NodeType = 9
)

// String returns the string representation of the NodeType.
func (nt NodeType) String() string {
	switch nt {
	case ElementNode:
		return "ELEMENT_NODE"
	case TextNode:
		return "TEXT_NODE"
	case DocumentNode:
		return "DOCUMENT_NODE"
	default:
		return "UNKNOWN_NODE"
	}
}
