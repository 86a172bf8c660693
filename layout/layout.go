// Package layout turns a styled document into a tree of positioned boxes.
//
// Boxes are stacked vertically in normal flow. There are no line boxes and
// no floats: inline boxes stack the same way blocks do.
package layout

import (
	"github.com/chrisuehlinger/viberender/dom"
	"github.com/chrisuehlinger/viberender/style"
)

// Dimensions represents the dimensions of a layout box.
type Dimensions struct {
	Content Rect
	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// Rect represents a rectangular area.
type Rect struct {
	X, Y, Width, Height float64
}

// EdgeSizes represents the sizes of edges (top, right, bottom, left).
type EdgeSizes struct {
	Top, Right, Bottom, Left float64
}

// BoxType represents the type of layout box.
type BoxType int

const (
	BlockBox BoxType = iota
	InlineBox
	AnonymousBox
)

func (t BoxType) String() string {
	switch t {
	case BlockBox:
		return "block"
	case InlineBox:
		return "inline"
	case AnonymousBox:
		return "anonymous"
	}
	return "unknown"
}

// LayoutBox represents a box in the layout tree. Node is nil for anonymous
// boxes. Text boxes carry the style of their parent element.
type LayoutBox struct {
	Type       BoxType
	Dimensions Dimensions
	Node       *dom.Node
	Style      style.ComputedStyle
	Children   []*LayoutBox
}

// IsText reports whether the box was generated by a text node.
func (b *LayoutBox) IsText() bool {
	return b.Node != nil && b.Node.IsText()
}

// PaddingBox returns the area covered by content and padding.
func (d *Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox returns the area covered by content, padding, and border.
func (d *Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox returns the area covered by content, padding, border, and margin.
func (d *Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// ExpandedBy returns a rectangle expanded by the given edge sizes.
func (r Rect) ExpandedBy(edge EdgeSizes) Rect {
	return Rect{
		X:      r.X - edge.Left,
		Y:      r.Y - edge.Top,
		Width:  r.Width + edge.Left + edge.Right,
		Height: r.Height + edge.Top + edge.Bottom,
	}
}

func (e EdgeSizes) horizontal() float64 { return e.Left + e.Right }
