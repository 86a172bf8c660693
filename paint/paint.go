package paint

import (
	"image/color"
	"math"
	"strings"

	"github.com/chrisuehlinger/viberender/css"
	"github.com/chrisuehlinger/viberender/layout"
	"github.com/chrisuehlinger/viberender/style"
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Option configures Paint.
type Option func(*painter)

// WithDebugOutlines paints every box's content rect white with a black
// outline before its own decorations.
func WithDebugOutlines() Option {
	return func(p *painter) { p.debug = true }
}

type painter struct {
	debug bool
	cmds  []Command
}

// Paint returns the drawing commands for tree in painting order: each box
// before its children, children in tree order.
func Paint(tree *layout.LayoutBox, opts ...Option) []Command {
	p := &painter{}
	for _, opt := range opts {
		opt(p)
	}
	if tree != nil {
		p.paintBox(tree)
	}
	return p.cmds
}

func (p *painter) paintBox(b *layout.LayoutBox) {
	d := &b.Dimensions
	if p.debug {
		p.cmds = append(p.cmds,
			FillRect{Rect: d.Content, Color: white},
			StrokeRect{Rect: d.Content, Color: black, Width: 1})
	}

	visible := !strings.EqualFold(b.Style["visibility"], "hidden")
	switch {
	case !visible:
	case b.IsText():
		p.paintText(b)
	case b.Node != nil && b.Node.IsElement():
		p.paintBackground(b)
		p.paintBorders(b)
	}

	for _, c := range b.Children {
		p.paintBox(c)
	}
}

func (p *painter) paintBackground(b *layout.LayoutBox) {
	c, ok := css.ParseColor(b.Style["background-color"])
	if !ok || c.A == 0 {
		return
	}
	p.cmds = append(p.cmds, FillRect{Rect: b.Dimensions.BorderBox(), Color: c})
}

// paintBorders strokes the border box once, using the color of the first
// painted side and the widest painted side.
func (p *painter) paintBorders(b *layout.LayoutBox) {
	edges := b.Dimensions.Border
	widths := [4]float64{edges.Top, edges.Right, edges.Bottom, edges.Left}
	sides := [4]string{"top", "right", "bottom", "left"}

	var (
		width   float64
		col     color.RGBA
		painted bool
	)
	for i, side := range sides {
		if widths[i] <= 0 {
			continue
		}
		switch strings.ToLower(b.Style["border-"+side+"-style"]) {
		case "", "none", "hidden":
			continue
		}
		if !painted {
			col = colorOf(b.Style, b.Style["border-"+side+"-color"])
			painted = true
		}
		width = math.Max(width, widths[i])
	}
	if !painted || col.A == 0 {
		return
	}
	p.cmds = append(p.cmds, StrokeRect{Rect: b.Dimensions.BorderBox(), Color: col, Width: width})
}

func (p *painter) paintText(b *layout.LayoutBox) {
	content := b.Dimensions.Content
	p.cmds = append(p.cmds, DrawText{
		Position: Point{X: content.X, Y: content.Y},
		Text:     b.Node.Data,
		Color:    colorOf(b.Style, b.Style["color"]),
		FontSize: b.Style.FontSize(),
	})
}

// colorOf parses value, resolving currentcolor against the style's color.
// Anything unparseable is black.
func colorOf(cs style.ComputedStyle, value string) color.RGBA {
	if strings.EqualFold(strings.TrimSpace(value), "currentcolor") {
		value = cs["color"]
	}
	if c, ok := css.ParseColor(value); ok {
		return c
	}
	return black
}
