// Package paint walks a layout tree and produces a flat list of drawing
// commands for a host surface.
package paint

import (
	"image/color"

	"github.com/chrisuehlinger/viberender/layout"
)

// Point is a position in layout coordinates.
type Point struct {
	X, Y float64
}

// Command is a single drawing operation. The set of commands is closed:
// FillRect, StrokeRect and DrawText.
type Command interface {
	// Op names the operation.
	Op() string
	apply(s Surface)
}

// FillRect fills a rectangle with a solid color.
type FillRect struct {
	Rect  layout.Rect
	Color color.RGBA
}

// StrokeRect outlines a rectangle. The stroke lies inside Rect.
type StrokeRect struct {
	Rect  layout.Rect
	Color color.RGBA
	Width float64
}

// DrawText draws a run of text with its top left corner at Position.
type DrawText struct {
	Position Point
	Text     string
	Color    color.RGBA
	FontSize float64
}

func (FillRect) Op() string   { return "fill_rect" }
func (StrokeRect) Op() string { return "stroke_rect" }
func (DrawText) Op() string   { return "draw_text" }

func (c FillRect) apply(s Surface)   { s.FillRect(c.Rect, c.Color) }
func (c StrokeRect) apply(s Surface) { s.StrokeRect(c.Rect, c.Color, c.Width) }
func (c DrawText) apply(s Surface)   { s.DrawText(c.Position, c.Text, c.Color, c.FontSize) }

// Surface receives drawing commands. Implementations map them to real
// drawing primitives.
type Surface interface {
	FillRect(r layout.Rect, c color.RGBA)
	StrokeRect(r layout.Rect, c color.RGBA, width float64)
	DrawText(at Point, text string, c color.RGBA, fontSize float64)
}

// Replay sends cmds to s in order.
func Replay(cmds []Command, s Surface) {
	for _, cmd := range cmds {
		cmd.apply(s)
	}
}
