package paint

import (
	"fmt"

	json "github.com/json-iterator/go"

	"github.com/chrisuehlinger/viberender/css"
	"github.com/chrisuehlinger/viberender/layout"
)

type wireRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type wirePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type wireCommand struct {
	Op       string     `json:"op"`
	Rect     *wireRect  `json:"rect,omitempty"`
	Position *wirePoint `json:"position,omitempty"`
	Color    string     `json:"color"`
	Width    float64    `json:"width,omitempty"`
	Text     string     `json:"text,omitempty"`
	FontSize float64    `json:"font_size,omitempty"`
}

func toWireRect(r layout.Rect) *wireRect {
	return &wireRect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// MarshalCommands encodes cmds as a JSON array of objects keyed by "op".
// Colors are written as hex strings.
func MarshalCommands(cmds []Command) ([]byte, error) {
	out := make([]wireCommand, 0, len(cmds))
	for _, cmd := range cmds {
		w := wireCommand{Op: cmd.Op()}
		switch c := cmd.(type) {
		case FillRect:
			w.Rect, w.Color = toWireRect(c.Rect), css.ColorToString(c.Color)
		case StrokeRect:
			w.Rect, w.Color, w.Width = toWireRect(c.Rect), css.ColorToString(c.Color), c.Width
		case DrawText:
			w.Position = &wirePoint{X: c.Position.X, Y: c.Position.Y}
			w.Color, w.Text, w.FontSize = css.ColorToString(c.Color), c.Text, c.FontSize
		default:
			return nil, fmt.Errorf("paint: unknown command %T", cmd)
		}
		out = append(out, w)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("paint: encoding commands: %w", err)
	}
	return data, nil
}

// Format renders one command as a line of text for listings.
func Format(cmd Command) string {
	switch c := cmd.(type) {
	case FillRect:
		return fmt.Sprintf("fill_rect %s %s", formatRect(c.Rect), css.ColorToString(c.Color))
	case StrokeRect:
		return fmt.Sprintf("stroke_rect %s %s width=%g", formatRect(c.Rect), css.ColorToString(c.Color), c.Width)
	case DrawText:
		return fmt.Sprintf("draw_text (%g,%g) %q %s size=%g", c.Position.X, c.Position.Y, c.Text, css.ColorToString(c.Color), c.FontSize)
	}
	return cmd.Op()
}

func formatRect(r layout.Rect) string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}
