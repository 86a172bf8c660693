// Package render rasterizes paint commands into an in-memory image.
//
// Text is drawn greeked: each visible character becomes a filled cell of
// roughly the glyph's size. This is enough to check page geometry without
// a font library.
package render

import (
	"image"
	"image/color"
	"math"
	"unicode"

	"github.com/chrisuehlinger/viberender/layout"
	"github.com/chrisuehlinger/viberender/paint"
)

// Canvas represents the rendering surface. It implements paint.Surface.
type Canvas struct {
	Pixels []color.RGBA
	Width  int
	Height int
}

var _ paint.Surface = (*Canvas)(nil)

// MaxSide is the largest canvas width or height.
const MaxSide = 8192

// NewCanvas creates a white canvas. Negative sizes are treated as zero and
// sizes above MaxSide are cut to MaxSide.
func NewCanvas(width, height int) *Canvas {
	width, height = min(max(width, 0), MaxSide), min(max(height, 0), MaxSide)
	c := &Canvas{
		Pixels: make([]color.RGBA, width*height),
		Width:  width,
		Height: height,
	}
	c.Clear(color.RGBA{255, 255, 255, 255})
	return c
}

// Rasterize replays cmds onto a new canvas of the given size.
func Rasterize(cmds []paint.Command, width, height int) *Canvas {
	c := NewCanvas(width, height)
	paint.Replay(cmds, c)
	return c
}

// FillRect fills r, blending when the color is translucent.
func (c *Canvas) FillRect(r layout.Rect, col color.RGBA) {
	x, y, w, h := pixelRect(r)
	c.fill(x, y, w, h, col)
}

// StrokeRect draws a border of the given width inside r.
func (c *Canvas) StrokeRect(r layout.Rect, col color.RGBA, width float64) {
	x, y, w, h := pixelRect(r)
	bw := int(math.Round(width))
	if bw <= 0 || w <= 0 || h <= 0 {
		return
	}
	bw = min(bw, (w+1)/2, (h+1)/2)
	c.fill(x, y, w, bw, col)
	c.fill(x, y+h-bw, w, bw, col)
	c.fill(x, y+bw, bw, h-2*bw, col)
	c.fill(x+w-bw, y+bw, bw, h-2*bw, col)
}

// DrawText draws one cell per non-space character, advancing by 0.6 of
// the font size.
func (c *Canvas) DrawText(at paint.Point, text string, col color.RGBA, fontSize float64) {
	if fontSize <= 0 || math.IsNaN(fontSize) {
		return
	}
	advance := 0.6 * fontSize
	cell := layout.Rect{Y: at.Y + 0.2*fontSize, Width: 0.5 * fontSize, Height: 0.7 * fontSize}
	for i, r := range []rune(text) {
		if unicode.IsSpace(r) {
			continue
		}
		cell.X = at.X + float64(i)*advance
		c.FillRect(cell, col)
	}
}

// fill fills a pixel rectangle clipped to the canvas.
func (c *Canvas) fill(x, y, width, height int, col color.RGBA) {
	x1 := max(x, 0)
	y1 := max(y, 0)
	x2 := min(x+width, c.Width)
	y2 := min(y+height, c.Height)

	for py := y1; py < y2; py++ {
		for px := x1; px < x2; px++ {
			if col.A < 255 {
				c.SetPixelBlend(px, py, col)
			} else {
				c.Pixels[py*c.Width+px] = col
			}
		}
	}
}

// pixelRect rounds a layout rect to whole pixels. Non-finite rects are
// empty.
func pixelRect(r layout.Rect) (x, y, w, h int) {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0
		}
	}
	x0, y0 := math.Round(r.X), math.Round(r.Y)
	x1, y1 := math.Round(r.X+r.Width), math.Round(r.Y+r.Height)
	return int(x0), int(y0), int(x1 - x0), int(y1 - y0)
}

// SetPixelBlend sets a pixel with alpha compositing.
func (c *Canvas) SetPixelBlend(x, y int, col color.RGBA) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}

	idx := y*c.Width + x
	dst := c.Pixels[idx]

	// Porter-Duff source over.
	srcA := float64(col.A) / 255.0
	dstA := float64(dst.A) / 255.0
	outA := srcA + dstA*(1-srcA)

	if outA == 0 {
		c.Pixels[idx] = color.RGBA{}
		return
	}

	blend := func(s, d uint8) uint8 {
		return uint8(math.Round((float64(s)*srcA + float64(d)*dstA*(1-srcA)) / outA))
	}
	c.Pixels[idx] = color.RGBA{
		R: blend(col.R, dst.R),
		G: blend(col.G, dst.G),
		B: blend(col.B, dst.B),
		A: uint8(math.Round(outA * 255)),
	}
}

// Clear fills the whole canvas with col.
func (c *Canvas) Clear(col color.RGBA) {
	for i := range c.Pixels {
		c.Pixels[i] = col
	}
}

// At returns the color of a pixel, or transparent outside the canvas.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return color.RGBA{}
	}
	return c.Pixels[y*c.Width+x]
}

// ToImage converts the canvas to a Go image.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, y, c.Pixels[y*c.Width+x])
		}
	}
	return img
}
