package layout

import (
	"strconv"

	"github.com/chrisuehlinger/viberender/css"
	"github.com/chrisuehlinger/viberender/style"
)

// TextMeasurer returns the height of a run of text laid out in the given
// width.
type TextMeasurer interface {
	MeasureText(text string, cs style.ComputedStyle, width float64) float64
}

// TextMeasurerFunc adapts a function to TextMeasurer.
type TextMeasurerFunc func(text string, cs style.ComputedStyle, width float64) float64

func (f TextMeasurerFunc) MeasureText(text string, cs style.ComputedStyle, width float64) float64 {
	return f(text, cs, width)
}

// LineHeight measures every text run as a single line: the line-height
// when it is a length or a number, otherwise 1.2 times the font size.
var LineHeight TextMeasurer = TextMeasurerFunc(func(_ string, cs style.ComputedStyle, _ float64) float64 {
	return lineHeight(cs)
})

func lineHeight(cs style.ComputedStyle) float64 {
	fontSize := cs.FontSize()
	lh := cs["line-height"]
	if l, ok := css.ParseLength(lh); ok {
		return l.Resolve(fontSize, style.DefaultFontSize, fontSize)
	}
	if n, err := strconv.ParseFloat(lh, 64); err == nil && n >= 0 {
		return n * fontSize
	}
	return 1.2 * fontSize
}
