package style

// PropertyDefault defines the initial value and inheritance of a property.
type PropertyDefault struct {
	Initial   string
	Inherited bool
}

// Properties lists every property the resolver gives a value to. display is
// deliberately absent: an element without a display declaration takes its
// box type from its tag.
var Properties = map[string]PropertyDefault{
	// Sizing
	"width":  {Initial: "auto"},
	"height": {Initial: "auto"},

	// Margins
	"margin-top":    {Initial: "0"},
	"margin-right":  {Initial: "0"},
	"margin-bottom": {Initial: "0"},
	"margin-left":   {Initial: "0"},

	// Padding
	"padding-top":    {Initial: "0"},
	"padding-right":  {Initial: "0"},
	"padding-bottom": {Initial: "0"},
	"padding-left":   {Initial: "0"},

	// Borders
	"border-top-width":    {Initial: "medium"},
	"border-right-width":  {Initial: "medium"},
	"border-bottom-width": {Initial: "medium"},
	"border-left-width":   {Initial: "medium"},
	"border-top-style":    {Initial: "none"},
	"border-right-style":  {Initial: "none"},
	"border-bottom-style": {Initial: "none"},
	"border-left-style":   {Initial: "none"},
	"border-top-color":    {Initial: "currentcolor"},
	"border-right-color":  {Initial: "currentcolor"},
	"border-bottom-color": {Initial: "currentcolor"},
	"border-left-color":   {Initial: "currentcolor"},

	// Text
	"color":       {Initial: "black", Inherited: true},
	"font-family": {Initial: "serif", Inherited: true},
	"font-size":   {Initial: "medium", Inherited: true},
	"font-style":  {Initial: "normal", Inherited: true},
	"font-weight": {Initial: "normal", Inherited: true},
	"line-height": {Initial: "normal", Inherited: true},
	"text-align":  {Initial: "start", Inherited: true},
	"visibility":  {Initial: "visible", Inherited: true},
	"white-space": {Initial: "normal", Inherited: true},

	// Background
	"background-color": {Initial: "transparent"},
}

// DefaultFontSize is the px size of the "medium" keyword.
const DefaultFontSize = 16.0

var absoluteFontSizes = map[string]float64{
	"xx-small":  9,
	"x-small":   10,
	"small":     13,
	"medium":    16,
	"large":     18,
	"x-large":   24,
	"xx-large":  32,
	"xxx-large": 48,
}

// Inherited reports whether a property takes its parent's value when it is
// not set.
func Inherited(name string) bool {
	return Properties[name].Inherited
}
