package css

import (
	"math"
	"strconv"
	"strings"
)

// Length is a CSS length: a number and a lower case unit. A percentage has
// Unit "%". A bare zero has an empty unit.
type Length struct {
	Value float64
	Unit  string
}

// Absolute units in px.
var absoluteUnits = map[string]float64{
	"px": 1,
	"pt": 96.0 / 72.0,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
}

// ParseLength parses a length such as "10px", "1.5em", "50%" or "0".
// Numbers other than zero need a unit.
func ParseLength(s string) (Length, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Length{}, false
	}

	var unit string
	switch {
	case strings.HasSuffix(s, "%"):
		unit = "%"
	default:
		i := len(s)
		for i > 0 && 'a' <= s[i-1] && s[i-1] <= 'z' {
			i--
		}
		unit = s[i:]
	}
	num := s[:len(s)-len(unit)]
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Length{}, false
	}

	switch unit {
	case "":
		if v != 0 {
			return Length{}, false
		}
	case "%", "em", "rem":
	default:
		if _, ok := absoluteUnits[unit]; !ok {
			return Length{}, false
		}
	}
	return Length{Value: v, Unit: unit}, true
}

// Resolve converts l to px. Font relative units use fontSize and
// rootFontSize; percentages are taken of percentBase.
func (l Length) Resolve(fontSize, rootFontSize, percentBase float64) float64 {
	switch l.Unit {
	case "":
		return 0
	case "%":
		return l.Value * percentBase / 100
	case "em":
		return l.Value * fontSize
	case "rem":
		return l.Value * rootFontSize
	}
	return l.Value * absoluteUnits[l.Unit]
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit
}
