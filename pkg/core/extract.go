package core

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches the first signed number embedded in free-form
// text. Both "." and "," are accepted as the decimal separator.
var numberPattern = regexp.MustCompile(`[-+]?\d+(?:[.,]\d+)?`)

// ExtractValue pulls a numeric value out of a parameter according to its
// storage kind:
//
//   - numeric storage is returned as-is (already in feet)
//   - integer storage is widened to float64
//   - text storage is scanned for the first embedded number, with ","
//     normalized to "." ("3,5" parses as 3.5)
//
// ok is false for unsupported kinds, unset values, blank text, and text
// containing no parsable number.
func ExtractValue(p Parameter) (float64, bool) {
	switch p.Kind() {
	case StorageNumeric:
		return p.Numeric()
	case StorageInteger:
		n, ok := p.Integer()
		if !ok {
			return 0, false
		}
		return float64(n), true
	case StorageText:
		s, ok := p.Text()
		if !ok {
			return 0, false
		}
		return extractFromText(s)
	default:
		return 0, false
	}
}

func extractFromText(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	match := numberPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
