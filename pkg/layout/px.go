package layout

import (
	"math"
	"regexp"
	"strconv"
)

var pxPattern = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*(?:px)?\s*$`)

// ParsePx extracts the pixel value of a CSS length such as "120px" or "120".
// Other units and keywords are rejected.
func ParsePx(value string) (int, bool) {
	match := pxPattern.FindStringSubmatch(value)
	if match == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return int(math.Round(f)), true
}

// Px formats an integer pixel length.
func Px(n int) string {
	return strconv.Itoa(n) + "px"
}
