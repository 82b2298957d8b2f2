package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler converts a field key into a human-friendly label. It splits
// on underscores, dashes and camelCase boundaries: "manaCost" → "Mana Cost".
func DefaultLabeler(key string) string {
	if key == "" {
		return ""
	}

	words := keySeparatorPattern.Split(key, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		for _, part := range strings.Fields(splitCamel(word)) {
			segments = append(segments, titleCase(part))
		}
	}
	return strings.Join(segments, " ")
}

func splitCamel(input string) string {
	runes := []rune(input)
	var out strings.Builder
	for i, r := range runes {
		if i > 0 && isBoundary(runes[i-1], r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(prev, r rune) bool {
	switch {
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsLetter(prev) && unicode.IsDigit(r):
		return true
	case unicode.IsDigit(prev) && unicode.IsLetter(r):
		return true
	}
	return false
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	return upperFirst(strings.ToLower(word))
}
