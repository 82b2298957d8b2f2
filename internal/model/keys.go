package model

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// DefaultKeyBase is used when a label carries no usable word characters.
const DefaultKeyBase = "field"

// DefaultTemplateIDBase is used when a template name yields an empty slug.
const DefaultTemplateIDBase = "template"

var (
	keySeparatorPattern = regexp.MustCompile(`[\s_\-]+`)
	idSeparatorPattern  = regexp.MustCompile(`[^a-z0-9]+`)
)

// KeyDeriver turns human labels into unique camelCase field keys.
type KeyDeriver struct {
	FallbackBase string
}

// DeriveKey converts label into a camelCase key that is not present in
// existing. Collisions get an increasing numeric suffix (cost, cost1, ...).
func (d KeyDeriver) DeriveKey(label string, existing map[string]struct{}) string {
	return uniqueKey(d.BaseKey(label), existing)
}

// BaseKey returns the camelCase candidate for label before collision
// handling.
func (d KeyDeriver) BaseKey(label string) string {
	fallback := strings.TrimSpace(d.FallbackBase)
	if fallback == "" {
		fallback = DefaultKeyBase
	}

	words := keySeparatorPattern.Split(strings.TrimSpace(stripKeyChars(label)), -1)
	var out strings.Builder
	for _, word := range words {
		if word == "" {
			continue
		}
		if out.Len() == 0 {
			out.WriteString(strings.ToLower(word))
			continue
		}
		out.WriteString(upperFirst(strings.ToLower(word)))
	}

	key := out.String()
	if key == "" {
		return fallback
	}
	if first := []rune(key)[0]; unicode.IsDigit(first) {
		key = "_" + key
	}
	return key
}

// DeriveKey uses the default KeyDeriver.
func DeriveKey(label string, existing map[string]struct{}) string {
	return KeyDeriver{}.DeriveKey(label, existing)
}

// DeriveTemplateID converts a template name into a lower-kebab, URL-safe id
// that is not present in existing.
func DeriveTemplateID(name string, existing map[string]struct{}) string {
	slug := idSeparatorPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = DefaultTemplateIDBase
	}
	if _, taken := existing[slug]; !taken {
		return slug
	}
	for i := 2; ; i++ {
		candidate := slug + "-" + strconv.Itoa(i)
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
	}
}

// IsURLSafeID reports whether id only uses lower-case letters, digits, dash
// and underscore.
func IsURLSafeID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func uniqueKey(base string, existing map[string]struct{}) string {
	if _, taken := existing[base]; !taken {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + strconv.Itoa(i)
		if _, taken := existing[candidate]; !taken {
			return candidate
		}
	}
}

func stripKeyChars(label string) string {
	var out strings.Builder
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' || r == '-' {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func upperFirst(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func keySet(keys []string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		out[key] = struct{}{}
	}
	return out
}
