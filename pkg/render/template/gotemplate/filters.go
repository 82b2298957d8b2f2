package gotemplate

import (
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
)

var defaultFilters = map[string]pongo2.FilterFunction{
	"trim":      filterTrim,
	"inlinecss": filterInlineCSS,
	"cssvars":   filterInlineCSS,
}

func registerDefaultFilters() {
	for name, fn := range defaultFilters {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterInlineCSS turns a property map into "a: 1; b: 2" with sorted keys.
func filterInlineCSS(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	props, ok := in.Interface().(map[string]any)
	if !ok || len(props) == 0 {
		return pongo2.AsValue(""), nil
	}
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value, _ := props[key].(string)
		if value = strings.TrimSpace(value); value == "" {
			continue
		}
		parts = append(parts, key+": "+value)
	}
	return pongo2.AsValue(strings.Join(parts, "; ")), nil
}
