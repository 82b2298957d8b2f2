package layout

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Style is the sparse CSS style of an element. Blank fields are absent.
// Position is stored but the renderer always paints elements absolutely.
type Style struct {
	Position  string
	Top       string
	Left      string
	Right     string
	Bottom    string
	Width     string
	Height    string
	MaxHeight string
	Padding   string
	FontStyle string
	TextAlign string

	// Extra holds any other property, keyed by camelCase CSS name.
	Extra map[string]string
}

// lengthProps receive a px unit when given as bare JSON numbers.
var lengthProps = map[string]struct{}{
	"top": {}, "left": {}, "right": {}, "bottom": {},
	"width": {}, "height": {}, "maxHeight": {}, "minHeight": {},
	"maxWidth": {}, "minWidth": {}, "padding": {}, "margin": {},
	"fontSize": {}, "borderWidth": {}, "borderRadius": {},
}

func (s *Style) field(prop string) *string {
	switch prop {
	case "position":
		return &s.Position
	case "top":
		return &s.Top
	case "left":
		return &s.Left
	case "right":
		return &s.Right
	case "bottom":
		return &s.Bottom
	case "width":
		return &s.Width
	case "height":
		return &s.Height
	case "maxHeight":
		return &s.MaxHeight
	case "padding":
		return &s.Padding
	case "fontStyle":
		return &s.FontStyle
	case "textAlign":
		return &s.TextAlign
	}
	return nil
}

// KnownProperty reports whether prop has a dedicated Style field.
func KnownProperty(prop string) bool {
	var s Style
	return s.field(camelCase(prop)) != nil
}

// Get returns the value of a property, known or extra.
func (s Style) Get(prop string) string {
	prop = camelCase(prop)
	if ptr := s.field(prop); ptr != nil {
		return *ptr
	}
	return s.Extra[prop]
}

// Set stores a property. A blank value removes it.
func (s *Style) Set(prop, value string) {
	prop = camelCase(prop)
	value = strings.TrimSpace(value)
	if ptr := s.field(prop); ptr != nil {
		*ptr = value
		return
	}
	if value == "" {
		delete(s.Extra, prop)
		return
	}
	if s.Extra == nil {
		s.Extra = make(map[string]string)
	}
	s.Extra[prop] = value
}

// Props flattens the style into a property map without blank entries.
func (s Style) Props() map[string]string {
	out := make(map[string]string, 11+len(s.Extra))
	for prop, value := range s.Extra {
		if value != "" {
			out[prop] = value
		}
	}
	for _, prop := range []string{"position", "top", "left", "right", "bottom", "width", "height", "maxHeight", "padding", "fontStyle", "textAlign"} {
		if value := *s.field(prop); value != "" {
			out[prop] = value
		}
	}
	return out
}

// Keys lists the set properties in sorted order.
func (s Style) Keys() []string {
	props := s.Props()
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// IsZero reports whether no property is set.
func (s Style) IsZero() bool {
	return len(s.Props()) == 0
}

// Clone returns a copy with its own Extra map.
func (s Style) Clone() Style {
	out := s
	if s.Extra != nil {
		out.Extra = make(map[string]string, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

func (s Style) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Props())
}

func (s *Style) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("layout: style: %w", err)
	}
	var out Style
	for prop, value := range raw {
		prop = camelCase(prop)
		switch v := value.(type) {
		case nil:
		case string:
			out.Set(prop, v)
		case float64:
			text := strconv.FormatFloat(v, 'f', -1, 64)
			if _, ok := lengthProps[prop]; ok && v != 0 {
				text += "px"
			}
			out.Set(prop, text)
		case bool:
			out.Set(prop, strconv.FormatBool(v))
		default:
			return fmt.Errorf("layout: style property %q must be a string or number", prop)
		}
	}
	*s = out
	return nil
}

// camelCase maps kebab-case CSS names ("max-height") to the camelCase form
// stored in documents ("maxHeight").
func camelCase(prop string) string {
	prop = strings.TrimSpace(prop)
	if !strings.Contains(prop, "-") {
		return prop
	}
	parts := strings.Split(prop, "-")
	var out strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		if out.Len() == 0 {
			out.WriteString(part)
			continue
		}
		out.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return out.String()
}

// KebabCase maps a camelCase property name to its CSS form.
func KebabCase(prop string) string {
	var out strings.Builder
	for i, r := range prop {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out.WriteByte('-')
			}
			out.WriteRune(r + ('a' - 'A'))
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}
