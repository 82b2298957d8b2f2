package model

import (
	"encoding/json"
	"sort"
	"strings"
)

const (
	cardIDKey         = "id"
	cardTemplateIDKey = "templateId"
)

// CardData is one record authored against a template. Fields is an open map
// keyed by template field key.
type CardData struct {
	ID         string
	TemplateID string
	Fields     map[string]Value
}

// NewCard returns an empty card bound to the template id.
func NewCard(id, templateID string) CardData {
	return CardData{ID: id, TemplateID: templateID, Fields: make(map[string]Value)}
}

// Get resolves a field value. Missing keys resolve to Null.
func (c CardData) Get(key string) Value {
	if c.Fields == nil {
		return Null()
	}
	value, ok := c.Fields[key]
	if !ok {
		return Null()
	}
	return value
}

// Has reports whether the card carries a value for key.
func (c CardData) Has(key string) bool {
	if c.Fields == nil {
		return false
	}
	_, ok := c.Fields[key]
	return ok
}

// Set stores a field value, allocating the map on first use.
func (c *CardData) Set(key string, value Value) {
	if c.Fields == nil {
		c.Fields = make(map[string]Value)
	}
	c.Fields[key] = value
}

// Clone returns a copy whose field map can be mutated independently.
func (c CardData) Clone() CardData {
	out := c
	if c.Fields != nil {
		out.Fields = make(map[string]Value, len(c.Fields))
		for key, value := range c.Fields {
			out.Fields[key] = value
		}
	}
	return out
}

// DisplayName picks a human readable name for the card.
func (c CardData) DisplayName() string {
	for _, key := range []string{"name", "title"} {
		if s, ok := c.Get(key).Str(); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	if c.ID != "" {
		return c.ID
	}
	return "Untitled"
}

// Keys returns the sorted field keys present on the card.
func (c CardData) Keys() []string {
	keys := make([]string, 0, len(c.Fields))
	for key := range c.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (c CardData) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Fields)+2)
	for key, value := range c.Fields {
		out[key] = value
	}
	out[cardIDKey] = c.ID
	out[cardTemplateIDKey] = c.TemplateID
	return json.Marshal(out)
}

func (c *CardData) UnmarshalJSON(data []byte) error {
	var raw map[string]Value
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	card := CardData{Fields: make(map[string]Value, len(raw))}
	for key, value := range raw {
		switch key {
		case cardIDKey:
			card.ID = value.Display()
		case cardTemplateIDKey:
			if !value.IsNull() {
				card.TemplateID = value.Display()
			}
		default:
			card.Fields[key] = value
		}
	}
	*c = card
	return nil
}
