package model

import "time"

// FieldType is the enum of data slot kinds a template field can declare.
type FieldType string

const (
	FieldTypeText             FieldType = "text"
	FieldTypeTextarea         FieldType = "textarea"
	FieldTypeNumber           FieldType = "number"
	FieldTypeBoolean          FieldType = "boolean"
	FieldTypeSelect           FieldType = "select"
	FieldTypePlaceholderImage FieldType = "placeholderImage"
)

// Valid reports whether the type is one of the known field kinds.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextarea, FieldTypeNumber, FieldTypeBoolean, FieldTypeSelect, FieldTypePlaceholderImage:
		return true
	default:
		return false
	}
}

// UnassignedTemplateID is assigned to cards loaded without a template id.
const UnassignedTemplateID = "unassigned"

// Option is a single choice of a select field. Slice order is display order.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// PlaceholderConfig describes the stand-in image synthesised for
// placeholderImage fields when a card supplies no usable URL.
type PlaceholderConfig struct {
	Width     int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height    int    `json:"height,omitempty" yaml:"height,omitempty"`
	BgColor   string `json:"bgColor,omitempty" yaml:"bgColor,omitempty"`
	TextColor string `json:"textColor,omitempty" yaml:"textColor,omitempty"`
	Text      string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Field is one typed data slot of a template. KeyAutoDerived records whether
// Key was generated from Label; only such keys follow label edits.
type Field struct {
	Key               string             `json:"key"`
	Label             string             `json:"label"`
	Type              FieldType          `json:"type"`
	Placeholder       string             `json:"placeholder,omitempty"`
	DefaultValue      Value              `json:"defaultValue,omitzero"`
	Options           []Option           `json:"options,omitempty"`
	PlaceholderConfig *PlaceholderConfig `json:"placeholderConfig,omitempty"`
	KeyAutoDerived    bool               `json:"keyAutoDerived,omitempty"`
}

// Template is a named field schema plus the serialized layout bound to it.
// An empty LayoutDefinition means the default minimal layout.
type Template struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Fields           []Field `json:"fields"`
	LayoutDefinition string  `json:"layoutDefinition,omitempty"`
}

// Field returns the field with the supplied key.
func (t Template) Field(key string) (Field, bool) {
	for _, field := range t.Fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// Project groups cards that share a set of associated templates.
type Project struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	AssociatedTemplateIDs []string   `json:"associatedTemplateIds"`
	Cards                 []CardData `json:"cards"`
	CreatedAt             time.Time  `json:"createdAt,omitzero"`
	UpdatedAt             time.Time  `json:"updatedAt,omitzero"`
}
