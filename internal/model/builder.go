package model

import (
	"errors"
	"fmt"
	"strings"
)

// TemplateDefinition is the loosely specified input a Builder turns into a
// Template. Seed files and API payloads decode into this shape; keys, labels
// and ids may be omitted and are derived.
type TemplateDefinition struct {
	ID     string            `json:"id" yaml:"id"`
	Name   string            `json:"name" yaml:"name"`
	Fields []FieldDefinition `json:"fields" yaml:"fields"`
	Layout string            `json:"-" yaml:"-"`
}

// FieldDefinition is the input shape of a single template field.
type FieldDefinition struct {
	Key               string             `json:"key,omitempty" yaml:"key,omitempty"`
	Label             string             `json:"label,omitempty" yaml:"label,omitempty"`
	Type              FieldType          `json:"type,omitempty" yaml:"type,omitempty"`
	Placeholder       string             `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	DefaultValue      Value              `json:"defaultValue,omitzero" yaml:"defaultValue,omitempty"`
	Options           []Option           `json:"options,omitempty" yaml:"options,omitempty"`
	PlaceholderConfig *PlaceholderConfig `json:"placeholderConfig,omitempty" yaml:"placeholderConfig,omitempty"`
}

// Builder converts template definitions into validated templates.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.KeyDeriver.FallbackBase != "" {
		opts.KeyDeriver = options.KeyDeriver
	}
	return &Builder{opts: opts}
}

// Build fills in derived ids, keys and labels and validates the result.
// existingIDs is consulted when the definition carries no id.
func (b *Builder) Build(def TemplateDefinition, existingIDs map[string]struct{}) (Template, error) {
	name := strings.TrimSpace(def.Name)
	id := strings.TrimSpace(def.ID)
	if id == "" {
		if name == "" {
			return Template{}, errors.New("model builder: template requires an id or a name")
		}
		id = DeriveTemplateID(name, existingIDs)
	}
	if name == "" {
		name = b.opts.Labeler(id)
	}

	tpl := Template{
		ID:               id,
		Name:             name,
		LayoutDefinition: def.Layout,
	}

	keys := make(map[string]struct{}, len(def.Fields))
	for i, fd := range def.Fields {
		field, err := b.buildField(fd, keys)
		if err != nil {
			return Template{}, fmt.Errorf("model builder: template %q field %d: %w", id, i, err)
		}
		keys[field.Key] = struct{}{}
		tpl.Fields = append(tpl.Fields, field)
	}

	if err := ValidateTemplate(tpl); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

func (b *Builder) buildField(fd FieldDefinition, keys map[string]struct{}) (Field, error) {
	field := Field{
		Key:               strings.TrimSpace(fd.Key),
		Label:             strings.TrimSpace(fd.Label),
		Type:              fd.Type,
		Placeholder:       fd.Placeholder,
		DefaultValue:      fd.DefaultValue,
		Options:           append([]Option(nil), fd.Options...),
		PlaceholderConfig: fd.PlaceholderConfig,
	}
	if field.Type == "" {
		field.Type = FieldTypeText
	}
	if !field.Type.Valid() {
		return Field{}, fmt.Errorf("unknown field type %q", field.Type)
	}

	switch {
	case field.Key == "" && field.Label == "":
		return Field{}, ErrFieldKeyRequired
	case field.Key == "":
		field.Key = b.opts.KeyDeriver.DeriveKey(field.Label, keys)
		field.KeyAutoDerived = true
	case field.Label == "":
		field.Label = b.opts.Labeler(field.Key)
	}

	for i, option := range field.Options {
		if strings.TrimSpace(option.Label) == "" {
			field.Options[i].Label = option.Value
		}
	}
	return field, nil
}

// Definition converts a template back into its definition form.
func (t Template) Definition() TemplateDefinition {
	def := TemplateDefinition{ID: t.ID, Name: t.Name, Layout: t.LayoutDefinition}
	for _, field := range t.Fields {
		def.Fields = append(def.Fields, FieldDefinition{
			Key:               field.Key,
			Label:             field.Label,
			Type:              field.Type,
			Placeholder:       field.Placeholder,
			DefaultValue:      field.DefaultValue,
			Options:           field.Options,
			PlaceholderConfig: field.PlaceholderConfig,
		})
	}
	return def
}
