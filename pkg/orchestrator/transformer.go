package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-cardforge/pkg/layout"
	"github.com/goliatone/go-cardforge/pkg/model"
)

// Transformer mutates the resolved template and record before decorators run.
// Implementations can relabel fields, swap layouts or fill record values.
type Transformer interface {
	Transform(ctx context.Context, tpl *model.Template, record *model.CardData) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, tpl *model.Template, record *model.CardData) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, tpl *model.Template, record *model.CardData) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, tpl, record)
}

// Chain runs transformers in order, stopping at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, tpl *model.Template, record *model.CardData) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, tpl, record); err != nil {
				return err
			}
		}
		return nil
	})
}

// FieldDefaults fills record values that are absent with the field's
// DefaultValue. Present values, including explicit nulls, are kept.
func FieldDefaults() Transformer {
	return TransformerFunc(func(_ context.Context, tpl *model.Template, record *model.CardData) error {
		if tpl == nil || record == nil {
			return nil
		}
		for _, field := range tpl.Fields {
			if field.DefaultValue.IsNull() {
				continue
			}
			if record.Has(field.Key) {
				continue
			}
			record.Set(field.Key, field.DefaultValue)
		}
		return nil
	})
}

// JSONPresetTransformer applies declarative template overrides loaded from a
// JSON document:
//
//	{
//	  "name": "Spells (print)",
//	  "layout": {"width": "300px", "height": "420px", "elements": []},
//	  "fields": {
//	    "manaCost": {"label": "Cost", "placeholder": "0", "defaultValue": 1}
//	  }
//	}
//
// "layout" may be a layout object or its serialized string form.
type JSONPresetTransformer struct {
	document jsonPresetDocument
}

type jsonPresetDocument struct {
	Name   string                    `json:"name"`
	Layout json.RawMessage           `json:"layout"`
	Fields map[string]jsonFieldPatch `json:"fields"`

	layoutText string
}

type jsonFieldPatch struct {
	Label        string          `json:"label"`
	Placeholder  string          `json:"placeholder"`
	DefaultValue json.RawMessage `json:"defaultValue"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonPresetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	text, err := presetLayoutText(document.Layout)
	if err != nil {
		return nil, err
	}
	document.layoutText = text
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON preset from the provided
// filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied template.
func (t *JSONPresetTransformer) Transform(ctx context.Context, tpl *model.Template, _ *model.CardData) error {
	if tpl == nil {
		return errors.New("json preset transformer: template is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if name := strings.TrimSpace(t.document.Name); name != "" {
		tpl.Name = name
	}
	if t.document.layoutText != "" {
		tpl.LayoutDefinition = t.document.layoutText
	}

	for key, patch := range t.document.Fields {
		field := findField(tpl.Fields, key)
		if field == nil {
			return fmt.Errorf("json preset transformer: field %q not found", key)
		}
		if err := applyFieldPatch(field, patch); err != nil {
			return fmt.Errorf("json preset transformer: field %q: %w", key, err)
		}
	}
	return nil
}

func presetLayoutText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return "", fmt.Errorf("json preset transformer: layout: %w", err)
		}
		if _, err := layout.Parse(text); err != nil {
			return "", fmt.Errorf("json preset transformer: layout: %w", err)
		}
		return text, nil
	}
	doc, err := layout.Parse(string(trimmed))
	if err != nil {
		return "", fmt.Errorf("json preset transformer: layout: %w", err)
	}
	text, err := layout.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("json preset transformer: layout: %w", err)
	}
	return text, nil
}

func applyFieldPatch(field *model.Field, patch jsonFieldPatch) error {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if len(bytes.TrimSpace(patch.DefaultValue)) > 0 {
		var value model.Value
		if err := json.Unmarshal(patch.DefaultValue, &value); err != nil {
			return fmt.Errorf("default value: %w", err)
		}
		field.DefaultValue = value
	}
	return nil
}

func findField(fields []model.Field, key string) *model.Field {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	for idx := range fields {
		if fields[idx].Key == key {
			return &fields[idx]
		}
	}
	return nil
}
