package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrTemplateIDRequired = errors.New("model: template id is required")
	ErrFieldKeyRequired   = errors.New("model: field key is required")
	ErrUnknownFieldType   = errors.New("model: unknown field type")
)

// DuplicateFieldKeyError is returned when two or more fields of a template
// share a key. Labels lists every field that uses the key.
type DuplicateFieldKeyError struct {
	Key    string
	Labels []string
}

func (e *DuplicateFieldKeyError) Error() string {
	quoted := make([]string, len(e.Labels))
	for i, label := range e.Labels {
		quoted[i] = fmt.Sprintf("%q", label)
	}
	return fmt.Sprintf("model: duplicate field key %q used by fields %s", e.Key, strings.Join(quoted, ", "))
}

// DuplicateTemplateIDError is returned when a new template reuses an id.
type DuplicateTemplateIDError struct {
	ID string
}

func (e *DuplicateTemplateIDError) Error() string {
	return fmt.Sprintf("model: template id %q already exists", e.ID)
}

// InvalidTemplateIDError is returned for ids that are not URL-safe.
type InvalidTemplateIDError struct {
	ID string
}

func (e *InvalidTemplateIDError) Error() string {
	return fmt.Sprintf("model: template id %q must use lower-case letters, digits, '-' or '_'", e.ID)
}

// InvalidOptionError reports a select option with an empty or repeated value.
type InvalidOptionError struct {
	FieldKey string
	Value    string
	Reason   string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("model: field %q option %q: %s", e.FieldKey, e.Value, e.Reason)
}

// ValidateTemplate checks the invariants that must hold before a template is
// persisted. All problems are joined so callers can surface every offending
// key at once.
func ValidateTemplate(t Template) error {
	var errs []error
	switch {
	case strings.TrimSpace(t.ID) == "":
		errs = append(errs, ErrTemplateIDRequired)
	case !IsURLSafeID(t.ID):
		errs = append(errs, &InvalidTemplateIDError{ID: t.ID})
	}
	errs = append(errs, validateFields(t.Fields)...)
	return errors.Join(errs...)
}

// ValidateNewTemplate applies ValidateTemplate and rejects ids already used by
// existing templates.
func ValidateNewTemplate(t Template, existing []Template) error {
	if err := ValidateTemplate(t); err != nil {
		return err
	}
	for _, other := range existing {
		if other.ID == t.ID {
			return &DuplicateTemplateIDError{ID: t.ID}
		}
	}
	return nil
}

// DuplicateKeys groups fields by key and returns one error per key shared by
// more than one field, ordered by key.
func DuplicateKeys(fields []Field) []*DuplicateFieldKeyError {
	labels := make(map[string][]string)
	for _, field := range fields {
		labels[field.Key] = append(labels[field.Key], field.Label)
	}
	var out []*DuplicateFieldKeyError
	for key, group := range labels {
		if len(group) < 2 || key == "" {
			continue
		}
		out = append(out, &DuplicateFieldKeyError{Key: key, Labels: group})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func validateFields(fields []Field) []error {
	var errs []error
	for _, field := range fields {
		if strings.TrimSpace(field.Key) == "" {
			errs = append(errs, fmt.Errorf("%w (field %q)", ErrFieldKeyRequired, field.Label))
		}
		if field.Type != "" && !field.Type.Valid() {
			errs = append(errs, fmt.Errorf("%w %q (field %q)", ErrUnknownFieldType, field.Type, field.Key))
		}
		if field.Type == FieldTypeSelect {
			errs = append(errs, validateOptions(field)...)
		}
	}
	for _, dup := range DuplicateKeys(fields) {
		errs = append(errs, dup)
	}
	return errs
}

func validateOptions(field Field) []error {
	var errs []error
	seen := make(map[string]struct{}, len(field.Options))
	for _, option := range field.Options {
		if strings.TrimSpace(option.Value) == "" {
			errs = append(errs, &InvalidOptionError{FieldKey: field.Key, Value: option.Value, Reason: "value is required"})
			continue
		}
		if _, dup := seen[option.Value]; dup {
			errs = append(errs, &InvalidOptionError{FieldKey: field.Key, Value: option.Value, Reason: "value is not unique"})
			continue
		}
		seen[option.Value] = struct{}{}
	}
	return errs
}
