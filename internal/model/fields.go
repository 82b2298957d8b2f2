package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFieldNotFound = errors.New("model: field not found")
	ErrFieldKeyInUse = errors.New("model: field key already in use")
)

// FieldList is the ordered field set of a template being edited. Methods keep
// keys unique and honour the KeyAutoDerived flag.
type FieldList []Field

// Keys returns the field keys in list order.
func (l FieldList) Keys() []string {
	keys := make([]string, len(l))
	for i, field := range l {
		keys[i] = field.Key
	}
	return keys
}

// Index returns the position of the field with key, or -1.
func (l FieldList) Index(key string) int {
	for i, field := range l {
		if field.Key == key {
			return i
		}
	}
	return -1
}

// AddField appends a field whose key is derived from label.
func (l *FieldList) AddField(label string, typ FieldType) Field {
	if typ == "" {
		typ = FieldTypeText
	}
	field := Field{
		Key:            DeriveKey(label, keySet(l.Keys())),
		Label:          label,
		Type:           typ,
		KeyAutoDerived: true,
	}
	*l = append(*l, field)
	return field
}

// RenameField updates a label. The key follows the label only when it was
// auto-derived; the updated field is returned so callers can track re-keys.
func (l FieldList) RenameField(key, label string) (Field, error) {
	idx := l.Index(key)
	if idx < 0 {
		return Field{}, fmt.Errorf("%w: %q", ErrFieldNotFound, key)
	}
	field := l[idx]
	field.Label = label
	if field.KeyAutoDerived {
		field.Key = DeriveKey(label, l.otherKeys(idx))
	}
	l[idx] = field
	return field, nil
}

// SetFieldKey assigns a manual key. The field stops following its label.
func (l FieldList) SetFieldKey(key, newKey string) (Field, error) {
	idx := l.Index(key)
	if idx < 0 {
		return Field{}, fmt.Errorf("%w: %q", ErrFieldNotFound, key)
	}
	newKey = strings.TrimSpace(newKey)
	if newKey == "" {
		return Field{}, ErrFieldKeyRequired
	}
	if _, taken := l.otherKeys(idx)[newKey]; taken {
		return Field{}, fmt.Errorf("%w: %q", ErrFieldKeyInUse, newKey)
	}
	l[idx].Key = newKey
	l[idx].KeyAutoDerived = false
	return l[idx], nil
}

// SetFieldType changes the type, dropping settings the new type ignores.
func (l FieldList) SetFieldType(key string, typ FieldType) (Field, error) {
	idx := l.Index(key)
	if idx < 0 {
		return Field{}, fmt.Errorf("%w: %q", ErrFieldNotFound, key)
	}
	if !typ.Valid() {
		return Field{}, fmt.Errorf("model: unknown field type %q", typ)
	}
	field := l[idx]
	field.Type = typ
	if typ != FieldTypeSelect {
		field.Options = nil
	}
	if typ != FieldTypePlaceholderImage {
		field.PlaceholderConfig = nil
	}
	l[idx] = field
	return field, nil
}

// RemoveField deletes the field with key.
func (l *FieldList) RemoveField(key string) error {
	idx := l.Index(key)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, key)
	}
	*l = append((*l)[:idx], (*l)[idx+1:]...)
	return nil
}

func (l FieldList) otherKeys(skip int) map[string]struct{} {
	out := make(map[string]struct{}, len(l))
	for i, field := range l {
		if i != skip {
			out[field.Key] = struct{}{}
		}
	}
	return out
}
