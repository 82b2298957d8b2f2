package model

import internalmodel "github.com/goliatone/go-cardforge/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText             = internalmodel.FieldTypeText
	FieldTypeTextarea         = internalmodel.FieldTypeTextarea
	FieldTypeNumber           = internalmodel.FieldTypeNumber
	FieldTypeBoolean          = internalmodel.FieldTypeBoolean
	FieldTypeSelect           = internalmodel.FieldTypeSelect
	FieldTypePlaceholderImage = internalmodel.FieldTypePlaceholderImage
)

const UnassignedTemplateID = internalmodel.UnassignedTemplateID

type Option = internalmodel.Option
type PlaceholderConfig = internalmodel.PlaceholderConfig
type Field = internalmodel.Field
type FieldList = internalmodel.FieldList
type Template = internalmodel.Template
type TemplateDefinition = internalmodel.TemplateDefinition
type FieldDefinition = internalmodel.FieldDefinition
type Project = internalmodel.Project
type CardData = internalmodel.CardData
type KeyDeriver = internalmodel.KeyDeriver

// Value is the tagged union stored per card field.
type Value = internalmodel.Value
type ValueKind = internalmodel.ValueKind

const (
	KindNull   = internalmodel.KindNull
	KindString = internalmodel.KindString
	KindNumber = internalmodel.KindNumber
	KindBool   = internalmodel.KindBool
	KindObject = internalmodel.KindObject
)

type DuplicateFieldKeyError = internalmodel.DuplicateFieldKeyError
type DuplicateTemplateIDError = internalmodel.DuplicateTemplateIDError
type InvalidTemplateIDError = internalmodel.InvalidTemplateIDError
type InvalidOptionError = internalmodel.InvalidOptionError

var (
	ErrTemplateIDRequired = internalmodel.ErrTemplateIDRequired
	ErrFieldKeyRequired   = internalmodel.ErrFieldKeyRequired
	ErrUnknownFieldType   = internalmodel.ErrUnknownFieldType
	ErrFieldNotFound      = internalmodel.ErrFieldNotFound
	ErrFieldKeyInUse      = internalmodel.ErrFieldKeyInUse
)

func Null() Value             { return internalmodel.Null() }
func String(s string) Value   { return internalmodel.String(s) }
func Number(f float64) Value  { return internalmodel.Number(f) }
func Bool(b bool) Value       { return internalmodel.Bool(b) }
func ObjectValue(v any) Value { return internalmodel.ObjectValue(v) }
func ValueOf(v any) Value     { return internalmodel.ValueOf(v) }

// NewCard returns an empty card bound to templateID.
func NewCard(id, templateID string) CardData { return internalmodel.NewCard(id, templateID) }

// DeriveKey turns label into a camelCase key absent from existing.
func DeriveKey(label string, existing map[string]struct{}) string {
	return internalmodel.DeriveKey(label, existing)
}

// DeriveTemplateID turns name into a kebab-case id absent from existing.
func DeriveTemplateID(name string, existing map[string]struct{}) string {
	return internalmodel.DeriveTemplateID(name, existing)
}

func IsURLSafeID(id string) bool { return internalmodel.IsURLSafeID(id) }

// DefaultLabeler converts a field key into a title-cased label.
func DefaultLabeler(key string) string { return internalmodel.DefaultLabeler(key) }

// ValidateTemplate checks id shape, field keys and select options.
func ValidateTemplate(t Template) error { return internalmodel.ValidateTemplate(t) }

// DuplicateKeys reports every key shared by more than one field.
func DuplicateKeys(fields []Field) []*DuplicateFieldKeyError {
	return internalmodel.DuplicateKeys(fields)
}

// ValidateNewTemplate also rejects ids already present in existing.
func ValidateNewTemplate(t Template, existing []Template) error {
	return internalmodel.ValidateNewTemplate(t, existing)
}
