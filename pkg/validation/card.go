// Package validation checks card records against their template's field
// schema. Each template is compiled into an OpenAPI object schema so the same
// rules can be published to API clients.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-cardforge/pkg/model"
)

// Issue is one validation finding. Field is the template field key the
// finding belongs to; Path is the JSON pointer into the card payload.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures a validation outcome. Warnings never affect Valid.
type Result struct {
	Valid    bool    `json:"valid"`
	Issues   []Issue `json:"issues,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`
}

// IssueFor returns the first issue reported for field.
func (r Result) IssueFor(field string) (Issue, bool) {
	for _, issue := range r.Issues {
		if issue.Field == field {
			return issue, true
		}
	}
	return Issue{}, false
}

// Schema compiles the template fields into an object schema. Every property
// is nullable; select fields restrict values to their option values.
func Schema(tpl model.Template) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	if tpl.Name != "" {
		schema.Title = tpl.Name
	}
	for _, field := range tpl.Fields {
		if strings.TrimSpace(field.Key) == "" {
			continue
		}
		schema.WithProperty(field.Key, fieldSchema(field))
	}
	return schema
}

func fieldSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Type {
	case model.FieldTypeNumber:
		schema = openapi3.NewFloat64Schema()
	case model.FieldTypeBoolean:
		schema = openapi3.NewBoolSchema()
	case model.FieldTypeSelect:
		schema = openapi3.NewStringSchema()
		if len(field.Options) > 0 {
			values := make([]any, 0, len(field.Options))
			for _, option := range field.Options {
				values = append(values, option.Value)
			}
			schema.WithEnum(values...)
		}
	default:
		schema = openapi3.NewStringSchema()
	}
	schema.Title = field.Label
	if field.Placeholder != "" {
		schema.Description = field.Placeholder
	}
	return schema.WithNullable()
}

// ValidateCard checks card against tpl. Record keys the template does not
// declare are reported as warnings.
func ValidateCard(tpl model.Template, card model.CardData) Result {
	result := Result{Valid: true}

	if card.TemplateID != "" && card.TemplateID != tpl.ID && card.TemplateID != model.UnassignedTemplateID {
		result.Warnings = append(result.Warnings, Issue{
			Path:    "/templateId",
			Message: fmt.Sprintf("card is bound to template %q, validated against %q", card.TemplateID, tpl.ID),
		})
	}

	payload := make(map[string]any, len(card.Fields))
	declared := make(map[string]model.Field, len(tpl.Fields))
	for _, field := range tpl.Fields {
		declared[field.Key] = field
	}
	for _, key := range card.Keys() {
		field, ok := declared[key]
		if !ok {
			result.Warnings = append(result.Warnings, Issue{
				Path:    "/" + key,
				Field:   key,
				Message: fmt.Sprintf("field %q is not declared by template %q", key, tpl.ID),
			})
			continue
		}
		value := card.Get(key).Interface()
		if field.Type == model.FieldTypeSelect && value == "" {
			// An empty selection is the unset state.
			value = nil
		}
		payload[key] = value
	}

	err := Schema(tpl).VisitJSON(payload, openapi3.MultiErrors())
	if err == nil {
		return result
	}
	result.Valid = false
	result.Issues = issuesFromError(err)
	sort.SliceStable(result.Issues, func(i, j int) bool {
		return fieldOrder(tpl, result.Issues[i].Field) < fieldOrder(tpl, result.Issues[j].Field)
	})
	return result
}

func issuesFromError(err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var issues []Issue
		for _, inner := range multi {
			issues = append(issues, issuesFromError(inner)...)
		}
		return issues
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		pointer := schemaErr.JSONPointer()
		issue := Issue{Message: strings.TrimSpace(schemaErr.Reason)}
		if issue.Message == "" {
			issue.Message = strings.TrimSpace(schemaErr.Error())
		}
		if len(pointer) > 0 {
			issue.Field = pointer[0]
			issue.Path = "/" + strings.Join(pointer, "/")
		}
		return []Issue{issue}
	}
	return []Issue{{Message: strings.TrimSpace(err.Error())}}
}

func fieldOrder(tpl model.Template, key string) int {
	for i, field := range tpl.Fields {
		if field.Key == key {
			return i
		}
	}
	return len(tpl.Fields)
}
