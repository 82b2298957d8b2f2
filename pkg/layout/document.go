package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultWidth           = "280px"
	DefaultHeight          = "400px"
	DefaultBorderStyle     = "solid"
	DefaultCanvasClassName = "bg-card rounded-lg border border-border"
)

// ErrEmptyDocument is returned by Parse for blank layout text.
var ErrEmptyDocument = errors.New("layout: empty document")

// ElementType selects how an element presents its bound value.
type ElementType string

const (
	ElementText         ElementType = "text"
	ElementTextarea     ElementType = "textarea"
	ElementImage        ElementType = "image"
	ElementIconValue    ElementType = "iconValue"
	ElementIconFromData ElementType = "iconFromData"
)

// ElementTypes lists every element type in declaration order.
var ElementTypes = []ElementType{ElementText, ElementTextarea, ElementImage, ElementIconValue, ElementIconFromData}

// Valid reports whether t is a known element type.
func (t ElementType) Valid() bool {
	switch t {
	case ElementText, ElementTextarea, ElementImage, ElementIconValue, ElementIconFromData:
		return true
	}
	return false
}

// IsTextBearing reports whether the element renders display text and so
// receives the default typography classes.
func (t ElementType) IsTextBearing() bool {
	return t == ElementText || t == ElementTextarea || t == ElementIconValue
}

// Document is the parsed form of a template's layoutDefinition.
type Document struct {
	Width           string    `json:"width"`
	Height          string    `json:"height"`
	CanvasClassName string    `json:"canvasClassName,omitempty"`
	BorderStyle     string    `json:"borderStyle,omitempty"`
	Elements        []Element `json:"elements"`
}

// Element is one positioned box bound to a field key.
type Element struct {
	FieldKey  string      `json:"fieldKey"`
	Type      ElementType `json:"type"`
	Style     Style       `json:"style,omitzero"`
	ClassName string      `json:"className,omitempty"`
	Icon      string      `json:"icon,omitempty"`
	Prefix    string      `json:"prefix,omitempty"`
	Suffix    string      `json:"suffix,omitempty"`
}

// Default returns the minimal layout used when a template has none.
func Default() Document {
	return Document{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		CanvasClassName: DefaultCanvasClassName,
		BorderStyle:     DefaultBorderStyle,
		Elements:        []Element{},
	}
}

// Parse decodes layout text. Missing canvas dimensions fall back to the
// defaults; element field keys are not checked against any template.
func Parse(text string) (Document, error) {
	if strings.TrimSpace(text) == "" {
		return Document{}, ErrEmptyDocument
	}
	var doc Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return Document{}, fmt.Errorf("layout: parse document: %w", err)
	}
	if strings.TrimSpace(doc.Width) == "" {
		doc.Width = DefaultWidth
	}
	if strings.TrimSpace(doc.Height) == "" {
		doc.Height = DefaultHeight
	}
	if doc.Elements == nil {
		doc.Elements = []Element{}
	}
	return doc, nil
}

// Marshal encodes doc as indented JSON. Equal documents always produce
// identical bytes.
func Marshal(doc Document) (string, error) {
	if doc.Elements == nil {
		doc.Elements = []Element{}
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("layout: marshal document: %w", err)
	}
	return string(payload), nil
}

// Element returns the first element bound to fieldKey.
func (d Document) Element(fieldKey string) (Element, bool) {
	for _, el := range d.Elements {
		if el.FieldKey == fieldKey {
			return el, true
		}
	}
	return Element{}, false
}

// FieldKeys lists the distinct field keys referenced by elements, in order.
func (d Document) FieldKeys() []string {
	seen := make(map[string]struct{}, len(d.Elements))
	var keys []string
	for _, el := range d.Elements {
		if _, ok := seen[el.FieldKey]; ok {
			continue
		}
		seen[el.FieldKey] = struct{}{}
		keys = append(keys, el.FieldKey)
	}
	return keys
}
