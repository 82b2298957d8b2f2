package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-cardforge/pkg/layout"
)

// NodeKind tags the visual node produced for one layout element.
type NodeKind string

const (
	NodeText         NodeKind = "text"
	NodeTextarea     NodeKind = "textarea"
	NodeImage        NodeKind = "image"
	NodeIconValue    NodeKind = "iconValue"
	NodeIconFromData NodeKind = "iconFromData"
	NodeDiagnostic   NodeKind = "diagnostic"
	NodePlaceholder  NodeKind = "placeholder"
)

// Node is one positioned, renderer-neutral visual element. Style keys are
// CSS property names in kebab-case.
type Node struct {
	Kind          NodeKind           `json:"kind"`
	FieldKey      string             `json:"fieldKey,omitempty"`
	ElementType   layout.ElementType `json:"elementType,omitempty"`
	Index         int                `json:"index"`
	ZIndex        int                `json:"zIndex"`
	Style         map[string]string  `json:"style,omitempty"`
	ClassName     string             `json:"className,omitempty"`
	Text          string             `json:"text,omitempty"`
	Src           string             `json:"src,omitempty"`
	Alt           string             `json:"alt,omitempty"`
	Icon          string             `json:"icon,omitempty"`
	IconSVG       string             `json:"iconSvg,omitempty"`
	IconFallback  bool               `json:"iconFallback,omitempty"`
	InvalidSource bool               `json:"invalidSource,omitempty"`
	Message       string             `json:"message,omitempty"`
}

// CSS renders Style as an inline style attribute value with sorted
// properties.
func (n Node) CSS() string {
	return InlineCSS(n.Style)
}

// InlineCSS formats a property map as "a: 1; b: 2".
func InlineCSS(style map[string]string) string {
	if len(style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(style))
	for key := range style {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := strings.TrimSpace(style[key])
		if value == "" {
			continue
		}
		parts = append(parts, key+": "+value)
	}
	return strings.Join(parts, "; ")
}

// Canvas is the resolved card surface.
type Canvas struct {
	Width       string `json:"width"`
	Height      string `json:"height"`
	ClassName   string `json:"className,omitempty"`
	BorderStyle string `json:"borderStyle,omitempty"`
}

// CSS returns the inline style of the canvas box.
func (c Canvas) CSS() string {
	style := map[string]string{
		"position": "relative",
		"overflow": "hidden",
		"width":    c.Width,
		"height":   c.Height,
	}
	if c.BorderStyle != "" {
		style["border-style"] = c.BorderStyle
	}
	return InlineCSS(style)
}

// Result is the renderer-neutral outcome of rendering one card.
type Result struct {
	TemplateID   string   `json:"templateId"`
	TemplateName string   `json:"templateName"`
	CardID       string   `json:"cardId,omitempty"`
	CardName     string   `json:"cardName,omitempty"`
	Canvas       Canvas   `json:"canvas"`
	Nodes        []Node   `json:"nodes"`
	Warnings     []string `json:"warnings,omitempty"`
}

// Diagnostics returns the diagnostic nodes of the result.
func (r Result) Diagnostics() []Node {
	var out []Node
	for _, node := range r.Nodes {
		if node.Kind == NodeDiagnostic {
			out = append(out, node)
		}
	}
	return out
}

// Node returns the first node bound to fieldKey.
func (r Result) Node(fieldKey string) (Node, bool) {
	for _, node := range r.Nodes {
		if node.FieldKey == fieldKey {
			return node, true
		}
	}
	return Node{}, false
}
