package render

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-cardforge/pkg/icons"
	"github.com/goliatone/go-cardforge/pkg/layout"
	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/placeholder"
)

// NoLayoutMessage is shown by the placeholder node of templates without a
// layout.
const NoLayoutMessage = "No layout defined"

// Engine interprets a template layout against card data. Render never
// panics: malformed layouts and faulty elements become diagnostic nodes.
type Engine struct {
	logger          zerolog.Logger
	icons           *icons.Registry
	placeholderBase string

	// beforeElement is a test hook run ahead of each element.
	beforeElement func(layout.Element)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for render warnings and faults.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithIcons replaces the icon registry.
func WithIcons(reg *icons.Registry) Option {
	return func(e *Engine) {
		if reg != nil {
			e.icons = reg
		}
	}
}

// WithPlaceholderBaseURL sets the base of synthesized placeholder image URLs.
func WithPlaceholderBaseURL(base string) Option {
	return func(e *Engine) {
		if strings.TrimSpace(base) != "" {
			e.placeholderBase = strings.TrimSpace(base)
		}
	}
}

// NewEngine constructs an Engine with the bundled icons.
func NewEngine(options ...Option) *Engine {
	e := &Engine{
		logger:          zerolog.Nop(),
		placeholderBase: placeholder.DefaultBaseURL,
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.icons == nil {
		e.icons = icons.NewRegistry()
	}
	return e
}

// Render produces one node per layout element in paint order.
func (e *Engine) Render(tpl model.Template, card model.CardData) (result Result) {
	result = Result{
		TemplateID:   tpl.ID,
		TemplateName: templateName(tpl),
		CardID:       card.ID,
		CardName:     card.DisplayName(),
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Str("template", tpl.ID).Interface("panic", r).Msg("card render failed")
			result.Nodes = []Node{diagnosticNode(-1, layout.Element{}, fmt.Sprintf("Render failed for template %q: %v", result.TemplateName, r))}
		}
	}()

	if strings.TrimSpace(tpl.LayoutDefinition) == "" {
		result.Canvas = canvasOf(layout.Default())
		result.Nodes = []Node{{
			Kind:    NodePlaceholder,
			Index:   0,
			ZIndex:  1,
			Text:    result.CardName,
			Message: NoLayoutMessage,
			Style: map[string]string{
				"position": "absolute",
				"inset":    "0",
				"z-index":  "1",
			},
		}}
		return result
	}

	doc, err := layout.Parse(tpl.LayoutDefinition)
	if err != nil {
		e.logger.Error().Err(err).Str("template", tpl.ID).Msg("malformed layout definition")
		result.Canvas = canvasOf(layout.Default())
		result.Nodes = []Node{diagnosticNode(-1, layout.Element{}, fmt.Sprintf("Invalid layout for template %q: %v", result.TemplateName, err))}
		return result
	}

	result.Canvas = canvasOf(doc)
	result.Nodes = make([]Node, 0, len(doc.Elements))
	for index, el := range doc.Elements {
		node, ok := e.renderElement(tpl, card, el, index, &result.Warnings)
		if !ok {
			continue
		}
		result.Nodes = append(result.Nodes, node)
	}
	return result
}

func (e *Engine) renderElement(tpl model.Template, card model.CardData, el layout.Element, index int, warnings *[]string) (node Node, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Str("template", tpl.ID).Str("fieldKey", el.FieldKey).Interface("panic", r).Msg("element render failed")
			*warnings = append(*warnings, fmt.Sprintf("element %d (%s) failed: %v", index, el.FieldKey, r))
			node, ok = diagnosticNode(index, el, "Error: "+el.FieldKey), true
		}
	}()
	if e.beforeElement != nil {
		e.beforeElement(el)
	}

	field, hasField := tpl.Field(el.FieldKey)
	value := card.Get(el.FieldKey)
	if value.IsNull() && hasField && field.Type == model.FieldTypeBoolean {
		value = model.Bool(false)
	}
	if value.Kind() == model.KindObject && el.Type.IsTextBearing() {
		e.logger.Warn().Str("template", tpl.ID).Str("fieldKey", el.FieldKey).Msg("object value bound to scalar element")
		*warnings = append(*warnings, fmt.Sprintf("field %q holds an object; rendered as JSON", el.FieldKey))
	}

	node = Node{
		Kind:        NodeKind(el.Type),
		FieldKey:    el.FieldKey,
		ElementType: el.Type,
		Index:       index,
		ZIndex:      index + 1,
		Style:       elementStyle(el, index),
		ClassName:   el.ClassName,
	}
	text := el.Prefix + value.Display() + el.Suffix

	switch el.Type {
	case layout.ElementText:
		node.Text = text
	case layout.ElementTextarea:
		node.Text = text
		node.Style["white-space"] = "pre-wrap"
		if _, set := node.Style["overflow"]; !set {
			node.Style["overflow"] = "auto"
		}
	case layout.ElementImage:
		e.resolveImage(&node, el, field, hasField, value, warnings)
	case layout.ElementIconValue:
		node.Text = text
		if name := strings.TrimSpace(el.Icon); name != "" {
			e.resolveIcon(&node, tpl.ID, name, warnings)
		}
	case layout.ElementIconFromData:
		name := strings.TrimSpace(value.Display())
		if name == "" {
			return Node{}, false
		}
		e.resolveIcon(&node, tpl.ID, name, warnings)
	default:
		*warnings = append(*warnings, fmt.Sprintf("element %d (%s) has unknown type %q", index, el.FieldKey, el.Type))
		return diagnosticNode(index, el, fmt.Sprintf("Unknown element type %q", el.Type)), true
	}
	return node, true
}

func (e *Engine) resolveImage(node *Node, el layout.Element, field model.Field, hasField bool, value model.Value, warnings *[]string) {
	raw, isString := value.Str()
	raw = strings.TrimSpace(raw)
	if isString && IsImageURL(raw) {
		node.Src = raw
		node.Alt = field.Label
		return
	}

	var cfg *model.PlaceholderConfig
	if hasField {
		cfg = field.PlaceholderConfig
	}
	params := placeholder.ForElement(el.Style.Width, el.Style.Height, cfg)
	if display := value.Display(); strings.TrimSpace(display) != "" {
		params.Text = placeholder.InvalidSourceText
		node.InvalidSource = true
		*warnings = append(*warnings, fmt.Sprintf("field %q is not an image url", el.FieldKey))
	}
	if params.Text == "" {
		params.Text = field.Label
	}
	if params.Text == "" {
		params.Text = el.FieldKey
	}
	node.Src = placeholder.URL(e.placeholderBase, params)
	node.Alt = params.Text
}

func (e *Engine) resolveIcon(node *Node, templateID, name string, warnings *[]string) {
	icon, fallback := e.icons.Resolve(name)
	node.Icon = icon.Name
	node.IconSVG = icon.SVG
	node.IconFallback = fallback
	if fallback {
		e.logger.Warn().Str("template", templateID).Str("fieldKey", node.FieldKey).Str("icon", name).Msg("unknown icon, using fallback")
		*warnings = append(*warnings, fmt.Sprintf("field %q uses unknown icon %q", node.FieldKey, name))
	}
}

// IsImageURL reports whether value can be handed to an image loader: an
// absolute http(s) URL, a root-relative path or a data URI.
func IsImageURL(value string) bool {
	switch {
	case value == "":
		return false
	case strings.HasPrefix(value, "data:"):
		return len(value) > len("data:")
	case strings.HasPrefix(value, "/"):
		return !strings.HasPrefix(value, "//")
	}
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

func elementStyle(el layout.Element, index int) map[string]string {
	props := el.Style.Props()
	style := make(map[string]string, len(props)+2)
	for prop, value := range props {
		style[layout.KebabCase(prop)] = value
	}
	style["position"] = "absolute"
	style["z-index"] = strconv.Itoa(index + 1)
	return style
}

func diagnosticNode(index int, el layout.Element, message string) Node {
	style := map[string]string{"position": "absolute"}
	if index < 0 {
		style["inset"] = "0"
		style["z-index"] = "1"
	} else {
		style["z-index"] = strconv.Itoa(index + 1)
		for _, prop := range []string{"top", "left", "right", "bottom", "width", "height"} {
			if value := el.Style.Get(prop); value != "" {
				style[prop] = value
			}
		}
	}
	node := Node{
		Kind:        NodeDiagnostic,
		FieldKey:    el.FieldKey,
		ElementType: el.Type,
		Index:       max(index, 0),
		ZIndex:      max(index, 0) + 1,
		Style:       style,
		Message:     message,
	}
	return node
}

func canvasOf(doc layout.Document) Canvas {
	return Canvas{
		Width:       doc.Width,
		Height:      doc.Height,
		ClassName:   doc.CanvasClassName,
		BorderStyle: doc.BorderStyle,
	}
}

func templateName(tpl model.Template) string {
	if strings.TrimSpace(tpl.Name) != "" {
		return tpl.Name
	}
	return tpl.ID
}
