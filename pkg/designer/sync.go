package designer

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-cardforge/pkg/layout"
	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/tailwind"
	"github.com/goliatone/go-cardforge/pkg/widgets"
)

// WarningKind classifies hydration warnings.
type WarningKind string

const (
	WarningUnknownClass     WarningKind = "unknownClass"
	WarningUnknownStyle     WarningKind = "unknownStyle"
	WarningUnknownType      WarningKind = "unknownType"
	WarningOrphanElement    WarningKind = "orphanElement"
	WarningDuplicateElement WarningKind = "duplicateElement"
	WarningIgnoredIcon      WarningKind = "ignoredIcon"
)

// Warning reports layout content the GUI model cannot represent. Such
// content survives in the JSON text but is dropped when the GUI regenerates
// the layout.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	FieldKey string      `json:"fieldKey,omitempty"`
	Values   []string    `json:"values,omitempty"`
}

func (w Warning) String() string {
	switch w.Kind {
	case WarningUnknownClass:
		if w.FieldKey == "" {
			return fmt.Sprintf("canvas: classes %s are not editable in the designer", strings.Join(w.Values, ", "))
		}
		return fmt.Sprintf("%s: classes %s are not editable in the designer", w.FieldKey, strings.Join(w.Values, ", "))
	case WarningUnknownStyle:
		return fmt.Sprintf("%s: style properties %s are not editable in the designer", w.FieldKey, strings.Join(w.Values, ", "))
	case WarningUnknownType:
		return fmt.Sprintf("%s: unknown element type %s", w.FieldKey, strings.Join(w.Values, ", "))
	case WarningOrphanElement:
		return fmt.Sprintf("%s: element does not match any template field", w.FieldKey)
	case WarningDuplicateElement:
		return fmt.Sprintf("%s: only the first element bound to the field is editable", w.FieldKey)
	case WarningIgnoredIcon:
		return fmt.Sprintf("%s: icon %s is only shown on iconValue elements", w.FieldKey, strings.Join(w.Values, ", "))
	}
	return fmt.Sprintf("%s: %s", w.FieldKey, w.Kind)
}

// BuildDocument turns GUI state into a layout document. Enabled configs
// become elements in their given order, which is also their paint order.
func BuildDocument(canvas CanvasSettings, configs []ElementConfig) layout.Document {
	canvas = canvas.Normalized()
	doc := layout.Document{
		Width:           canvas.Width,
		Height:          canvas.Height,
		CanvasClassName: canvas.ClassName(),
		BorderStyle:     canvas.BorderStyle,
		Elements:        make([]layout.Element, 0, len(configs)),
	}
	for _, cfg := range configs {
		if !cfg.Enabled {
			continue
		}
		doc.Elements = append(doc.Elements, cfg.Element())
	}
	return doc
}

// Serialize returns the canonical layout text of the GUI state. Equal input
// always yields identical text.
func Serialize(canvas CanvasSettings, configs []ElementConfig) (string, error) {
	return layout.Marshal(BuildDocument(canvas, configs))
}

// Hydrater rebuilds GUI state from layout documents using a class catalog
// and a widget registry.
type Hydrater struct {
	Catalog *tailwind.Catalog
	Widgets *widgets.Registry
}

// Hydrate uses the built-in catalog and widget registry.
func Hydrate(doc layout.Document, fields []model.Field, previous []ElementConfig) ([]ElementConfig, []Warning) {
	return Hydrater{}.Hydrate(doc, fields, previous)
}

// HydrateCanvas uses the built-in catalog.
func HydrateCanvas(doc layout.Document) (CanvasSettings, []Warning) {
	return Hydrater{}.HydrateCanvas(doc)
}

// Hydrate returns one config per field. Enabled configs follow the element
// order of doc so that serializing them again keeps the paint order;
// disabled configs keep their field-order slots. Style primitives and class
// selections are copied as found; nothing is defaulted except the placement
// of fields without an element. Expanded state is carried over from previous
// by field key.
func (h Hydrater) Hydrate(doc layout.Document, fields []model.Field, previous []ElementConfig) ([]ElementConfig, []Warning) {
	catalog, registry := h.resolve()

	expanded := make(map[string]bool, len(previous))
	for _, cfg := range previous {
		expanded[cfg.FieldKey] = cfg.Expanded
	}

	elements := make(map[string]layout.Element, len(doc.Elements))
	paint := make(map[string]int, len(doc.Elements))
	var warnings []Warning
	fieldKeys := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		fieldKeys[f.Key] = struct{}{}
	}
	for i, el := range doc.Elements {
		if _, ok := fieldKeys[el.FieldKey]; !ok {
			warnings = append(warnings, Warning{Kind: WarningOrphanElement, FieldKey: el.FieldKey})
			continue
		}
		if _, dup := elements[el.FieldKey]; dup {
			warnings = append(warnings, Warning{Kind: WarningDuplicateElement, FieldKey: el.FieldKey})
			continue
		}
		elements[el.FieldKey] = el
		paint[el.FieldKey] = i
	}

	configs := make([]ElementConfig, 0, len(fields))
	for index, field := range fields {
		cfg := ElementConfig{
			FieldKey:     field.Key,
			Label:        field.Label,
			OriginalType: field.Type,
			Expanded:     expanded[field.Key],
		}
		el, found := elements[field.Key]
		if !found {
			cfg.ElementType = registry.ElementType(field)
			cfg.Top, cfg.Left, cfg.Width, cfg.Height = DefaultPlacement(index, cfg.ElementType)
			configs = append(configs, cfg)
			continue
		}

		cfg.Enabled = true
		cfg.ElementType = el.Type
		if !el.Type.Valid() {
			warnings = append(warnings, Warning{Kind: WarningUnknownType, FieldKey: field.Key, Values: []string{string(el.Type)}})
		}
		for _, f := range cfg.styleFields() {
			*f.ptr = el.Style.Get(f.prop)
		}
		if extra := unknownStyle(el.Style); len(extra) > 0 {
			warnings = append(warnings, Warning{Kind: WarningUnknownStyle, FieldKey: field.Key, Values: extra})
		}
		for _, cat := range tailwind.ElementCategories {
			*cfg.Class(cat) = catalog.Extract(el.ClassName, cat)
		}
		if unknown := catalog.Unknown(el.ClassName, tailwind.ElementCategories...); len(unknown) > 0 {
			warnings = append(warnings, Warning{Kind: WarningUnknownClass, FieldKey: field.Key, Values: unknown})
		}
		if el.Icon != "" && el.Type != layout.ElementIconValue {
			warnings = append(warnings, Warning{Kind: WarningIgnoredIcon, FieldKey: field.Key, Values: []string{el.Icon}})
		}
		cfg.Icon = el.Icon
		cfg.Prefix = el.Prefix
		cfg.Suffix = el.Suffix
		configs = append(configs, cfg)
	}
	return paintOrder(configs, paint), warnings
}

// paintOrder sorts the enabled configs by their element index while
// disabled configs stay where they are.
func paintOrder(configs []ElementConfig, paint map[string]int) []ElementConfig {
	var (
		slots   []int
		enabled []ElementConfig
	)
	for i, cfg := range configs {
		if cfg.Enabled {
			slots = append(slots, i)
			enabled = append(enabled, cfg)
		}
	}
	slices.SortStableFunc(enabled, func(a, b ElementConfig) int {
		return cmp.Compare(paint[a.FieldKey], paint[b.FieldKey])
	})
	for i, slot := range slots {
		configs[slot] = enabled[i]
	}
	return configs
}

// HydrateCanvas extracts the canvas settings of doc.
func (h Hydrater) HydrateCanvas(doc layout.Document) (CanvasSettings, []Warning) {
	catalog, _ := h.resolve()

	canvas := CanvasSettings{
		Width:       doc.Width,
		Height:      doc.Height,
		BorderStyle: doc.BorderStyle,
	}
	for _, cat := range tailwind.CanvasCategories {
		*canvas.Class(cat) = catalog.Extract(doc.CanvasClassName, cat)
	}
	var warnings []Warning
	if unknown := catalog.Unknown(doc.CanvasClassName, tailwind.CanvasCategories...); len(unknown) > 0 {
		warnings = append(warnings, Warning{Kind: WarningUnknownClass, Values: unknown})
	}
	return canvas, warnings
}

func (h Hydrater) resolve() (*tailwind.Catalog, *widgets.Registry) {
	catalog, registry := h.Catalog, h.Widgets
	if catalog == nil {
		catalog = tailwind.Default()
	}
	if registry == nil {
		registry = widgets.Default()
	}
	return catalog, registry
}

// unknownStyle lists set properties without a GUI primitive. Position is
// implied by the renderer and not reported.
func unknownStyle(style layout.Style) []string {
	var cfg ElementConfig
	known := map[string]struct{}{"position": {}}
	for _, f := range cfg.styleFields() {
		known[f.prop] = struct{}{}
	}
	var out []string
	for _, prop := range style.Keys() {
		if _, ok := known[prop]; !ok {
			out = append(out, prop)
		}
	}
	return out
}
