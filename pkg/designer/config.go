package designer

import (
	"strings"

	"github.com/goliatone/go-cardforge/pkg/layout"
	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/tailwind"
	"github.com/goliatone/go-cardforge/pkg/widgets"
)

const (
	// NeutralFontStyle and NeutralTextAlign are never written to a style.
	NeutralFontStyle = "normal"
	NeutralTextAlign = "left"

	defaultLeft   = 10
	defaultTop    = 10
	cascadeOffset = 30
)

// BorderSide is the width and color class selection of one border edge.
type BorderSide struct {
	Width string `json:"width,omitempty"`
	Color string `json:"color,omitempty"`
}

// ElementConfig is the editable working copy of one field's layout element.
// Exactly one exists per template field.
type ElementConfig struct {
	FieldKey     string             `json:"fieldKey"`
	Label        string             `json:"label"`
	OriginalType model.FieldType    `json:"originalType"`
	ElementType  layout.ElementType `json:"elementType"`

	Enabled  bool `json:"isEnabledOnCanvas"`
	Expanded bool `json:"isExpandedInGui"`

	Top       string `json:"top,omitempty"`
	Left      string `json:"left,omitempty"`
	Right     string `json:"right,omitempty"`
	Bottom    string `json:"bottom,omitempty"`
	Width     string `json:"width,omitempty"`
	Height    string `json:"height,omitempty"`
	MaxHeight string `json:"maxHeight,omitempty"`
	Padding   string `json:"padding,omitempty"`
	FontStyle string `json:"fontStyle,omitempty"`
	TextAlign string `json:"textAlign,omitempty"`

	Icon   string `json:"icon,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty"`

	TextColor    string `json:"textColor,omitempty"`
	FontSize     string `json:"fontSize,omitempty"`
	FontWeight   string `json:"fontWeight,omitempty"`
	LineHeight   string `json:"lineHeight,omitempty"`
	Overflow     string `json:"overflow,omitempty"`
	TextOverflow string `json:"textOverflow,omitempty"`
	BorderRadius string `json:"borderRadius,omitempty"`

	BorderTop    BorderSide `json:"borderTop"`
	BorderRight  BorderSide `json:"borderRight"`
	BorderBottom BorderSide `json:"borderBottom"`
	BorderLeft   BorderSide `json:"borderLeft"`
}

// styleFields maps style property names to the config primitives, in
// serialization order.
func (c *ElementConfig) styleFields() []struct {
	prop string
	ptr  *string
} {
	return []struct {
		prop string
		ptr  *string
	}{
		{"top", &c.Top},
		{"left", &c.Left},
		{"right", &c.Right},
		{"bottom", &c.Bottom},
		{"width", &c.Width},
		{"height", &c.Height},
		{"maxHeight", &c.MaxHeight},
		{"padding", &c.Padding},
		{"fontStyle", &c.FontStyle},
		{"textAlign", &c.TextAlign},
	}
}

// Class returns a pointer to the selection of a class category.
func (c *ElementConfig) Class(cat tailwind.Category) *string {
	switch cat {
	case tailwind.TextColor:
		return &c.TextColor
	case tailwind.FontSize:
		return &c.FontSize
	case tailwind.FontWeight:
		return &c.FontWeight
	case tailwind.LineHeight:
		return &c.LineHeight
	case tailwind.Overflow:
		return &c.Overflow
	case tailwind.TextOverflow:
		return &c.TextOverflow
	case tailwind.BorderRadius:
		return &c.BorderRadius
	case tailwind.BorderTopWidth:
		return &c.BorderTop.Width
	case tailwind.BorderTopColor:
		return &c.BorderTop.Color
	case tailwind.BorderRightWidth:
		return &c.BorderRight.Width
	case tailwind.BorderRightColor:
		return &c.BorderRight.Color
	case tailwind.BorderBottomWidth:
		return &c.BorderBottom.Width
	case tailwind.BorderBottomColor:
		return &c.BorderBottom.Color
	case tailwind.BorderLeftWidth:
		return &c.BorderLeft.Width
	case tailwind.BorderLeftColor:
		return &c.BorderLeft.Color
	}
	return nil
}

// Normalized returns the effective configuration: values trimmed, "none"
// selections cleared, neutral font style and alignment cleared, the icon
// dropped for types other than iconValue and the canonical class defaults
// applied to text-bearing elements.
func (c ElementConfig) Normalized() ElementConfig {
	out := c
	for _, f := range out.styleFields() {
		*f.ptr = strings.TrimSpace(*f.ptr)
	}
	if strings.EqualFold(out.FontStyle, NeutralFontStyle) {
		out.FontStyle = ""
	}
	if strings.EqualFold(out.TextAlign, NeutralTextAlign) {
		out.TextAlign = ""
	}
	out.Icon = strings.TrimSpace(out.Icon)
	if out.ElementType != layout.ElementIconValue {
		out.Icon = ""
	}
	for _, cat := range tailwind.ElementCategories {
		ptr := out.Class(cat)
		if tailwind.IsUnset(*ptr) {
			*ptr = ""
		} else {
			*ptr = strings.TrimSpace(*ptr)
		}
		if *ptr == "" && out.ElementType.IsTextBearing() {
			*ptr = tailwind.DefaultFor(cat)
		}
	}
	return out
}

// Element builds the layout element for the configuration.
func (c ElementConfig) Element() layout.Element {
	n := c.Normalized()

	var style layout.Style
	for _, f := range n.styleFields() {
		style.Set(f.prop, *f.ptr)
	}

	classes := make([]string, 0, len(tailwind.ElementCategories)+1)
	if n.ElementType == layout.ElementTextarea {
		classes = append(classes, tailwind.PreWrap)
	}
	for _, cat := range tailwind.ElementCategories {
		classes = append(classes, *n.Class(cat))
	}

	return layout.Element{
		FieldKey:  n.FieldKey,
		Type:      n.ElementType,
		Style:     style,
		ClassName: tailwind.Join(classes...),
		Icon:      n.Icon,
		Prefix:    n.Prefix,
		Suffix:    n.Suffix,
	}
}

// CanvasSettings is the editable card surface.
type CanvasSettings struct {
	Width        string `json:"width"`
	Height       string `json:"height"`
	BorderStyle  string `json:"borderStyle,omitempty"`
	Background   string `json:"background,omitempty"`
	BorderRadius string `json:"borderRadius,omitempty"`
	BorderWidth  string `json:"borderWidth,omitempty"`
	BorderColor  string `json:"borderColor,omitempty"`
}

// DefaultCanvas returns the canvas of a template without a layout.
func DefaultCanvas() CanvasSettings {
	return CanvasSettings{
		Width:       layout.DefaultWidth,
		Height:      layout.DefaultHeight,
		BorderStyle: layout.DefaultBorderStyle,
	}.Normalized()
}

// Class returns a pointer to the selection of a canvas class category.
func (c *CanvasSettings) Class(cat tailwind.Category) *string {
	switch cat {
	case tailwind.CanvasBackground:
		return &c.Background
	case tailwind.CanvasBorderRadius:
		return &c.BorderRadius
	case tailwind.CanvasBorderWidth:
		return &c.BorderWidth
	case tailwind.CanvasBorderColor:
		return &c.BorderColor
	}
	return nil
}

// Normalized fills the canvas size and every unset class category with its
// default.
func (c CanvasSettings) Normalized() CanvasSettings {
	out := c
	out.Width = strings.TrimSpace(out.Width)
	if out.Width == "" {
		out.Width = layout.DefaultWidth
	}
	out.Height = strings.TrimSpace(out.Height)
	if out.Height == "" {
		out.Height = layout.DefaultHeight
	}
	out.BorderStyle = strings.TrimSpace(out.BorderStyle)
	for _, cat := range tailwind.CanvasCategories {
		ptr := out.Class(cat)
		if tailwind.IsUnset(*ptr) {
			*ptr = tailwind.DefaultFor(cat)
		} else {
			*ptr = strings.TrimSpace(*ptr)
		}
	}
	return out
}

// ClassName joins the canvas class selections in category order.
func (c CanvasSettings) ClassName() string {
	n := c.Normalized()
	classes := make([]string, 0, len(tailwind.CanvasCategories))
	for _, cat := range tailwind.CanvasCategories {
		classes = append(classes, *n.Class(cat))
	}
	return tailwind.Join(classes...)
}

// DefaultPlacement returns the box of a newly enabled element at index.
// Tops cascade so new elements do not stack on each other.
func DefaultPlacement(index int, typ layout.ElementType) (top, left, width, height string) {
	size := widgets.DefaultSize(typ)
	return layout.Px(defaultTop + cascadeOffset*index), layout.Px(defaultLeft), layout.Px(size.Width), layout.Px(size.Height)
}
