package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-cardforge/pkg/layout"
	"github.com/goliatone/go-cardforge/pkg/model"
)

// Matcher decides whether an element type should present the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	elementType layout.ElementType
	priority    int
	match       Matcher
	order       int
}

// Size is a default element box in pixels.
type Size struct {
	Width  int
	Height int
}

var defaultSizes = map[layout.ElementType]Size{
	layout.ElementText:         {Width: 120, Height: 24},
	layout.ElementIconValue:    {Width: 120, Height: 24},
	layout.ElementIconFromData: {Width: 120, Height: 24},
	layout.ElementTextarea:     {Width: 240, Height: 80},
	layout.ElementImage:        {Width: 240, Height: 140},
}

// DefaultSize returns the box a new element of typ is placed with.
func DefaultSize(typ layout.ElementType) Size {
	if size, ok := defaultSizes[typ]; ok {
		return size
	}
	return defaultSizes[layout.ElementText]
}

// Registry selects the default layout element type for template fields.
// Higher priority wins; ties fall back to registration order. Fields no
// matcher claims resolve to a text element.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher for an element type. Unknown element types are
// ignored.
func (r *Registry) Register(typ layout.ElementType, priority int, matcher Matcher) {
	if r == nil || matcher == nil || !typ.Valid() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		elementType: typ,
		priority:    priority,
		match:       matcher,
		order:       len(r.rules),
	})
}

// Resolve returns the element type for a field and whether a matcher claimed
// it.
func (r *Registry) Resolve(field model.Field) (layout.ElementType, bool) {
	if r == nil {
		return layout.ElementText, false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.elementType, true
		}
	}
	return layout.ElementText, false
}

// ElementType resolves a field, falling back to text.
func (r *Registry) ElementType(field model.Field) layout.ElementType {
	typ, _ := r.Resolve(field)
	return typ
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry with built-in matchers.
func Default() *Registry {
	return defaultRegistry
}

func (r *Registry) registerBuiltins() {
	r.Register(layout.ElementImage, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypePlaceholderImage
	})

	r.Register(layout.ElementTextarea, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeTextarea
	})

	r.Register(layout.ElementImage, 70, func(field model.Field) bool {
		if field.Type != model.FieldTypeText {
			return false
		}
		key := strings.ToLower(field.Key)
		return strings.HasSuffix(key, "imageurl") || strings.HasSuffix(key, "image") || strings.HasSuffix(key, "img")
	})

	r.Register(layout.ElementIconFromData, 60, func(field model.Field) bool {
		if field.Type != model.FieldTypeText && field.Type != model.FieldTypeSelect {
			return false
		}
		return strings.HasSuffix(strings.ToLower(field.Key), "icon")
	})
}
