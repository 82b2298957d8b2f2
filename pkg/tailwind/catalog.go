package tailwind

import (
	"sort"
	"strings"
	"sync"
)

// Category names one independently selectable group of utility classes.
type Category string

const (
	TextColor    Category = "textColor"
	FontSize     Category = "fontSize"
	FontWeight   Category = "fontWeight"
	LineHeight   Category = "lineHeight"
	Overflow     Category = "overflow"
	TextOverflow Category = "textOverflow"
	BorderRadius Category = "borderRadius"

	BorderTopWidth    Category = "borderTopWidth"
	BorderTopColor    Category = "borderTopColor"
	BorderRightWidth  Category = "borderRightWidth"
	BorderRightColor  Category = "borderRightColor"
	BorderBottomWidth Category = "borderBottomWidth"
	BorderBottomColor Category = "borderBottomColor"
	BorderLeftWidth   Category = "borderLeftWidth"
	BorderLeftColor   Category = "borderLeftColor"

	CanvasBackground   Category = "canvasBackground"
	CanvasBorderRadius Category = "canvasBorderRadius"
	CanvasBorderWidth  Category = "canvasBorderWidth"
	CanvasBorderColor  Category = "canvasBorderColor"
)

// PreWrap is the structural class emitted for textarea elements.
const PreWrap = "whitespace-pre-wrap"

// None is the explicit "no class" selection.
const None = "none"

// Side is one edge of an element border.
type Side string

const (
	Top    Side = "top"
	Right  Side = "right"
	Bottom Side = "bottom"
	Left   Side = "left"
)

// Sides lists border sides in serialization order.
var Sides = []Side{Top, Right, Bottom, Left}

// BorderCategories returns the width and color categories of a side.
func BorderCategories(side Side) (width, color Category) {
	switch side {
	case Top:
		return BorderTopWidth, BorderTopColor
	case Right:
		return BorderRightWidth, BorderRightColor
	case Bottom:
		return BorderBottomWidth, BorderBottomColor
	default:
		return BorderLeftWidth, BorderLeftColor
	}
}

// ElementCategories lists element categories in className order.
var ElementCategories = []Category{
	TextColor, FontSize, FontWeight, LineHeight, Overflow, TextOverflow, BorderRadius,
	BorderTopWidth, BorderTopColor,
	BorderRightWidth, BorderRightColor,
	BorderBottomWidth, BorderBottomColor,
	BorderLeftWidth, BorderLeftColor,
}

// CanvasCategories lists canvas categories in className order.
var CanvasCategories = []Category{CanvasBackground, CanvasBorderRadius, CanvasBorderWidth, CanvasBorderColor}

var defaults = map[Category]string{
	TextColor:          "text-black",
	FontSize:           "text-sm",
	FontWeight:         "font-normal",
	CanvasBackground:   "bg-card",
	CanvasBorderRadius: "rounded-lg",
	CanvasBorderWidth:  "border",
	CanvasBorderColor:  "border-border",
}

// DefaultFor returns the class applied when a category is left unset, or ""
// when the category has no default. Element defaults only apply to
// text-bearing element types.
func DefaultFor(cat Category) string {
	return defaults[cat]
}

// IsUnset reports whether a selection means "no class".
func IsUnset(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || value == None
}

// Catalog maps categories to their class sets.
type Catalog struct {
	mu    sync.RWMutex
	order map[Category][]string
	index map[Category]map[string]struct{}
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		order: make(map[Category][]string),
		index: make(map[Category]map[string]struct{}),
	}
}

// Register adds classes to a category. Duplicates are ignored.
func (c *Catalog) Register(cat Category, classes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	set := c.index[cat]
	if set == nil {
		set = make(map[string]struct{})
		c.index[cat] = set
	}
	for _, class := range classes {
		class = strings.TrimSpace(class)
		if class == "" {
			continue
		}
		if _, ok := set[class]; ok {
			continue
		}
		set[class] = struct{}{}
		c.order[cat] = append(c.order[cat], class)
	}
}

// Values returns the classes of a category in registration order.
func (c *Catalog) Values(cat Category) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order[cat]...)
}

// Has reports whether class belongs to cat.
func (c *Catalog) Has(cat Category, class string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.index[cat][class]
	return ok
}

// Categories lists the registered categories in sorted order.
func (c *Catalog) Categories() []Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Category, 0, len(c.index))
	for cat := range c.index {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Extract returns the first word of className that belongs to cat, or "".
func (c *Catalog) Extract(className string, cat Category) string {
	for _, word := range strings.Fields(className) {
		if c.Has(cat, word) {
			return word
		}
	}
	return ""
}

// Unknown lists the words of className that belong to none of cats. The
// structural pre-wrap class is always known.
func (c *Catalog) Unknown(className string, cats ...Category) []string {
	var out []string
	for _, word := range strings.Fields(className) {
		if word == PreWrap {
			continue
		}
		known := false
		for _, cat := range cats {
			if c.Has(cat, word) {
				known = true
				break
			}
		}
		if !known {
			out = append(out, word)
		}
	}
	return out
}

// Join concatenates classes with single spaces, skipping unset selections and
// repeats while keeping first-seen order.
func Join(classes ...string) string {
	seen := make(map[string]struct{}, len(classes))
	var words []string
	for _, class := range classes {
		for _, word := range strings.Fields(class) {
			if word == None {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			words = append(words, word)
		}
	}
	return strings.Join(words, " ")
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the shared built-in catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = NewCatalog()
		registerBuiltins(defaultCatalog)
	})
	return defaultCatalog
}

// Extract uses the built-in catalog.
func Extract(className string, cat Category) string {
	return Default().Extract(className, cat)
}

// Unknown uses the built-in catalog.
func Unknown(className string, cats ...Category) []string {
	return Default().Unknown(className, cats...)
}
