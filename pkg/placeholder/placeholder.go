// Package placeholder synthesizes stand-in images for card image slots: a
// URL in the placehold.co path format for renderers, and the matching PNG
// for the bundled HTTP handler.
package placeholder

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-cardforge/pkg/layout"
	"github.com/goliatone/go-cardforge/pkg/model"
)

const (
	DefaultBaseURL    = "https://placehold.co"
	DefaultSize       = 100
	DefaultBackground = "e2e8f0"
	DefaultForeground = "475569"
	MaxSize           = 4000
	InvalidSourceText = "Invalid Source"
)

var (
	hexColorPattern = regexp.MustCompile(`^[0-9a-fA-F]{3}([0-9a-fA-F]{3})?$`)
	sizePattern     = regexp.MustCompile(`^(\d+)x(\d+)$`)
)

// Params describes one placeholder image.
type Params struct {
	Width      int
	Height     int
	Background string
	Foreground string
	Text       string
}

// ForBox returns params sized from CSS width/height strings; unparsable
// lengths fall back to DefaultSize.
func ForBox(width, height string) Params {
	params := Params{Width: DefaultSize, Height: DefaultSize}
	if w, ok := layout.ParsePx(width); ok && w > 0 {
		params.Width = w
	}
	if h, ok := layout.ParsePx(height); ok && h > 0 {
		params.Height = h
	}
	return params
}

// ForElement sizes a placeholder for an element box. Parsable box lengths
// win, then the field config dimensions, then DefaultSize. Colors and text
// come from cfg when set.
func ForElement(width, height string, cfg *model.PlaceholderConfig) Params {
	params := Params{}.WithConfig(cfg)
	if w, ok := layout.ParsePx(width); ok && w > 0 {
		params.Width = w
	}
	if h, ok := layout.ParsePx(height); ok && h > 0 {
		params.Height = h
	}
	if params.Width <= 0 {
		params.Width = DefaultSize
	}
	if params.Height <= 0 {
		params.Height = DefaultSize
	}
	return params
}

// WithConfig overlays a field's placeholder settings on the params. Config
// dimensions replace the current ones; ForElement applies them first so a
// parsable element box still overrides them.
func (s Params) WithConfig(cfg *model.PlaceholderConfig) Params {
	if cfg == nil {
		return s
	}
	if cfg.Width > 0 {
		s.Width = cfg.Width
	}
	if cfg.Height > 0 {
		s.Height = cfg.Height
	}
	if c := strings.TrimSpace(cfg.BgColor); c != "" {
		s.Background = c
	}
	if c := strings.TrimSpace(cfg.TextColor); c != "" {
		s.Foreground = c
	}
	if t := strings.TrimSpace(cfg.Text); t != "" && s.Text == "" {
		s.Text = t
	}
	return s
}

// Normalized clamps dimensions and replaces invalid colors with defaults.
func (s Params) Normalized() Params {
	s.Width = clamp(s.Width)
	s.Height = clamp(s.Height)
	s.Background = normalizeColor(s.Background, DefaultBackground)
	s.Foreground = normalizeColor(s.Foreground, DefaultForeground)
	return s
}

// URL formats the params as {base}/{w}x{h}/{bg}/{fg}?text=... .
func URL(base string, s Params) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	s = s.Normalized()
	out := fmt.Sprintf("%s/%dx%d/%s/%s", base, s.Width, s.Height, s.Background, s.Foreground)
	if s.Text != "" {
		out += "?text=" + url.QueryEscape(s.Text)
	}
	return out
}

// ParseSize parses "{w}x{h}".
func ParseSize(value string) (int, int, error) {
	match := sizePattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return 0, 0, fmt.Errorf("placeholder: invalid size %q", value)
	}
	w, _ := strconv.Atoi(match[1])
	h, _ := strconv.Atoi(match[2])
	if w <= 0 || h <= 0 || w > MaxSize || h > MaxSize {
		return 0, 0, fmt.Errorf("placeholder: size %q out of range", value)
	}
	return w, h, nil
}

func clamp(n int) int {
	switch {
	case n <= 0:
		return DefaultSize
	case n > MaxSize:
		return MaxSize
	}
	return n
}

func normalizeColor(value, fallback string) string {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	if !hexColorPattern.MatchString(value) {
		return fallback
	}
	return strings.ToLower(value)
}
