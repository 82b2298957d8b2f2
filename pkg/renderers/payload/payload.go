package payload

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardforge/pkg/render"
)

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	indent    string
	assetBase string
}

// WithIndent pretty-prints the payload with the given indent.
func WithIndent(indent string) Option {
	return func(cfg *config) {
		cfg.indent = indent
	}
}

// WithAssetURLPrefix prefixes root-relative image sources (e.g. the local
// placeholder endpoint) so browser clients on another origin can load them.
func WithAssetURLPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetBase = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// Renderer emits the render Result as JSON for browser clients that paint
// cards themselves.
type Renderer struct {
	cfg config
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a payload renderer applying any provided options.
func New(options ...Option) *Renderer {
	var cfg config
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Renderer{cfg: cfg}
}

// Name identifies the renderer inside the registry.
func (r *Renderer) Name() string {
	return "json"
}

// ContentType returns the MIME type for generated documents.
func (r *Renderer) ContentType() string {
	return "application/json"
}

// Document is the wire shape of a rendered card.
type Document struct {
	Template identity     `json:"template"`
	Card     identity     `json:"card"`
	Canvas   canvas       `json:"canvas"`
	Nodes    []node       `json:"nodes"`
	Warnings []string     `json:"warnings,omitempty"`
	Theme    *themeConfig `json:"theme,omitempty"`
}

type identity struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type canvas struct {
	render.Canvas
	CSS string `json:"css"`
}

type node struct {
	render.Node
	CSS string `json:"css"`
}

type themeConfig struct {
	Name         string            `json:"name,omitempty"`
	Variant      string            `json:"variant,omitempty"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"cssVars,omitempty"`
	CSSVarsStyle string            `json:"cssVarsStyle,omitempty"`
}

// Build assembles the payload document without encoding it.
func (r *Renderer) Build(result render.Result, options render.RenderOptions) Document {
	doc := Document{
		Template: identity{ID: result.TemplateID, Name: result.TemplateName},
		Card:     identity{ID: result.CardID, Name: result.CardName},
		Canvas:   canvas{Canvas: result.Canvas, CSS: result.Canvas.CSS()},
		Nodes:    make([]node, 0, len(result.Nodes)),
		Warnings: result.Warnings,
		Theme:    buildTheme(options.Theme),
	}
	for _, n := range result.Nodes {
		if r.cfg.assetBase != "" && strings.HasPrefix(n.Src, "/") && !strings.HasPrefix(n.Src, "//") {
			n.Src = r.cfg.assetBase + n.Src
		}
		doc.Nodes = append(doc.Nodes, node{Node: n, CSS: n.CSS()})
	}
	return doc
}

// Render encodes the payload document.
func (r *Renderer) Render(_ context.Context, result render.Result, options render.RenderOptions) ([]byte, error) {
	doc := r.Build(result, options)

	var (
		data []byte
		err  error
	)
	if r.cfg.indent != "" {
		data, err = json.MarshalIndent(doc, "", r.cfg.indent)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("payload renderer: encode: %w", err)
	}
	return data, nil
}

func buildTheme(cfg *theme.RendererConfig) *themeConfig {
	if cfg == nil {
		return nil
	}
	return &themeConfig{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		Tokens:       copyStringMap(cfg.Tokens),
		CSSVars:      copyStringMap(cfg.CSSVars),
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {")
	for _, key := range keys {
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";")
	}
	b.WriteString(" }")
	return b.String()
}
