package html

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardforge/pkg/render"
	rendertemplate "github.com/goliatone/go-cardforge/pkg/render/template"
	gotemplate "github.com/goliatone/go-cardforge/pkg/render/template/gotemplate"
	"github.com/goliatone/go-cardforge/pkg/renderers/html/components"
)

const (
	cardTemplate = "templates/card.tmpl"
	pageTemplate = "templates/page.tmpl"

	// ThemePartialCard and ThemePartialPage let a theme replace the card and
	// page shells.
	ThemePartialCard = "cards.card"
	ThemePartialPage = "cards.page"
)

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	stylesheet       *string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the node component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithStylesheet replaces the stylesheet inlined into standalone pages. An
// empty string disables it.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = &css
	}
}

// Renderer turns a render Result into an HTML fragment or page.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	registry   *components.Registry
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	registry := cfg.registry
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}

	stylesheet := defaultStylesheet()
	if cfg.stylesheet != nil {
		stylesheet = *cfg.stylesheet
	}

	return &Renderer{
		templates:  renderer,
		registry:   registry,
		stylesheet: stylesheet,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes one markup block per node in paint order inside the card
// canvas. Standalone requests wrap the card in a full page carrying the
// theme CSS variables.
func (r *Renderer) Render(_ context.Context, result render.Result, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	themeCtx := buildThemeContext(options.Theme)
	data := components.ComponentData{
		Template:      r.templates,
		ThemePartials: themeCtx.Partials,
	}

	nodes := make([]string, 0, len(result.Nodes))
	kinds := make([]render.NodeKind, 0, len(result.Nodes))
	for _, node := range result.Nodes {
		descriptor, ok := r.registry.Descriptor(node.Kind)
		if !ok {
			return nil, fmt.Errorf("html renderer: component %q not registered for field %q", node.Kind, node.FieldKey)
		}
		var buf bytes.Buffer
		if err := descriptor.Renderer(&buf, node, data); err != nil {
			return nil, fmt.Errorf("html renderer: render node %d (%s): %w", node.Index, node.FieldKey, err)
		}
		nodes = append(nodes, buf.String())
		kinds = append(kinds, node.Kind)
	}

	card, err := r.templates.RenderTemplate(themeCtx.partial(ThemePartialCard, cardTemplate), map[string]any{
		"result": result,
		"nodes":  nodes,
		"canvas": map[string]any{
			"className": result.Canvas.ClassName,
			"style":     result.Canvas.CSS(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render card: %w", err)
	}
	if !options.Standalone {
		return []byte(card), nil
	}

	title := strings.TrimSpace(options.Title)
	if title == "" {
		title = result.CardName
	}
	if title == "" {
		title = result.TemplateName
	}

	page, err := r.templates.RenderTemplate(themeCtx.partial(ThemePartialPage, pageTemplate), map[string]any{
		"title":       title,
		"card":        card,
		"stylesheet":  r.stylesheet,
		"stylesheets": r.stylesheetURLs(kinds, themeCtx),
		"theme":       themeCtx,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render page: %w", err)
	}
	return []byte(page), nil
}

func (r *Renderer) stylesheetURLs(kinds []render.NodeKind, themeCtx rendererTheme) []string {
	hrefs := r.registry.Stylesheets(kinds)
	if themeCtx.assetURL == nil {
		return hrefs
	}
	out := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		if resolved := themeCtx.assetURL(href); resolved != "" {
			href = resolved
		}
		out = append(out, href)
	}
	return out
}

type rendererTheme struct {
	Name         string            `json:"name"`
	Variant      string            `json:"variant"`
	Partials     map[string]string `json:"partials,omitempty"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"cssVars,omitempty"`
	CSSVarsStyle string            `json:"cssVarsStyle,omitempty"`
	JSON         string            `json:"json,omitempty"`

	assetURL func(string) string
}

func (t rendererTheme) partial(key, fallback string) string {
	if candidate := strings.TrimSpace(t.Partials[key]); candidate != "" {
		return candidate
	}
	return fallback
}

func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	ctx := rendererTheme{
		Name:     cfg.Theme,
		Variant:  cfg.Variant,
		Partials: copyStringMap(cfg.Partials),
		Tokens:   copyStringMap(cfg.Tokens),
		CSSVars:  copyStringMap(cfg.CSSVars),
		assetURL: cfg.AssetURL,
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	ctx.JSON = themeJSON(ctx)
	return ctx
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
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func themeJSON(cfg rendererTheme) string {
	payload := struct {
		Name    string            `json:"name,omitempty"`
		Variant string            `json:"variant,omitempty"`
		Tokens  map[string]string `json:"tokens,omitempty"`
		CSSVars map[string]string `json:"cssVars,omitempty"`
	}{
		Name:    cfg.Name,
		Variant: cfg.Variant,
		Tokens:  cfg.Tokens,
		CSSVars: cfg.CSSVars,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(data)
}
