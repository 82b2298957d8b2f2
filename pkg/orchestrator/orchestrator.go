package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/render"
	"github.com/goliatone/go-cardforge/pkg/renderers/html"
	"github.com/goliatone/go-cardforge/pkg/renderers/payload"
)

const defaultRendererName = "html"

// TemplateLookup resolves templates by id for requests that only carry a
// TemplateID. The persistence TemplateStore satisfies it.
type TemplateLookup interface {
	Get(ctx context.Context, id string) (model.Template, error)
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithEngine injects a preconfigured render engine.
func WithEngine(engine *render.Engine) Option {
	return func(o *Orchestrator) {
		o.engine = engine
	}
}

// WithLogger sets the logger shared with the default engine.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTemplateStore enables TemplateID lookups.
func WithTemplateStore(store TemplateLookup) Option {
	return func(o *Orchestrator) {
		o.templates = store
	}
}

// WithTransformer registers a Transformer that runs after the template is
// resolved and before decorators.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against a copy of the
// template before rendering.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithThemeSelector resolves theme/variant choices ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider builds a selector over provider using the supplied
// defaults when a request names no theme.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		o.themeSelector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   defaultTheme,
			DefaultVariant: defaultVariant,
		}
	}
}

// WithThemeFallbacks replaces the partials used when a theme does not
// override them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = cloneStrings(fallbacks)
	}
}

// Orchestrator coordinates template resolution, layout interpretation and
// output rendering. It applies defaults (html and json renderers, bundled
// icons) while remaining open to dependency injection.
type Orchestrator struct {
	logger          zerolog.Logger
	engine          *render.Engine
	registry        *render.Registry
	defaultRenderer string
	templates       TemplateLookup
	transformer     Transformer
	decorators      []model.Decorator
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:          zerolog.Nop(),
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one card render.
type Request struct {
	// Template is rendered as-is when set. Otherwise TemplateID is resolved
	// through the configured TemplateLookup.
	Template   *model.Template
	TemplateID string

	// Record is the card to render. A zero record renders empty values.
	Record model.CardData

	// Renderer names the output renderer; empty uses the default.
	Renderer string

	// ThemeName and ThemeVariant select a theme when a selector is
	// configured. Empty values fall back to the selector defaults.
	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// Output is a rendered card plus the metadata callers need to serve it.
type Output struct {
	Body        []byte
	ContentType string
	Renderer    string
	Result      render.Result
}

// Generate resolves the template, interprets its layout against the record and
// returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	out, err := o.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// Render is Generate returning the render result and content type alongside
// the bytes.
func (o *Orchestrator) Render(ctx context.Context, req Request) (Output, error) {
	if ctx == nil {
		return Output{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Output{}, err
	}

	tpl, err := o.resolveTemplate(ctx, req)
	if err != nil {
		return Output{}, err
	}
	record := req.Record.Clone()

	if err := o.applyTransformer(ctx, &tpl, &record); err != nil {
		return Output{}, err
	}
	if err := o.applyDecorators(&tpl); err != nil {
		return Output{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Output{}, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req)
		if err != nil {
			return Output{}, err
		}
		opts.Theme = cfg
	}

	result := o.engine.Render(tpl, record)
	for _, warning := range result.Warnings {
		o.logger.Debug().Str("template", tpl.ID).Str("card", record.ID).Msg(warning)
	}

	body, err := renderer.Render(ctx, result, opts)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return Output{
		Body:        body,
		ContentType: renderer.ContentType(),
		Renderer:    renderer.Name(),
		Result:      result,
	}, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

func (o *Orchestrator) resolveTemplate(ctx context.Context, req Request) (model.Template, error) {
	if req.Template != nil {
		return cloneTemplate(*req.Template), nil
	}
	id := strings.TrimSpace(req.TemplateID)
	if id == "" {
		id = strings.TrimSpace(req.Record.TemplateID)
	}
	if id == "" {
		return model.Template{}, errors.New("orchestrator: template or template id is required")
	}
	if o.templates == nil {
		return model.Template{}, fmt.Errorf("orchestrator: template %q: no template store configured", id)
	}
	tpl, err := o.templates.Get(ctx, id)
	if err != nil {
		return model.Template{}, fmt.Errorf("orchestrator: load template %q: %w", id, err)
	}
	return cloneTemplate(tpl), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDecorators(tpl *model.Template) error {
	if len(o.decorators) == 0 || tpl == nil {
		return nil
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(tpl); err != nil {
			return fmt.Errorf("orchestrator: decorate template: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, tpl *model.Template, record *model.CardData) error {
	if o.transformer == nil || tpl == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, tpl, record); err != nil {
		return fmt.Errorf("orchestrator: transform: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.engine == nil {
		o.engine = render.NewEngine(render.WithLogger(o.logger))
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
		o.registry.MustRegister(payload.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = defaultThemeFallbacks()
	}

	o.defaultsApplied = true
}

func cloneTemplate(tpl model.Template) model.Template {
	out := tpl
	if tpl.Fields != nil {
		out.Fields = make([]model.Field, len(tpl.Fields))
		for i, field := range tpl.Fields {
			out.Fields[i] = field
			if field.Options != nil {
				out.Fields[i].Options = append([]model.Option(nil), field.Options...)
			}
			if field.PlaceholderConfig != nil {
				cfg := *field.PlaceholderConfig
				out.Fields[i].PlaceholderConfig = &cfg
			}
		}
	}
	return out
}
