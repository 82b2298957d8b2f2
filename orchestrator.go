package cardforge

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/orchestrator"
	"github.com/goliatone/go-cardforge/pkg/render"
)

// RenderOptions describes per-request overrides such as standalone page mode
// or an explicit theme configuration.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request for callers that only import the root
// package.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderCard interprets the template layout against card and renders it with
// the named renderer ("html" when empty).
func RenderCard(ctx context.Context, tpl model.Template, card model.CardData, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Template: &tpl,
		Record:   card,
		Renderer: rendererName,
	})
}

// RenderPage renders card as a standalone HTML document.
func RenderPage(ctx context.Context, tpl model.Template, card model.CardData, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Template:      &tpl,
		Record:        card,
		Renderer:      "html",
		RenderOptions: render.RenderOptions{Standalone: true},
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeProvider constructs a go-theme selector from a ThemeProvider and
// registers it with the orchestrator so renderers receive resolved partials,
// tokens, and assets.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, defaultTheme, defaultVariant)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
