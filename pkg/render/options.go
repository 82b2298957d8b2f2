package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without changing the render Result.
type RenderOptions struct {
	// Theme carries the selected theme tokens, CSS variables and partial
	// overrides. Nil means the renderer's built-in look.
	Theme *theme.RendererConfig
	// Standalone asks markup renderers for a complete document instead of a
	// fragment.
	Standalone bool
	// Title overrides the document title in standalone mode.
	Title string
}
