package orchestrator

import (
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardforge/pkg/render"
	"github.com/goliatone/go-cardforge/pkg/renderers/html"
	"github.com/goliatone/go-cardforge/pkg/renderers/html/components"
)

// defaultThemeFallbacks maps every partial the html renderer understands to
// its bundled template.
func defaultThemeFallbacks() map[string]string {
	fallbacks := map[string]string{
		html.ThemePartialCard: "templates/card.tmpl",
		html.ThemePartialPage: "templates/page.tmpl",
	}
	for kind, file := range map[render.NodeKind]string{
		render.NodeText:         "text.tmpl",
		render.NodeTextarea:     "textarea.tmpl",
		render.NodeImage:        "image.tmpl",
		render.NodeIconValue:    "icon-value.tmpl",
		render.NodeIconFromData: "icon-from-data.tmpl",
		render.NodeDiagnostic:   "diagnostic.tmpl",
		render.NodePlaceholder:  "placeholder.tmpl",
	} {
		fallbacks[components.PartialKey(kind)] = "templates/nodes/" + file
	}
	return fallbacks
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}
	return rendererConfig(selection, o.themeFallbacks), nil
}

// rendererConfig flattens a selection into renderer input. Variant tokens,
// templates and asset files override the base manifest; tokens become CSS
// custom properties named "--<token>".
func rendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: cloneStrings(fallbacks),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}
	if cfg.Partials == nil {
		cfg.Partials = map[string]string{}
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}
	if cfg.Theme == "" {
		cfg.Theme = manifest.Name
	}

	prefix := manifest.Assets.Prefix
	files := cloneStrings(manifest.Assets.Files)
	if files == nil {
		files = map[string]string{}
	}
	mergeStrings(cfg.Tokens, manifest.Tokens)
	mergeStrings(cfg.Partials, manifest.Templates)

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		mergeStrings(cfg.Tokens, variant.Tokens)
		mergeStrings(cfg.Partials, variant.Templates)
		mergeStrings(files, variant.Assets.Files)
		if strings.TrimSpace(variant.Assets.Prefix) != "" {
			prefix = variant.Assets.Prefix
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+strings.TrimPrefix(key, "--")] = value
	}
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

// assetResolver returns the URL of a logical asset key. Unknown keys are
// resolved as file names relative to prefix; absolute URLs pass through.
func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		key = strings.TrimSpace(key)
		if key == "" {
			return ""
		}
		file, ok := files[key]
		if !ok {
			file = key
		}
		if isAbsoluteURL(file) || prefix == "" {
			return file
		}
		if strings.HasPrefix(file, "/") {
			return file
		}
		if isAbsoluteURL(prefix) {
			return strings.TrimRight(prefix, "/") + "/" + file
		}
		return path.Join(prefix, file)
	}
}

func isAbsoluteURL(value string) bool {
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") || strings.HasPrefix(value, "//")
}

func cloneStrings(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeStrings(dst, src map[string]string) {
	for key, value := range src {
		if strings.TrimSpace(value) == "" {
			continue
		}
		dst[key] = value
	}
}
