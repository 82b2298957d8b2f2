package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-cardforge/pkg/render"
)

const templatePrefix = "templates/nodes/"

// PartialKey returns the theme partial key that overrides the template of a
// node kind.
func PartialKey(kind render.NodeKind) string {
	return "cards." + string(kind)
}

// NewDefaultRegistry constructs a registry pre-populated with a component for
// every node kind the render engine produces.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(render.NodeText, Descriptor{
		Renderer: templateComponentRenderer(render.NodeText, templatePrefix+"text.tmpl"),
	})
	registry.MustRegister(render.NodeTextarea, Descriptor{
		Renderer: templateComponentRenderer(render.NodeTextarea, templatePrefix+"textarea.tmpl"),
	})
	registry.MustRegister(render.NodeImage, Descriptor{
		Renderer: templateComponentRenderer(render.NodeImage, templatePrefix+"image.tmpl"),
	})
	registry.MustRegister(render.NodeIconValue, Descriptor{
		Renderer: templateComponentRenderer(render.NodeIconValue, templatePrefix+"icon-value.tmpl"),
	})
	registry.MustRegister(render.NodeIconFromData, Descriptor{
		Renderer: templateComponentRenderer(render.NodeIconFromData, templatePrefix+"icon-from-data.tmpl"),
	})
	registry.MustRegister(render.NodeDiagnostic, Descriptor{
		Renderer: templateComponentRenderer(render.NodeDiagnostic, templatePrefix+"diagnostic.tmpl"),
	})
	registry.MustRegister(render.NodePlaceholder, Descriptor{
		Renderer: templateComponentRenderer(render.NodePlaceholder, templatePrefix+"placeholder.tmpl"),
	})

	return registry
}

func templateComponentRenderer(kind render.NodeKind, templateName string) Renderer {
	partialKey := PartialKey(kind)
	return func(buf *bytes.Buffer, node render.Node, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolvedTemplate := templateName
		if data.ThemePartials != nil {
			if candidate := strings.TrimSpace(data.ThemePartials[partialKey]); candidate != "" {
				resolvedTemplate = candidate
			}
		}

		payload := map[string]any{
			"node": node,
			"css":  node.CSS(),
		}
		rendered, err := data.Template.RenderTemplate(resolvedTemplate, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolvedTemplate, err)
		}
		buf.WriteString(strings.TrimSpace(rendered))
		return nil
	}
}
