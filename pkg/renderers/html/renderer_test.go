package html_test

import (
	"context"
	"io"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/render"
	"github.com/goliatone/go-cardforge/pkg/renderers/html"
	"github.com/goliatone/go-cardforge/pkg/renderers/html/components"
)

const heroLayout = `{
  "width": "280px",
  "height": "400px",
  "canvasClassName": "bg-slate-900 rounded-lg",
  "elements": [
    {"fieldKey": "name", "type": "text", "style": {"top": "10px", "left": "10px"}, "className": "text-white"},
    {"fieldKey": "art", "type": "image", "style": {"top": "40px", "left": "10px", "width": "240px", "height": "140px"}},
    {"fieldKey": "hp", "type": "iconValue", "icon": "Heart", "style": {"top": "200px", "left": "10px"}}
  ]
}`

func heroTemplate() model.Template {
	return model.Template{
		ID:   "hero",
		Name: "Hero",
		Fields: []model.Field{
			{Key: "name", Label: "Name", Type: model.FieldTypeText},
			{Key: "art", Label: "Art", Type: model.FieldTypePlaceholderImage},
			{Key: "hp", Label: "HP", Type: model.FieldTypeNumber},
		},
		LayoutDefinition: heroLayout,
	}
}

func renderHero(t *testing.T, name string, options render.RenderOptions) string {
	t.Helper()

	card := model.NewCard("c1", "hero")
	card.Set("name", model.String(name))
	card.Set("hp", model.Number(12))
	result := render.NewEngine().Render(heroTemplate(), card)

	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), result, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderer_FragmentPaintsNodesInOrder(t *testing.T) {
	out := renderHero(t, "<b>Aria</b>", render.RenderOptions{})

	if !strings.HasPrefix(out, `<div id="card" class="cf-card bg-slate-900 rounded-lg" data-template="hero" data-card="c1"`) {
		t.Fatalf("unexpected card shell:\n%s", out)
	}
	if strings.Contains(out, "<!DOCTYPE html>") {
		t.Fatalf("fragment should not include a document")
	}

	nameAt := strings.Index(out, `data-field="name"`)
	artAt := strings.Index(out, `data-field="art"`)
	hpAt := strings.Index(out, `data-field="hp"`)
	if nameAt < 0 || artAt < 0 || hpAt < 0 || !(nameAt < artAt && artAt < hpAt) {
		t.Fatalf("nodes not in layout order: name=%d art=%d hp=%d", nameAt, artAt, hpAt)
	}

	if !strings.Contains(out, "&lt;b&gt;Aria&lt;/b&gt;") {
		t.Fatalf("expected escaped card text:\n%s", out)
	}
	if !strings.Contains(out, "z-index: 1") || !strings.Contains(out, "z-index: 3") {
		t.Fatalf("expected stacked z-index values:\n%s", out)
	}
	if !strings.Contains(out, `src="https://placehold.co/240x140/e2e8f0/475569?text=Art"`) {
		t.Fatalf("expected placeholder image:\n%s", out)
	}
	if !strings.Contains(out, `data-icon="Heart"`) || !strings.Contains(out, "<svg") {
		t.Fatalf("expected inline icon svg:\n%s", out)
	}
}

func TestRenderer_StandaloneCarriesTheme(t *testing.T) {
	out := renderHero(t, "Aria", render.RenderOptions{
		Standalone: true,
		Theme: &theme.RendererConfig{
			Theme:   "midnight",
			Variant: "dark",
			CSSVars: map[string]string{"--card-background": "#0f172a"},
		},
	})

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Aria</title>",
		`data-theme="midnight"`,
		`data-theme-variant="dark"`,
		":root {\n--card-background: #0f172a;\n}",
		".cf-card {",
		`<div id="card"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("standalone output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderer_DiagnosticAndPlaceholderNodes(t *testing.T) {
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	broken := heroTemplate()
	broken.LayoutDefinition = "{not json"
	out, err := renderer.Render(context.Background(), render.NewEngine().Render(broken, model.NewCard("c1", "hero")), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `class="cf-node cf-diagnostic" role="alert"`) {
		t.Fatalf("expected diagnostic markup:\n%s", out)
	}

	empty := heroTemplate()
	empty.LayoutDefinition = ""
	out, err = renderer.Render(context.Background(), render.NewEngine().Render(empty, model.NewCard("c1", "hero")), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), render.NoLayoutMessage) {
		t.Fatalf("expected no-layout placeholder:\n%s", out)
	}
}

func TestRenderer_ThemePartialOverridesComponent(t *testing.T) {
	recorder := &recordingTemplateRenderer{}
	renderer, err := html.New(html.WithTemplateRenderer(recorder))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	result := render.Result{
		TemplateID: "hero",
		Nodes:      []render.Node{{Kind: render.NodeText, FieldKey: "name", Text: "Aria"}},
	}
	_, err = renderer.Render(context.Background(), result, render.RenderOptions{
		Theme: &theme.RendererConfig{Partials: map[string]string{
			components.PartialKey(render.NodeText): "themes/custom/text.tmpl",
		}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []string{"themes/custom/text.tmpl", "templates/card.tmpl"}
	if len(recorder.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", recorder.calls, want)
	}
	for i := range want {
		if recorder.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", recorder.calls, want)
		}
	}
}

func TestRenderer_UnknownComponent(t *testing.T) {
	renderer, err := html.New(html.WithComponentRegistry(components.New()))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	_, err = renderer.Render(context.Background(), render.Result{
		Nodes: []render.Node{{Kind: render.NodeText, FieldKey: "name"}},
	}, render.RenderOptions{})
	if err == nil || !strings.Contains(err.Error(), `component "text" not registered`) {
		t.Fatalf("expected unregistered component error, got %v", err)
	}
}

type recordingTemplateRenderer struct {
	calls []string
}

func (r *recordingTemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	return r.RenderTemplate(name, data, out...)
}

func (r *recordingTemplateRenderer) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	r.calls = append(r.calls, name)
	return "", nil
}

func (r *recordingTemplateRenderer) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (r *recordingTemplateRenderer) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (r *recordingTemplateRenderer) GlobalContext(any) error {
	return nil
}
