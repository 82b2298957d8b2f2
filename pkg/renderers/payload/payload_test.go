package payload_test

import (
	"context"
	"encoding/json"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/render"
	"github.com/goliatone/go-cardforge/pkg/renderers/payload"
)

func sampleResult() render.Result {
	tpl := model.Template{
		ID:   "generic",
		Name: "Generic",
		Fields: []model.Field{
			{Key: "name", Label: "Name", Type: model.FieldTypeText},
			{Key: "art", Label: "Art", Type: model.FieldTypePlaceholderImage},
		},
		LayoutDefinition: `{"elements":[
			{"fieldKey":"name","type":"text","style":{"top":"10px","left":"10px"}},
			{"fieldKey":"art","type":"image","style":{"top":"40px","left":"10px","width":"240px","height":"140px"}}
		]}`,
	}
	card := model.NewCard("c1", "generic")
	card.Set("name", model.String("Slime"))
	card.Set("art", model.String("not a url"))
	return render.NewEngine(render.WithPlaceholderBaseURL("/placeholder")).Render(tpl, card)
}

func TestRenderer_EncodesNodesAndCanvas(t *testing.T) {
	renderer := payload.New(payload.WithAssetURLPrefix("https://cards.example.com/"))

	out, err := renderer.Render(context.Background(), sampleResult(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded struct {
		Template struct{ ID, Name string } `json:"template"`
		Card     struct{ ID, Name string } `json:"card"`
		Canvas   struct {
			Width  string `json:"width"`
			Height string `json:"height"`
			CSS    string `json:"css"`
		} `json:"canvas"`
		Nodes []struct {
			Kind          string `json:"kind"`
			FieldKey      string `json:"fieldKey"`
			Text          string `json:"text"`
			Src           string `json:"src"`
			InvalidSource bool   `json:"invalidSource"`
			ZIndex        int    `json:"zIndex"`
			CSS           string `json:"css"`
		} `json:"nodes"`
		Theme *struct{} `json:"theme"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}

	if decoded.Template.ID != "generic" || decoded.Card.Name != "Slime" {
		t.Fatalf("unexpected identity: %s", out)
	}
	if decoded.Canvas.Width != "280px" || decoded.Canvas.Height != "400px" {
		t.Fatalf("canvas defaults missing: %+v", decoded.Canvas)
	}
	if len(decoded.Nodes) != 2 {
		t.Fatalf("nodes = %d", len(decoded.Nodes))
	}
	if got := decoded.Nodes[0]; got.Text != "Slime" || got.ZIndex != 1 || got.CSS != "left: 10px; position: absolute; top: 10px; z-index: 1" {
		t.Fatalf("unexpected text node: %+v", got)
	}
	image := decoded.Nodes[1]
	if !image.InvalidSource {
		t.Fatalf("expected invalid source flag")
	}
	if want := "https://cards.example.com/placeholder/240x140/e2e8f0/475569?text=Invalid+Source"; image.Src != want {
		t.Fatalf("src = %q, want %q", image.Src, want)
	}
	if decoded.Theme != nil {
		t.Fatalf("theme should be omitted without a selection")
	}
}

func TestRenderer_BuildIncludesTheme(t *testing.T) {
	doc := payload.New().Build(sampleResult(), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:   "midnight",
			Variant: "dark",
			Tokens:  map[string]string{"accent": "#f59e0b", "card-background": "#0f172a"},
			CSSVars: map[string]string{"--accent": "#f59e0b", "--card-background": "#0f172a"},
		},
	})
	if doc.Theme == nil {
		t.Fatalf("expected theme payload")
	}

	want := ":root { --accent: #f59e0b; --card-background: #0f172a; }"
	if diff := cmp.Diff(want, doc.Theme.CSSVarsStyle); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
}
