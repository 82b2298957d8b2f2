package orchestrator_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-cardforge/pkg/layout"
	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/orchestrator"
	"github.com/goliatone/go-cardforge/pkg/render"
)

func TestOrchestrator_AppliesTransformer(t *testing.T) {
	base := model.Template{
		ID:               "spells",
		Name:             "Spells",
		Fields:           []model.Field{{Key: "name", Label: "Name", Type: model.FieldTypeText}},
		LayoutDefinition: oneTextLayout,
	}

	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	transformCalled := false
	transformer := orchestrator.TransformerFunc(func(_ context.Context, _ *model.Template, record *model.CardData) error {
		transformCalled = true
		record.Set("name", model.String("Patched"))
		return nil
	})

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
		orchestrator.WithTransformer(transformer),
	)

	record := model.NewCard("c1", "spells")
	record.Set("name", model.String("Original"))
	if _, err := orch.Generate(context.Background(), orchestrator.Request{Template: &base, Record: record}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !transformCalled {
		t.Fatalf("expected transformer to be invoked")
	}
	node, ok := renderer.last.Node("name")
	if !ok || node.Text != "Patched" {
		t.Fatalf("transformer mutation missing: %+v", node)
	}
	if record.Get("name").Display() != "Original" {
		t.Fatalf("transformer mutated the caller record")
	}
}

func TestFieldDefaults_FillsAbsentValuesOnly(t *testing.T) {
	tpl := model.Template{Fields: []model.Field{
		{Key: "cost", Type: model.FieldTypeNumber, DefaultValue: model.Number(1)},
		{Key: "rare", Type: model.FieldTypeBoolean, DefaultValue: model.Bool(true)},
		{Key: "name", Type: model.FieldTypeText},
	}}
	record := model.NewCard("c1", "spells")
	record.Set("rare", model.Null())

	if err := orchestrator.FieldDefaults().Transform(context.Background(), &tpl, &record); err != nil {
		t.Fatalf("transform: %v", err)
	}
	if got := record.Get("cost").Display(); got != "1" {
		t.Fatalf("cost default not applied: %q", got)
	}
	if !record.Get("rare").IsNull() {
		t.Fatalf("explicit null overwritten")
	}
	if record.Has("name") {
		t.Fatalf("field without default gained a value")
	}
}

func TestJSONPresetTransformerFromFS(t *testing.T) {
	tpl := model.Template{
		ID:   "spells",
		Name: "Spells",
		Fields: []model.Field{
			{Key: "name", Label: "Name", Type: model.FieldTypeText},
			{Key: "manaCost", Label: "Mana Cost", Type: model.FieldTypeNumber},
		},
	}

	transformer, err := orchestrator.NewJSONPresetTransformerFromFS(os.DirFS("testdata"), "spell_preset.json")
	if err != nil {
		t.Fatalf("new json transformer: %v", err)
	}
	if err := transformer.Transform(context.Background(), &tpl, nil); err != nil {
		t.Fatalf("apply transformer: %v", err)
	}

	if tpl.Name != "Spells (print)" {
		t.Fatalf("name not patched: %q", tpl.Name)
	}
	cost := tpl.Fields[1]
	if cost.Label != "Cost" || cost.Placeholder != "0" || cost.DefaultValue.Display() != "1" {
		t.Fatalf("field patch missing: %+v", cost)
	}
	doc, err := layout.Parse(tpl.LayoutDefinition)
	if err != nil {
		t.Fatalf("patched layout does not parse: %v", err)
	}
	if doc.Width != "300px" || len(doc.Elements) != 2 || doc.Elements[1].Icon != "Zap" {
		t.Fatalf("layout not patched: %+v", doc)
	}
}

func TestJSONPresetTransformer_Errors(t *testing.T) {
	if _, err := orchestrator.NewJSONPresetTransformer(nil); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := orchestrator.NewJSONPresetTransformer([]byte(`{"layout": "{not json"}`)); err == nil {
		t.Fatalf("expected error for malformed layout string")
	}

	transformer, err := orchestrator.NewJSONPresetTransformer([]byte(`{"fields": {"ghost": {"label": "Ghost"}}}`))
	if err != nil {
		t.Fatalf("new json transformer: %v", err)
	}
	tpl := model.Template{ID: "spells"}
	if err := transformer.Transform(context.Background(), &tpl, nil); err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestOrchestrator_TransformerErrorAborts(t *testing.T) {
	renderer := &stubRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	transformer := orchestrator.TransformerFunc(func(context.Context, *model.Template, *model.CardData) error {
		return fmt.Errorf("boom")
	})

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(renderer.Name()),
		orchestrator.WithTransformer(orchestrator.Chain(orchestrator.FieldDefaults(), transformer)),
	)

	_, err := orch.Generate(context.Background(), orchestrator.Request{Template: &model.Template{ID: "spells"}})
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected transformer error, got %v", err)
	}
}
