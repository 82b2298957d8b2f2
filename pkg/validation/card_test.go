package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/validation"
)

func unitTemplate() model.Template {
	return model.Template{
		ID:   "units",
		Name: "Units",
		Fields: []model.Field{
			{Key: "name", Label: "Name", Type: model.FieldTypeText},
			{Key: "attack", Label: "Attack", Type: model.FieldTypeNumber},
			{Key: "flying", Label: "Flying", Type: model.FieldTypeBoolean},
			{Key: "rarity", Label: "Rarity", Type: model.FieldTypeSelect, Options: []model.Option{
				{Value: "common", Label: "Common"},
				{Value: "rare", Label: "Rare"},
			}},
			{Key: "art", Label: "Art", Type: model.FieldTypePlaceholderImage},
		},
	}
}

func TestValidateCard_AcceptsWellTypedAndNullValues(t *testing.T) {
	card := model.NewCard("c1", "units")
	card.Set("name", model.String("Griffin"))
	card.Set("attack", model.Number(3))
	card.Set("flying", model.Bool(true))
	card.Set("rarity", model.String("rare"))
	card.Set("art", model.Null())

	result := validation.ValidateCard(unitTemplate(), card)
	if !result.Valid || len(result.Issues) != 0 || len(result.Warnings) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	empty := model.NewCard("c2", "units")
	empty.Set("rarity", model.String(""))
	if result := validation.ValidateCard(unitTemplate(), empty); !result.Valid {
		t.Fatalf("missing and empty values should be valid: %+v", result)
	}
}

func TestValidateCard_ReportsIssuesPerField(t *testing.T) {
	card := model.NewCard("c1", "units")
	card.Set("name", model.Number(7))
	card.Set("attack", model.String("lots"))
	card.Set("rarity", model.String("mythic"))
	card.Set("flying", model.Bool(false))

	result := validation.ValidateCard(unitTemplate(), card)
	if result.Valid {
		t.Fatalf("expected invalid result")
	}

	var fields []string
	for _, issue := range result.Issues {
		if issue.Message == "" {
			t.Fatalf("issue without message: %+v", issue)
		}
		if issue.Path != "/"+issue.Field {
			t.Fatalf("path %q does not point at field %q", issue.Path, issue.Field)
		}
		fields = append(fields, issue.Field)
	}
	if diff := cmp.Diff([]string{"name", "attack", "rarity"}, fields); diff != "" {
		t.Fatalf("issue fields mismatch (-want +got):\n%s", diff)
	}
	if _, ok := result.IssueFor("flying"); ok {
		t.Fatalf("valid field reported")
	}
}

func TestValidateCard_ObjectInScalarField(t *testing.T) {
	card := model.NewCard("c1", "units")
	card.Set("name", model.ObjectValue(map[string]any{"first": "Grif"}))

	result := validation.ValidateCard(unitTemplate(), card)
	if _, ok := result.IssueFor("name"); !ok {
		t.Fatalf("expected issue for object value: %+v", result)
	}
}

func TestValidateCard_UnknownKeysAreWarnings(t *testing.T) {
	card := model.NewCard("c1", "other")
	card.Set("legacy", model.String("x"))

	result := validation.ValidateCard(unitTemplate(), card)
	if !result.Valid {
		t.Fatalf("unknown keys must not invalidate: %+v", result)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("expected template mismatch and unknown key warnings, got %+v", result.Warnings)
	}
	if result.Warnings[1].Field != "legacy" {
		t.Fatalf("unexpected warning: %+v", result.Warnings[1])
	}
}

func TestSchema_DescribesFields(t *testing.T) {
	schema := validation.Schema(unitTemplate())
	if len(schema.Properties) != 5 {
		t.Fatalf("properties = %d", len(schema.Properties))
	}
	rarity := schema.Properties["rarity"].Value
	if !rarity.Nullable || len(rarity.Enum) != 2 {
		t.Fatalf("select schema = %+v", rarity)
	}
	if !schema.Properties["attack"].Value.Type.Is("number") {
		t.Fatalf("number field not typed as number")
	}
}
