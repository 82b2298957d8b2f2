package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	pkgmodel "github.com/goliatone/go-cardforge/pkg/model"
)

// SpellTemplate returns a small two-field template with a text node and an
// iconValue node, in that paint order.
func SpellTemplate() pkgmodel.Template {
	return pkgmodel.Template{
		ID:   "spells",
		Name: "Spells",
		Fields: []pkgmodel.Field{
			{Key: "name", Label: "Name", Type: pkgmodel.FieldTypeText},
			{Key: "cost", Label: "Cost", Type: pkgmodel.FieldTypeNumber},
		},
		LayoutDefinition: `{"width":"280px","height":"400px","elements":[
			{"fieldKey":"name","type":"text","className":"text-lg","style":{"top":"10px","left":"10px"}},
			{"fieldKey":"cost","type":"iconValue","icon":"Zap","style":{"top":"40px","left":"10px"}}
		]}`,
	}
}

// SpellCard returns a card for SpellTemplate with the given name and cost.
func SpellCard(id, name string, cost float64) pkgmodel.CardData {
	card := pkgmodel.NewCard(id, "spells")
	card.Set("name", pkgmodel.String(name))
	card.Set("cost", pkgmodel.Number(cost))
	return card
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file. When UPDATE_GOLDENS is set and
// got is supplied, the file is rewritten with got first.
func MustReadGoldenString(t *testing.T, path string, got ...string) string {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") != "" && len(got) > 0 {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(got[0]), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
