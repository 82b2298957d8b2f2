package widgets

import (
	"testing"

	"github.com/goliatone/go-cardforge/pkg/layout"
	"github.com/goliatone/go-cardforge/pkg/model"
)

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name  string
		field model.Field
		want  layout.ElementType
		ok    bool
	}{
		{name: "placeholder image", field: model.Field{Key: "art", Type: model.FieldTypePlaceholderImage}, want: layout.ElementImage, ok: true},
		{name: "textarea", field: model.Field{Key: "rules", Type: model.FieldTypeTextarea}, want: layout.ElementTextarea, ok: true},
		{name: "image url text", field: model.Field{Key: "imageUrl", Type: model.FieldTypeText}, want: layout.ElementImage, ok: true},
		{name: "icon key", field: model.Field{Key: "classIcon", Type: model.FieldTypeSelect}, want: layout.ElementIconFromData, ok: true},
		{name: "number", field: model.Field{Key: "cost", Type: model.FieldTypeNumber}, want: layout.ElementText, ok: false},
		{name: "boolean", field: model.Field{Key: "legendary", Type: model.FieldTypeBoolean}, want: layout.ElementText, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.field)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("Resolve() = %q, %v; want %q, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestResolve_PriorityAndOrder(t *testing.T) {
	reg := &Registry{}
	always := func(model.Field) bool { return true }
	reg.Register(layout.ElementText, 10, always)
	reg.Register(layout.ElementTextarea, 10, always)
	reg.Register(layout.ElementIconValue, 5, always)

	if got, _ := reg.Resolve(model.Field{}); got != layout.ElementText {
		t.Fatalf("expected first registration at top priority, got %q", got)
	}

	reg.Register(layout.ElementImage, 20, always)
	if got, _ := reg.Resolve(model.Field{}); got != layout.ElementImage {
		t.Fatalf("expected higher priority to win, got %q", got)
	}

	reg.Register("bogus", 100, always)
	if got, _ := reg.Resolve(model.Field{}); got != layout.ElementImage {
		t.Fatalf("unknown element types must be ignored, got %q", got)
	}
}

func TestDefaultSize(t *testing.T) {
	if got := DefaultSize(layout.ElementTextarea); got != (Size{Width: 240, Height: 80}) {
		t.Fatalf("textarea size = %+v", got)
	}
	if got := DefaultSize(layout.ElementImage); got != (Size{Width: 240, Height: 140}) {
		t.Fatalf("image size = %+v", got)
	}
	if got := DefaultSize("unknown"); got != (Size{Width: 120, Height: 24}) {
		t.Fatalf("fallback size = %+v", got)
	}
}
