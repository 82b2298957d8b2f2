package model_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/goliatone/go-cardforge/internal/model"
)

func TestValueDisplay(t *testing.T) {
	cases := []struct {
		name  string
		value model.Value
		want  string
	}{
		{name: "null", value: model.Null(), want: ""},
		{name: "string", value: model.String("Fireball"), want: "Fireball"},
		{name: "integer", value: model.Number(3), want: "3"},
		{name: "fraction", value: model.Number(2.5), want: "2.5"},
		{name: "nan", value: model.Number(math.NaN()), want: "NaN"},
		{name: "true", value: model.Bool(true), want: "true"},
		{name: "false", value: model.Bool(false), want: "false"},
		{name: "object", value: model.ObjectValue(map[string]any{"a": 1.0}), want: "{\n  \"a\": 1\n}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.value.Display(); got != tc.want {
				t.Fatalf("Display() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCardDataJSON(t *testing.T) {
	payload := `{"id":"c1","name":"Fireball","cost":3,"rare":true,"meta":{"a":1},"empty":null}`

	var card model.CardData
	if err := json.Unmarshal([]byte(payload), &card); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if card.ID != "c1" || card.TemplateID != "" {
		t.Fatalf("unexpected identity: %+v", card)
	}
	if got := card.Get("cost"); got.Kind() != model.KindNumber || got.Display() != "3" {
		t.Fatalf("cost = %#v", got)
	}
	if got := card.Get("meta"); got.Kind() != model.KindObject {
		t.Fatalf("meta kind = %v", got.Kind())
	}
	if !card.Get("missing").IsNull() || !card.Get("empty").IsNull() {
		t.Fatalf("missing and null keys must resolve to Null")
	}
	if card.DisplayName() != "Fireball" {
		t.Fatalf("display name = %q", card.DisplayName())
	}

	out, err := json.Marshal(card)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["name"] != "Fireball" || decoded["cost"] != 3.0 || decoded["templateId"] != "" {
		t.Fatalf("unexpected payload %s", out)
	}
}

func TestCardDisplayNameFallbacks(t *testing.T) {
	card := model.NewCard("", "generic")
	if card.DisplayName() != "Untitled" {
		t.Fatalf("got %q", card.DisplayName())
	}
	card.ID = "c9"
	if card.DisplayName() != "c9" {
		t.Fatalf("got %q", card.DisplayName())
	}
	card.Set("title", model.String("Hero"))
	if card.DisplayName() != "Hero" {
		t.Fatalf("got %q", card.DisplayName())
	}
}
