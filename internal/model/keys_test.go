package model_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/goliatone/go-cardforge/internal/model"
)

func TestDeriveKey(t *testing.T) {
	cases := []struct {
		label    string
		existing []string
		want     string
	}{
		{label: "Attack Power", want: "attackPower"},
		{label: "  hit-points__max ", want: "hitPointsMax"},
		{label: "Mana Cost!", want: "manaCost"},
		{label: "3rd Slot", want: "_3rdSlot"},
		{label: "ALL CAPS", want: "allCaps"},
		{label: "", want: "field"},
		{label: "!!!", want: "field"},
		{label: "Cost", existing: []string{"cost"}, want: "cost1"},
		{label: "Cost", existing: []string{"cost", "cost1"}, want: "cost2"},
		{label: "", existing: []string{"field"}, want: "field1"},
	}

	for _, tc := range cases {
		got := model.DeriveKey(tc.label, set(tc.existing...))
		if got != tc.want {
			t.Errorf("DeriveKey(%q, %v) = %q, want %q", tc.label, tc.existing, got, tc.want)
		}
	}
}

func TestDeriveKeyNeverCollides(t *testing.T) {
	labels := []string{"", "1", "99 problems", "---", "Name", "name", "N a m e", "ümlaut key", "#$%^"}
	existing := set()
	for round := 0; round < 3; round++ {
		for _, label := range labels {
			key := model.DeriveKey(label, existing)
			if key == "" {
				t.Fatalf("empty key for %q", label)
			}
			if _, taken := existing[key]; taken {
				t.Fatalf("DeriveKey(%q) returned existing key %q", label, key)
			}
			if first := key[0]; first >= '0' && first <= '9' {
				t.Fatalf("key %q starts with a digit", key)
			}
			existing[key] = struct{}{}
		}
	}
}

func TestDeriveKeySuffixSequenceIncreases(t *testing.T) {
	existing := set()
	previous := -1
	for i := 0; i < 12; i++ {
		key := model.DeriveKey("Cost", existing)
		existing[key] = struct{}{}

		suffix := strings.TrimPrefix(key, "cost")
		n := 0
		if suffix != "" {
			var err error
			n, err = strconv.Atoi(suffix)
			if err != nil {
				t.Fatalf("unexpected key %q", key)
			}
		}
		if n <= previous {
			t.Fatalf("suffix %d did not increase after %d", n, previous)
		}
		previous = n
	}
}

func TestKeyDeriverFallbackBase(t *testing.T) {
	d := model.KeyDeriver{FallbackBase: "untitledField"}
	if got := d.DeriveKey("???", set("untitledField")); got != "untitledField1" {
		t.Fatalf("got %q", got)
	}
}

func TestDeriveTemplateID(t *testing.T) {
	cases := []struct {
		name     string
		existing []string
		want     string
	}{
		{name: "Fire Spell!", want: "fire-spell"},
		{name: "  Monsters & Heroes  ", want: "monsters-heroes"},
		{name: "", want: "template"},
		{name: "Generic", existing: []string{"generic"}, want: "generic-2"},
		{name: "Generic", existing: []string{"generic", "generic-2"}, want: "generic-3"},
	}
	for _, tc := range cases {
		got := model.DeriveTemplateID(tc.name, set(tc.existing...))
		if got != tc.want {
			t.Errorf("DeriveTemplateID(%q) = %q, want %q", tc.name, got, tc.want)
		}
		if !model.IsURLSafeID(got) {
			t.Errorf("id %q is not url safe", got)
		}
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"manaCost":   "Mana Cost",
		"image_url":  "Image Url",
		"hp2":        "Hp 2",
		"flavor-txt": "Flavor Txt",
		"":           "",
	}
	for in, want := range cases {
		if got := model.DefaultLabeler(in); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}

func set(keys ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		out[key] = struct{}{}
	}
	return out
}
