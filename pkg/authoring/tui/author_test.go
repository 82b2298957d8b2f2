package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/namegen"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputConfigs []InputConfig
	selectConfig []SelectConfig
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfig = append(s.selectConfig, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func creatureTemplate() model.Template {
	return model.Template{
		ID:   "creatures",
		Name: "Creatures",
		Fields: []model.Field{
			{Key: "name", Label: "Name", Type: model.FieldTypeText},
			{Key: "attack", Label: "Attack", Type: model.FieldTypeNumber, DefaultValue: model.Number(1)},
			{Key: "flying", Label: "Flying", Type: model.FieldTypeBoolean},
			{Key: "rarity", Label: "Rarity", Type: model.FieldTypeSelect, Options: []model.Option{
				{Value: "common", Label: "Common"},
				{Value: "rare", Label: "Rare"},
			}},
			{Key: "lore", Label: "Lore", Type: model.FieldTypeTextarea},
		},
	}
}

func TestAuthor_FillPromptsEveryField(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"  Ember Drake ", "abc", "4"},
		confirm:   []bool{true},
		selectIdx: []int{1},
		textAreas: []string{"Born in the caldera."},
	}
	author := New(WithPromptDriver(driver))

	input := model.NewCard("c1", "")
	card, result, err := author.Fill(context.Background(), creatureTemplate(), input)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid card, got %+v", result)
	}
	if card.TemplateID != "creatures" {
		t.Fatalf("template id = %q", card.TemplateID)
	}
	if got := card.Get("name").Display(); got != "Ember Drake" {
		t.Fatalf("name = %q", got)
	}
	if got, ok := card.Get("attack").Num(); !ok || got != 4 {
		t.Fatalf("attack = %#v", card.Get("attack"))
	}
	if got, ok := card.Get("flying").BoolValue(); !ok || !got {
		t.Fatalf("flying = %#v", card.Get("flying"))
	}
	if got := card.Get("rarity").Display(); got != "rare" {
		t.Fatalf("rarity = %q", got)
	}
	if got := card.Get("lore").Display(); got != "Born in the caldera." {
		t.Fatalf("lore = %q", got)
	}
	if input.Has("name") {
		t.Fatalf("input card must not be modified")
	}

	if len(driver.infoMessages) != 1 || !strings.Contains(driver.infoMessages[0], `"abc" is not a number`) {
		t.Fatalf("expected one retry notice, got %v", driver.infoMessages)
	}
	if driver.inputConfigs[1].Default != "1" {
		t.Fatalf("number prompt should default to the field default, got %q", driver.inputConfigs[1].Default)
	}
	if got := driver.selectConfig[0].Options; len(got) != 2 || got[0] != "Common" {
		t.Fatalf("select options = %v", got)
	}
}

func TestAuthor_FillUsesExistingValues(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ember Drake", ""},
		confirm:   []bool{false},
		selectIdx: []int{1},
		textAreas: []string{""},
	}
	card := model.NewCard("c1", "creatures")
	card.Set("name", model.String("Ember Drake"))
	card.Set("attack", model.Number(7))
	card.Set("rarity", model.String("rare"))

	out, _, err := New(WithPromptDriver(driver)).Fill(context.Background(), creatureTemplate(), card)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if driver.inputConfigs[0].Default != "Ember Drake" || driver.inputConfigs[1].Default != "7" {
		t.Fatalf("unexpected defaults %+v", driver.inputConfigs)
	}
	if driver.selectConfig[0].DefaultIndex != 1 {
		t.Fatalf("select default = %d", driver.selectConfig[0].DefaultIndex)
	}
	if !out.Get("attack").IsNull() {
		t.Fatalf("blank number input should clear the value, got %#v", out.Get("attack"))
	}
}

func TestAuthor_NameSuggestion(t *testing.T) {
	tpl := model.Template{ID: "simple", Fields: []model.Field{{Key: "name", Label: "Name", Type: model.FieldTypeText}}}

	driver := &stubDriver{inputs: []string{"a dragon of embers", "Ember Drake"}}
	gen := namegen.GeneratorFunc(func(_ context.Context, description string) (string, error) {
		if description != "a dragon of embers" {
			t.Fatalf("description = %q", description)
		}
		return "Ember Drake", nil
	})
	if _, _, err := New(WithPromptDriver(driver), WithNameGenerator(gen)).Fill(context.Background(), tpl, model.CardData{}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if driver.inputConfigs[1].Default != "Ember Drake" {
		t.Fatalf("suggestion should prefill the name, got %q", driver.inputConfigs[1].Default)
	}

	failing := &stubDriver{inputs: []string{"a dragon of embers", "Manual"}}
	broken := namegen.GeneratorFunc(func(context.Context, string) (string, error) {
		return "", errors.New("offline")
	})
	card, _, err := New(WithPromptDriver(failing), WithNameGenerator(broken)).Fill(context.Background(), tpl, model.CardData{})
	if err != nil {
		t.Fatalf("suggestion failure must not abort authoring: %v", err)
	}
	if card.Get("name").Display() != "Manual" {
		t.Fatalf("name = %q", card.Get("name").Display())
	}
	if len(failing.infoMessages) != 1 || !strings.Contains(failing.infoMessages[0], "offline") {
		t.Fatalf("expected failure notice, got %v", failing.infoMessages)
	}
}

func TestAuthor_Errors(t *testing.T) {
	tpl := model.Template{ID: "bad", Fields: []model.Field{{Key: "kind", Type: model.FieldTypeSelect}}}
	if _, _, err := New(WithPromptDriver(&stubDriver{})).Fill(context.Background(), tpl, model.CardData{}); !errors.Is(err, ErrNoOptions) {
		t.Fatalf("expected ErrNoOptions, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := New(WithPromptDriver(&stubDriver{})).Fill(ctx, creatureTemplate(), model.CardData{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if _, _, err := New(WithPromptDriver(&stubDriver{})).Fill(context.Background(), creatureTemplate(), model.CardData{}); err == nil {
		t.Fatalf("expected driver error to propagate")
	}
}

func TestSurveyDriver_Info(t *testing.T) {
	var buf bytes.Buffer
	driver := &SurveyDriver{Out: &buf}
	if err := driver.Info(context.Background(), "saved"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if buf.String() != "saved\n" {
		t.Fatalf("output = %q", buf.String())
	}
}
