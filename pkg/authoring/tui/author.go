package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/namegen"
	"github.com/goliatone/go-cardforge/pkg/validation"
)

// Option configures an Author.
type Option func(*Author)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(a *Author) {
		if driver != nil {
			a.driver = driver
		}
	}
}

// WithLogger sets the logger for suggestion failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Author) {
		a.logger = logger
	}
}

// WithNameGenerator offers a name suggestion before prompting the card's
// name (or title) field.
func WithNameGenerator(generator namegen.Generator) Option {
	return func(a *Author) {
		a.namer = generator
	}
}

// Author prompts for every field of a template and returns the filled card.
type Author struct {
	driver PromptDriver
	logger zerolog.Logger
	namer  namegen.Generator
}

// New constructs an Author using the survey driver unless overridden.
func New(options ...Option) *Author {
	a := &Author{
		driver: NewSurveyDriver(),
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Fill prompts for each field of tpl, starting from the values already on
// card (or the field defaults), and validates the result. The input card is
// not modified.
func (a *Author) Fill(ctx context.Context, tpl model.Template, card model.CardData) (model.CardData, validation.Result, error) {
	if ctx == nil {
		return model.CardData{}, validation.Result{}, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.CardData{}, validation.Result{}, err
	}

	out := card.Clone()
	if out.TemplateID == "" || out.TemplateID == model.UnassignedTemplateID {
		out.TemplateID = tpl.ID
	}

	for _, field := range tpl.Fields {
		value, err := a.promptField(ctx, field, current(out, field))
		if err != nil {
			return model.CardData{}, validation.Result{}, err
		}
		out.Set(field.Key, value)
	}

	result := validation.ValidateCard(tpl, out)
	for _, issue := range result.Issues {
		_ = a.driver.Info(ctx, fmt.Sprintf("Invalid %s: %s", issue.Field, issue.Message))
	}
	return out, result, nil
}

func (a *Author) promptField(ctx context.Context, field model.Field, value model.Value) (model.Value, error) {
	switch field.Type {
	case model.FieldTypeBoolean:
		return a.promptBoolean(ctx, field, value)
	case model.FieldTypeNumber:
		return a.promptNumber(ctx, field, value)
	case model.FieldTypeSelect:
		return a.promptSelect(ctx, field, value)
	case model.FieldTypeTextarea:
		text, err := a.driver.TextArea(ctx, TextAreaConfig{
			Message: displayLabel(field),
			Default: value.Display(),
			Help:    field.Placeholder,
		})
		if err != nil {
			return model.Null(), err
		}
		return model.String(text), nil
	default:
		return a.promptText(ctx, field, value)
	}
}

func (a *Author) promptText(ctx context.Context, field model.Field, value model.Value) (model.Value, error) {
	help := field.Placeholder
	if field.Type == model.FieldTypePlaceholderImage {
		help = "Image URL; leave blank for a generated placeholder"
	}

	defaultText := value.Display()
	if a.namer != nil && isNameField(field) {
		defaultText = a.suggestName(ctx, field, defaultText)
	}

	text, err := a.driver.Input(ctx, InputConfig{
		Message: displayLabel(field),
		Default: defaultText,
		Help:    help,
	})
	if err != nil {
		return model.Null(), err
	}
	return model.String(strings.TrimSpace(text)), nil
}

// suggestName asks for a description and returns the generated name, or
// fallback when the user skips or generation fails.
func (a *Author) suggestName(ctx context.Context, field model.Field, fallback string) string {
	description, err := a.driver.Input(ctx, InputConfig{
		Message: fmt.Sprintf("Describe the card to suggest a %s (blank to skip)", strings.ToLower(displayLabel(field))),
	})
	if err != nil || strings.TrimSpace(description) == "" {
		return fallback
	}
	name, err := a.namer.GenerateName(ctx, description)
	if err != nil {
		a.logger.Warn().Err(err).Str("fieldKey", field.Key).Msg("name suggestion failed")
		_ = a.driver.Info(ctx, fmt.Sprintf("Name suggestion failed: %v", err))
		return fallback
	}
	return name
}

func (a *Author) promptBoolean(ctx context.Context, field model.Field, value model.Value) (model.Value, error) {
	defaultVal, _ := value.BoolValue()
	resp, err := a.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(field),
		Default: defaultVal,
		Help:    field.Placeholder,
	})
	if err != nil {
		return model.Null(), err
	}
	return model.Bool(resp), nil
}

func (a *Author) promptNumber(ctx context.Context, field model.Field, value model.Value) (model.Value, error) {
	defaultStr := ""
	if value.Kind() == model.KindNumber {
		defaultStr = value.Display()
	}

	for {
		input, err := a.driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: defaultStr,
			Help:    field.Placeholder,
		})
		if err != nil {
			return model.Null(), err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			return model.Null(), nil
		}
		parsed, err := strconv.ParseFloat(input, 64)
		if err != nil {
			_ = a.driver.Info(ctx, fmt.Sprintf("Invalid %s: %q is not a number", field.Key, input))
			continue
		}
		return model.Number(parsed), nil
	}
}

func (a *Author) promptSelect(ctx context.Context, field model.Field, value model.Value) (model.Value, error) {
	if len(field.Options) == 0 {
		return model.Null(), fmt.Errorf("%w: %s", ErrNoOptions, field.Key)
	}

	labels := make([]string, len(field.Options))
	defaultIdx := 0
	selected, _ := value.Str()
	for i, option := range field.Options {
		labels[i] = option.Label
		if labels[i] == "" {
			labels[i] = option.Value
		}
		if option.Value == selected {
			defaultIdx = i
		}
	}

	idx, err := a.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(field),
		Options:      labels,
		DefaultIndex: defaultIdx,
		Help:         field.Placeholder,
	})
	if err != nil {
		return model.Null(), err
	}
	if idx < 0 || idx >= len(field.Options) {
		return model.Null(), fmt.Errorf("tui: select %s: index %d out of range", field.Key, idx)
	}
	return model.String(field.Options[idx].Value), nil
}

// current returns the starting value for field: the card's own value when
// present, else the field default.
func current(card model.CardData, field model.Field) model.Value {
	if card.Has(field.Key) {
		return card.Get(field.Key)
	}
	return field.DefaultValue
}

func displayLabel(field model.Field) string {
	if strings.TrimSpace(field.Label) != "" {
		return field.Label
	}
	return field.Key
}

func isNameField(field model.Field) bool {
	return field.Key == "name" || field.Key == "title"
}
