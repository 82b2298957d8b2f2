package namegen

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestService_GenerateNameCleansReply(t *testing.T) {
	var prompts []string
	svc, err := New(Config{}, withCompleter(func(_ context.Context, prompt string) (string, error) {
		prompts = append(prompts, prompt)
		return "\n  Name: \"Ember Drake\".\nA fiery beast.", nil
	}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	name, err := svc.GenerateName(context.Background(), "  a small dragon made of embers ")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if name != "Ember Drake" {
		t.Fatalf("name = %q", name)
	}
	if len(prompts) != 1 {
		t.Fatalf("expected one provider call, got %d", len(prompts))
	}
	if want := "The card is described as: a small dragon made of embers\n"; !strings.Contains(prompts[0], want) {
		t.Fatalf("prompt %q missing description", prompts[0])
	}
}

func TestService_RejectsShortDescriptions(t *testing.T) {
	called := false
	svc, err := New(Config{}, withCompleter(func(context.Context, string) (string, error) {
		called = true
		return "x", nil
	}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for _, description := range []string{"", "  ", "ab", " é "} {
		if _, err := svc.GenerateName(context.Background(), description); !errors.Is(err, ErrDescriptionTooShort) {
			t.Fatalf("description %q: expected ErrDescriptionTooShort, got %v", description, err)
		}
	}
	if called {
		t.Fatalf("provider must not be called for short descriptions")
	}
}

func TestService_ProviderErrors(t *testing.T) {
	boom := errors.New("rate limited")
	svc, err := New(Config{Provider: "Anthropic"}, withCompleter(func(context.Context, string) (string, error) {
		return "", boom
	}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if svc.Provider() != ProviderAnthropic {
		t.Fatalf("provider = %q", svc.Provider())
	}

	_, err = svc.GenerateName(context.Background(), "storm caller")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}

	empty, _ := New(Config{}, withCompleter(func(context.Context, string) (string, error) {
		return " \n\"\" \n", nil
	}))
	if _, err := empty.GenerateName(context.Background(), "storm caller"); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestService_CancelledContext(t *testing.T) {
	svc, _ := New(Config{}, withCompleter(func(context.Context, string) (string, error) {
		t.Fatalf("provider must not be called")
		return "", nil
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.GenerateName(ctx, "storm caller"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	cases := []struct {
		provider  string
		wantModel string
		wantURL   string
	}{
		{provider: "", wantModel: defaultOpenAIChatModel},
		{provider: "anthropic", wantModel: defaultAnthropicModel},
		{provider: "ollama", wantModel: defaultOllamaModel, wantURL: defaultOllamaBaseURL},
		{provider: "gemini", wantModel: defaultGeminiModel},
	}
	for _, tc := range cases {
		cfg := Config{Provider: tc.provider}.withDefaults()
		if cfg.Model != tc.wantModel || cfg.BaseURL != tc.wantURL {
			t.Fatalf("provider %q: got model %q url %q", tc.provider, cfg.Model, cfg.BaseURL)
		}
		if cfg.MaxTokens != defaultMaxTokens || cfg.Temperature != defaultTemperature {
			t.Fatalf("provider %q: unexpected sampling defaults %+v", tc.provider, cfg)
		}
	}
}
