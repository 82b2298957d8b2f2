package namegen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// MinDescriptionLength is the shortest description, in characters, that is
// sent to a provider.
const MinDescriptionLength = 3

// ErrDescriptionTooShort is returned for empty or too short descriptions.
var ErrDescriptionTooShort = errors.New("namegen: description is too short")

// ErrEmptyResponse is returned when the provider answered without any usable
// text.
var ErrEmptyResponse = errors.New("namegen: provider returned no name")

// Generator suggests a name from a description.
type Generator interface {
	GenerateName(ctx context.Context, description string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, description string) (string, error)

// GenerateName calls fn.
func (fn GeneratorFunc) GenerateName(ctx context.Context, description string) (string, error) {
	return fn(ctx, description)
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger used for provider calls.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithHTTPClient overrides the HTTP client handed to provider SDKs.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithPrompt replaces the prompt template. The template must contain a single
// %s verb that receives the description.
func WithPrompt(prompt string) Option {
	return func(s *Service) {
		if strings.TrimSpace(prompt) != "" {
			s.prompt = prompt
		}
	}
}

// withCompleter swaps the provider call, used by tests.
func withCompleter(c completer) Option {
	return func(s *Service) {
		s.complete = c
	}
}

const defaultPrompt = `Suggest one short, evocative name for a trading card.
The card is described as: %s
Reply with the name only, on a single line, without quotes or explanation.`

// completer sends a prompt to a provider and returns its raw reply.
type completer func(ctx context.Context, prompt string) (string, error)

// Service implements Generator on top of one configured provider.
type Service struct {
	config     Config
	logger     zerolog.Logger
	httpClient *http.Client
	prompt     string
	complete   completer
}

var _ Generator = (*Service)(nil)

// New validates cfg and returns a Service bound to its provider.
func New(cfg Config, options ...Option) (*Service, error) {
	cfg = cfg.withDefaults()
	s := &Service{
		config:     cfg,
		logger:     zerolog.Nop(),
		httpClient: http.DefaultClient,
		prompt:     defaultPrompt,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.complete != nil {
		return s, nil
	}

	complete, err := s.providerCompleter()
	if err != nil {
		return nil, err
	}
	s.complete = complete
	return s, nil
}

// Provider reports the configured provider name.
func (s *Service) Provider() string {
	return s.config.Provider
}

// GenerateName implements Generator.
func (s *Service) GenerateName(ctx context.Context, description string) (string, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		return "", ErrDescriptionTooShort
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(s.prompt, description)
	s.logger.Debug().
		Str("provider", s.config.Provider).
		Str("model", s.config.Model).
		Int("prompt_length", len(prompt)).
		Msg("requesting card name")

	raw, err := s.complete(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Str("provider", s.config.Provider).Msg("name generation failed")
		return "", fmt.Errorf("namegen: %s: %w", s.config.Provider, err)
	}

	name := Clean(raw)
	if name == "" {
		return "", ErrEmptyResponse
	}
	return name, nil
}

// Clean reduces a model reply to a single-line name: the first non-blank
// line, without a leading "Name:" label, surrounding quotes, markdown
// emphasis or a trailing period.
func Clean(raw string) string {
	var line string
	for _, candidate := range strings.Split(raw, "\n") {
		candidate = strings.TrimSpace(candidate)
		if candidate != "" {
			line = candidate
			break
		}
	}
	if line == "" {
		return ""
	}

	if idx := strings.Index(line, ":"); idx > 0 && strings.EqualFold(strings.TrimSpace(line[:idx]), "name") {
		line = strings.TrimSpace(line[idx+1:])
	}
	for {
		trimmed := strings.Trim(line, "*_#` ")
		trimmed = strings.Trim(trimmed, "\"'“”‘’«» ")
		trimmed = strings.TrimSuffix(trimmed, ".")
		if trimmed == line {
			break
		}
		line = trimmed
	}
	return strings.Join(strings.Fields(line), " ")
}
