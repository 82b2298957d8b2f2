package model

import (
	"github.com/goliatone/go-cardforge/internal/model"
)

// Builder converts template definitions into validated templates.
type Builder interface {
	Build(def TemplateDefinition, existingIDs map[string]struct{}) (Template, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler      func(string) string
	fallbackBase string
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithFallbackKey sets the key used for labels without word characters.
func WithFallbackKey(base string) BuilderOption {
	return func(opts *builderOptions) {
		opts.fallbackBase = base
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	internalOpts := model.Options{}
	if cfg.labeler != nil {
		internalOpts.Labeler = cfg.labeler
	}
	if cfg.fallbackBase != "" {
		internalOpts.KeyDeriver = model.KeyDeriver{FallbackBase: cfg.fallbackBase}
	}

	return model.New(internalOpts)
}
