// Package namegen suggests card names from a short free-text description by
// asking a language model. Providers are selected by Config.Provider and all
// share the same prompt and output cleanup, so callers only depend on the
// Generator interface.
package namegen
