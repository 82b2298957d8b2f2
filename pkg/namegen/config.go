package namegen

import (
	"fmt"
	"strings"
)

// Provider names accepted by Config.Provider.
const (
	ProviderOpenAI    = "openai"
	ProviderAzure     = "azure"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderGemini    = "gemini"
)

const (
	defaultTemperature     = 0.7
	defaultMaxTokens       = 32
	defaultAnthropicModel  = "claude-sonnet-4-20250514"
	defaultOllamaModel     = "llama3"
	defaultOllamaBaseURL   = "http://localhost:11434"
	defaultGeminiModel     = "gemini-2.0-flash"
	defaultOpenAIChatModel = "gpt-4o-mini"
)

// Config selects and configures the provider. BaseURL points OpenAI-mode at
// any compatible endpoint; for Azure it is the resource endpoint and Model is
// the deployment name.
type Config struct {
	Provider    string  `yaml:"provider" json:"provider"`
	APIKey      string  `yaml:"apiKey" json:"apiKey"`
	Model       string  `yaml:"model" json:"model"`
	BaseURL     string  `yaml:"baseURL" json:"baseURL"`
	Temperature float64 `yaml:"temperature" json:"temperature"`
	MaxTokens   int     `yaml:"maxTokens" json:"maxTokens"`
}

func (c Config) withDefaults() Config {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	if c.Temperature <= 0 {
		c.Temperature = defaultTemperature
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Model == "" {
		switch c.Provider {
		case ProviderOpenAI:
			c.Model = defaultOpenAIChatModel
		case ProviderAnthropic:
			c.Model = defaultAnthropicModel
		case ProviderOllama:
			c.Model = defaultOllamaModel
		case ProviderGemini:
			c.Model = defaultGeminiModel
		}
	}
	if c.Provider == ProviderOllama && c.BaseURL == "" {
		c.BaseURL = defaultOllamaBaseURL
	}
	return c
}

func (s *Service) providerCompleter() (completer, error) {
	cfg := s.config
	switch cfg.Provider {
	case ProviderOpenAI:
		return s.openAI, nil
	case ProviderAzure:
		if cfg.BaseURL == "" || cfg.Model == "" {
			return nil, fmt.Errorf("namegen: azure requires baseURL and a deployment model")
		}
		return s.azure, nil
	case ProviderAnthropic:
		return s.anthropic, nil
	case ProviderOllama:
		return s.ollama, nil
	case ProviderGemini:
		return s.gemini, nil
	default:
		return nil, fmt.Errorf("namegen: unknown provider %q", cfg.Provider)
	}
}
