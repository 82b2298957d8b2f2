// Package config loads process configuration for the command line tools: a
// YAML file with defaults when the file is missing, optional .env files and
// CARDFORGE_* environment overrides applied last.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardforge/pkg/namegen"
	"github.com/goliatone/go-cardforge/pkg/store"
)

const envPrefix = "CARDFORGE_"

type Config struct {
	Store   StoreConfig    `yaml:"store"`
	Log     LogConfig      `yaml:"log"`
	NameGen namegen.Config `yaml:"namegen"`
	HTTP    HTTPConfig     `yaml:"http"`
	Render  RenderConfig   `yaml:"render"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"` // memory, file, sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type RenderConfig struct {
	PlaceholderBaseURL string `yaml:"placeholderBaseURL"`
	Theme              string `yaml:"theme"`
	Variant            string `yaml:"variant"`
}

// Load reads configPath (default "cardforge.yaml"), falling back to
// DefaultConfig when the file does not exist. envFiles are loaded with
// godotenv before overrides are read; missing env files are ignored and
// variables already set in the process win.
func Load(configPath string, envFiles ...string) (*Config, error) {
	if configPath == "" {
		configPath = "cardforge.yaml"
	}

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", file, err)
		}
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", configPath, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", configPath, err)
		}
	}

	if err := cfg.overrideFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: store.DriverFile,
			DSN:    ".cardforge",
		},
		Log: LogConfig{
			Level: "info",
		},
		NameGen: namegen.Config{
			Provider: namegen.ProviderOpenAI,
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
	}
}

// Validate rejects unknown store drivers and log levels.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case store.DriverMemory, store.DriverFile, store.DriverSQLite, store.DriverMySQL, store.DriverPostgres:
	default:
		return fmt.Errorf("config: unsupported store driver %q", c.Store.Driver)
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("config: unsupported log level %q", c.Log.Level)
	}
	return nil
}

func (c *Config) overrideFromEnv() error {
	if driver := getenv("STORE_DRIVER"); driver != "" {
		c.Store.Driver = strings.ToLower(driver)
	}
	if dsn := getenv("STORE_DSN"); dsn != "" {
		c.Store.DSN = dsn
	}
	if level := getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = strings.ToLower(level)
	}
	if console := getenv("LOG_CONSOLE"); console != "" {
		v, err := strconv.ParseBool(console)
		if err != nil {
			return fmt.Errorf("config: %sLOG_CONSOLE: %w", envPrefix, err)
		}
		c.Log.Console = v
	}
	if provider := getenv("NAMEGEN_PROVIDER"); provider != "" {
		c.NameGen.Provider = provider
	}
	if apiKey := getenv("NAMEGEN_API_KEY"); apiKey != "" {
		c.NameGen.APIKey = apiKey
	}
	if model := getenv("NAMEGEN_MODEL"); model != "" {
		c.NameGen.Model = model
	}
	if baseURL := getenv("NAMEGEN_BASE_URL"); baseURL != "" {
		c.NameGen.BaseURL = baseURL
	}
	if addr := getenv("HTTP_ADDR"); addr != "" {
		c.HTTP.Addr = addr
	}
	if baseURL := getenv("PLACEHOLDER_BASE_URL"); baseURL != "" {
		c.Render.PlaceholderBaseURL = baseURL
	}
	if theme := getenv("THEME"); theme != "" {
		c.Render.Theme = theme
	}
	if variant := getenv("THEME_VARIANT"); variant != "" {
		c.Render.Variant = variant
	}
	return nil
}

func getenv(name string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + name))
}
