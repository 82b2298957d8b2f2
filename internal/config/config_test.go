package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardforge/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(config.DefaultConfig(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cardforge.yaml", `
store:
  driver: sqlite
  dsn: cards.db
log:
  level: debug
namegen:
  provider: ollama
  model: llama3
render:
  theme: parchment
`)
	t.Setenv("CARDFORGE_STORE_DSN", "override.db")
	t.Setenv("CARDFORGE_NAMEGEN_MODEL", "mistral")
	t.Setenv("CARDFORGE_LOG_CONSOLE", "true")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.DSN != "override.db" {
		t.Fatalf("store = %+v", cfg.Store)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Console {
		t.Fatalf("log = %+v", cfg.Log)
	}
	if cfg.NameGen.Provider != "ollama" || cfg.NameGen.Model != "mistral" {
		t.Fatalf("namegen = %+v", cfg.NameGen)
	}
	if cfg.Render.Theme != "parchment" || cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected render/http config %+v %+v", cfg.Render, cfg.HTTP)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "CARDFORGE_HTTP_ADDR=:9090\nCARDFORGE_NAMEGEN_API_KEY=from-env-file\n")
	t.Setenv("CARDFORGE_HTTP_ADDR", "unset")
	os.Unsetenv("CARDFORGE_HTTP_ADDR")
	t.Setenv("CARDFORGE_NAMEGEN_API_KEY", "from-process")

	cfg, err := config.Load(filepath.Join(dir, "none.yaml"), envPath, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.NameGen.APIKey != "from-process" {
		t.Fatalf("process env must win, got %q", cfg.NameGen.APIKey)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("addr = %q", cfg.HTTP.Addr)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	bad := writeFile(t, dir, "bad.yaml", "store: [")
	if _, err := config.Load(bad); err == nil {
		t.Fatalf("expected parse error")
	}

	unknown := writeFile(t, dir, "unknown.yaml", "store:\n  driver: oracle\n")
	if _, err := config.Load(unknown); err == nil {
		t.Fatalf("expected driver error")
	}

	t.Setenv("CARDFORGE_LOG_CONSOLE", "maybe")
	if _, err := config.Load(filepath.Join(dir, "none.yaml")); err == nil {
		t.Fatalf("expected bool parse error")
	}
}
