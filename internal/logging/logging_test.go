package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goliatone/go-cardforge/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New("warn", false, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("icon", "Sparkles").Msg("unknown icon")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["level"] != "warn" || entry["icon"] != "Sparkles" || entry["message"] != "unknown icon" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["caller"]; !ok {
		t.Fatalf("expected caller field in %v", entry)
	}
}

func TestNew_ConsoleAndFallbackLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New("loud", true, &buf)
	logger.Debug().Msg("hidden")
	logger.Info().Msg("rendered card")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("unknown level should fall back to info: %q", out)
	}
	if !strings.Contains(out, "rendered card") || strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("expected console output, got %q", out)
	}
}
