package cardforge

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-cardforge/pkg/renderers/html"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), html.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".cf-card") {
		t.Fatalf("expected stylesheet to style the card root")
	}
	if !strings.Contains(string(data), ".cf-image[data-invalid-source]") {
		t.Fatalf("expected stylesheet to mark images with an invalid source")
	}
}

func TestEmbeddedTemplatesIncludeCardShell(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/card.tmpl"); err != nil {
		t.Fatalf("card template missing: %v", err)
	}
}
