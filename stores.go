package cardforge

import (
	"fmt"

	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/seed"
	"github.com/goliatone/go-cardforge/pkg/store"
)

// Stores bundles the template and project collections sharing one backend.
type Stores struct {
	KV        store.KV
	Templates *store.TemplateStore
	Projects  *store.ProjectStore
}

// OpenStores opens the KV backend named by driver ("memory", "file",
// "sqlite", "mysql", "postgres") and returns both collections. The template
// store starts with the embedded seed templates until something is saved.
func OpenStores(driver, dsn string, templateOptions ...store.TemplateOption) (*Stores, error) {
	kv, err := store.OpenKV(driver, dsn)
	if err != nil {
		return nil, err
	}
	seeds, err := SeedTemplates()
	if err != nil {
		return nil, err
	}

	options := append([]store.TemplateOption{store.WithSeedTemplates(seeds...)}, templateOptions...)
	return &Stores{
		KV:        kv,
		Templates: store.NewTemplateStore(kv, options...),
		Projects:  store.NewProjectStore(kv),
	}, nil
}

// SeedTemplates returns the templates bundled with the module.
func SeedTemplates() ([]model.Template, error) {
	seeds, err := seed.Default()
	if err != nil {
		return nil, fmt.Errorf("cardforge: load seed templates: %w", err)
	}
	return seeds.Templates(), nil
}
