package seed

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardforge/pkg/layout"
	"github.com/goliatone/go-cardforge/pkg/model"
)

// Store keeps the parsed seed templates in load order. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	templates []model.Template
	byID      map[string]int
}

// LoadFS walks the provided filesystem and parses JSON/YAML seed files in
// lexical path order. When fsys is nil or no seed files are present, the
// returned store is empty.
func LoadFS(fsys fs.FS, options ...model.BuilderOption) (*Store, error) {
	store := &Store{byID: make(map[string]int)}
	if fsys == nil {
		return store, nil
	}
	builder := model.NewBuilder(options...)

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isSeedFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("seed: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for idx, raw := range doc.Templates {
			tpl, err := store.build(builder, raw, path, idx)
			if err != nil {
				return err
			}
			if _, exists := store.byID[tpl.ID]; exists {
				return fmt.Errorf("seed: duplicate template id %q (file %s)", tpl.ID, path)
			}
			store.byID[tpl.ID] = len(store.templates)
			store.templates = append(store.templates, tpl)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Templates returns a copy of the loaded templates in load order.
func (s *Store) Templates() []model.Template {
	if s == nil {
		return nil
	}
	return append([]model.Template(nil), s.templates...)
}

// Template returns the seed template with id.
func (s *Store) Template(id string) (model.Template, bool) {
	if s == nil {
		return model.Template{}, false
	}
	idx, ok := s.byID[id]
	if !ok {
		return model.Template{}, false
	}
	return s.templates[idx], true
}

// Empty reports whether the store holds any templates.
func (s *Store) Empty() bool {
	return s == nil || len(s.templates) == 0
}

type documentFile struct {
	Templates []templateFile `json:"templates" yaml:"templates"`
}

type templateFile struct {
	model.TemplateDefinition `yaml:",inline"`
	Layout                   any `json:"layout" yaml:"layout"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("seed: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("seed: parse %s: invalid JSON or YAML", source)
}

func (s *Store) build(builder model.Builder, raw templateFile, source string, idx int) (model.Template, error) {
	def := raw.TemplateDefinition
	text, err := layoutText(raw.Layout)
	if err != nil {
		return model.Template{}, fmt.Errorf("seed: file %s template %d: %w", source, idx, err)
	}
	def.Layout = text

	taken := make(map[string]struct{}, len(s.byID))
	for id := range s.byID {
		taken[id] = struct{}{}
	}
	tpl, err := builder.Build(def, taken)
	if err != nil {
		return model.Template{}, fmt.Errorf("seed: file %s template %d: %w", source, idx, err)
	}
	return tpl, nil
}

// layoutText normalises the layout of a seed template into its serialized
// form. Strings are kept verbatim once they parse; objects are re-encoded
// through the layout package so the stored text is canonical.
func layoutText(raw any) (string, error) {
	switch value := raw.(type) {
	case nil:
		return "", nil
	case string:
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		if _, err := layout.Parse(value); err != nil {
			return "", err
		}
		return value, nil
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("layout: encode: %w", err)
		}
		doc, err := layout.Parse(string(encoded))
		if err != nil {
			return "", err
		}
		return layout.Marshal(doc)
	}
}

func isSeedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
