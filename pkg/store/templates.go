package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-cardforge/pkg/model"
)

// TemplateOption customises a TemplateStore.
type TemplateOption func(*TemplateStore)

// WithTemplateKey overrides the KV key holding the template collection.
func WithTemplateKey(key string) TemplateOption {
	return func(s *TemplateStore) {
		if strings.TrimSpace(key) != "" {
			s.key = key
		}
	}
}

// WithSeedTemplates supplies the collection returned while nothing has been
// saved yet.
func WithSeedTemplates(templates ...model.Template) TemplateOption {
	return func(s *TemplateStore) {
		s.seed = append(s.seed, templates...)
	}
}

// WithTemplateLogger sets the logger used for write events.
func WithTemplateLogger(logger zerolog.Logger) TemplateOption {
	return func(s *TemplateStore) {
		s.logger = logger
	}
}

// TemplateStore is the template collection persisted as one JSON array.
// Every write validates the whole collection first so nothing invalid is
// ever persisted.
type TemplateStore struct {
	kv     KV
	key    string
	seed   []model.Template
	logger zerolog.Logger

	mu sync.Mutex
}

// NewTemplateStore returns a store over kv.
func NewTemplateStore(kv KV, options ...TemplateOption) *TemplateStore {
	s := &TemplateStore{
		kv:     kv,
		key:    TemplatesKey,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// LoadAll returns the stored collection in save order.
func (s *TemplateStore) LoadAll(ctx context.Context) ([]model.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// SaveAll replaces the stored collection after validating every template and
// rejecting duplicate ids.
func (s *TemplateStore) SaveAll(ctx context.Context, templates []model.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, templates)
}

// Get returns the template with id.
func (s *TemplateStore) Get(ctx context.Context, id string) (model.Template, error) {
	templates, err := s.LoadAll(ctx)
	if err != nil {
		return model.Template{}, err
	}
	for _, tpl := range templates {
		if tpl.ID == id {
			return tpl, nil
		}
	}
	return model.Template{}, fmt.Errorf("template %q: %w", id, ErrNotFound)
}

// Create derives an id from the name when tpl.ID is blank, validates the id
// and field keys against the existing collection and appends the template.
func (s *TemplateStore) Create(ctx context.Context, tpl model.Template) (model.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.loadLocked(ctx)
	if err != nil {
		return model.Template{}, err
	}
	if strings.TrimSpace(tpl.ID) == "" {
		taken := make(map[string]struct{}, len(existing))
		for _, other := range existing {
			taken[other.ID] = struct{}{}
		}
		tpl.ID = model.DeriveTemplateID(tpl.Name, taken)
	}
	if err := model.ValidateNewTemplate(tpl, existing); err != nil {
		return model.Template{}, err
	}
	if err := s.saveLocked(ctx, append(existing, tpl)); err != nil {
		return model.Template{}, err
	}
	s.logger.Info().Str("template", tpl.ID).Msg("template created")
	return tpl, nil
}

// Update replaces the template sharing tpl.ID. Ids are immutable, so an
// unknown id is ErrNotFound rather than an implicit create.
func (s *TemplateStore) Update(ctx context.Context, tpl model.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	index := indexOfTemplate(existing, tpl.ID)
	if index < 0 {
		return fmt.Errorf("template %q: %w", tpl.ID, ErrNotFound)
	}
	next := append([]model.Template(nil), existing...)
	next[index] = tpl
	if err := s.saveLocked(ctx, next); err != nil {
		return err
	}
	s.logger.Info().Str("template", tpl.ID).Msg("template updated")
	return nil
}

// Delete removes the template with id.
func (s *TemplateStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	index := indexOfTemplate(existing, id)
	if index < 0 {
		return fmt.Errorf("template %q: %w", id, ErrNotFound)
	}
	next := append(append([]model.Template(nil), existing[:index]...), existing[index+1:]...)
	if err := s.saveLocked(ctx, next); err != nil {
		return err
	}
	s.logger.Info().Str("template", id).Msg("template deleted")
	return nil
}

func (s *TemplateStore) loadLocked(ctx context.Context) ([]model.Template, error) {
	if s.kv == nil {
		return nil, errors.New("store: kv is nil")
	}
	data, err := s.kv.Load(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return append([]model.Template(nil), s.seed...), nil
	}
	var templates []model.Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("store: decode templates: %w", err)
	}
	return templates, nil
}

func (s *TemplateStore) saveLocked(ctx context.Context, templates []model.Template) error {
	if s.kv == nil {
		return errors.New("store: kv is nil")
	}
	seen := make(map[string]struct{}, len(templates))
	for _, tpl := range templates {
		if err := model.ValidateTemplate(tpl); err != nil {
			return fmt.Errorf("template %q: %w", tpl.ID, err)
		}
		if _, dup := seen[tpl.ID]; dup {
			return &model.DuplicateTemplateIDError{ID: tpl.ID}
		}
		seen[tpl.ID] = struct{}{}
	}
	if templates == nil {
		templates = []model.Template{}
	}
	data, err := json.Marshal(templates)
	if err != nil {
		return fmt.Errorf("store: encode templates: %w", err)
	}
	return s.kv.Save(ctx, s.key, data)
}

func indexOfTemplate(templates []model.Template, id string) int {
	for i, tpl := range templates {
		if tpl.ID == id {
			return i
		}
	}
	return -1
}
