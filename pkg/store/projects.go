package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-cardforge/pkg/model"
)

// ProjectOption customises a ProjectStore.
type ProjectOption func(*ProjectStore)

// WithProjectKey overrides the KV key holding the project collection.
func WithProjectKey(key string) ProjectOption {
	return func(s *ProjectStore) {
		if strings.TrimSpace(key) != "" {
			s.key = key
		}
	}
}

// WithClock injects the time source used for CreatedAt / UpdatedAt.
func WithClock(now func() time.Time) ProjectOption {
	return func(s *ProjectStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator injects the generator used for project and card ids.
func WithIDGenerator(newID func() string) ProjectOption {
	return func(s *ProjectStore) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// ProjectStore is the project collection persisted as one JSON array, cards
// embedded.
type ProjectStore struct {
	kv    KV
	key   string
	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

// NewProjectStore returns a store over kv.
func NewProjectStore(kv KV, options ...ProjectOption) *ProjectStore {
	s := &ProjectStore{
		kv:    kv,
		key:   ProjectsKey,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// LoadAll returns every project. Cards stored without a template id are
// assigned model.UnassignedTemplateID.
func (s *ProjectStore) LoadAll(ctx context.Context) ([]model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// SaveAll replaces the stored collection.
func (s *ProjectStore) SaveAll(ctx context.Context, projects []model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, projects)
}

// Get returns the project with id.
func (s *ProjectStore) Get(ctx context.Context, id string) (model.Project, error) {
	projects, err := s.LoadAll(ctx)
	if err != nil {
		return model.Project{}, err
	}
	index := indexOfProject(projects, id)
	if index < 0 {
		return model.Project{}, fmt.Errorf("project %q: %w", id, ErrNotFound)
	}
	return projects[index], nil
}

// Create appends a new empty project associated with templateIDs.
func (s *ProjectStore) Create(ctx context.Context, name string, templateIDs []string) (model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Project{}, errors.New("store: project name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.loadLocked(ctx)
	if err != nil {
		return model.Project{}, err
	}
	now := s.now()
	project := model.Project{
		ID:                    s.newID(),
		Name:                  name,
		AssociatedTemplateIDs: dedupeIDs(templateIDs),
		Cards:                 []model.CardData{},
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := s.saveLocked(ctx, append(projects, project)); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

// AddCard appends card to the project, assigning an id when blank.
func (s *ProjectStore) AddCard(ctx context.Context, projectID string, card model.CardData) (model.CardData, error) {
	var added model.CardData
	err := s.mutate(ctx, projectID, func(project *model.Project) error {
		added = card.Clone()
		if strings.TrimSpace(added.ID) == "" {
			added.ID = s.newID()
		}
		if strings.TrimSpace(added.TemplateID) == "" {
			added.TemplateID = model.UnassignedTemplateID
		}
		for _, existing := range project.Cards {
			if existing.ID == added.ID {
				return fmt.Errorf("store: card %q already exists in project %q", added.ID, projectID)
			}
		}
		project.Cards = append(project.Cards, added)
		return nil
	})
	if err != nil {
		return model.CardData{}, err
	}
	return added, nil
}

// UpdateCard replaces the card sharing card.ID.
func (s *ProjectStore) UpdateCard(ctx context.Context, projectID string, card model.CardData) error {
	return s.mutate(ctx, projectID, func(project *model.Project) error {
		for i := range project.Cards {
			if project.Cards[i].ID == card.ID {
				project.Cards[i] = card.Clone()
				return nil
			}
		}
		return fmt.Errorf("card %q: %w", card.ID, ErrNotFound)
	})
}

// RemoveCard deletes the card with cardID.
func (s *ProjectStore) RemoveCard(ctx context.Context, projectID, cardID string) error {
	return s.mutate(ctx, projectID, func(project *model.Project) error {
		for i := range project.Cards {
			if project.Cards[i].ID == cardID {
				project.Cards = append(project.Cards[:i], project.Cards[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("card %q: %w", cardID, ErrNotFound)
	})
}

// Delete removes the project with id.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	index := indexOfProject(projects, id)
	if index < 0 {
		return fmt.Errorf("project %q: %w", id, ErrNotFound)
	}
	return s.saveLocked(ctx, append(projects[:index], projects[index+1:]...))
}

func (s *ProjectStore) mutate(ctx context.Context, projectID string, fn func(*model.Project) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	index := indexOfProject(projects, projectID)
	if index < 0 {
		return fmt.Errorf("project %q: %w", projectID, ErrNotFound)
	}
	if err := fn(&projects[index]); err != nil {
		return err
	}
	projects[index].UpdatedAt = s.now()
	return s.saveLocked(ctx, projects)
}

func (s *ProjectStore) loadLocked(ctx context.Context) ([]model.Project, error) {
	if s.kv == nil {
		return nil, errors.New("store: kv is nil")
	}
	data, err := s.kv.Load(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []model.Project{}, nil
	}
	var projects []model.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("store: decode projects: %w", err)
	}
	for i := range projects {
		for j := range projects[i].Cards {
			if strings.TrimSpace(projects[i].Cards[j].TemplateID) == "" {
				projects[i].Cards[j].TemplateID = model.UnassignedTemplateID
			}
		}
	}
	return projects, nil
}

func (s *ProjectStore) saveLocked(ctx context.Context, projects []model.Project) error {
	if s.kv == nil {
		return errors.New("store: kv is nil")
	}
	seen := make(map[string]struct{}, len(projects))
	for _, project := range projects {
		if strings.TrimSpace(project.ID) == "" {
			return errors.New("store: project id is required")
		}
		if _, dup := seen[project.ID]; dup {
			return fmt.Errorf("store: duplicate project id %q", project.ID)
		}
		seen[project.ID] = struct{}{}
	}
	if projects == nil {
		projects = []model.Project{}
	}
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("store: encode projects: %w", err)
	}
	return s.kv.Save(ctx, s.key, data)
}

func indexOfProject(projects []model.Project, id string) int {
	for i, project := range projects {
		if project.ID == id {
			return i
		}
	}
	return -1
}

func dedupeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
