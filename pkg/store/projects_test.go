package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/store"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestProjectStore_CreateAndAddCard(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	projects := store.NewProjectStore(store.NewMemoryKV(),
		store.WithIDGenerator(sequentialIDs()),
		store.WithClock(func() time.Time { return now }),
	)

	project, err := projects.Create(ctx, "Deck", []string{"spells", "spells", " "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.ID != "id-1" || len(project.AssociatedTemplateIDs) != 1 || !project.CreatedAt.Equal(now) {
		t.Fatalf("unexpected project: %+v", project)
	}

	card := model.NewCard("", "spells")
	card.Set("name", model.String("Fireball"))
	added, err := projects.AddCard(ctx, project.ID, card)
	if err != nil {
		t.Fatalf("add card: %v", err)
	}
	if added.ID != "id-2" {
		t.Fatalf("card id = %q", added.ID)
	}

	added.Set("name", model.String("Greater Fireball"))
	if err := projects.UpdateCard(ctx, project.ID, added); err != nil {
		t.Fatalf("update card: %v", err)
	}

	reloaded, err := projects.Get(ctx, project.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(reloaded.Cards) != 1 || reloaded.Cards[0].DisplayName() != "Greater Fireball" {
		t.Fatalf("cards not persisted: %+v", reloaded.Cards)
	}

	if err := projects.RemoveCard(ctx, project.ID, added.ID); err != nil {
		t.Fatalf("remove card: %v", err)
	}
	if err := projects.RemoveCard(ctx, project.ID, added.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectStore_LoadDefaultsMissingTemplateID(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()
	raw := `[{"id":"p1","name":"Deck","associatedTemplateIds":[],"cards":[
		{"id":"c1","name":"Orphan"},
		{"id":"c2","templateId":"spells","name":"Bound"}
	]}]`
	if err := kv.Save(ctx, store.ProjectsKey, []byte(raw)); err != nil {
		t.Fatalf("seed kv: %v", err)
	}

	all, err := store.NewProjectStore(kv).LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cards := all[0].Cards
	if cards[0].TemplateID != model.UnassignedTemplateID {
		t.Fatalf("missing template id not defaulted: %q", cards[0].TemplateID)
	}
	if cards[1].TemplateID != "spells" {
		t.Fatalf("existing template id changed: %q", cards[1].TemplateID)
	}
}

func TestProjectStore_Delete(t *testing.T) {
	ctx := context.Background()
	projects := store.NewProjectStore(store.NewMemoryKV(), store.WithIDGenerator(sequentialIDs()))
	project, err := projects.Create(ctx, "Deck", nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := projects.Delete(ctx, project.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := projects.Get(ctx, project.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := projects.Create(ctx, "  ", nil); err == nil {
		t.Fatalf("expected error for blank name")
	}
}
