package designer_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-cardforge/pkg/designer"
	"github.com/goliatone/go-cardforge/pkg/model"
)

type blockingGenerator struct {
	release chan struct{}
	name    string
	err     error
}

func (g *blockingGenerator) GenerateName(ctx context.Context, _ string) (string, error) {
	if g.release != nil {
		select {
		case <-g.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return g.name, g.err
}

func cardTemplate() model.Template {
	return model.Template{
		ID: "generic",
		Fields: []model.Field{
			{Key: "name", Label: "Name", Type: model.FieldTypeText},
			{Key: "cost", Label: "Cost", Type: model.FieldTypeNumber},
		},
	}
}

func TestCardEditor_AppliesSuggestion(t *testing.T) {
	var changed []model.CardData
	editor := designer.NewCardEditor(&blockingGenerator{name: "  Ember Drake "},
		designer.WithCardChange(func(card model.CardData) { changed = append(changed, card) }),
	)
	editor.Open(cardTemplate(), model.NewCard("c1", "generic"))

	if err := editor.SuggestName(context.Background(), "name", "a small dragon made of embers"); err != nil {
		t.Fatalf("suggest: %v", err)
	}
	editor.Wait()

	if got := editor.Card().Get("name").Display(); got != "Ember Drake" {
		t.Fatalf("name = %q", got)
	}
	if editor.Loading() {
		t.Fatalf("loading flag must clear")
	}
	if len(changed) != 1 {
		t.Fatalf("expected one change callback, got %d", len(changed))
	}
}

func TestCardEditor_DropsStaleSuggestion(t *testing.T) {
	gen := &blockingGenerator{release: make(chan struct{}), name: "Late Name"}
	editor := designer.NewCardEditor(gen)
	editor.Open(cardTemplate(), model.NewCard("c1", "generic"))

	if err := editor.SuggestName(context.Background(), "name", "first card"); err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if !editor.Loading() {
		t.Fatalf("expected loading while the generator runs")
	}

	second := model.NewCard("c2", "generic")
	second.Set("name", model.String("Kept"))
	editor.Open(cardTemplate(), second)
	close(gen.release)
	editor.Wait()

	card := editor.Card()
	if card.ID != "c2" || card.Get("name").Display() != "Kept" {
		t.Fatalf("stale suggestion leaked into the new card: %+v", card)
	}
}

func TestCardEditor_FailureIsReportedNotApplied(t *testing.T) {
	failure := errors.New("description too short")
	var (
		mu       sync.Mutex
		notified []error
	)
	editor := designer.NewCardEditor(&blockingGenerator{err: failure},
		designer.WithNotify(func(err error) {
			mu.Lock()
			defer mu.Unlock()
			notified = append(notified, err)
		}),
	)
	card := model.NewCard("c1", "generic")
	card.Set("cost", model.Number(3))
	editor.Open(cardTemplate(), card)

	if err := editor.SuggestName(context.Background(), "name", "x"); err != nil {
		t.Fatalf("suggest: %v", err)
	}
	editor.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(notified) != 1 || !errors.Is(notified[0], failure) {
		t.Fatalf("expected failure notification, got %v", notified)
	}
	got := editor.Card()
	if got.Has("name") || got.Get("cost").Display() != "3" {
		t.Fatalf("failed suggestion changed the card: %+v", got)
	}
	if editor.Loading() {
		t.Fatalf("loading flag must clear after failure")
	}
}

func TestCardEditor_RejectsUnknownField(t *testing.T) {
	editor := designer.NewCardEditor(&blockingGenerator{})
	editor.Open(cardTemplate(), model.NewCard("c1", "generic"))

	if err := editor.SuggestName(context.Background(), "missing", "desc"); !errors.Is(err, designer.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := editor.SetValue("missing", model.String("x")); !errors.Is(err, designer.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := editor.SetValue("cost", model.Number(4)); err != nil {
		t.Fatalf("set value: %v", err)
	}
}

func TestCardEditor_KeepsManualEditOverLateSuggestion(t *testing.T) {
	gen := &blockingGenerator{release: make(chan struct{}), name: "Suggested"}
	editor := designer.NewCardEditor(gen)
	editor.Open(cardTemplate(), model.NewCard("c1", "generic"))

	if err := editor.SuggestName(context.Background(), "name", "a frost giant"); err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if err := editor.SetValue("cost", model.Number(5)); err != nil {
		t.Fatalf("set cost: %v", err)
	}
	if err := editor.SetValue("name", model.String("Typed By User")); err != nil {
		t.Fatalf("set name: %v", err)
	}
	close(gen.release)
	editor.Wait()

	card := editor.Card()
	if got := card.Get("name").Display(); got != "Typed By User" {
		t.Fatalf("late suggestion replaced the edited value: %q", got)
	}
	if card.Get("cost").Display() != "5" {
		t.Fatalf("cost = %q", card.Get("cost").Display())
	}
	if editor.Loading() {
		t.Fatalf("loading flag must clear")
	}
}

func TestCardEditor_EditOnOtherFieldKeepsSuggestion(t *testing.T) {
	gen := &blockingGenerator{release: make(chan struct{}), name: "Suggested"}
	editor := designer.NewCardEditor(gen)
	editor.Open(cardTemplate(), model.NewCard("c1", "generic"))

	if err := editor.SuggestName(context.Background(), "name", "a frost giant"); err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if err := editor.SetValue("cost", model.Number(5)); err != nil {
		t.Fatalf("set cost: %v", err)
	}
	close(gen.release)
	editor.Wait()

	if got := editor.Card().Get("name").Display(); got != "Suggested" {
		t.Fatalf("name = %q", got)
	}
}
