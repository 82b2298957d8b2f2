package designer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-cardforge/pkg/model"
)

// NameGenerator suggests a card name from a free-text description.
type NameGenerator interface {
	GenerateName(ctx context.Context, description string) (string, error)
}

// EditorOption configures a CardEditor.
type EditorOption func(*CardEditor)

// WithEditorLogger sets the editor logger.
func WithEditorLogger(logger zerolog.Logger) EditorOption {
	return func(e *CardEditor) {
		e.logger = logger
	}
}

// WithNotify registers the callback that surfaces name suggestion failures.
func WithNotify(fn func(err error)) EditorOption {
	return func(e *CardEditor) {
		e.notify = fn
	}
}

// WithCardChange registers a callback invoked after each applied change.
func WithCardChange(fn func(card model.CardData)) EditorOption {
	return func(e *CardEditor) {
		e.onChange = fn
	}
}

// CardEditor owns the card being edited and applies asynchronous name
// suggestions only while the same card stays open.
type CardEditor struct {
	mu sync.Mutex
	wg sync.WaitGroup

	logger    zerolog.Logger
	generator NameGenerator
	notify    func(error)
	onChange  func(model.CardData)

	tpl        model.Template
	card       model.CardData
	generation uint64
	edits      map[string]uint64
	loading    bool
}

// NewCardEditor constructs an editor. generator may be nil, in which case
// SuggestName fails.
func NewCardEditor(generator NameGenerator, options ...EditorOption) *CardEditor {
	e := &CardEditor{
		logger:    zerolog.Nop(),
		generator: generator,
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Open switches the editor to card. Suggestions still running for the
// previous card are discarded when they complete.
func (e *CardEditor) Open(tpl model.Template, card model.CardData) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	e.tpl = tpl
	e.card = card.Clone()
	e.edits = nil
	e.loading = false
}

// Card returns a copy of the open card.
func (e *CardEditor) Card() model.CardData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.card.Clone()
}

// Loading reports whether a name suggestion is in flight for the open card.
func (e *CardEditor) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// SetValue edits one field of the open card.
func (e *CardEditor) SetValue(fieldKey string, value model.Value) error {
	e.mu.Lock()
	if _, ok := e.tpl.Field(fieldKey); !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownField, fieldKey)
	}
	e.card.Set(fieldKey, value)
	if e.edits == nil {
		e.edits = make(map[string]uint64)
	}
	e.edits[fieldKey]++
	card := e.card.Clone()
	e.mu.Unlock()

	if e.onChange != nil {
		e.onChange(card)
	}
	return nil
}

// SuggestName asks the generator for a name in the background and writes it
// into fieldKey. The result is dropped if another card was opened or the
// field was edited meanwhile; failures go to the notify callback and leave
// the card untouched.
func (e *CardEditor) SuggestName(ctx context.Context, fieldKey, description string) error {
	if e.generator == nil {
		return fmt.Errorf("designer: name generator not configured")
	}

	e.mu.Lock()
	if _, ok := e.tpl.Field(fieldKey); !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownField, fieldKey)
	}
	gen, edit := e.generation, e.edits[fieldKey]
	e.loading = true
	e.mu.Unlock()

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		name, err := e.generator.GenerateName(ctx, description)
		e.complete(gen, edit, fieldKey, strings.TrimSpace(name), err)
	}()
	return nil
}

func (e *CardEditor) complete(gen, edit uint64, fieldKey, name string, err error) {
	e.mu.Lock()
	if gen != e.generation {
		e.mu.Unlock()
		e.logger.Debug().Str("fieldKey", fieldKey).Msg("discarding name suggestion for a card that is no longer open")
		return
	}
	e.loading = false
	if edit != e.edits[fieldKey] {
		e.mu.Unlock()
		e.logger.Debug().Str("fieldKey", fieldKey).Msg("discarding name suggestion for a field edited meanwhile")
		return
	}
	if err != nil {
		e.mu.Unlock()
		e.logger.Warn().Err(err).Str("fieldKey", fieldKey).Msg("name suggestion failed")
		if e.notify != nil {
			e.notify(err)
		}
		return
	}
	e.card.Set(fieldKey, model.String(name))
	card := e.card.Clone()
	e.mu.Unlock()

	if e.onChange != nil {
		e.onChange(card)
	}
}

// Wait blocks until every started suggestion has completed.
func (e *CardEditor) Wait() {
	e.wg.Wait()
}
