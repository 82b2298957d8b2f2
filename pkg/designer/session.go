package designer

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-cardforge/pkg/layout"
	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/tailwind"
	"github.com/goliatone/go-cardforge/pkg/widgets"
)

// DefaultDebounce is the quiet period after the last GUI edit before the
// layout text is regenerated.
const DefaultDebounce = 300 * time.Millisecond

var (
	// ErrInvalidLayout is returned when the JSON view holds text that does
	// not parse as a layout document.
	ErrInvalidLayout = errors.New("designer: invalid layout JSON")
	ErrUnknownField  = model.ErrFieldNotFound
	ErrKeyInUse      = model.ErrFieldKeyInUse
)

// View is the active editing surface.
type View int

const (
	ViewGUI View = iota
	ViewJSON
)

func (v View) String() string {
	if v == ViewJSON {
		return "json"
	}
	return "gui"
}

// Timer is the handle of a scheduled serialize.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// TemplateStore persists designer output.
type TemplateStore interface {
	Create(ctx context.Context, tpl model.Template) (model.Template, error)
	Update(ctx context.Context, tpl model.Template) error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.debounce = d
		}
	}
}

// WithAfterFunc replaces the timer used for debouncing.
func WithAfterFunc(fn AfterFunc) Option {
	return func(s *Session) {
		if fn != nil {
			s.afterFunc = fn
		}
	}
}

// WithOnChange registers a callback invoked with the new layout text each
// time it actually changes.
func WithOnChange(fn func(layoutText string)) Option {
	return func(s *Session) {
		s.onChange = fn
	}
}

// WithCatalog replaces the utility-class catalog used for hydration.
func WithCatalog(catalog *tailwind.Catalog) Option {
	return func(s *Session) {
		if catalog != nil {
			s.hydrater.Catalog = catalog
		}
	}
}

// WithWidgets replaces the registry that picks element types for fields.
func WithWidgets(registry *widgets.Registry) Option {
	return func(s *Session) {
		if registry != nil {
			s.hydrater.Widgets = registry
		}
	}
}

// Session is the single owner of one template being designed. It is safe to
// call from multiple goroutines, although a single UI loop is expected; the
// debounce timer fires on its own goroutine.
type Session struct {
	mu sync.Mutex

	logger    zerolog.Logger
	debounce  time.Duration
	afterFunc AfterFunc
	onChange  func(string)
	hydrater  Hydrater

	id         string
	name       string
	fields     model.FieldList
	canvas     CanvasSettings
	configs    []ElementConfig
	layoutText string
	layoutErr  error
	view       View
	warnings   []Warning

	pending  Timer
	timerGen uint64
}

// NewSession opens tpl for editing. A template with an empty id is created
// on Save. Unparseable layout text opens in the JSON view with default GUI
// state; LayoutError reports the problem.
func NewSession(tpl model.Template, options ...Option) *Session {
	s := &Session{
		logger:    zerolog.Nop(),
		debounce:  DefaultDebounce,
		afterFunc: realAfterFunc,
		id:        tpl.ID,
		name:      tpl.Name,
		fields:    slices.Clone(model.FieldList(tpl.Fields)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	s.layoutText = tpl.LayoutDefinition
	doc, err := parseLayout(tpl.LayoutDefinition)
	if err != nil {
		s.logger.Warn().Err(err).Str("template", tpl.ID).Msg("layout does not parse, opening JSON view")
		s.layoutErr = err
		s.view = ViewJSON
		doc = layout.Default()
	}
	s.hydrateLocked(doc)
	return s
}

// parseLayout treats blank text as the default layout.
func parseLayout(text string) (layout.Document, error) {
	if strings.TrimSpace(text) == "" {
		return layout.Default(), nil
	}
	return layout.Parse(text)
}

func (s *Session) hydrateLocked(doc layout.Document) {
	configs, warnings := s.hydrater.Hydrate(doc, s.fields, s.configs)
	canvas, canvasWarnings := s.hydrater.HydrateCanvas(doc)
	s.configs = configs
	s.canvas = canvas
	s.warnings = append(canvasWarnings, warnings...)
	for _, w := range s.warnings {
		s.logger.Warn().Str("template", s.id).Str("kind", string(w.Kind)).Str("fieldKey", w.FieldKey).Strs("values", w.Values).Msg("layout content not representable in designer")
	}
}

// ID returns the template id, empty until a new template is saved.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Name returns the template name.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// SetName renames the template. The id never changes once assigned.
func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = strings.TrimSpace(name)
}

// Fields returns a copy of the template fields.
func (s *Session) Fields() []model.Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.fields)
}

// Configs returns a copy of the element configs in field order.
func (s *Session) Configs() []ElementConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.configs)
}

// Config returns the config of one field.
func (s *Session) Config(fieldKey string) (ElementConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.configIndex(fieldKey)
	if idx < 0 {
		return ElementConfig{}, false
	}
	return s.configs[idx], true
}

// Canvas returns the canvas settings.
func (s *Session) Canvas() CanvasSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas
}

// LayoutText returns the current layout text, which may be unparseable
// while the JSON view is active.
func (s *Session) LayoutText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layoutText
}

// LayoutError reports why the layout text failed to parse, or nil.
func (s *Session) LayoutError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layoutErr
}

// View returns the active editing surface.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Warnings returns the warnings of the last hydration.
func (s *Session) Warnings() []Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.warnings)
}

// Pending reports whether a debounced serialize is scheduled.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// AddField appends a field with a key derived from label and enables its
// element at the next cascade position.
func (s *Session) AddField(label string, typ model.FieldType) (model.Field, error) {
	if !typ.Valid() {
		return model.Field{}, fmt.Errorf("designer: unknown field type %q", typ)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	field := s.fields.AddField(label, typ)
	cfg := ElementConfig{
		FieldKey:     field.Key,
		Label:        field.Label,
		OriginalType: field.Type,
		ElementType:  s.widgets().ElementType(field),
		Enabled:      true,
		Expanded:     true,
	}
	cfg.Top, cfg.Left, cfg.Width, cfg.Height = DefaultPlacement(len(s.configs), cfg.ElementType)
	s.configs = append(s.configs, cfg)
	s.scheduleLocked()
	return field, nil
}

// RenameField changes a field label. Auto-derived keys follow the label and
// the element binding follows the key.
func (s *Session) RenameField(key, label string) (model.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.configIndex(key)
	field, err := s.fields.RenameField(key, label)
	if err != nil {
		return model.Field{}, err
	}
	s.syncConfigLocked(idx, field)
	s.scheduleLocked()
	return field, nil
}

// SetFieldKey assigns a manual key.
func (s *Session) SetFieldKey(key, newKey string) (model.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.configIndex(key)
	field, err := s.fields.SetFieldKey(key, newKey)
	if err != nil {
		return model.Field{}, err
	}
	s.syncConfigLocked(idx, field)
	s.scheduleLocked()
	return field, nil
}

// SetFieldType changes a field type and re-resolves the element type the
// field is presented with.
func (s *Session) SetFieldType(key string, typ model.FieldType) (model.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.configIndex(key)
	field, err := s.fields.SetFieldType(key, typ)
	if err != nil {
		return model.Field{}, err
	}
	s.syncConfigLocked(idx, field)
	if idx >= 0 {
		s.configs[idx].ElementType = s.widgets().ElementType(field)
	}
	s.scheduleLocked()
	return field, nil
}

// RemoveField drops a field and its element.
func (s *Session) RemoveField(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fields.RemoveField(key); err != nil {
		return err
	}
	if idx := s.configIndex(key); idx >= 0 {
		s.configs = slices.Delete(s.configs, idx, idx+1)
	}
	s.scheduleLocked()
	return nil
}

// UpdateConfig applies edit to the config of a field. Identity fields
// (key, label, field type) cannot be changed through it.
func (s *Session) UpdateConfig(fieldKey string, edit func(*ElementConfig)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.configIndex(fieldKey)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownField, fieldKey)
	}
	cfg := s.configs[idx]
	edit(&cfg)
	cfg.FieldKey = s.configs[idx].FieldKey
	cfg.Label = s.configs[idx].Label
	cfg.OriginalType = s.configs[idx].OriginalType
	s.configs[idx] = cfg
	s.scheduleLocked()
	return nil
}

// SetEnabled toggles whether a field has an element on the canvas.
func (s *Session) SetEnabled(fieldKey string, enabled bool) error {
	return s.UpdateConfig(fieldKey, func(cfg *ElementConfig) {
		cfg.Enabled = enabled
	})
}

// SetExpanded records panel state. It never touches the layout.
func (s *Session) SetExpanded(fieldKey string, expanded bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.configIndex(fieldKey)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownField, fieldKey)
	}
	s.configs[idx].Expanded = expanded
	return nil
}

// MoveConfig moves the element of a field to position to, changing its
// paint order.
func (s *Session) MoveConfig(fieldKey string, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.configIndex(fieldKey)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownField, fieldKey)
	}
	to = min(max(to, 0), len(s.configs)-1)
	cfg := s.configs[idx]
	s.configs = slices.Insert(slices.Delete(s.configs, idx, idx+1), to, cfg)
	s.scheduleLocked()
	return nil
}

// UpdateCanvas applies edit to the canvas settings.
func (s *Session) UpdateCanvas(edit func(*CanvasSettings)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	edit(&s.canvas)
	s.scheduleLocked()
}

// Flush runs a pending serialize immediately. It reports whether the layout
// text changed.
func (s *Session) Flush() (bool, error) {
	s.mu.Lock()
	changed, text, err := s.flushLocked()
	s.mu.Unlock()
	s.notify(changed, text)
	return changed, err
}

// SetView switches the editing surface. Entering the JSON view flushes
// pending GUI edits first. Leaving it hydrates the GUI from the JSON text;
// when the text does not parse the session stays in the JSON view, keeps the
// last good GUI state and returns ErrInvalidLayout.
func (s *Session) SetView(view View) error {
	s.mu.Lock()
	if view == s.view {
		s.mu.Unlock()
		return nil
	}

	if view == ViewJSON {
		changed, text, err := s.flushLocked()
		s.view = ViewJSON
		s.mu.Unlock()
		s.notify(changed, text)
		return err
	}
	defer s.mu.Unlock()

	doc, err := parseLayout(s.layoutText)
	if err != nil {
		s.layoutErr = err
		return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	s.layoutErr = nil
	s.hydrateLocked(doc)
	s.view = ViewGUI
	return nil
}

// EditJSON replaces the layout text with raw editor content. The GUI is not
// hydrated until the view switches back; calling it from the GUI view
// flushes pending GUI edits and switches to the JSON view.
func (s *Session) EditJSON(text string) {
	s.mu.Lock()
	var (
		flushed        string
		flushedChanged bool
	)
	if s.view != ViewJSON {
		flushedChanged, flushed, _ = s.flushLocked()
		s.view = ViewJSON
	}
	changed := text != s.layoutText
	s.layoutText = text
	if _, err := parseLayout(text); err != nil {
		s.layoutErr = err
	} else {
		s.layoutErr = nil
	}
	s.mu.Unlock()
	s.notify(flushedChanged, flushed)
	s.notify(changed, text)
}

// Regenerate discards the JSON text and rebuilds it from the GUI state.
func (s *Session) Regenerate() (string, error) {
	s.mu.Lock()
	s.stopLocked()
	text, err := Serialize(s.canvas, s.configs)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	changed := text != s.layoutText
	s.layoutText = text
	s.layoutErr = nil
	s.mu.Unlock()
	s.notify(changed, text)
	return text, nil
}

// Template returns the template being designed after flushing pending GUI
// edits. Duplicate keys and unparseable layout text are rejected.
func (s *Session) Template() (model.Template, error) {
	s.mu.Lock()
	changed, text, err := s.flushLocked()
	tpl := model.Template{
		ID:               s.id,
		Name:             s.name,
		Fields:           slices.Clone(s.fields),
		LayoutDefinition: s.layoutText,
	}
	s.mu.Unlock()
	s.notify(changed, text)
	if err != nil {
		return model.Template{}, err
	}

	if dups := model.DuplicateKeys(tpl.Fields); len(dups) > 0 {
		errs := make([]error, len(dups))
		for i, dup := range dups {
			errs[i] = dup
		}
		return model.Template{}, errors.Join(errs...)
	}
	if strings.TrimSpace(tpl.LayoutDefinition) != "" {
		if _, err := layout.Parse(tpl.LayoutDefinition); err != nil {
			return model.Template{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
		}
	}
	return tpl, nil
}

// Save validates the template and writes it through store. New templates are
// created (which assigns their id) and existing ones updated.
func (s *Session) Save(ctx context.Context, store TemplateStore) (model.Template, error) {
	tpl, err := s.Template()
	if err != nil {
		return model.Template{}, err
	}
	if tpl.ID == "" {
		created, err := store.Create(ctx, tpl)
		if err != nil {
			return model.Template{}, err
		}
		s.mu.Lock()
		s.id = created.ID
		s.mu.Unlock()
		s.logger.Info().Str("template", created.ID).Msg("template created")
		return created, nil
	}
	if err := store.Update(ctx, tpl); err != nil {
		return model.Template{}, err
	}
	s.logger.Info().Str("template", tpl.ID).Msg("template updated")
	return tpl, nil
}

func (s *Session) widgets() *widgets.Registry {
	if s.hydrater.Widgets != nil {
		return s.hydrater.Widgets
	}
	return widgets.Default()
}

func (s *Session) configIndex(fieldKey string) int {
	for i, cfg := range s.configs {
		if cfg.FieldKey == fieldKey {
			return i
		}
	}
	return -1
}

func (s *Session) syncConfigLocked(idx int, field model.Field) {
	if idx < 0 {
		return
	}
	s.configs[idx].FieldKey = field.Key
	s.configs[idx].Label = field.Label
	s.configs[idx].OriginalType = field.Type
}

// scheduleLocked restarts the debounce timer. While the JSON view is active
// the text belongs to the user; GUI edits wait for Regenerate or the next
// edit made from the GUI view.
func (s *Session) scheduleLocked() {
	if s.view == ViewJSON {
		return
	}
	s.stopLocked()
	gen := s.timerGen
	s.pending = s.afterFunc(s.debounce, func() { s.fire(gen) })
}

func (s *Session) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.timerGen || s.pending == nil {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	id := s.id
	changed, text, err := s.serializeLocked()
	s.mu.Unlock()
	if err != nil {
		s.logger.Error().Err(err).Str("template", id).Msg("serialize layout")
		return
	}
	s.notify(changed, text)
}

func (s *Session) stopLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.timerGen++
}

func (s *Session) flushLocked() (bool, string, error) {
	if s.pending == nil {
		return false, s.layoutText, nil
	}
	s.stopLocked()
	return s.serializeLocked()
}

// serializeLocked writes the serialized GUI state only when it differs from
// the current text.
func (s *Session) serializeLocked() (bool, string, error) {
	text, err := Serialize(s.canvas, s.configs)
	if err != nil {
		return false, s.layoutText, err
	}
	if text == s.layoutText {
		return false, text, nil
	}
	s.layoutText = text
	s.layoutErr = nil
	return true, text, nil
}

func (s *Session) notify(changed bool, text string) {
	if changed && s.onChange != nil {
		s.onChange(text)
	}
}
