package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-cardforge/pkg/layout"
	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/orchestrator"
	"github.com/goliatone/go-cardforge/pkg/placeholder"
	"github.com/goliatone/go-cardforge/pkg/render"
	"github.com/goliatone/go-cardforge/pkg/store"
	"github.com/goliatone/go-cardforge/pkg/validation"
)

// errBadRequest marks client input errors that map to 400.
var errBadRequest = errors.New("bad request")

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.LoadAll(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if templates == nil {
		templates = []model.Template{}
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := s.templates.Get(r.Context(), chi.URLParam(r, "templateID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request) {
	var tpl model.Template
	if err := s.readJSON(w, r, &tpl); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validateLayout(tpl); err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.templates.Create(r.Context(), tpl)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/templates/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "templateID")
	var tpl model.Template
	if err := s.readJSON(w, r, &tpl); err != nil {
		s.writeError(w, r, err)
		return
	}
	switch tpl.ID {
	case "":
		tpl.ID = id
	case id:
	default:
		s.writeError(w, r, fmt.Errorf("%w: template id %q does not match path %q", errBadRequest, tpl.ID, id))
		return
	}
	if err := model.ValidateTemplate(tpl); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := validateLayout(tpl); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.templates.Update(r.Context(), tpl); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (s *Server) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.Delete(r.Context(), chi.URLParam(r, "templateID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) previewCard(w http.ResponseWriter, r *http.Request) {
	tpl, card, ok := s.templateAndCard(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	out, err := s.orchestrator.Render(r.Context(), orchestrator.Request{
		Template:     &tpl,
		Record:       card,
		Renderer:     query.Get("renderer"),
		ThemeName:    query.Get("theme"),
		ThemeVariant: query.Get("variant"),
	})
	if err != nil {
		if errors.Is(err, render.ErrRendererNotFound) {
			err = fmt.Errorf("%w: %v", errBadRequest, err)
		}
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", out.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Body)
}

func (s *Server) validateCard(w http.ResponseWriter, r *http.Request) {
	tpl, card, ok := s.templateAndCard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, validation.ValidateCard(tpl, card))
}

func (s *Server) placeholderImage(w http.ResponseWriter, r *http.Request) {
	width, height, err := placeholder.ParseSize(chi.URLParam(r, "size"))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	params := placeholder.Params{
		Width:      width,
		Height:     height,
		Background: chi.URLParam(r, "bg"),
		Foreground: chi.URLParam(r, "fg"),
		Text:       r.URL.Query().Get("text"),
	}
	for _, value := range []string{params.Background, params.Foreground} {
		if _, err := placeholder.ParseColor(value); err != nil {
			s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
	}

	data, err := placeholder.PNG(params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// templateAndCard loads the path template and decodes an optional card body.
func (s *Server) templateAndCard(w http.ResponseWriter, r *http.Request) (model.Template, model.CardData, bool) {
	tpl, err := s.templates.Get(r.Context(), chi.URLParam(r, "templateID"))
	if err != nil {
		s.writeError(w, r, err)
		return model.Template{}, model.CardData{}, false
	}
	var card model.CardData
	if err := s.readJSON(w, r, &card); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, r, err)
		return model.Template{}, model.CardData{}, false
	}
	if card.TemplateID == "" {
		card.TemplateID = tpl.ID
	}
	return tpl, card, true
}

func validateLayout(tpl model.Template) error {
	if strings.TrimSpace(tpl.LayoutDefinition) == "" {
		return nil
	}
	if _, err := layout.Parse(tpl.LayoutDefinition); err != nil {
		return &invalidLayoutError{template: tpl.ID, err: err}
	}
	return nil
}

type invalidLayoutError struct {
	template string
	err      error
}

func (e *invalidLayoutError) Error() string {
	return fmt.Sprintf("template %q: invalid layout: %v", e.template, e.err)
}

func (e *invalidLayoutError) Unwrap() error { return e.err }

// readJSON decodes the request body into dst. An empty body yields io.EOF.
func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", errBadRequest, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return io.EOF
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	message := err.Error()
	if errors.Is(err, io.EOF) {
		message = "request body is required"
	}
	writeJSON(w, status, map[string]string{"error": message})
}

func statusFor(err error) int {
	var (
		dupKey    *model.DuplicateFieldKeyError
		dupID     *model.DuplicateTemplateIDError
		badID     *model.InvalidTemplateIDError
		badOption *model.InvalidOptionError
		badLayout *invalidLayoutError
	)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &dupKey), errors.As(err, &dupID), errors.As(err, &badID),
		errors.As(err, &badOption), errors.As(err, &badLayout),
		errors.Is(err, model.ErrTemplateIDRequired), errors.Is(err, model.ErrFieldKeyRequired),
		errors.Is(err, model.ErrUnknownFieldType):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest), errors.Is(err, io.EOF):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
