package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-cardforge/pkg/model"
	"github.com/goliatone/go-cardforge/pkg/orchestrator"
)

// TemplateRepository is the persistence the API serves. store.TemplateStore
// satisfies it.
type TemplateRepository interface {
	LoadAll(ctx context.Context) ([]model.Template, error)
	Get(ctx context.Context, id string) (model.Template, error)
	Create(ctx context.Context, tpl model.Template) (model.Template, error)
	Update(ctx context.Context, tpl model.Template) error
	Delete(ctx context.Context, id string) error
}

// Option customises the Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithOrchestrator replaces the default orchestrator used for previews.
func WithOrchestrator(orch *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		if orch != nil {
			s.orchestrator = orch
		}
	}
}

// WithMaxBodyBytes caps request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// Server holds the handlers of the API.
type Server struct {
	templates    TemplateRepository
	orchestrator *orchestrator.Orchestrator
	logger       zerolog.Logger
	maxBody      int64
	timeout      time.Duration
}

// New builds a Server over templates. Without WithOrchestrator a default
// orchestrator is created with the same logger.
func New(templates TemplateRepository, options ...Option) *Server {
	s := &Server{
		templates: templates,
		logger:    zerolog.Nop(),
		maxBody:   1 << 20,
		timeout:   30 * time.Second,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.orchestrator == nil {
		s.orchestrator = orchestrator.New(orchestrator.WithLogger(s.logger))
	}
	return s
}

// Routes returns the chi router serving the API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", s.listTemplates)
		r.Post("/", s.createTemplate)
		r.Get("/{templateID}", s.getTemplate)
		r.Put("/{templateID}", s.updateTemplate)
		r.Delete("/{templateID}", s.deleteTemplate)
		r.Post("/{templateID}/preview", s.previewCard)
		r.Post("/{templateID}/validate", s.validateCard)
	})
	r.Get("/placeholder/{size}/{bg}/{fg}", s.placeholderImage)

	return r
}

// requestLogger logs one line per request with zerolog.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			event := logger.Info()
			if status >= http.StatusInternalServerError {
				event = logger.Error()
			}
			event.
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("latency", time.Since(start)).
				Msg("http request")
		})
	}
}
