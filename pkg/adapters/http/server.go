// Package http serves the step lookup as a read-only JSON API routed with chi.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/api"
	"github.com/aretw0/wayfinder/internal/runtime"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Engine is the part of the Wayfinder engine the HTTP surface needs.
type Engine interface {
	Resolve(ctx context.Context, query string) (domain.Resolution, *domain.FlowConfiguration, error)
	Report(ctx context.Context) (*domain.Report, error)
	Configuration(ctx context.Context) (*domain.FlowConfiguration, error)
}

// LookupResponse is the JSON answer of GET /steps/{id}.
type LookupResponse struct {
	Query        string           `json:"query"`
	Found        bool             `json:"found"`
	MatchType    domain.MatchKind `json:"match_type"`
	Payload      any              `json:"payload,omitempty"`
	Message      string           `json:"message,omitempty"`
	AvailableIDs []string         `json:"available_ids,omitzero"`
}

// Server holds the handlers of the API.
type Server struct {
	Engine       Engine
	logger       *slog.Logger
	metrics      http.Handler
	maxQuerySize int
}

// Option configures the handler built by NewHandler.
type Option func(*Server)

// WithLogger sets the logger used for access logs and failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics mounts h on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithMaxQuerySize bounds the {id} path parameter (see runner.SanitizeQuery).
func WithMaxQuerySize(n int) Option {
	return func(s *Server) {
		s.maxQuerySize = n
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine: engine,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(server.accessLog)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(api.Spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Get("/healthz", server.GetHealth)
	r.Get("/tool", server.GetTool)
	r.Get("/report", server.GetReport)
	r.Get("/steps", server.GetSteps)
	r.Get("/steps/{id}", server.LookupStep)
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	return enableCORS(r)
}

// ListenAndServe serves h on addr until ctx is cancelled, then drains
// in-flight requests.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Wayfinder API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// LookupStep handles the GET /steps/{id} request.
func (s *Server) LookupStep(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}

	query, err := runner.SanitizeQuery(raw, s.maxQuerySize)
	if err != nil {
		s.logger.Warn("LookupStep: query rejected", "error", err)
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	res, cfg, err := s.Engine.Resolve(r.Context(), query)
	if err != nil {
		s.fail(w, "LookupStep", err)
		return
	}

	status := http.StatusOK
	if !res.Found() {
		status = http.StatusNotFound
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "text") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		io.WriteString(w, runtime.Format(res, cfg))
		return
	}

	resp := LookupResponse{
		Query:     res.Query,
		Found:     res.Found(),
		MatchType: res.Kind,
	}
	if res.Found() {
		tree, err := runtime.PayloadTree(cfg.Identity, *res.Step, runtime.ModeActiveAgent)
		if err != nil {
			s.fail(w, "LookupStep", err)
			return
		}
		resp.Payload = tree
	} else {
		resp.Message = runtime.NotFoundMessage(res)
		resp.AvailableIDs = cfg.IDs()
	}
	s.writeJSON(w, status, resp)
}

// GetSteps handles the GET /steps request.
func (s *Server) GetSteps(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.Engine.Configuration(r.Context())
	if err != nil {
		s.fail(w, "GetSteps", err)
		return
	}
	s.writeJSON(w, http.StatusOK, cfg)
}

// GetReport handles the GET /report request.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.Engine.Report(r.Context())
	if err != nil {
		s.fail(w, "GetReport", err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// GetTool handles the GET /tool request.
func (s *Server) GetTool(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, domain.LookupTool())
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": wayfinder.Version,
	})
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSourceUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	s.logger.Error(op+" failed", "error", err)
	s.writeError(w, status, err)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
