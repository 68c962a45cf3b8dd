package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	ifserrors "github.com/matzehuels/ifsgen/pkg/errors"
	"github.com/matzehuels/ifsgen/pkg/pipeline"
	"github.com/matzehuels/ifsgen/pkg/preset"
)

// Defaults for stream pacing.
const (
	DefaultFPS = 30
	MaxFPS     = 120
)

// Config configures a Server.
type Config struct {
	// Catalog resolves preset names. Defaults to the built-in presets.
	Catalog *preset.Catalog

	// Runner renders /render artifacts. Defaults to an uncached runner.
	Runner *pipeline.Runner

	// Logger receives request and stream logs. Defaults to log.Default().
	Logger *log.Logger

	// DefaultIterations is used by /ws when the query has none and the
	// preset names none. Defaults to pipeline.DefaultIterations.
	DefaultIterations int
}

// Server is the HTTP front end.
type Server struct {
	catalog    *preset.Catalog
	runner     *pipeline.Runner
	logger     *log.Logger
	iterations int
	router     chi.Router
}

// NewServer builds the router.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Catalog == nil {
		c, err := preset.Builtin()
		if err != nil {
			return nil, err
		}
		cfg.Catalog = c
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.DefaultIterations == 0 {
		cfg.DefaultIterations = pipeline.DefaultIterations
	}

	s := &Server{
		catalog:    cfg.Catalog,
		runner:     cfg.Runner,
		logger:     cfg.Logger,
		iterations: cfg.DefaultIterations,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/presets", s.handlePresets)
	r.Get("/presets/{name}", s.handlePreset)
	r.Get("/render/{file}", s.handleRender)
	r.Get("/ws", s.handleStream)

	s.router = r
	return s, nil
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

type presetSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Maps        int    `json:"maps"`
	Iterations  int    `json:"iterations,omitempty"`
	Seed        string `json:"seed,omitempty"`
}

func (s *Server) handlePresets(w http.ResponseWriter, _ *http.Request) {
	all := s.catalog.All()
	out := make([]presetSummary, len(all))
	for i, p := range all {
		out[i] = presetSummary{
			Name:        p.Name,
			Description: p.Description,
			Maps:        len(p.Maps),
			Iterations:  p.Iterations,
			Seed:        p.Seed,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/toml")
	if err := preset.Encode(w, p); err != nil {
		s.logger.Error("encode preset", "name", p.Name, "error", err)
	}
}

var contentTypes = map[string]string{
	pipeline.FormatVertices: "application/octet-stream",
	pipeline.FormatJSON:     "application/json",
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatPNG:      "image/png",
	pipeline.FormatText:     "text/plain; charset=utf-8",
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	name, format, ok := strings.Cut(chi.URLParam(r, "file"), ".")
	if !ok {
		writeError(w, ifserrors.New(ifserrors.ErrCodeInvalidFormat, "missing format extension"))
		return
	}
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Preset:     name,
		Iterations: q.iterations,
		Seed:       q.seed,
		Formats:    []string{format},
		Catalog:    s.catalog,
		AutoBounds: q.auto,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Point-Count", fmt.Sprint(result.Stats.PointCount))
	_, _ = w.Write(result.Artifacts[format])
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := ifserrors.GetCode(err)
	if code == "" {
		code = ifserrors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorBody{Code: string(code), Message: ifserrors.UserMessage(err)})
}

func statusFor(code ifserrors.Code) int {
	switch code {
	case ifserrors.ErrCodeInvalidInput, ifserrors.ErrCodeInvalidFormat,
		ifserrors.ErrCodeInvalidPreset, ifserrors.ErrCodeInvalidSeed:
		return http.StatusBadRequest
	case ifserrors.ErrCodeNotFound, ifserrors.ErrCodePresetNotFound:
		return http.StatusNotFound
	case ifserrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
