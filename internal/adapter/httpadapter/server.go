package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/adapter/svg"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/chart"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/dashboard"
	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dashboard is the view state the server exposes.
type Dashboard interface {
	Overview(ctx context.Context) (dashboard.Overview, error)
	Snapshot(ctx context.Context, view string) (chart.Snapshot, error)
	Select(ctx context.Context, view, field, label string) (chart.Snapshot, error)
	Render(ctx context.Context, view string, w io.Writer, backend chart.Backend) error
	MarkerDetail(ctx context.Context, id string, full bool) (dashboard.MarkerDetail, error)
}

// Server exposes health, readiness, metrics, and the dashboard API.
type Server struct {
	httpServer *http.Server
	dash       Dashboard
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /api routes backed by dash. /readyz reports ready.CheckReadiness.
func NewServer(addr string, ready sharedobs.ReadinessChecker, dash Dashboard, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dash:   dash,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/dashboard", s.handleOverview)
	mux.HandleFunc("GET /api/charts/{view}", s.handleSnapshot)
	mux.HandleFunc("POST /api/charts/{view}/filters", s.handleSelect)
	mux.HandleFunc("GET /api/charts/{view}/{asset}", s.handleRender)
	mux.HandleFunc("GET /api/map/markers/{id}", s.handleMarker)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := s.dash.Overview(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, ov)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.dash.Snapshot(r.Context(), r.PathValue("view"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, snap)
}

type selectRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	snap, err := s.dash.Select(r.Context(), r.PathValue("view"), req.Field, req.Value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, snap)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format, ok := strings.CutPrefix(r.PathValue("asset"), "render.")
	if !ok {
		http.NotFound(w, r)
		return
	}
	backend, err := svg.ForFormat(format)
	if err != nil {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	// Buffer so a failed draw can still report JSON.
	var buf bytes.Buffer
	if err := s.dash.Render(r.Context(), r.PathValue("view"), &buf, backend); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", backend.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("write render response", "error", err)
	}
}

func (s *Server) handleMarker(w http.ResponseWriter, r *http.Request) {
	full, _ := strconv.ParseBool(r.URL.Query().Get("full"))
	detail, err := s.dash.MarkerDetail(r.Context(), r.PathValue("id"), full)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, detail)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownView),
		errors.Is(err, dashboard.ErrMissingContainer),
		errors.Is(err, chart.ErrUnknownMarker):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, chart.ErrUnknownOption):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrNotLoaded),
		errors.Is(err, dashboard.ErrDispatcherStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
