// Package httpapi serves toolkit data over HTTP alongside the usual
// health, readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RakeemRanger/bls-mcp/internal/tools"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes toolkit, health, readiness, and metrics HTTP endpoints.
//
// Data routes always answer 200: toolkit methods fold upstream and user
// errors into their payloads, so a request that reaches a handler has a JSON
// answer. Only malformed query parameters produce a 400.
type Server struct {
	httpServer *http.Server
	toolkit    *tools.Toolkit
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the /v1 data routes plus /healthz,
// /readyz, and /metrics.
func NewServer(addr string, kit *tools.Toolkit, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		toolkit: kit,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/series", s.handleCatalog)
	mux.HandleFunc("GET /v1/series/{id}", s.handleSeries)
	mux.HandleFunc("GET /v1/search", s.handleSearch)
	mux.HandleFunc("GET /v1/summary", s.handleSummary)
	mux.HandleFunc("GET /v1/states", s.handleStates)
	mux.HandleFunc("GET /v1/states/{state}", s.handleStateData)
	mux.HandleFunc("GET /v1/counties/{fips}", s.handleCountyData)

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

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.toolkit.ListSeries())
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.toolkit.SeriesData(r.Context(), r.PathValue("id")))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	if keyword == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing required query parameter: q"})
		return
	}
	writeJSON(w, http.StatusOK, s.toolkit.SearchSeries(r.Context(), keyword))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.toolkit.AllData(r.Context()))
}

func (s *Server) handleStates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.toolkit.ListStates())
}

func (s *Server) handleStateData(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	startYear, endYear, err := yearRange(query)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records := s.toolkit.StateData(r.Context(), r.PathValue("state"), query.Get("measure"), startYear, endYear)
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCountyData(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	startYear, endYear, err := yearRange(query)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records := s.toolkit.CountyData(r.Context(), r.PathValue("fips"), query.Get("name"), query.Get("measure"), startYear, endYear)
	writeJSON(w, http.StatusOK, records)
}

// yearRange parses the optional start_year and end_year query parameters.
// Absent parameters come back as zero, which downstream code replaces with
// the default window.
func yearRange(query url.Values) (startYear, endYear int, err error) {
	if startYear, err = yearParam(query, "start_year"); err != nil {
		return 0, 0, err
	}
	if endYear, err = yearParam(query, "end_year"); err != nil {
		return 0, 0, err
	}
	return startYear, endYear, nil
}

func yearParam(query url.Values, key string) (int, error) {
	raw := query.Get(key)
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q is not a year", key, raw)
	}
	return year, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
