// Package api provides the HTTP server for the bookkeeping service:
// category CRUD and suggestion endpoints, transaction endpoints, and the
// administrative recurrence trigger.
//
// Authentication is the front proxy's concern; handlers take the owner ID
// as a request field and scope every read and write to it.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/centavo-app/centavo/internal/app/recurring"
	"github.com/centavo-app/centavo/internal/infra/sqlite"
)

// Version is reported by /api/version.
const Version = "0.3.1"

// Server is the HTTP API server.
type Server struct {
	db             *sqlite.DB
	expander       *recurring.Expander
	logger         *slog.Logger
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(db *sqlite.DB, expander *recurring.Expander, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{db: db, expander: expander, logger: logger.With("component", "api")}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": Version})
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Post("/", s.handleCreateCategory)
		r.Get("/", s.handleListCategories)
		r.Post("/suggest", s.handleSuggest)
		r.Post("/suggest/multiple", s.handleSuggestMultiple)
		r.Get("/{id}", s.handleGetCategory)
		r.Put("/{id}", s.handleUpdateCategory)
		r.Delete("/{id}", s.handleDeleteCategory)
	})

	r.Route("/api/transactions", func(r chi.Router) {
		r.Post("/", s.handleCreateTransaction)
		r.Get("/", s.handleListTransactions)
		r.Get("/{id}", s.handleGetTransaction)
		r.Delete("/{id}", s.handleDeleteTransaction)
	})

	r.Route("/api/recurring", func(r chi.Router) {
		r.Get("/templates", s.handleListTemplates)
		r.Delete("/templates/{id}", s.handleDeactivateTemplate)
		r.Post("/process", s.handleProcessRecurring)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Response Envelope ──────────────────────────────────────────────────────
// Success: {"status":"success","data":...}
// Failure: {"status":"error","message":"..."}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, map[string]any{"status": "success", "data": data})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"status": "error", "message": msg})
}
