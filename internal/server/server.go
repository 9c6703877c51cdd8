package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/doclens/doclens/internal/classify"
	"github.com/doclens/doclens/internal/config"
	"github.com/doclens/doclens/internal/registry"
	"github.com/doclens/doclens/internal/store"
)

// Server exposes the classification engine over HTTP. The API mirrors the
// documented product contract: multipart classification, language and
// category listings, session documents with relationship analysis, and a
// feedback endpoint that tunes categories.
type Server struct {
	engine   *classify.Engine
	registry *registry.Registry
	store    store.Store
	cfg      config.ServerConfig
	limiter  *rate.Limiter
}

// New builds a Server. The rate limiter is shared across all clients; the
// free tier of the original product was quota-based per day, a token bucket
// is the service equivalent.
func New(engine *classify.Engine, reg *registry.Registry, st store.Store, cfg config.ServerConfig) *Server {
	return &Server{
		engine:   engine,
		registry: reg,
		store:    st,
		cfg:      cfg,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	}
}

// Router assembles the chi route tree with CORS, auth, rate limiting, and
// panic recovery applied to the API surface. The health probe bypasses auth.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger)
	r.Use(s.recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.auth)
		r.Use(s.rateLimit)

		r.Post("/classify", s.handleClassify)
		r.Get("/languages", s.handleLanguages)

		r.Get("/categories", s.handleListCategories)
		r.Post("/categories", s.handleCreateCategory)
		r.Put("/categories/{id}", s.handleUpdateCategory)
		r.Delete("/categories/{id}", s.handleDeleteCategory)

		r.Get("/documents", s.handleListDocuments)
		r.Get("/documents/relationships", s.handleRelationships)
		r.Delete("/documents", s.handleResetSession)

		r.Post("/feedback", s.handleFeedback)
	})

	return r
}

// envelope is the response wrapper every endpoint uses.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: false, Error: msg}); err != nil {
		zap.L().Error("write error response", zap.Error(err))
	}
}
