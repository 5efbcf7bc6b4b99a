// Package server implements the REST contract of the ledger service for
// local development: the same endpoints, payloads, and error bodies the
// client expects from the real service.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"kakeibo/internal/log"
	"kakeibo/internal/storage"
)

type Server struct {
	repo   *storage.Repository
	logger *log.Logger
}

// NewRouter builds the API router. corsOrigins lists the UI origins allowed
// to call it; the UI is served from a different port and may be reached over
// both LAN and VPN addresses.
func NewRouter(repo *storage.Repository, corsOrigins []string, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.Discard()
	}
	s := &Server{repo: repo, logger: logger.WithComponent("server")}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.listCategories)
		r.Get("/transactions", s.listTransactions)
		r.Post("/transactions", s.createTransaction)
		r.Put("/transactions/{id}", s.updateTransaction)
		r.Delete("/transactions/{id}", s.deleteTransaction)
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
