// Package server exposes the user-data document API consumed by the sync
// client: fetch on sign-in, upsert on debounced pushes.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asisr38/home-gym-tracker-app/internal/models"
)

// DocStore is the persistence the handlers need. *storage.DB satisfies it.
type DocStore interface {
	GetUserData(ctx context.Context, userID string) (models.UserData, bool, error)
	UpsertUserData(ctx context.Context, userID string, data models.UserData) error
	DeleteUserData(ctx context.Context, userID string) error
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  DocStore
	log    *slog.Logger
	tokens map[string]string // bearer token -> user id
	router chi.Router
}

// New creates a Server with all routes configured. tokens maps bearer tokens
// to user ids.
func New(store DocStore, tokens map[string]string, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		log:    log,
		tokens: tokens,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/api/v1/health", s.handleHealth)

	s.router.Route("/api/v1/user-data", func(r chi.Router) {
		r.Use(BearerAuth(s.tokens))
		r.Get("/", s.handleGetUserData)
		r.Post("/", s.handleSaveUserData)
		r.Delete("/", s.handleDeleteUserData)
	})
}
