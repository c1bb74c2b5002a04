package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// CourseDirectory is the slice of the course package the gateway needs:
// tearing down and reseeding the demo account's data.
type CourseDirectory interface {
	PurgeOwner(ctx context.Context, ownerID string) error
	SeedDemoCourse(ctx context.Context, ownerID string) error
}

type Server struct {
	repo       Repository
	sessions   *SessionStore
	courses    CourseDirectory
	jwtSecret  []byte
	sessionTTL time.Duration
}

func NewServer(repo Repository, sessions *SessionStore, courses CourseDirectory, jwtSecret []byte, sessionTTL time.Duration) *Server {
	return &Server{
		repo:       repo,
		sessions:   sessions,
		courses:    courses,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	r.Post("/demo", s.handleProvisionDemo)

	r.Group(func(r chi.Router) {
		r.Use(s.AuthMiddleware)
		r.Post("/logout", s.handleLogout)
		r.Get("/me", s.handleMe)
	})

	return r
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
