package course

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	store *Store
	rdb   *redis.Client
}

func NewServer(store *Store, rdb *redis.Client) *Server {
	return &Server{
		store: store,
		rdb:   rdb,
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/", s.handleSearchCourses)
	r.Post("/", s.handleCreateCourse)
	r.Get("/mine", s.handleListOwnCourses)
	r.Get("/{courseID}", s.handleGetCourse)
	r.Delete("/{courseID}", s.handleDeleteCourse)

	r.Post("/{courseID}/videos", s.handleAddVideo)
	r.Patch("/{courseID}/videos/{videoID}", s.handleMoveVideo)
	r.Delete("/{courseID}/videos/{videoID}", s.handleRemoveVideo)

	return r
}

func (s *Server) publishEvent(ctx context.Context, event map[string]any) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("course: marshal event: %v", err)
		return
	}
	if err := s.rdb.Publish(ctx, "events", string(data)).Err(); err != nil {
		log.Printf("course: publish event: %v", err)
	}
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
