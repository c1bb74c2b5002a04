package course

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	body.Title = strings.TrimSpace(body.Title)
	body.Description = strings.TrimSpace(body.Description)
	if body.Title == "" || len(body.Title) > 200 {
		writeError(w, http.StatusBadRequest, "title must be between 1 and 200 characters")
		return
	}

	c, err := s.store.CreateCourse(ctx, userID, body.Title, body.Description)
	if errors.Is(err, ErrDuplicateTitle) {
		writeError(w, http.StatusConflict, "you have already created a course with this title")
		return
	}
	if err != nil {
		log.Printf("course: create: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.publishEvent(ctx, map[string]any{
		"type": "course.created",
		"payload": map[string]any{
			"course": c,
		},
	})

	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleSearchCourses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	phrase := strings.TrimSpace(r.URL.Query().Get("phrase"))

	courses, err := s.store.SearchCoursesByTitle(ctx, phrase)
	if err != nil {
		log.Printf("course: search: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"courses": courses,
	})
}

func (s *Server) handleListOwnCourses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	courses, err := s.store.ListCoursesByOwner(ctx, userID)
	if err != nil {
		log.Printf("course: list own: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"courses": courses,
	})
}

// handleGetCourse serves the details page: any logged-in user may view a
// course; only mutations are restricted to the creator.
func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	courseID := chi.URLParam(r, "courseID")
	c, err := s.store.GetCourse(ctx, courseID)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "course not found")
		return
	}
	if err != nil {
		log.Printf("course: get: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	videos, err := s.store.ListOrdered(ctx, courseID)
	if err != nil {
		log.Printf("course: get list videos: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"course": c,
		"videos": videos,
	})
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	courseID := chi.URLParam(r, "courseID")
	c, err := s.store.GetCourse(ctx, courseID)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "course not found")
		return
	}
	if err != nil {
		log.Printf("course: delete fetch: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if c.CreatorID != userID {
		writeError(w, http.StatusForbidden, "you must be the course creator")
		return
	}

	if err := s.store.DeleteCourse(ctx, courseID); err != nil && !errors.Is(err, ErrNotFound) {
		log.Printf("course: delete: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.publishEvent(ctx, map[string]any{
		"type": "course.deleted",
		"payload": map[string]any{
			"courseId": courseID,
		},
	})

	w.WriteHeader(http.StatusNoContent)
}
