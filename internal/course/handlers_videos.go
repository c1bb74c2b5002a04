package course

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// fetchOwnedCourse loads the course and enforces that the acting user is
// its creator. Every mutating video operation goes through it.
func (s *Server) fetchOwnedCourse(w http.ResponseWriter, r *http.Request) (Course, bool) {
	ctx := r.Context()
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return Course{}, false
	}

	courseID := chi.URLParam(r, "courseID")
	c, err := s.store.GetCourse(ctx, courseID)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "course not found")
		return Course{}, false
	}
	if err != nil {
		log.Printf("course: fetch: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return Course{}, false
	}
	if c.CreatorID != userID {
		writeError(w, http.StatusForbidden, "you must be the course creator")
		return Course{}, false
	}
	return c, true
}

func (s *Server) handleAddVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, ok := s.fetchOwnedCourse(w, r)
	if !ok {
		return
	}

	var body NewVideo
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	body.YTVideoID = strings.TrimSpace(body.YTVideoID)
	body.Title = strings.TrimSpace(body.Title)
	if body.YTVideoID == "" {
		writeError(w, http.StatusBadRequest, "ytVideoId is required")
		return
	}
	if body.Title == "" || len(body.Title) > 300 {
		writeError(w, http.StatusBadRequest, "title must be between 1 and 300 characters")
		return
	}

	v, err := s.store.GetOrCreateVideo(ctx, body)
	if err != nil {
		log.Printf("course: add video store: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	m, err := s.store.AddVideo(ctx, c.ID, v.ID)
	if errors.Is(err, ErrAlreadyMember) {
		writeError(w, http.StatusConflict, "this video has already been added to the course")
		return
	}
	if err != nil {
		log.Printf("course: add video: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.publishEvent(ctx, map[string]any{
		"type": "course.video.added",
		"payload": map[string]any{
			"courseId":   c.ID,
			"membership": m,
			"video":      v,
		},
	})

	writeJSON(w, http.StatusCreated, CourseVideo{Membership: m, Video: v})
}

func (s *Server) handleMoveVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, ok := s.fetchOwnedCourse(w, r)
	if !ok {
		return
	}

	var body struct {
		Direction int `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Direction != 1 && body.Direction != -1 {
		writeError(w, http.StatusBadRequest, "direction must be 1 or -1")
		return
	}

	videoID := chi.URLParam(r, "videoID")
	m, err := s.store.SwapAdjacent(ctx, c.ID, videoID, body.Direction)
	if errors.Is(err, ErrNoNeighbor) {
		// already at the end it was pushed towards; nothing to do
		writeJSON(w, http.StatusOK, map[string]any{
			"moved": false,
		})
		return
	}
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "video not found in course")
		return
	}
	if err != nil {
		log.Printf("course: move video: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.publishEvent(ctx, map[string]any{
		"type": "course.video.moved",
		"payload": map[string]any{
			"courseId": c.ID,
			"videoId":  videoID,
			"position": m.Position,
		},
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"moved":      true,
		"membership": m,
	})
}

func (s *Server) handleRemoveVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, ok := s.fetchOwnedCourse(w, r)
	if !ok {
		return
	}

	videoID := chi.URLParam(r, "videoID")
	videoDeleted, err := s.store.RemoveVideo(ctx, c.ID, videoID)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "video not found in course")
		return
	}
	if err != nil {
		log.Printf("course: remove video: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	s.publishEvent(ctx, map[string]any{
		"type": "course.video.removed",
		"payload": map[string]any{
			"courseId":     c.ID,
			"videoId":      videoID,
			"videoDeleted": videoDeleted,
		},
	})

	w.WriteHeader(http.StatusNoContent)
}
