package catalog

import (
	"log"
	"net/http"
	"strconv"
	"strings"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		// field-level validation payload the search form renders inline
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"errors": map[string][]string{
				"keyword": {"This field is required."},
			},
		})
		return
	}
	if len(keyword) > 200 {
		writeError(w, http.StatusBadRequest, "keyword is too long")
		return
	}

	maxResults := defaultMaxResults
	if raw := r.URL.Query().Get("maxResults"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 50 {
			maxResults = v
		}
	}

	items, err := s.provider.Search(r.Context(), keyword, maxResults)
	if err != nil {
		log.Printf("catalog: search: %v", err)
		writeError(w, http.StatusBadGateway, "failed to query video catalog")
		return
	}

	writeJSON(w, http.StatusOK, items)
}
