// Category endpoints: CRUD plus keyword-based suggestion.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/centavo-app/centavo/internal/app/classify"
	"github.com/centavo-app/centavo/internal/domain"
	"github.com/centavo-app/centavo/internal/infra/observability"
)

type categoryRequest struct {
	OwnerID   string   `json:"owner_id"`
	Name      string   `json:"name"`
	Direction string   `json:"direction"`
	Keywords  []string `json:"keywords"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.OwnerID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "owner_id and name are required")
		return
	}
	dir, err := domain.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := domain.Category{
		ID:        uuid.NewString(),
		OwnerID:   req.OwnerID,
		Name:      req.Name,
		Direction: dir,
		Keywords:  req.Keywords,
	}
	if err := c.ValidateKeywords(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.db.InsertCategory(r.Context(), c); err != nil {
		s.logger.Error("create category", "error", err)
		writeError(w, http.StatusInternalServerError, "store failure")
		return
	}
	writeData(w, http.StatusCreated, c)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required")
		return
	}
	var dir domain.Direction
	if d := r.URL.Query().Get("direction"); d != "" {
		parsed, err := domain.ParseDirection(d)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		dir = parsed
	}

	cats, err := s.db.ListCategories(r.Context(), ownerID, dir)
	if err != nil {
		s.logger.Error("list categories", "error", err)
		writeError(w, http.StatusInternalServerError, "store failure")
		return
	}
	if cats == nil {
		cats = []domain.Category{}
	}
	writeData(w, http.StatusOK, cats)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := s.db.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store failure")
		return
	}
	writeData(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	c := domain.Category{
		ID:       chi.URLParam(r, "id"),
		OwnerID:  req.OwnerID,
		Name:     req.Name,
		Keywords: req.Keywords,
	}
	if c.OwnerID == "" || c.Name == "" {
		writeError(w, http.StatusBadRequest, "owner_id and name are required")
		return
	}
	if err := c.ValidateKeywords(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := s.db.UpdateCategory(r.Context(), c)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store failure")
		return
	}
	writeData(w, http.StatusOK, map[string]string{"id": c.ID})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required")
		return
	}
	err := s.db.DeleteCategory(r.Context(), chi.URLParam(r, "id"), ownerID)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store failure")
		return
	}
	writeData(w, http.StatusOK, nil)
}

// ─── Suggestion ─────────────────────────────────────────────────────────────

type suggestRequest struct {
	OwnerID     string `json:"owner_id"`
	Description string `json:"description"`
	Direction   string `json:"direction"`
}

// loadSuggestInput validates the request and loads the owner's candidate
// categories for the requested direction.
func (s *Server) loadSuggestInput(w http.ResponseWriter, r *http.Request) (suggestRequest, domain.Direction, []domain.Category, bool) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return req, "", nil, false
	}
	if req.OwnerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required")
		return req, "", nil, false
	}
	dir, err := domain.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return req, "", nil, false
	}

	cats, err := s.db.ListCategories(r.Context(), req.OwnerID, dir)
	if err != nil {
		s.logger.Error("load categories for suggestion", "error", err)
		writeError(w, http.StatusInternalServerError, "store failure")
		return req, "", nil, false
	}
	return req, dir, cats, true
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	req, dir, cats, ok := s.loadSuggestInput(w, r)
	if !ok {
		return
	}

	match := classify.Suggest(req.Description, cats, dir)
	if match == nil {
		observability.SuggestRequests.WithLabelValues("miss").Inc()
		writeData(w, http.StatusOK, nil)
		return
	}
	observability.SuggestRequests.WithLabelValues("hit").Inc()
	observability.SuggestScore.Observe(float64(match.Score))
	writeData(w, http.StatusOK, match)
}

func (s *Server) handleSuggestMultiple(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	req, dir, cats, ok := s.loadSuggestInput(w, r)
	if !ok {
		return
	}

	matches := classify.SuggestTop(req.Description, cats, dir, limit)
	if len(matches) == 0 {
		observability.SuggestRequests.WithLabelValues("miss").Inc()
		writeData(w, http.StatusOK, []domain.CategoryMatch{})
		return
	}
	observability.SuggestRequests.WithLabelValues("hit").Inc()
	observability.SuggestScore.Observe(float64(matches[0].Score))
	writeData(w, http.StatusOK, matches)
}
