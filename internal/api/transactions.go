// Transaction endpoints and the administrative recurrence trigger.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/centavo-app/centavo/internal/domain"
)

type transactionRequest struct {
	OwnerID     string `json:"owner_id"`
	Direction   string `json:"direction"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	Date        string `json:"date"`
	// Recurring turns the request into a template instead of a ledger
	// entry; the given date becomes the anchor.
	Recurring *recurringRequest `json:"recurring,omitempty"`
}

type recurringRequest struct {
	Frequency string `json:"frequency"`
	EndDate   string `json:"end_date,omitempty"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	dir, err := domain.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.AmountCents <= 0 {
		writeError(w, http.StatusBadRequest, domain.ErrNonPositiveAmount.Error())
		return
	}
	if req.OwnerID == "" || req.CategoryID == "" {
		writeError(w, http.StatusBadRequest, "owner_id and category_id are required")
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Recurring != nil {
		s.createTemplate(w, r, req, dir, date)
		return
	}

	in := domain.Instance{
		ID:          uuid.NewString(),
		OwnerID:     req.OwnerID,
		Direction:   dir,
		AmountCents: req.AmountCents,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Date:        date,
	}
	if err := s.db.InsertInstance(r.Context(), in); err != nil {
		s.logger.Error("create transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "store failure")
		return
	}
	writeData(w, http.StatusCreated, in)
}

func (s *Server) createTemplate(w http.ResponseWriter, r *http.Request, req transactionRequest, dir domain.Direction, anchor time.Time) {
	freq, err := domain.ParseFrequency(req.Recurring.Frequency)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tpl := domain.Template{
		ID:            uuid.NewString(),
		OwnerID:       req.OwnerID,
		Direction:     dir,
		AmountCents:   req.AmountCents,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		AnchorDate:    anchor,
		Frequency:     freq,
		LastProcessed: anchor,
		Active:        true,
	}
	if req.Recurring.EndDate != "" {
		end, err := domain.ParseDate(req.Recurring.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		tpl.EndDate = &end
	}
	if err := tpl.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.db.InsertTemplate(r.Context(), tpl); err != nil {
		s.logger.Error("create template", "error", err)
		writeError(w, http.StatusInternalServerError, "store failure")
		return
	}
	writeData(w, http.StatusCreated, tpl)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := domain.InstanceQuery{OwnerID: r.URL.Query().Get("owner_id")}
	if q.OwnerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required")
		return
	}
	if d := r.URL.Query().Get("direction"); d != "" {
		dir, err := domain.ParseDirection(d)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		q.Direction = dir
	}
	q.CategoryID = r.URL.Query().Get("category_id")
	if f := r.URL.Query().Get("from"); f != "" {
		d, err := domain.ParseDate(f)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		q.From = &d
	}
	if t := r.URL.Query().Get("to"); t != "" {
		d, err := domain.ParseDate(t)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		q.To = &d
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		q.Limit = n
	}

	instances, err := s.db.ListInstances(r.Context(), q)
	if err != nil {
		s.logger.Error("list transactions", "error", err)
		writeError(w, http.StatusInternalServerError, "store failure")
		return
	}
	if instances == nil {
		instances = []domain.Instance{}
	}
	writeData(w, http.StatusOK, instances)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	in, err := s.db.GetInstance(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store failure")
		return
	}
	writeData(w, http.StatusOK, in)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	err := s.db.DeleteInstance(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store failure")
		return
	}
	writeData(w, http.StatusOK, nil)
}

// ─── Recurring ──────────────────────────────────────────────────────────────

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "owner_id is required")
		return
	}
	templates, err := s.db.ListTemplates(r.Context(), ownerID)
	if err != nil {
		s.logger.Error("list templates", "error", err)
		writeError(w, http.StatusInternalServerError, "store failure")
		return
	}
	if templates == nil {
		templates = []domain.Template{}
	}
	writeData(w, http.StatusOK, templates)
}

// handleDeactivateTemplate stops a recurring series. Already-materialized
// instances stay in the ledger; the engine just stops producing new ones.
func (s *Server) handleDeactivateTemplate(w http.ResponseWriter, r *http.Request) {
	err := s.db.DeactivateTemplate(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store failure")
		return
	}
	writeData(w, http.StatusOK, nil)
}

// handleProcessRecurring is the manual/administrative trigger for the
// expansion engine, equivalent to one scheduled cycle.
func (s *Server) handleProcessRecurring(w http.ResponseWriter, r *http.Request) {
	report, err := s.expander.Run(r.Context(), time.Now())
	if errors.Is(err, domain.ErrRunInProgress) {
		writeError(w, http.StatusConflict, "an expansion run is already in progress")
		return
	}
	if err != nil {
		s.logger.Error("manual expansion run", "error", err)
		writeError(w, http.StatusServiceUnavailable, "expansion run failed; safe to retry")
		return
	}
	writeData(w, http.StatusOK, report)
}
