package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/service"
	"github.com/clockwerk/clockwerk-backend/pkg/httputil"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
)

// TimeEntryHandler handles time entry endpoints
type TimeEntryHandler struct {
	service *service.TimeEntryService
	logger  *logger.Logger
}

// NewTimeEntryHandler creates a new time entry handler
func NewTimeEntryHandler(svc *service.TimeEntryService, log *logger.Logger) *TimeEntryHandler {
	return &TimeEntryHandler{
		service: svc,
		logger:  log,
	}
}

// Save persists a batch of time entries
func (h *TimeEntryHandler) Save(w http.ResponseWriter, r *http.Request) {
	var batch []domain.TimeEntry
	if err := httputil.DecodeJSON(r, &batch); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	result, err := h.service.SaveBatch(r.Context(), batch)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	// nothing persisted and at least one row rejected
	status := http.StatusCreated
	if len(result.Saved) == 0 && len(result.Rejected) > 0 {
		status = http.StatusBadRequest
	}
	httputil.JSON(w, status, result)
}

// Delete removes a single time entry
func (h *TimeEntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{"id": id})
}

// SuggestTasks ranks previously logged task names against ?q=
func (h *TimeEntryHandler) SuggestTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	suggestions, err := h.service.SuggestTasks(r.Context(), query, limit)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, suggestions)
}
