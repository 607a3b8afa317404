package handler

import (
	"net/http"
	"strconv"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/repository"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/service"
	"github.com/clockwerk/clockwerk-backend/pkg/httputil"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
)

// TransactionHandler exposes the audit trail
type TransactionHandler struct {
	service *service.TransactionService
	logger  *logger.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(svc *service.TransactionService, log *logger.Logger) *TransactionHandler {
	return &TransactionHandler{
		service: svc,
		logger:  log,
	}
}

// List returns transaction records, newest first
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	opts := repository.TransactionListOptions{
		Method: r.URL.Query().Get("method"),
		UserID: r.URL.Query().Get("userId"),
		Page:   page,
		Limit:  int64(limit),
	}

	records, total, err := h.service.List(r.Context(), opts)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	httputil.JSONWithMeta(w, http.StatusOK, records, &httputil.Meta{
		Page:       page,
		PerPage:    limit,
		Total:      total,
		TotalPages: totalPages,
	})
}
