// Package handler exposes the timesheet operations over HTTP.
package handler

import (
	"net/http"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/report"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/service"
	"github.com/clockwerk/clockwerk-backend/pkg/httputil"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
)

// ReportHandler handles report endpoints
type ReportHandler struct {
	service *service.ReportService
	logger  *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(svc *service.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: svc,
		logger:  log,
	}
}

// decodeReport parses and validates a report request body.
func decodeReport(r *http.Request) (report.Request, error) {
	var req report.Request
	if err := httputil.DecodeJSON(r, &req); err != nil {
		return req, err
	}
	if err := httputil.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}

// TotalHours returns summed hours per user and project
func (h *ReportHandler) TotalHours(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReport(r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	rows, err := h.service.TotalHours(r.Context(), req)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, rows)
}

// DailyHours returns summed hours per user, project and day
func (h *ReportHandler) DailyHours(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReport(r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	rows, err := h.service.DailyHours(r.Context(), req)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, rows)
}

// WorkingTime returns reconstructed workday schedules
func (h *ReportHandler) WorkingTime(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReport(r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	schedules, err := h.service.WorkingTime(r.Context(), req)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, schedules)
}

// TimeEntries returns a sorted, paged listing of raw entries
func (h *ReportHandler) TimeEntries(w http.ResponseWriter, r *http.Request) {
	req, err := decodeReport(r)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	res, err := h.service.DetailedEntries(r.Context(), req)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSONWithMeta(w, http.StatusOK, res.Entries, &httputil.Meta{
		Page:    int(pageOrFirst(req.Page)),
		PerPage: int(req.Limit),
		Total:   res.Total,
	})
}

func pageOrFirst(page int64) int64 {
	if page < 1 {
		return 1
	}
	return page
}
