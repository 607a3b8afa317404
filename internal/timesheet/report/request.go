// Package report translates high-level report parameters into the
// aggregation pipelines and find queries the document store executes,
// and post-processes working-time rows into daily schedules.
package report

import (
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
)

// Request is the transient parameter bundle behind every report call.
// It is consumed once per invocation and never retained.
type Request struct {
	// Project selects projects by ID; ignored when Customer is a
	// concrete selection.
	Project domain.Selector `json:"projectId"`

	// Customer selects projects by owning customer; a concrete customer
	// selection takes precedence over Project.
	Customer domain.Selector `json:"customer"`

	// Period is a named token, "custom" (Dates required) or "all".
	Period string `json:"period"`

	// Dates bounds the report when Period is "custom".
	Dates *domain.Range `json:"dates,omitempty"`

	// User restricts to entries of the given user(s).
	User domain.Selector `json:"userId"`

	// Search is an optional free-text match on the task label.
	Search string `json:"search,omitempty"`

	// Filters optionally narrows detailed listings; see Filters.
	Filters *Filters `json:"filters,omitempty"`

	// Sort orders detailed listings; nil means date descending.
	Sort *Sort `json:"sort,omitempty"`

	// Limit caps the page size; 0 means unbounded.
	Limit int64 `json:"limit" validate:"gte=0"`

	// Page is 1-based.
	Page int64 `json:"page" validate:"gte=0"`
}

// Sort names a column by index and a direction.
type Sort struct {
	Column int    `json:"column"`
	Order  string `json:"order"`
}

// Column index to field name. Unknown indexes fall back to date.
var sortColumns = map[int]string{
	0: "projectId",
	1: "date",
	2: "task",
	3: "userId",
	4: "hours",
}

const defaultSortField = "date"

// sortSpec resolves the sort field and mongo direction (1 asc, -1 desc).
// Only "asc" selects ascending; anything else sorts descending.
func sortSpec(s *Sort) (string, int) {
	field := defaultSortField
	order := -1

	if s == nil {
		return field, order
	}
	if f, ok := sortColumns[s.Column]; ok {
		field = f
	}
	if s.Order == "asc" {
		order = 1
	}
	return field, order
}

// skipFor computes the skip offset for 1-based pages.
func skipFor(page, limit int64) int64 {
	if page > 1 {
		return (page - 1) * limit
	}
	return 0
}

// selectorOrAll treats an absent selector as "all" so a request that
// omits a field is not silently empty.
func selectorOrAll(s domain.Selector) domain.Selector {
	if !s.All && len(s.IDs) == 0 {
		return domain.AllSelector()
	}
	return s
}
