// Package period converts named report period tokens into concrete
// inclusive date ranges.
package period

import (
	"time"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
)

// Named period tokens accepted by Resolve.
const (
	Today       = "today"
	Yesterday   = "yesterday"
	ThisWeek    = "this_week"
	LastWeek    = "last_week"
	ThisMonth   = "this_month"
	LastMonth   = "last_month"
	ThisQuarter = "this_quarter"
	LastQuarter = "last_quarter"
	ThisYear    = "this_year"
	LastYear    = "last_year"
)

// Sentinels handled by the builders, never by Resolve: "custom" means the
// caller supplies explicit dates, "all" means no date filtering at all.
const (
	Custom = "custom"
	All    = "all"
)

// Tokens lists every token Resolve accepts, for validation and tests.
var Tokens = []string{
	Today, Yesterday,
	ThisWeek, LastWeek,
	ThisMonth, LastMonth,
	ThisQuarter, LastQuarter,
	ThisYear, LastYear,
}

// Resolve converts a named period token into an inclusive date range
// relative to now, with weeks starting on Monday.
func Resolve(token string, now time.Time) (domain.Range, error) {
	return ResolveWithWeekStart(token, now, time.Monday)
}

// ResolveWithWeekStart is Resolve honoring a configured first day of the week.
func ResolveWithWeekStart(token string, now time.Time, weekStart time.Weekday) (domain.Range, error) {
	day := startOfDay(now)

	switch token {
	case Today:
		return domain.Range{Start: day, End: day}, nil

	case Yesterday:
		y := day.AddDate(0, 0, -1)
		return domain.Range{Start: y, End: y}, nil

	case ThisWeek:
		start := startOfWeek(day, weekStart)
		return domain.Range{Start: start, End: start.AddDate(0, 0, 6)}, nil

	case LastWeek:
		start := startOfWeek(day, weekStart).AddDate(0, 0, -7)
		return domain.Range{Start: start, End: start.AddDate(0, 0, 6)}, nil

	case ThisMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return domain.Range{Start: start, End: start.AddDate(0, 1, -1)}, nil

	case LastMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		return domain.Range{Start: start, End: start.AddDate(0, 1, -1)}, nil

	case ThisQuarter:
		start := startOfQuarter(day)
		return domain.Range{Start: start, End: start.AddDate(0, 3, -1)}, nil

	case LastQuarter:
		start := startOfQuarter(day).AddDate(0, -3, 0)
		return domain.Range{Start: start, End: start.AddDate(0, 3, -1)}, nil

	case ThisYear:
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return domain.Range{Start: start, End: start.AddDate(1, 0, -1)}, nil

	case LastYear:
		start := time.Date(day.Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC)
		return domain.Range{Start: start, End: start.AddDate(1, 0, -1)}, nil
	}

	return domain.Range{}, errors.InvalidPeriod(token)
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// startOfWeek walks back from day to the most recent weekStart.
func startOfWeek(day time.Time, weekStart time.Weekday) time.Time {
	back := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -back)
}

func startOfQuarter(day time.Time) time.Time {
	quarterMonth := time.Month((int(day.Month())-1)/3*3 + 1)
	return time.Date(day.Year(), quarterMonth, 1, 0, 0, 0, 0, time.UTC)
}
