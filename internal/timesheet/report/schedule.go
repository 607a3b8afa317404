package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/clockwerk/clockwerk-backend/pkg/errors"
)

// ScheduleSettings carries the per-user (or global) working-time
// configuration MapSchedule needs.
type ScheduleSettings struct {
	DailyStartTime        string  // HH:mm
	BreakStartTime        string  // HH:mm
	BreakDuration         float64 // hours
	RegularWorkingTime    float64 // hours
	AddBreakToWorkingTime bool
}

// Schedule is the reconstructed workday for one user and one date: when
// they plausibly started, took their break and finished, given the
// total logged hours.
type Schedule struct {
	Date           time.Time `json:"date"`
	Resource       string    `json:"resource"`
	StartTime      string    `json:"startTime"`
	BreakStartTime string    `json:"breakStartTime"`
	BreakEndTime   string    `json:"breakEndTime"`
	EndTime        string    `json:"endTime"`
	TotalTime      float64   `json:"totalTime"`

	RegularWorkingTime           float64 `json:"regularWorkingTime"`
	RegularWorkingTimeDifference float64 `json:"regularWorkingTimeDifference"`
}

// MapSchedule derives the workday schedule for one aggregated
// working-time row. It is a pure function: identical inputs yield an
// identical schedule.
func MapSchedule(row WorkingTimeRow, resource string, cfg ScheduleSettings) (Schedule, error) {
	startMin, err := parseClock(cfg.DailyStartTime)
	if err != nil {
		return Schedule{}, err
	}
	breakStartMin, err := parseClock(cfg.BreakStartTime)
	if err != nil {
		return Schedule{}, err
	}

	breakMinutes := int(cfg.BreakDuration * 60)

	endMin := startMin + int(row.TotalTime*60)
	if cfg.AddBreakToWorkingTime {
		endMin += breakMinutes
	}

	s := Schedule{
		Date:                         row.Key.Date,
		Resource:                     resource,
		StartTime:                    formatClock(startMin),
		EndTime:                      formatClock(endMin),
		TotalTime:                    row.TotalTime,
		RegularWorkingTime:           cfg.RegularWorkingTime,
		RegularWorkingTimeDifference: row.TotalTime - cfg.RegularWorkingTime,
	}

	// A day too short to reach the break keeps its break fields empty.
	if endMin > breakStartMin {
		s.BreakStartTime = formatClock(breakStartMin)
		s.BreakEndTime = formatClock(breakStartMin + breakMinutes)
	}

	return s, nil
}

// parseClock converts "HH:mm" to minutes since midnight.
func parseClock(v string) (int, error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, errors.BadRequest(fmt.Sprintf("invalid time of day %q", v))
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, errors.BadRequest(fmt.Sprintf("invalid time of day %q", v))
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, errors.BadRequest(fmt.Sprintf("invalid time of day %q", v))
	}
	return h*60 + m, nil
}

// formatClock renders minutes since midnight as HH:mm, rolling past
// midnight for very long days.
func formatClock(min int) string {
	h := (min / 60) % 24
	return fmt.Sprintf("%02d:%02d", h, min%60)
}
