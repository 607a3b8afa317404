// Package service implements the timesheet business logic behind the
// HTTP handlers.
package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/audit"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/auth"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/report"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/settings"
	"github.com/clockwerk/clockwerk-backend/pkg/actor"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
)

// EntryStore is the persistence surface the report service reads from.
type EntryStore interface {
	TotalHours(ctx context.Context, pipeline mongo.Pipeline) ([]report.ProjectHoursRow, error)
	DailyHours(ctx context.Context, pipeline mongo.Pipeline) ([]report.DailyHoursRow, error)
	WorkingTime(ctx context.Context, pipeline mongo.Pipeline) ([]report.WorkingTimeRow, error)
	Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.TimeEntry, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}

// UserStore resolves user accounts by ID.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// ReportPublisher announces completed report runs.
type ReportPublisher interface {
	PublishReportGenerated(ctx context.Context, name, userID, period string, rows int)
}

// ReportService handles report business logic
type ReportService struct {
	builder   *report.Builder
	entries   EntryStore
	users     UserStore
	settings  *settings.Provider
	audit     *audit.Logger
	publisher ReportPublisher
	logger    *logger.Logger
}

// NewReportService creates a new report service
func NewReportService(
	builder *report.Builder,
	entries EntryStore,
	users UserStore,
	st *settings.Provider,
	auditLog *audit.Logger,
	publisher ReportPublisher,
	log *logger.Logger,
) *ReportService {
	return &ReportService{
		builder:   builder,
		entries:   entries,
		users:     users,
		settings:  st,
		audit:     auditLog,
		publisher: publisher,
		logger:    log,
	}
}

// TotalHours returns summed hours per user and project over the
// requested period.
func (s *ReportService) TotalHours(ctx context.Context, req report.Request) ([]report.ProjectHoursRow, error) {
	if err := auth.Authenticated(ctx); err != nil {
		return nil, err
	}
	a := actor.FromContext(ctx)
	s.audit.Record(ctx, "totalHoursForPeriod", req)

	pipeline, err := s.builder.TotalHoursForPeriod(ctx, a.ID, req)
	if err != nil {
		return nil, err
	}

	rows, err := s.entries.TotalHours(ctx, pipeline)
	if err != nil {
		s.logger.Error().Err(err).Msg("total hours aggregation failed")
		return nil, errors.Internal("failed to run report")
	}

	s.publisher.PublishReportGenerated(ctx, "total-hours", a.ID, req.Period, len(rows))
	return rows, nil
}

// DailyHours returns summed hours per user, project and day.
func (s *ReportService) DailyHours(ctx context.Context, req report.Request) ([]report.DailyHoursRow, error) {
	if err := auth.Authenticated(ctx); err != nil {
		return nil, err
	}
	a := actor.FromContext(ctx)
	s.audit.Record(ctx, "dailyHours", req)

	pipeline, err := s.builder.DailyHours(ctx, a.ID, req)
	if err != nil {
		return nil, err
	}

	rows, err := s.entries.DailyHours(ctx, pipeline)
	if err != nil {
		s.logger.Error().Err(err).Msg("daily hours aggregation failed")
		return nil, errors.Internal("failed to run report")
	}

	s.publisher.PublishReportGenerated(ctx, "daily-hours", a.ID, req.Period, len(rows))
	return rows, nil
}

// WorkingTime aggregates daily totals and reconstructs a workday
// schedule for each, using the schedule settings of the user the row
// belongs to. Restricted to administrators.
func (s *ReportService) WorkingTime(ctx context.Context, req report.Request) ([]report.Schedule, error) {
	if err := auth.Admin(ctx); err != nil {
		return nil, err
	}
	a := actor.FromContext(ctx)
	s.audit.Record(ctx, "workingTime", req)

	pipeline, err := s.builder.WorkingTime(ctx, a.ID, req)
	if err != nil {
		return nil, err
	}

	rows, err := s.entries.WorkingTime(ctx, pipeline)
	if err != nil {
		s.logger.Error().Err(err).Msg("working time aggregation failed")
		return nil, errors.Internal("failed to run report")
	}

	names := map[string]string{}
	schedules := make([]report.Schedule, 0, len(rows))
	for _, row := range rows {
		resource, ok := names[row.Key.UserID]
		if !ok {
			resource = s.resourceName(ctx, row.Key.UserID)
			names[row.Key.UserID] = resource
		}

		schedule, err := report.MapSchedule(row, resource, s.scheduleSettings(ctx, row.Key.UserID))
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, schedule)
	}

	s.publisher.PublishReportGenerated(ctx, "working-time", a.ID, req.Period, len(schedules))
	return schedules, nil
}

// DetailedEntriesResult is a page of raw entries plus the total match count.
type DetailedEntriesResult struct {
	Entries []domain.TimeEntry `json:"timeEntries"`
	Total   int64              `json:"total"`
}

// DetailedEntries returns raw entries matching the request, paged and
// sorted, together with the unpaged match count.
func (s *ReportService) DetailedEntries(ctx context.Context, req report.Request) (*DetailedEntriesResult, error) {
	if err := auth.Authenticated(ctx); err != nil {
		return nil, err
	}
	a := actor.FromContext(ctx)
	s.audit.Record(ctx, "detailedTimeEntries", req)

	query, opts, err := s.builder.DetailedTimeEntries(ctx, a.ID, req)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.Find(ctx, query, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("detailed entries query failed")
		return nil, errors.Internal("failed to run report")
	}

	total, err := s.entries.Count(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Msg("detailed entries count failed")
		return nil, errors.Internal("failed to run report")
	}

	s.publisher.PublishReportGenerated(ctx, "time-entries", a.ID, req.Period, len(entries))
	return &DetailedEntriesResult{Entries: entries, Total: total}, nil
}

// resourceName labels a schedule row with the account name, falling
// back to the raw ID for deleted accounts.
func (s *ReportService) resourceName(ctx context.Context, userID string) string {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return userID
	}
	return user.Name
}

func (s *ReportService) scheduleSettings(ctx context.Context, userID string) report.ScheduleSettings {
	return report.ScheduleSettings{
		DailyStartTime:        s.settings.String(ctx, userID, domain.SettingDailyStartTime),
		BreakStartTime:        s.settings.String(ctx, userID, domain.SettingBreakStartTime),
		BreakDuration:         s.settings.Float(ctx, userID, domain.SettingBreakDuration),
		RegularWorkingTime:    s.settings.Float(ctx, userID, domain.SettingRegularWorkingTime),
		AddBreakToWorkingTime: s.settings.Bool(ctx, userID, domain.SettingAddBreakToWorkingTime),
	}
}
