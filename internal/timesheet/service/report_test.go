package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/report"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/scope"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/settings"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
)

type fakeEntryStore struct {
	workingTime []report.WorkingTimeRow
	entries     []domain.TimeEntry
	total       int64
}

func (f *fakeEntryStore) TotalHours(_ context.Context, _ mongo.Pipeline) ([]report.ProjectHoursRow, error) {
	return []report.ProjectHoursRow{}, nil
}

func (f *fakeEntryStore) DailyHours(_ context.Context, _ mongo.Pipeline) ([]report.DailyHoursRow, error) {
	return []report.DailyHoursRow{}, nil
}

func (f *fakeEntryStore) WorkingTime(_ context.Context, _ mongo.Pipeline) ([]report.WorkingTimeRow, error) {
	return f.workingTime, nil
}

func (f *fakeEntryStore) Find(_ context.Context, _ bson.M, _ *options.FindOptions) ([]domain.TimeEntry, error) {
	return f.entries, nil
}

func (f *fakeEntryStore) Count(_ context.Context, _ bson.M) (int64, error) {
	return f.total, nil
}

type fakeUserStore struct {
	users map[string]*domain.User
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errors.NotFound("user")
}

type fakeReportPublisher struct {
	reports []string
	rows    []int
}

func (f *fakeReportPublisher) PublishReportGenerated(_ context.Context, name, _, _ string, rows int) {
	f.reports = append(f.reports, name)
	f.rows = append(f.rows, rows)
}

type openProjects struct{}

func (openProjects) Find(_ context.Context, _ bson.M) ([]domain.Project, error) {
	return []domain.Project{{ID: "p1", UserID: "alice"}}, nil
}

func workingTimeRow(userID string, day time.Time, hours float64) report.WorkingTimeRow {
	var row report.WorkingTimeRow
	row.Key.UserID = userID
	row.Key.Date = day
	row.TotalTime = hours
	return row
}

func newReportService(store *fakeEntryStore, publisher *fakeReportPublisher) *ReportService {
	log := logger.New("service-test", "test")
	builder := report.NewBuilder(scope.NewResolver(openProjects{}), settings.NewProvider(emptySettings{}))
	builder.Now = func() time.Time { return time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC) }

	users := &fakeUserStore{users: map[string]*domain.User{
		"bob": {ID: "bob", Name: "Bob"},
	}}

	return NewReportService(builder, store, users, settings.NewProvider(emptySettings{}), testAudit(), publisher, log)
}

func TestWorkingTime_MapsRowsToSchedules(t *testing.T) {
	day := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	store := &fakeEntryStore{workingTime: []report.WorkingTimeRow{
		workingTimeRow("bob", day, 4),
		workingTimeRow("ghost", day, 2),
	}}
	publisher := &fakeReportPublisher{}
	svc := newReportService(store, publisher)

	schedules, err := svc.WorkingTime(userContext(true), report.Request{Period: "this_week"})
	require.NoError(t, err)
	require.Len(t, schedules, 2)

	// fallback settings: start 09:00, break 12:00 for 0.5h
	assert.Equal(t, "Bob", schedules[0].Resource)
	assert.Equal(t, "09:00", schedules[0].StartTime)
	assert.Equal(t, "13:00", schedules[0].EndTime)
	assert.Equal(t, "12:00", schedules[0].BreakStartTime)

	// deleted accounts keep their raw ID as resource label
	assert.Equal(t, "ghost", schedules[1].Resource)
	assert.Equal(t, "11:00", schedules[1].EndTime)
	assert.Empty(t, schedules[1].BreakStartTime)

	assert.Equal(t, []string{"working-time"}, publisher.reports)
	assert.Equal(t, []int{2}, publisher.rows)
}

func TestWorkingTime_AdminOnly(t *testing.T) {
	svc := newReportService(&fakeEntryStore{}, &fakeReportPublisher{})

	_, err := svc.WorkingTime(userContext(false), report.Request{Period: "this_week"})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "ADMIN_REQUIRED", appErr.Code)
}

func TestTotalHours_UnknownPeriodFails(t *testing.T) {
	publisher := &fakeReportPublisher{}
	svc := newReportService(&fakeEntryStore{}, publisher)

	_, err := svc.TotalHours(userContext(false), report.Request{Period: "fortnight"})
	assert.True(t, errors.Is(err, errors.ErrInvalidPeriod))
	assert.Empty(t, publisher.reports, "failed reports are not announced")
}

func TestDetailedEntries_ReturnsPageAndTotal(t *testing.T) {
	store := &fakeEntryStore{
		entries: []domain.TimeEntry{{ID: "e1", Task: "review"}},
		total:   42,
	}
	publisher := &fakeReportPublisher{}
	svc := newReportService(store, publisher)

	res, err := svc.DetailedEntries(userContext(false), report.Request{Period: "this_month", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, res.Entries, 1)
	assert.Equal(t, int64(42), res.Total)
	assert.Equal(t, []string{"time-entries"}, publisher.reports)
}

func TestReports_RequireAuthentication(t *testing.T) {
	svc := newReportService(&fakeEntryStore{}, &fakeReportPublisher{})

	_, err := svc.TotalHours(context.Background(), report.Request{})
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))

	_, err = svc.DetailedEntries(context.Background(), report.Request{})
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}
