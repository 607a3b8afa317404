package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/audit"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/settings"
	"github.com/clockwerk/clockwerk-backend/pkg/actor"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
)

type fakeEntryWriter struct {
	inserted []domain.TimeEntry
	deleted  []string
	tasks    []string
	err      error
}

func (f *fakeEntryWriter) InsertMany(_ context.Context, entries []domain.TimeEntry) ([]domain.TimeEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inserted = append(f.inserted, entries...)
	return entries, nil
}

func (f *fakeEntryWriter) Delete(_ context.Context, id, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeEntryWriter) DistinctTasks(_ context.Context, _ string) ([]string, error) {
	return f.tasks, f.err
}

type fakeEntryPublisher struct {
	saved   int
	deleted int
}

func (f *fakeEntryPublisher) PublishTimeEntriesSaved(_ context.Context, _ []domain.TimeEntry) {
	f.saved++
}

func (f *fakeEntryPublisher) PublishTimeEntryDeleted(_ context.Context, _, _ string) {
	f.deleted++
}

type noopRecorder struct{}

func (noopRecorder) Insert(_ context.Context, _ *domain.Transaction) error { return nil }

type emptySettings struct{}

func (emptySettings) GlobalSetting(_ context.Context, _ string) (any, bool, error) {
	return nil, false, nil
}

func (emptySettings) UserSetting(_ context.Context, _, _ string) (any, bool, error) {
	return nil, false, nil
}

func testAudit() *audit.Logger {
	return audit.NewLogger(noopRecorder{}, settings.NewProvider(emptySettings{}), logger.New("service-test", "test"))
}

func userContext(admin bool) context.Context {
	return actor.WithActor(context.Background(), &actor.Actor{
		ID:    "alice",
		Name:  "alice",
		Admin: admin,
	})
}

func newEntryService(writer *fakeEntryWriter, publisher *fakeEntryPublisher) *TimeEntryService {
	return NewTimeEntryService(writer, testAudit(), publisher, logger.New("service-test", "test"))
}

func TestSaveBatch_NormalizesAndMerges(t *testing.T) {
	writer := &fakeEntryWriter{}
	publisher := &fakeEntryPublisher{}
	svc := newEntryService(writer, publisher)

	afternoon := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)
	res, err := svc.SaveBatch(userContext(false), []domain.TimeEntry{
		{ProjectID: "p1", Task: "review", Date: afternoon, Hours: 2},
		{ProjectID: "p1", Task: "review", Date: afternoon.Add(2 * time.Hour), Hours: 1.5},
		{ProjectID: "p1", Task: "deploy", Date: afternoon, Hours: 0.5},
	})
	require.NoError(t, err)

	require.Len(t, res.Saved, 2)
	assert.Empty(t, res.Rejected)
	assert.Equal(t, "review", res.Saved[0].Task)
	assert.Equal(t, 3.5, res.Saved[0].Hours)
	assert.Equal(t, "deploy", res.Saved[1].Task)

	day := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)
	for _, e := range res.Saved {
		assert.Equal(t, day, e.Date)
		assert.Equal(t, "alice", e.UserID)
	}
	assert.Equal(t, 1, publisher.saved)
}

func TestSaveBatch_EmptyTaskRowSkipped(t *testing.T) {
	writer := &fakeEntryWriter{}
	publisher := &fakeEntryPublisher{}
	svc := newEntryService(writer, publisher)

	res, err := svc.SaveBatch(userContext(false), []domain.TimeEntry{
		{ProjectID: "p1", Task: "  ", Date: time.Now(), Hours: 1},
	})
	require.NoError(t, err)

	assert.Empty(t, res.Saved)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, 0, res.Rejected[0].Index)
	assert.Equal(t, "errors.task_empty", res.Rejected[0].MessageKey)
	assert.Empty(t, writer.inserted, "an invalid row must not be written")
	assert.Zero(t, publisher.saved, "nothing to announce when nothing was saved")
}

func TestSaveBatch_InvalidRowDoesNotAbortBatch(t *testing.T) {
	writer := &fakeEntryWriter{}
	publisher := &fakeEntryPublisher{}
	svc := newEntryService(writer, publisher)

	res, err := svc.SaveBatch(userContext(false), []domain.TimeEntry{
		{ProjectID: "p1", Task: ""},
		{ProjectID: "p1", Task: "review", Date: time.Now(), Hours: 2},
		{ProjectID: "p1", Task: "deploy", Date: time.Now(), Hours: -1},
	})
	require.NoError(t, err)

	require.Len(t, res.Saved, 1)
	assert.Equal(t, "review", res.Saved[0].Task)
	require.Len(t, res.Rejected, 2)
	assert.Equal(t, 0, res.Rejected[0].Index)
	assert.Equal(t, "errors.task_empty", res.Rejected[0].MessageKey)
	assert.Equal(t, 2, res.Rejected[1].Index)
	assert.Equal(t, "errors.validation_failed", res.Rejected[1].MessageKey)

	require.Len(t, writer.inserted, 1, "the valid row must still be persisted")
	assert.Equal(t, 1, publisher.saved)
}

func TestSaveBatch_NegativeHoursRejected(t *testing.T) {
	writer := &fakeEntryWriter{}
	svc := newEntryService(writer, &fakeEntryPublisher{})

	res, err := svc.SaveBatch(userContext(false), []domain.TimeEntry{
		{ProjectID: "p1", Task: "review", Date: time.Now(), Hours: -1},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Saved)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "errors.validation_failed", res.Rejected[0].MessageKey)
	assert.Empty(t, writer.inserted)
}

func TestSaveBatch_NonAdminCannotLogForOthers(t *testing.T) {
	writer := &fakeEntryWriter{}
	svc := newEntryService(writer, &fakeEntryPublisher{})

	res, err := svc.SaveBatch(userContext(false), []domain.TimeEntry{
		{ProjectID: "p1", Task: "review", Date: time.Now(), Hours: 1, UserID: "bob"},
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Saved[0].UserID)
}

func TestSaveBatch_AdminMayLogForOthers(t *testing.T) {
	writer := &fakeEntryWriter{}
	svc := newEntryService(writer, &fakeEntryPublisher{})

	res, err := svc.SaveBatch(userContext(true), []domain.TimeEntry{
		{ProjectID: "p1", Task: "review", Date: time.Now(), Hours: 1, UserID: "bob"},
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", res.Saved[0].UserID)
}

func TestSaveBatch_RequiresAuthentication(t *testing.T) {
	svc := newEntryService(&fakeEntryWriter{}, &fakeEntryPublisher{})

	_, err := svc.SaveBatch(context.Background(), []domain.TimeEntry{
		{ProjectID: "p1", Task: "review", Date: time.Now(), Hours: 1},
	})
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestDelete_PublishesEvent(t *testing.T) {
	writer := &fakeEntryWriter{}
	publisher := &fakeEntryPublisher{}
	svc := newEntryService(writer, publisher)

	require.NoError(t, svc.Delete(userContext(false), "e1"))
	assert.Equal(t, []string{"e1"}, writer.deleted)
	assert.Equal(t, 1, publisher.deleted)
}

func TestSuggestTasks_RanksBySimilarity(t *testing.T) {
	writer := &fakeEntryWriter{tasks: []string{"deployment", "code review", "reviews", "review"}}
	svc := newEntryService(writer, &fakeEntryPublisher{})

	got, err := svc.SuggestTasks(userContext(false), "review", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"review", "reviews"}, got)
}

func TestSuggestTasks_DropsUnrelated(t *testing.T) {
	writer := &fakeEntryWriter{tasks: []string{"zzzzzzzzzz"}}
	svc := newEntryService(writer, &fakeEntryPublisher{})

	got, err := svc.SuggestTasks(userContext(false), "review", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
