package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/audit"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/auth"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/similarity"
	"github.com/clockwerk/clockwerk-backend/pkg/actor"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
)

// defaultSuggestionLimit caps task suggestions when the caller does not.
const defaultSuggestionLimit = 10

// EntryWriter is the persistence surface for time entry mutations.
type EntryWriter interface {
	InsertMany(ctx context.Context, entries []domain.TimeEntry) ([]domain.TimeEntry, error)
	Delete(ctx context.Context, id, userID string) error
	DistinctTasks(ctx context.Context, userID string) ([]string, error)
}

// EntryPublisher announces time entry mutations.
type EntryPublisher interface {
	PublishTimeEntriesSaved(ctx context.Context, entries []domain.TimeEntry)
	PublishTimeEntryDeleted(ctx context.Context, entryID, userID string)
}

// TimeEntryService handles time entry business logic
type TimeEntryService struct {
	entries   EntryWriter
	audit     *audit.Logger
	publisher EntryPublisher
	logger    *logger.Logger
}

// NewTimeEntryService creates a new time entry service
func NewTimeEntryService(entries EntryWriter, auditLog *audit.Logger, publisher EntryPublisher, log *logger.Logger) *TimeEntryService {
	return &TimeEntryService{
		entries:   entries,
		audit:     auditLog,
		publisher: publisher,
		logger:    log,
	}
}

// RejectedEntry reports one batch row that failed validation.
type RejectedEntry struct {
	Index      int    `json:"index"`
	MessageKey string `json:"messageKey"`
	Message    string `json:"message"`
}

// SaveBatchResult carries the persisted entries together with the rows
// that were rejected.
type SaveBatchResult struct {
	Saved    []domain.TimeEntry `json:"saved"`
	Rejected []RejectedEntry    `json:"rejected,omitempty"`
}

// SaveBatch validates, normalizes and persists a batch of entries for
// the calling user. An invalid row is reported and skipped, never
// aborting the rest of the batch. Valid entries sharing (projectId,
// task, date) are merged by summing their hours before the write.
func (s *TimeEntryService) SaveBatch(ctx context.Context, batch []domain.TimeEntry) (*SaveBatchResult, error) {
	if err := auth.Authenticated(ctx); err != nil {
		return nil, err
	}
	a := actor.FromContext(ctx)

	result := &SaveBatchResult{Saved: []domain.TimeEntry{}}
	valid := make([]domain.TimeEntry, 0, len(batch))
	for i, e := range batch {
		e.Task = strings.TrimSpace(e.Task)
		if rejected := validateEntry(e); rejected != nil {
			rejected.Index = i
			result.Rejected = append(result.Rejected, *rejected)
			continue
		}

		// non-admins can only log their own time
		if e.UserID == "" || !a.Admin {
			e.UserID = a.ID
		}
		e.Date = normalizeDay(e.Date)
		valid = append(valid, e)
	}

	if len(valid) == 0 {
		return result, nil
	}

	merged := mergeBatch(valid)

	s.audit.Record(ctx, "saveTimeEntries", merged)

	saved, err := s.entries.InsertMany(ctx, merged)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(merged)).Msg("failed to save time entries")
		return nil, errors.Internal("failed to save time entries")
	}

	s.publisher.PublishTimeEntriesSaved(ctx, saved)
	result.Saved = saved
	return result, nil
}

// validateEntry checks one row; the caller fills in the index.
func validateEntry(e domain.TimeEntry) *RejectedEntry {
	switch {
	case e.Task == "":
		return &RejectedEntry{MessageKey: "errors.task_empty", Message: "task must not be empty"}
	case e.ProjectID == "":
		return &RejectedEntry{MessageKey: "errors.validation_failed", Message: "project is required"}
	case e.Hours < 0:
		return &RejectedEntry{MessageKey: "errors.validation_failed", Message: "hours must not be negative"}
	}
	return nil
}

// Delete removes one entry owned by the calling user.
func (s *TimeEntryService) Delete(ctx context.Context, id string) error {
	if err := auth.Authenticated(ctx); err != nil {
		return err
	}
	a := actor.FromContext(ctx)

	s.audit.Record(ctx, "deleteTimeEntry", map[string]string{"id": id})

	if err := s.entries.Delete(ctx, id, a.ID); err != nil {
		return err
	}

	s.publisher.PublishTimeEntryDeleted(ctx, id, a.ID)
	return nil
}

// SuggestTasks ranks the caller's previously logged task names by
// similarity to query, most similar first. Tasks with no resemblance
// at all are dropped.
func (s *TimeEntryService) SuggestTasks(ctx context.Context, query string, limit int) ([]string, error) {
	if err := auth.Authenticated(ctx); err != nil {
		return nil, err
	}
	a := actor.FromContext(ctx)

	tasks, err := s.entries.DistinctTasks(ctx, a.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list tasks for suggestions")
		return nil, errors.Internal("failed to suggest tasks")
	}

	type scored struct {
		task  string
		score float64
	}
	ranked := make([]scored, 0, len(tasks))
	for _, task := range tasks {
		score := similarity.Similarity(query, task)
		if score > 0 {
			ranked = append(ranked, scored{task: task, score: score})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].task < ranked[j].task
	})

	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	suggestions := make([]string, len(ranked))
	for i, r := range ranked {
		suggestions[i] = r.task
	}
	return suggestions, nil
}

// mergeBatch collapses entries sharing (projectId, task, date, userId)
// into one entry with summed hours, preserving first-seen order.
func mergeBatch(batch []domain.TimeEntry) []domain.TimeEntry {
	type key struct {
		projectID string
		task      string
		date      time.Time
		userID    string
	}

	index := map[key]int{}
	merged := make([]domain.TimeEntry, 0, len(batch))
	for _, e := range batch {
		k := key{projectID: e.ProjectID, task: e.Task, date: e.Date, userID: e.UserID}
		if i, ok := index[k]; ok {
			merged[i].Hours += e.Hours
			continue
		}
		index[k] = len(merged)
		merged = append(merged, e)
	}
	return merged
}

// normalizeDay truncates a timestamp to its UTC calendar day.
func normalizeDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
