// Package repository implements document store persistence for the
// timesheet domain.
package repository

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/report"
	"github.com/clockwerk/clockwerk-backend/pkg/database"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
)

// TimeEntryRepository handles time entry persistence
type TimeEntryRepository struct {
	db *database.DB
}

// NewTimeEntryRepository creates a new time entry repository
func NewTimeEntryRepository(db *database.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

func (r *TimeEntryRepository) collection() *mongo.Collection {
	return r.db.Collection(database.CollectionTimeEntries)
}

// InsertMany persists a batch of time entries, assigning IDs as needed.
func (r *TimeEntryRepository) InsertMany(ctx context.Context, entries []domain.TimeEntry) ([]domain.TimeEntry, error) {
	if len(entries) == 0 {
		return entries, nil
	}

	docs := make([]interface{}, 0, len(entries))
	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.New().String()
		}
		docs = append(docs, entries[i])
	}

	if _, err := r.collection().InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes a single entry owned by userID.
func (r *TimeEntryRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.NotFound("time entry")
	}
	return nil
}

// Find returns raw entries matching filter, honoring sort and paging options.
func (r *TimeEntryRepository) Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.TimeEntry, error) {
	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []domain.TimeEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of entries matching filter, for result paging.
func (r *TimeEntryRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return r.collection().CountDocuments(ctx, filter)
}

// TotalHours runs the per-project hour aggregation.
func (r *TimeEntryRepository) TotalHours(ctx context.Context, pipeline mongo.Pipeline) ([]report.ProjectHoursRow, error) {
	rows := []report.ProjectHoursRow{}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DailyHours runs the per-day hour aggregation.
func (r *TimeEntryRepository) DailyHours(ctx context.Context, pipeline mongo.Pipeline) ([]report.DailyHoursRow, error) {
	rows := []report.DailyHoursRow{}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// WorkingTime runs the per-user daily total aggregation.
func (r *TimeEntryRepository) WorkingTime(ctx context.Context, pipeline mongo.Pipeline) ([]report.WorkingTimeRow, error) {
	rows := []report.WorkingTimeRow{}
	if err := r.aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *TimeEntryRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}

// DistinctTasks lists the distinct task names a user has logged.
func (r *TimeEntryRepository) DistinctTasks(ctx context.Context, userID string) ([]string, error) {
	values, err := r.collection().Distinct(ctx, "task", bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}

	tasks := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			tasks = append(tasks, s)
		}
	}
	return tasks, nil
}
