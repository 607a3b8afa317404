package report

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/period"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/scope"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/settings"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
)

// Builder turns report requests into pipelines and find queries. Every
// build method is a pure translation: identical inputs always produce
// an identical specification, and an empty scope is a valid query, not
// an error.
type Builder struct {
	scope    *scope.Resolver
	settings *settings.Provider

	// Now supplies the reference time for named periods; replaceable in tests.
	Now func() time.Time
}

// NewBuilder creates a report query builder.
func NewBuilder(sc *scope.Resolver, st *settings.Provider) *Builder {
	return &Builder{
		scope:    sc,
		settings: st,
		Now:      time.Now,
	}
}

// projectScope resolves the project IDs the request may touch. A
// concrete customer selection takes precedence over the project selector.
func (b *Builder) projectScope(ctx context.Context, userID string, req Request) ([]string, error) {
	customer := selectorOrAll(req.Customer)
	if !customer.All {
		return b.scope.ByCustomer(ctx, userID, customer)
	}
	return b.scope.ByProjectIDs(ctx, userID, selectorOrAll(req.Project))
}

// dateRange resolves the period selection. nil means no date clause.
func (b *Builder) dateRange(ctx context.Context, userID string, req Request) (*domain.Range, error) {
	switch req.Period {
	case period.Custom:
		if req.Dates == nil {
			return nil, errors.BadRequest("custom period requires dates")
		}
		return req.Dates, nil
	case "", period.All:
		return nil, nil
	default:
		weekStart := time.Weekday(b.settings.Int(ctx, userID, domain.SettingStartOfWeek))
		r, err := period.ResolveWithWeekStart(req.Period, b.Now(), weekStart)
		if err != nil {
			return nil, err
		}
		return &r, nil
	}
}

// matchFilter assembles the shared project+date+user match document.
func (b *Builder) matchFilter(ctx context.Context, userID string, req Request) (bson.M, error) {
	projectIDs, err := b.projectScope(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	match := bson.M{
		"projectId": bson.M{"$in": projectIDs},
	}

	dates, err := b.dateRange(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	if dates != nil {
		match["date"] = bson.M{"$gte": dates.Start, "$lte": dates.End}
	}

	user := selectorOrAll(req.User)
	if !user.All {
		if user.IsSingle() {
			match["userId"] = user.IDs[0]
		} else {
			match["userId"] = bson.M{"$in": user.IDs}
		}
	}

	return match, nil
}

// TotalHoursForPeriod aggregates summed hours per (user, project) over
// the selected period. Stored hour values may be strings, so hours is
// cast to decimal before matching and summing.
//
// The trailing sort references a date field the $group stage does not
// retain; the stage is emitted anyway to keep the query specification
// stable (the engine treats the missing key as constant).
func (b *Builder) TotalHoursForPeriod(ctx context.Context, userID string, req Request) (mongo.Pipeline, error) {
	match, err := b.matchFilter(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$addFields", Value: bson.M{
			"hours": bson.M{"$toDecimal": "$hours"},
		}}},
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"userId":    "$userId",
				"projectId": "$projectId",
			},
			"hours": bson.M{"$sum": "$hours"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"date": -1}}},
		bson.D{{Key: "$skip", Value: skipFor(req.Page, req.Limit)}},
	}

	if req.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: req.Limit}})
	}

	return pipeline, nil
}

// DailyHours aggregates summed hours per (user, project, day).
func (b *Builder) DailyHours(ctx context.Context, userID string, req Request) (mongo.Pipeline, error) {
	match, err := b.matchFilter(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"userId":    "$userId",
				"projectId": "$projectId",
				"date":      "$date",
			},
			"hours": bson.M{"$sum": "$hours"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"date": -1}}},
		bson.D{{Key: "$skip", Value: skipFor(req.Page, req.Limit)}},
	}

	if req.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: req.Limit}})
	}

	return pipeline, nil
}

// WorkingTime aggregates total logged hours per (user, day), the input
// rows for the work schedule mapper. Stage order follows the original
// report: $skip is applied before $sort.
func (b *Builder) WorkingTime(ctx context.Context, userID string, req Request) (mongo.Pipeline, error) {
	match, err := b.matchFilter(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"userId": "$userId",
				"date":   "$date",
			},
			"totalTime": bson.M{"$sum": "$hours"},
		}}},
		bson.D{{Key: "$skip", Value: skipFor(req.Page, req.Limit)}},
		bson.D{{Key: "$sort", Value: bson.M{"date": -1}}},
	}

	if req.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: req.Limit}})
	}

	return pipeline, nil
}

// DetailedTimeEntries builds a find query plus options instead of a
// pipeline: scope and period as the base filter, optional escaped
// regex search on task, optional translated filters ANDed on top.
func (b *Builder) DetailedTimeEntries(ctx context.Context, userID string, req Request) (bson.M, *options.FindOptions, error) {
	base, err := b.matchFilter(ctx, userID, req)
	if err != nil {
		return nil, nil, err
	}

	if req.Search != "" {
		// user input never reaches the engine as regex syntax
		base["task"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(req.Search),
			Options: "i",
		}
	}

	query := base
	if !req.Filters.Empty() {
		var customerIDs []string
		if req.Filters.Customer != nil {
			customerIDs, err = b.scope.ByCustomer(ctx, userID, *req.Filters.Customer)
			if err != nil {
				return nil, nil, err
			}
		}

		dateLayout := b.settings.String(ctx, userID, domain.SettingDateFormat)
		translated, err := req.Filters.translate(customerIDs, dateLayout)
		if err != nil {
			return nil, nil, err
		}

		query = bson.M{"$and": bson.A{base, translated}}
	}

	field, order := sortSpec(req.Sort)
	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: order}}).
		SetSkip(skipFor(req.Page, req.Limit))
	if req.Limit > 0 {
		opts.SetLimit(req.Limit)
	}

	return query, opts, nil
}
