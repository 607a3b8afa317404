// Package events publishes timesheet domain events.
package events

import (
	"context"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
	"github.com/clockwerk/clockwerk-backend/pkg/messaging"
)

// TimesheetEventPublisher publishes timesheet-related events
type TimesheetEventPublisher struct {
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewTimesheetEventPublisher creates a new timesheet event publisher
func NewTimesheetEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*TimesheetEventPublisher, error) {
	publisher, err := messaging.NewPublisher(rmq, messaging.ExchangeTimesheetEvents, "timesheet-server", log)
	if err != nil {
		return nil, err
	}

	return &TimesheetEventPublisher{
		publisher: publisher,
		logger:    log.WithComponent("events"),
	}, nil
}

// PublishTimeEntriesSaved publishes an event for a persisted entry batch
func (p *TimesheetEventPublisher) PublishTimeEntriesSaved(ctx context.Context, entries []domain.TimeEntry) {
	if len(entries) == 0 {
		return
	}

	var hours float64
	for _, e := range entries {
		hours += e.Hours
	}

	data := messaging.TimeEntriesSavedEvent{
		UserID:    entries[0].UserID,
		ProjectID: entries[0].ProjectID,
		Count:     len(entries),
		Hours:     hours,
	}

	if err := p.publisher.Publish(ctx, messaging.EventTimeEntriesSaved, data); err != nil {
		p.logger.Error().Err(err).Str("user_id", data.UserID).Msg("failed to publish entries saved event")
	}
}

// PublishTimeEntryDeleted publishes a time entry deleted event
func (p *TimesheetEventPublisher) PublishTimeEntryDeleted(ctx context.Context, entryID, userID string) {
	data := messaging.TimeEntryDeletedEvent{
		EntryID: entryID,
		UserID:  userID,
	}

	if err := p.publisher.Publish(ctx, messaging.EventTimeEntryDeleted, data); err != nil {
		p.logger.Error().Err(err).Str("entry_id", entryID).Msg("failed to publish entry deleted event")
	}
}

// PublishReportGenerated publishes a report generated event
func (p *TimesheetEventPublisher) PublishReportGenerated(ctx context.Context, report, userID, period string, rows int) {
	data := messaging.ReportGeneratedEvent{
		Report: report,
		UserID: userID,
		Period: period,
		Rows:   rows,
	}

	if err := p.publisher.Publish(ctx, messaging.EventReportGenerated, data); err != nil {
		p.logger.Error().Err(err).Str("report", report).Msg("failed to publish report generated event")
	}
}

// PublishDemoAccountCreated publishes a demo account created event
func (p *TimesheetEventPublisher) PublishDemoAccountCreated(ctx context.Context, user *domain.User) {
	data := messaging.DemoAccountCreatedEvent{
		UserID: user.ID,
		Name:   user.Name,
	}

	if err := p.publisher.Publish(ctx, messaging.EventDemoAccountCreated, data); err != nil {
		p.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to publish demo account created event")
	}
}
