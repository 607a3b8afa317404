package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	// Time entry events
	EventTimeEntriesSaved = "timesheet.entries.saved"
	EventTimeEntryDeleted = "timesheet.entry.deleted"

	// Report events
	EventReportGenerated = "timesheet.report.generated"

	// Account events
	EventDemoAccountCreated = "timesheet.account.demo_created"
)

// Exchange names
const (
	ExchangeTimesheetEvents = "timesheet.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// TimeEntriesSavedEvent is published after a batch of time entries is persisted
type TimeEntriesSavedEvent struct {
	UserID    string  `json:"user_id"`
	ProjectID string  `json:"project_id"`
	Count     int     `json:"count"`
	Hours     float64 `json:"hours"`
}

// TimeEntryDeletedEvent is published when a time entry is removed
type TimeEntryDeletedEvent struct {
	EntryID string `json:"entry_id"`
	UserID  string `json:"user_id"`
}

// ReportGeneratedEvent is published when an aggregate report runs
type ReportGeneratedEvent struct {
	Report string `json:"report"`
	UserID string `json:"user_id"`
	Period string `json:"period"`
	Rows   int    `json:"rows"`
}

// DemoAccountCreatedEvent is published when an anonymous demo account is bootstrapped
type DemoAccountCreatedEvent struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}
