// Package audit writes a transaction record for every invoked
// operation while transaction logging is switched on globally.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/settings"
	"github.com/clockwerk/clockwerk-backend/pkg/actor"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
)

// Recorder persists transaction records.
type Recorder interface {
	Insert(ctx context.Context, tx *domain.Transaction) error
}

// Logger records operations before they run. Recording is best-effort:
// a failing recorder is logged and never blocks the primary operation.
type Logger struct {
	recorder Recorder
	settings *settings.Provider
	log      *logger.Logger

	// now is replaceable in tests
	now func() time.Time
}

// NewLogger creates an audit logger.
func NewLogger(recorder Recorder, st *settings.Provider, log *logger.Logger) *Logger {
	return &Logger{
		recorder: recorder,
		settings: st,
		log:      log.WithComponent("audit"),
		now:      time.Now,
	}
}

// Record persists one transaction for the operation named method with
// the given arguments, when the enableTransactions global setting is on.
func (l *Logger) Record(ctx context.Context, method string, args any) {
	if !l.settings.Bool(ctx, "", domain.SettingEnableTransactions) {
		return
	}

	a := actor.FromContext(ctx)
	if a == nil {
		return
	}

	log := l.log.WithOperation(method)

	serialized, err := json.Marshal(args)
	if err != nil {
		log.Warn().Err(err).Msg("failed to serialize transaction args")
		serialized = []byte("{}")
	}

	tx := &domain.Transaction{
		User: domain.TransactionUser{
			ID:     a.ID,
			Name:   a.Name,
			Emails: a.Emails,
			Admin:  a.Admin,
		},
		Method:    method,
		Args:      string(serialized),
		Timestamp: l.now().UTC(),
	}

	if err := l.recorder.Insert(ctx, tx); err != nil {
		log.Warn().Err(err).Msg("failed to record transaction")
	}
}
