package service

import (
	"context"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/auth"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/internal/timesheet/repository"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
	"github.com/clockwerk/clockwerk-backend/pkg/logger"
)

// TransactionStore lists persisted transaction records.
type TransactionStore interface {
	List(ctx context.Context, opts repository.TransactionListOptions) ([]domain.Transaction, int64, error)
}

// TransactionService exposes the audit trail to administrators
type TransactionService struct {
	transactions TransactionStore
	logger       *logger.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactions TransactionStore, log *logger.Logger) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		logger:       log,
	}
}

// List returns transaction records, newest first.
func (s *TransactionService) List(ctx context.Context, opts repository.TransactionListOptions) ([]domain.Transaction, int64, error) {
	if err := auth.Admin(ctx); err != nil {
		return nil, 0, err
	}

	records, total, err := s.transactions.List(ctx, opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list transactions")
		return nil, 0, errors.Internal("failed to list transactions")
	}
	return records, total, nil
}
