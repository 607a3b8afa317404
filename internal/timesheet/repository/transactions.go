package repository

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/pkg/database"
)

// TransactionRepository handles transaction record persistence
type TransactionRepository struct {
	db *database.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) collection() *mongo.Collection {
	return r.db.Collection(database.CollectionTransactions)
}

// Insert writes a transaction record. This satisfies the audit
// recorder contract.
func (r *TransactionRepository) Insert(ctx context.Context, tx *domain.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	_, err := r.collection().InsertOne(ctx, tx)
	return err
}

// TransactionListOptions narrow and page a transaction listing.
type TransactionListOptions struct {
	Method string
	UserID string
	Page   int
	Limit  int64
}

// List returns transaction records, newest first, with the total count
// of matching records.
func (r *TransactionRepository) List(ctx context.Context, opts TransactionListOptions) ([]domain.Transaction, int64, error) {
	filter := bson.M{}
	if opts.Method != "" {
		filter["method"] = opts.Method
	}
	if opts.UserID != "" {
		filter["user._id"] = opts.UserID
	}

	total, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if opts.Page > 1 && opts.Limit > 0 {
		findOpts.SetSkip(int64(opts.Page-1) * opts.Limit)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := r.collection().Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	records := []domain.Transaction{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
