package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/pkg/database"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
)

// UserRepository handles user persistence
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) collection() *mongo.Collection {
	return r.db.Collection(database.CollectionUsers)
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFound("user")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByName gets a user by account name
func (r *UserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	var user domain.User
	err := r.collection().FindOne(ctx, bson.M{"name": name}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFound("user")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return errors.Conflict("user name already taken")
	}
	return err
}
