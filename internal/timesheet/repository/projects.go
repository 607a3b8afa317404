package repository

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/domain"
	"github.com/clockwerk/clockwerk-backend/pkg/database"
	"github.com/clockwerk/clockwerk-backend/pkg/errors"
)

// ProjectRepository handles project persistence
type ProjectRepository struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *database.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) collection() *mongo.Collection {
	return r.db.Collection(database.CollectionProjects)
}

// Find returns projects matching filter. This satisfies the project
// finder contract of the scope resolver.
func (r *ProjectRepository) Find(ctx context.Context, filter bson.M) ([]domain.Project, error) {
	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	projects := []domain.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetByID gets a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	var project domain.Project
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, errors.NotFound("project")
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	_, err := r.collection().InsertOne(ctx, project)
	return err
}
