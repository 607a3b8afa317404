package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clockwerk/clockwerk-backend/pkg/database"
)

// SettingsRepository reads setting values from the document store. It
// backs the settings provider: globals live in their own collection as
// {name, value} documents, user overrides live in a settings
// subdocument on the user.
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GlobalSetting returns the process-wide value for key, if present.
func (r *SettingsRepository) GlobalSetting(ctx context.Context, key string) (any, bool, error) {
	var doc struct {
		Value any `bson:"value"`
	}
	err := r.db.Collection(database.CollectionGlobals).
		FindOne(ctx, bson.M{"name": key}).
		Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc.Value, true, nil
}

// UserSetting returns the per-user override for key, if present.
func (r *SettingsRepository) UserSetting(ctx context.Context, userID, key string) (any, bool, error) {
	var doc struct {
		Settings bson.M `bson:"settings"`
	}
	err := r.db.Collection(database.CollectionUsers).
		FindOne(ctx, bson.M{"_id": userID},
			options.FindOne().SetProjection(bson.M{"settings." + key: 1})).
		Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	v, ok := doc.Settings[key]
	return v, ok, nil
}
