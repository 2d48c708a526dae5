package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/system/settings/model"
)

type SettingsRepository interface {
	// Get returns the stored settings, or the defaults when none are stored yet.
	Get(ctx context.Context) (*model.SettingsModel, error)
	Update(ctx context.Context, patch bson.M) (*model.SettingsModel, error)
	// EnsureDefaults inserts the default document if it is missing.
	EnsureDefaults(ctx context.Context) error
}

type MongoSettingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(m *database.Mongo) *MongoSettingsRepository {
	return &MongoSettingsRepository{coll: m.Collection(database.SystemSettingsCollection)}
}

func (r *MongoSettingsRepository) Get(ctx context.Context) (*model.SettingsModel, error) {
	var s model.SettingsModel
	err := r.coll.FindOne(ctx, bson.M{"_id": model.DefaultID}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return model.Defaults(time.Now().UTC()), nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MongoSettingsRepository) Update(ctx context.Context, patch bson.M) (*model.SettingsModel, error) {
	defaults := model.Defaults(time.Now().UTC())
	onInsert := bson.M{}
	for k, v := range map[string]any{
		"room_name":    defaults.RoomName,
		"opening_time": defaults.OpeningTime,
		"closing_time": defaults.ClosingTime,
		"currency":     defaults.Currency,
	} {
		if _, set := patch[k]; !set {
			onInsert[k] = v
		}
	}
	update := bson.M{"$set": patch}
	if len(onInsert) > 0 {
		update["$setOnInsert"] = onInsert
	}

	var s model.SettingsModel
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": model.DefaultID},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MongoSettingsRepository) EnsureDefaults(ctx context.Context) error {
	doc := model.Defaults(time.Now().UTC())
	doc.ID = "" // taken from the filter on insert
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": model.DefaultID},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	return err
}
