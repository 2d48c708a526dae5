package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/rooms/seats/model"
)

type ListFilter struct {
	Status  string
	Section string
	Type    string
	Offset  int
	Limit   int
}

type SeatRepository interface {
	Create(ctx context.Context, s *model.SeatModel) error
	FindByID(ctx context.Context, id string) (*model.SeatModel, error)
	List(ctx context.Context, f ListFilter) ([]model.SeatModel, int64, error)
	Update(ctx context.Context, id string, patch bson.M) (*model.SeatModel, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type MongoSeatRepository struct {
	coll *mongo.Collection
}

func NewSeatRepository(m *database.Mongo) *MongoSeatRepository {
	return &MongoSeatRepository{coll: m.Collection(database.SeatsCollection)}
}

func (r *MongoSeatRepository) Create(ctx context.Context, s *model.SeatModel) error {
	_, err := r.coll.InsertOne(ctx, s)
	return database.Normalize(err)
}

func (r *MongoSeatRepository) FindByID(ctx context.Context, id string) (*model.SeatModel, error) {
	var s model.SeatModel
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MongoSeatRepository) List(ctx context.Context, f ListFilter) ([]model.SeatModel, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Section != "" {
		filter["section"] = f.Section
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	out := []model.SeatModel{}
	total, err := database.FindPage(ctx, r.coll, filter, bson.D{{Key: "number", Value: 1}}, f.Offset, f.Limit, &out)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *MongoSeatRepository) Update(ctx context.Context, id string, patch bson.M) (*model.SeatModel, error) {
	var s model.SeatModel
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&s)
	if err != nil {
		return nil, database.Normalize(err)
	}
	return &s, nil
}

func (r *MongoSeatRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoSeatRepository) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}
