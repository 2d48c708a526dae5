package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/system/operations/model"
)

type ListFilter struct {
	Method string
	UserID string
	Offset int
	Limit  int
}

type OperationRepository interface {
	Create(ctx context.Context, op *model.OperationModel) error
	FindByID(ctx context.Context, id string) (*model.OperationModel, error)
	List(ctx context.Context, f ListFilter) ([]model.OperationModel, int64, error)
}

type MongoOperationRepository struct {
	coll *mongo.Collection
}

func NewOperationRepository(m *database.Mongo) *MongoOperationRepository {
	return &MongoOperationRepository{coll: m.Collection(database.OperationsCollection)}
}

func (r *MongoOperationRepository) Create(ctx context.Context, op *model.OperationModel) error {
	_, err := r.coll.InsertOne(ctx, op)
	return database.Normalize(err)
}

func (r *MongoOperationRepository) FindByID(ctx context.Context, id string) (*model.OperationModel, error) {
	var op model.OperationModel
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&op); err != nil {
		return nil, err
	}
	return &op, nil
}

func (r *MongoOperationRepository) List(ctx context.Context, f ListFilter) ([]model.OperationModel, int64, error) {
	filter := bson.M{}
	if f.Method != "" {
		filter["method"] = f.Method
	}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	out := []model.OperationModel{}
	total, err := database.FindPage(ctx, r.coll, filter, bson.D{{Key: "created_at", Value: -1}}, f.Offset, f.Limit, &out)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
