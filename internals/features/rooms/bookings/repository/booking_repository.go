package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/rooms/bookings/model"
)

type ListFilter struct {
	StudentID string
	SeatID    string
	Status    string
	Offset    int
	Limit     int
}

type BookingRepository interface {
	Create(ctx context.Context, b *model.BookingModel) error
	FindByID(ctx context.Context, id string) (*model.BookingModel, error)
	List(ctx context.Context, f ListFilter) ([]model.BookingModel, int64, error)
	Update(ctx context.Context, id string, patch bson.M) (*model.BookingModel, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type MongoBookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(m *database.Mongo) *MongoBookingRepository {
	return &MongoBookingRepository{coll: m.Collection(database.BookingsCollection)}
}

func (r *MongoBookingRepository) Create(ctx context.Context, b *model.BookingModel) error {
	_, err := r.coll.InsertOne(ctx, b)
	return database.Normalize(err)
}

func (r *MongoBookingRepository) FindByID(ctx context.Context, id string) (*model.BookingModel, error) {
	var b model.BookingModel
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *MongoBookingRepository) List(ctx context.Context, f ListFilter) ([]model.BookingModel, int64, error) {
	filter := bson.M{}
	if f.StudentID != "" {
		filter["student_id"] = f.StudentID
	}
	if f.SeatID != "" {
		filter["seat_id"] = f.SeatID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	out := []model.BookingModel{}
	total, err := database.FindPage(ctx, r.coll, filter, bson.D{{Key: "start_date", Value: -1}}, f.Offset, f.Limit, &out)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *MongoBookingRepository) Update(ctx context.Context, id string, patch bson.M) (*model.BookingModel, error) {
	var b model.BookingModel
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		return nil, database.Normalize(err)
	}
	return &b, nil
}

func (r *MongoBookingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepository) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}
