package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/finance/payments/model"
)

type ListFilter struct {
	StudentID string
	BookingID string
	Status    string
	Method    string
	Offset    int
	Limit     int
}

type PaymentRepository interface {
	Create(ctx context.Context, p *model.PaymentModel) error
	FindByID(ctx context.Context, id string) (*model.PaymentModel, error)
	FindByOrderID(ctx context.Context, orderID string) (*model.PaymentModel, error)
	List(ctx context.Context, f ListFilter) ([]model.PaymentModel, int64, error)
	Update(ctx context.Context, id string, patch bson.M) (*model.PaymentModel, error)
	Delete(ctx context.Context, id string) error
}

type MongoPaymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(m *database.Mongo) *MongoPaymentRepository {
	return &MongoPaymentRepository{coll: m.Collection(database.PaymentsCollection)}
}

func (r *MongoPaymentRepository) Create(ctx context.Context, p *model.PaymentModel) error {
	_, err := r.coll.InsertOne(ctx, p)
	return database.Normalize(err)
}

func (r *MongoPaymentRepository) findOne(ctx context.Context, filter bson.M) (*model.PaymentModel, error) {
	var p model.PaymentModel
	if err := r.coll.FindOne(ctx, filter).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MongoPaymentRepository) FindByID(ctx context.Context, id string) (*model.PaymentModel, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoPaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*model.PaymentModel, error) {
	return r.findOne(ctx, bson.M{"order_id": orderID})
}

func (r *MongoPaymentRepository) List(ctx context.Context, f ListFilter) ([]model.PaymentModel, int64, error) {
	filter := bson.M{}
	if f.StudentID != "" {
		filter["student_id"] = f.StudentID
	}
	if f.BookingID != "" {
		filter["booking_id"] = f.BookingID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Method != "" {
		filter["method"] = f.Method
	}
	out := []model.PaymentModel{}
	total, err := database.FindPage(ctx, r.coll, filter, bson.D{{Key: "created_at", Value: -1}}, f.Offset, f.Limit, &out)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *MongoPaymentRepository) Update(ctx context.Context, id string, patch bson.M) (*model.PaymentModel, error) {
	var p model.PaymentModel
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, database.Normalize(err)
	}
	return &p, nil
}

func (r *MongoPaymentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
