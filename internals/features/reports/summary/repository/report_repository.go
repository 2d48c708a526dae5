package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	database "readingroom_backend/internals/databases"
)

// StatusCounts maps a status value to its document count.
type StatusCounts map[string]int64

type ReportRepository interface {
	SeatCountsByStatus(ctx context.Context) (StatusCounts, error)
	BookingCountsByStatus(ctx context.Context, from, to *time.Time) (StatusCounts, error)
	StudentCountsByStatus(ctx context.Context) (StatusCounts, error)
}

type MongoReportRepository struct {
	seats    *mongo.Collection
	bookings *mongo.Collection
	students *mongo.Collection
}

func NewReportRepository(m *database.Mongo) *MongoReportRepository {
	return &MongoReportRepository{
		seats:    m.Collection(database.SeatsCollection),
		bookings: m.Collection(database.BookingsCollection),
		students: m.Collection(database.StudentsCollection),
	}
}

func (r *MongoReportRepository) SeatCountsByStatus(ctx context.Context) (StatusCounts, error) {
	return CountByField(ctx, r.seats, bson.M{}, "status")
}

func (r *MongoReportRepository) StudentCountsByStatus(ctx context.Context) (StatusCounts, error) {
	return CountByField(ctx, r.students, bson.M{}, "status")
}

// BookingCountsByStatus counts bookings whose start_date falls in [from, to].
func (r *MongoReportRepository) BookingCountsByStatus(ctx context.Context, from, to *time.Time) (StatusCounts, error) {
	match := bson.M{}
	if rng := DateRange(from, to); len(rng) > 0 {
		match["start_date"] = rng
	}
	return CountByField(ctx, r.bookings, match, "status")
}

// CountByField groups the matched documents by field and counts each group.
func CountByField(ctx context.Context, coll *mongo.Collection, match bson.M, field string) (StatusCounts, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := StatusCounts{}
	for _, row := range rows {
		out[row.ID] = row.Count
	}
	return out, nil
}

// DateRange builds a {$gte,$lte} filter; empty when both bounds are nil.
func DateRange(from, to *time.Time) bson.M {
	rng := bson.M{}
	if from != nil {
		rng["$gte"] = *from
	}
	if to != nil {
		rng["$lte"] = *to
	}
	return rng
}
