package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/finance/payments/model"
	reportRepo "readingroom_backend/internals/features/reports/summary/repository"
)

type Totals struct {
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

type FinancialRepository interface {
	// PaidTotalsByMethod sums paid payments by method; paid_at within [from, to].
	PaidTotalsByMethod(ctx context.Context, from, to *time.Time) (map[string]Totals, error)
	// CountsByStatus counts payments created within [from, to] by status.
	CountsByStatus(ctx context.Context, from, to *time.Time) (reportRepo.StatusCounts, error)
	// PaidTotalsByMonth sums paid payments per calendar month (1..12) of year.
	PaidTotalsByMonth(ctx context.Context, year int) (map[int]Totals, error)
}

type MongoFinancialRepository struct {
	coll *mongo.Collection
}

func NewFinancialRepository(m *database.Mongo) *MongoFinancialRepository {
	return &MongoFinancialRepository{coll: m.Collection(database.PaymentsCollection)}
}

type groupRow[K any] struct {
	ID     K       `bson:"_id"`
	Amount float64 `bson:"amount"`
	Count  int64   `bson:"count"`
}

func sumPipeline(match bson.M, groupKey any) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: groupKey},
			{Key: "amount", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}

func (r *MongoFinancialRepository) PaidTotalsByMethod(ctx context.Context, from, to *time.Time) (map[string]Totals, error) {
	match := bson.M{"status": model.StatusPaid}
	if rng := reportRepo.DateRange(from, to); len(rng) > 0 {
		match["paid_at"] = rng
	}
	cur, err := r.coll.Aggregate(ctx, sumPipeline(match, "$method"))
	if err != nil {
		return nil, err
	}
	var rows []groupRow[string]
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make(map[string]Totals, len(rows))
	for _, row := range rows {
		out[row.ID] = Totals{Amount: row.Amount, Count: row.Count}
	}
	return out, nil
}

func (r *MongoFinancialRepository) CountsByStatus(ctx context.Context, from, to *time.Time) (reportRepo.StatusCounts, error) {
	match := bson.M{}
	if rng := reportRepo.DateRange(from, to); len(rng) > 0 {
		match["created_at"] = rng
	}
	return reportRepo.CountByField(ctx, r.coll, match, "status")
}

func (r *MongoFinancialRepository) PaidTotalsByMonth(ctx context.Context, year int) (map[int]Totals, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	match := bson.M{
		"status":  model.StatusPaid,
		"paid_at": bson.M{"$gte": start, "$lt": end},
	}
	cur, err := r.coll.Aggregate(ctx, sumPipeline(match, bson.D{{Key: "$month", Value: "$paid_at"}}))
	if err != nil {
		return nil, err
	}
	var rows []groupRow[int]
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make(map[int]Totals, len(rows))
	for _, row := range rows {
		out[row.ID] = Totals{Amount: row.Amount, Count: row.Count}
	}
	return out, nil
}
