package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	UsersCollection          = "users"
	TokenBlacklistCollection = "token_blacklist"
	RefreshTokensCollection  = "refresh_tokens"
	StudentsCollection       = "students"
	StudentPhotosCollection  = "student_photos"
	SeatsCollection          = "seats"
	BookingsCollection       = "bookings"
	PaymentsCollection       = "payments"
	OperationsCollection     = "operations"
	SystemSettingsCollection = "system_settings"

	connectTimeout = 10 * time.Second
)

type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// ConnectDB opens the pooled client and pings it; any failure is returned
// so the caller can treat it as fatal.
func ConnectDB(ctx context.Context, uri, dbName string, log *zap.Logger) (*Mongo, error) {
	log.Info("connecting to MongoDB", zap.String("database", dbName))

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetAppName("readingroom").
		SetMaxPoolSize(20).
		SetMinPoolSize(2).
		SetMaxConnIdleTime(60 * time.Second).
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	log.Info("MongoDB connected")
	return &Mongo{Client: client, DB: client.Database(dbName)}, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, nil)
}

func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.DB.Collection(name)
}

// EnsureIndexes creates the unique and lookup indexes the repositories rely on.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "user_name", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "google_id", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
		TokenBlacklistCollection: {
			{Keys: bson.D{{Key: "token", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "expired_at", Value: 1}}},
		},
		RefreshTokensCollection: {
			{Keys: bson.D{{Key: "token_hash", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		StudentsCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		SeatsCollection: {
			{Keys: bson.D{{Key: "number", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		BookingsCollection: {
			{Keys: bson.D{{Key: "student_id", Value: 1}}},
			{Keys: bson.D{{Key: "seat_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "start_date", Value: -1}}},
		},
		PaymentsCollection: {
			{Keys: bson.D{{Key: "order_id", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
			{Keys: bson.D{{Key: "student_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "paid_at", Value: -1}}},
		},
		OperationsCollection: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
	}

	for coll, models := range specs {
		if _, err := m.DB.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// FindPage runs a filtered, sorted, paginated find and decodes into out
// (a pointer to a slice). It returns the total number of matches.
func FindPage(ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D, offset, limit int, out any) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}

	opts := options.Find().SetSkip(int64(offset)).SetLimit(int64(limit))
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	cur, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return 0, err
	}
	if err := cur.All(ctx, out); err != nil {
		return 0, err
	}
	return total, nil
}
