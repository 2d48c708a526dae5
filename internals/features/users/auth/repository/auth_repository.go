// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "readingroom_backend/internals/databases"
	authModel "readingroom_backend/internals/features/users/auth/model"
	userModel "readingroom_backend/internals/features/users/user/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *userModel.UserModel) error
	FindByID(ctx context.Context, id string) (*userModel.UserModel, error)
	FindByIdentifier(ctx context.Context, identifier string) (*userModel.UserModel, error)
	FindByEmail(ctx context.Context, email string) (*userModel.UserModel, error)
	FindByGoogleID(ctx context.Context, googleID string) (*userModel.UserModel, error)
	Update(ctx context.Context, id string, patch bson.M) (*userModel.UserModel, error)
}

type TokenRepository interface {
	BlacklistToken(ctx context.Context, token string, expiredAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	CleanupExpiredBlacklist(ctx context.Context, before time.Time) (int64, error)

	CreateRefreshToken(ctx context.Context, rt *authModel.RefreshTokenModel) error
	// ConsumeRefreshToken deletes an unexpired token and returns it; a token
	// can be consumed once.
	ConsumeRefreshToken(ctx context.Context, hash string, now time.Time) (*authModel.RefreshTokenModel, error)
	DeleteRefreshToken(ctx context.Context, hash string) error
}

/* ====================== USER ====================== */

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(m *database.Mongo) *MongoUserRepository {
	return &MongoUserRepository{coll: m.Collection(database.UsersCollection)}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *userModel.UserModel) error {
	_, err := r.coll.InsertOne(ctx, user)
	return database.Normalize(err)
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := r.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*userModel.UserModel, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*userModel.UserModel, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": identifier},
		bson.M{"user_name": identifier},
	}})
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*userModel.UserModel, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*userModel.UserModel, error) {
	return r.findOne(ctx, bson.M{"google_id": googleID})
}

func (r *MongoUserRepository) Update(ctx context.Context, id string, patch bson.M) (*userModel.UserModel, error) {
	var user userModel.UserModel
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		return nil, database.Normalize(err)
	}
	return &user, nil
}

/* ====================== TOKENS ====================== */

type MongoTokenRepository struct {
	blacklist *mongo.Collection
	refresh   *mongo.Collection
}

func NewTokenRepository(m *database.Mongo) *MongoTokenRepository {
	return &MongoTokenRepository{
		blacklist: m.Collection(database.TokenBlacklistCollection),
		refresh:   m.Collection(database.RefreshTokensCollection),
	}
}

// BlacklistToken is idempotent: blacklisting the same token twice is not an error.
func (r *MongoTokenRepository) BlacklistToken(ctx context.Context, token string, expiredAt time.Time) error {
	_, err := r.blacklist.UpdateOne(ctx,
		bson.M{"token": token},
		bson.M{"$setOnInsert": authModel.TokenBlacklistModel{
			Token:     token,
			ExpiredAt: expiredAt,
			CreatedAt: time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *MongoTokenRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := r.blacklist.CountDocuments(ctx, bson.M{"token": token}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MongoTokenRepository) CleanupExpiredBlacklist(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.blacklist.DeleteMany(ctx, bson.M{"expired_at": bson.M{"$lt": before}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoTokenRepository) CreateRefreshToken(ctx context.Context, rt *authModel.RefreshTokenModel) error {
	_, err := r.refresh.InsertOne(ctx, rt)
	return database.Normalize(err)
}

func (r *MongoTokenRepository) ConsumeRefreshToken(ctx context.Context, hash string, now time.Time) (*authModel.RefreshTokenModel, error) {
	var rt authModel.RefreshTokenModel
	err := r.refresh.FindOneAndDelete(ctx, bson.M{
		"token_hash": hash,
		"expires_at": bson.M{"$gt": now},
	}).Decode(&rt)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *MongoTokenRepository) DeleteRefreshToken(ctx context.Context, hash string) error {
	_, err := r.refresh.DeleteOne(ctx, bson.M{"token_hash": hash})
	return err
}
