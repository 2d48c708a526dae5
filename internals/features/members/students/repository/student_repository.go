package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/members/students/model"
)

type ListFilter struct {
	Q      string
	Status string
	Offset int
	Limit  int
}

type StudentRepository interface {
	Create(ctx context.Context, s *model.StudentModel) error
	FindByID(ctx context.Context, id string) (*model.StudentModel, error)
	List(ctx context.Context, f ListFilter) ([]model.StudentModel, int64, error)
	Update(ctx context.Context, id string, patch bson.M) (*model.StudentModel, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type PhotoRepository interface {
	Save(ctx context.Context, p *model.StudentPhotoModel) error
	Find(ctx context.Context, studentID string) (*model.StudentPhotoModel, error)
	Delete(ctx context.Context, studentID string) error
}

/* ====================== STUDENTS ====================== */

type MongoStudentRepository struct {
	coll *mongo.Collection
}

func NewStudentRepository(m *database.Mongo) *MongoStudentRepository {
	return &MongoStudentRepository{coll: m.Collection(database.StudentsCollection)}
}

func (r *MongoStudentRepository) Create(ctx context.Context, s *model.StudentModel) error {
	_, err := r.coll.InsertOne(ctx, s)
	return database.Normalize(err)
}

func (r *MongoStudentRepository) FindByID(ctx context.Context, id string) (*model.StudentModel, error) {
	var s model.StudentModel
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MongoStudentRepository) List(ctx context.Context, f ListFilter) ([]model.StudentModel, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Q != "" {
		re := containsFold(f.Q)
		filter["$or"] = bson.A{
			bson.M{"full_name": re},
			bson.M{"email": re},
			bson.M{"phone": re},
		}
	}
	out := []model.StudentModel{}
	total, err := database.FindPage(ctx, r.coll, filter, bson.D{{Key: "created_at", Value: -1}}, f.Offset, f.Limit, &out)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *MongoStudentRepository) Update(ctx context.Context, id string, patch bson.M) (*model.StudentModel, error) {
	var s model.StudentModel
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

func (r *MongoStudentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoStudentRepository) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

// containsFold matches q anywhere in the field, ignoring case.
func containsFold(q string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}
}

/* ====================== PHOTOS ====================== */

type MongoPhotoRepository struct {
	coll *mongo.Collection
}

func NewPhotoRepository(m *database.Mongo) *MongoPhotoRepository {
	return &MongoPhotoRepository{coll: m.Collection(database.StudentPhotosCollection)}
}

func (r *MongoPhotoRepository) Save(ctx context.Context, p *model.StudentPhotoModel) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.StudentID}, p, options.Replace().SetUpsert(true))
	return err
}

func (r *MongoPhotoRepository) Find(ctx context.Context, studentID string) (*model.StudentPhotoModel, error) {
	var p model.StudentPhotoModel
	if err := r.coll.FindOne(ctx, bson.M{"_id": studentID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MongoPhotoRepository) Delete(ctx context.Context, studentID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": studentID})
	return err
}
