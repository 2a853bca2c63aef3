package importer

import (
	"context"
	"errors"

	"go-backoffice/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrJobNotFound = errors.New("import job not found")

type ImportRepository interface {
	Create(ctx context.Context, job *ImportJob) error
	Get(ctx context.Context, id string) (*ImportJob, error)
	FindRecent(ctx context.Context, limit int64) ([]ImportJob, error)
}

type ImportRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewImportRepository(mongodb *database.MongodbDB) ImportRepository {
	return &ImportRepositoryImpl{
		Collection: mongodb.DB.Collection("import_jobs"),
	}
}

func (r *ImportRepositoryImpl) Create(ctx context.Context, job *ImportJob) error {
	if job.ID.IsZero() {
		job.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, job)
	return err
}

func (r *ImportRepositoryImpl) Get(ctx context.Context, id string) (*ImportJob, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrJobNotFound
	}

	var job ImportJob
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&job)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *ImportRepositoryImpl) FindRecent(ctx context.Context, limit int64) ([]ImportJob, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []ImportJob
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
