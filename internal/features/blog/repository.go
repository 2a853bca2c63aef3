package blog

import (
	"context"
	"errors"

	"go-backoffice/internal/common/models"
	"go-backoffice/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("blog post not found")

type BlogRepository interface {
	Create(ctx context.Context, b *Blog) error
	FindByID(ctx context.Context, id string) (*Blog, error)
	FindBySlug(ctx context.Context, slug string) (*Blog, error)
	List(ctx context.Context, q *models.ListQuery) ([]Blog, int64, error)
	All(ctx context.Context) ([]Blog, error)
	Update(ctx context.Context, id string, patch bson.M) (*Blog, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type BlogRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewBlogRepository(mongodb *database.MongodbDB) BlogRepository {
	return &BlogRepositoryImpl{
		Collection: mongodb.DB.Collection("blogs"),
	}
}

func (r *BlogRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *BlogRepositoryImpl) Create(ctx context.Context, b *Blog) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, b)
	return err
}

func (r *BlogRepositoryImpl) FindByID(ctx context.Context, id string) (*Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var b Blog
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BlogRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*Blog, error) {
	var b Blog
	err := r.Collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BlogRepositoryImpl) List(ctx context.Context, q *models.ListQuery) ([]Blog, int64, error) {
	q.Normalize()

	filter := bson.M{}
	if q.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": q.Search, "$options": "i"}},
			bson.M{"content": bson.M{"$regex": q.Search, "$options": "i"}},
		}
	}
	if status, ok := q.Filters["status"]; ok {
		filter["status"] = status
	}
	if tag, ok := q.Filters["tag"]; ok {
		filter["tags"] = tag
	}

	total, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	sort := "created_at"
	if q.Sort != "" {
		sort = q.Sort
	}
	opts := options.Find().
		SetSort(bson.D{{Key: sort, Value: q.SortOrder()}}).
		SetSkip(q.Skip()).
		SetLimit(int64(q.PerPage))

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var blogs []Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// All returns every post, used by the exporters
func (r *BlogRepositoryImpl) All(ctx context.Context) ([]Blog, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var blogs []Blog
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *BlogRepositoryImpl) Update(ctx context.Context, id string, patch bson.M) (*Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var b Blog
	err = r.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BlogRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
