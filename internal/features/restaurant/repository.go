package restaurant

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

var ErrNotFound = errors.New("restaurant not found")

type RestaurantRepository interface {
	Create(ctx context.Context, rst *Restaurant) error
	FindByID(ctx context.Context, id string) (*Restaurant, error)
	FindBySlug(ctx context.Context, slug string) (*Restaurant, error)
	FindByStatus(ctx context.Context, status string, limit int64) ([]Restaurant, error)
	FindFeatured(ctx context.Context, limit int64) ([]Restaurant, error)
	FindNearby(ctx context.Context, lng, lat, maxMeters float64, limit int64) ([]Restaurant, error)
	List(ctx context.Context, q *models.ListQuery) ([]Restaurant, int64, error)
	Update(ctx context.Context, id string, patch bson.M) (*Restaurant, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type RestaurantRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewRestaurantRepository(mongodb *database.MongodbDB) RestaurantRepository {
	return &RestaurantRepositoryImpl{
		Collection: mongodb.DB.Collection("restaurants"),
	}
}

func (r *RestaurantRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "location", Value: "2dsphere"}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "featured", Value: 1}},
		},
	})
	return err
}

func (r *RestaurantRepositoryImpl) Create(ctx context.Context, rst *Restaurant) error {
	if rst.ID.IsZero() {
		rst.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, rst)
	return err
}

func (r *RestaurantRepositoryImpl) FindByID(ctx context.Context, id string) (*Restaurant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var rst Restaurant
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&rst)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rst, nil
}

func (r *RestaurantRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*Restaurant, error) {
	var rst Restaurant
	err := r.Collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&rst)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rst, nil
}

func (r *RestaurantRepositoryImpl) FindByStatus(ctx context.Context, status string, limit int64) ([]Restaurant, error) {
	return r.find(ctx, bson.M{"status": status}, limit)
}

func (r *RestaurantRepositoryImpl) FindFeatured(ctx context.Context, limit int64) ([]Restaurant, error) {
	return r.find(ctx, bson.M{"featured": true, "status": StatusOpen}, limit)
}

// FindNearby returns open restaurants within maxMeters of the given point,
// closest first.
func (r *RestaurantRepositoryImpl) FindNearby(ctx context.Context, lng, lat, maxMeters float64, limit int64) ([]Restaurant, error) {
	filter := bson.M{
		"status": StatusOpen,
		"location": bson.M{
			"$nearSphere": bson.M{
				"$geometry":    NewGeoPoint(lng, lat),
				"$maxDistance": maxMeters,
			},
		},
	}

	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var restaurants []Restaurant
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *RestaurantRepositoryImpl) find(ctx context.Context, filter bson.M, limit int64) ([]Restaurant, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var restaurants []Restaurant
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *RestaurantRepositoryImpl) List(ctx context.Context, q *models.ListQuery) ([]Restaurant, int64, error) {
	q.Normalize()

	filter := bson.M{}
	if q.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": q.Search, "$options": "i"}},
			bson.M{"city": bson.M{"$regex": q.Search, "$options": "i"}},
		}
	}
	if status, ok := q.Filters["status"]; ok {
		filter["status"] = status
	}
	if city, ok := q.Filters["city"]; ok {
		filter["city"] = city
	}
	if cuisine, ok := q.Filters["cuisine"]; ok {
		filter["cuisines"] = cuisine
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

	var restaurants []Restaurant
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

func (r *RestaurantRepositoryImpl) Update(ctx context.Context, id string, patch bson.M) (*Restaurant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var rst Restaurant
	err = r.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&rst)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rst, nil
}

func (r *RestaurantRepositoryImpl) Delete(ctx context.Context, id string) error {
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
