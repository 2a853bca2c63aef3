package product

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

var ErrNotFound = errors.New("product not found")

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, q *models.ListQuery) ([]Product, int64, error)
	All(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, id string, patch bson.M) (*Product, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type ProductRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewProductRepository(mongodb *database.MongodbDB) ProductRepository {
	return &ProductRepositoryImpl{
		Collection: mongodb.DB.Collection("products"),
	}
}

func (r *ProductRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "featured", Value: 1}},
		},
	})
	return err
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, p *Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, p)
	return err
}

func (r *ProductRepositoryImpl) FindByID(ctx context.Context, id string) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var p Product
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepositoryImpl) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	var p Product
	err := r.Collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepositoryImpl) List(ctx context.Context, q *models.ListQuery) ([]Product, int64, error) {
	q.Normalize()

	filter := bson.M{}
	if q.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": q.Search, "$options": "i"}},
			bson.M{"sku": bson.M{"$regex": q.Search, "$options": "i"}},
		}
	}
	if status, ok := q.Filters["status"]; ok {
		filter["status"] = status
	}
	if featured, ok := q.Filters["featured"]; ok {
		filter["featured"] = featured == "true" || featured == true
	}
	if category, ok := q.Filters["category"]; ok {
		filter["categories"] = category
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

	var products []Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// All returns every product, used by the exporters
func (r *ProductRepositoryImpl) All(ctx context.Context) ([]Product, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, id string, patch bson.M) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var p Product
	err = r.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id string) error {
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

func (r *ProductRepositoryImpl) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return 0, nil
	}

	res, err := r.Collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
