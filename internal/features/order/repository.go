package order

import (
	"context"
	"errors"
	"time"

	"go-backoffice/internal/common/models"
	"go-backoffice/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("order not found")

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByOrderNumber(ctx context.Context, number string) (*Order, error)
	FindByStatus(ctx context.Context, status string, limit int64) ([]Order, error)
	FindByUser(ctx context.Context, userID string, limit int64) ([]Order, error)
	FindByRestaurant(ctx context.Context, restaurantID string, limit int64) ([]Order, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Order, error)
	List(ctx context.Context, q *models.ListQuery) ([]Order, int64, error)
	Update(ctx context.Context, id string, patch bson.M) (*Order, error)
	EnsureIndexes(ctx context.Context) error
}

type OrderRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewOrderRepository(mongodb *database.MongodbDB) OrderRepository {
	return &OrderRepositoryImpl{
		Collection: mongodb.DB.Collection("orders"),
	}
}

func (r *OrderRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	})
	return err
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, o *Order) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, o)
	return err
}

func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id string) (*Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var o Order
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&o)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepositoryImpl) FindByOrderNumber(ctx context.Context, number string) (*Order, error) {
	var o Order
	err := r.Collection.FindOne(ctx, bson.M{"order_number": number}).Decode(&o)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepositoryImpl) FindByStatus(ctx context.Context, status string, limit int64) ([]Order, error) {
	return r.find(ctx, bson.M{"status": status}, limit)
}

func (r *OrderRepositoryImpl) FindByUser(ctx context.Context, userID string, limit int64) ([]Order, error) {
	return r.find(ctx, bson.M{"user_id": userID}, limit)
}

func (r *OrderRepositoryImpl) FindByRestaurant(ctx context.Context, restaurantID string, limit int64) ([]Order, error) {
	return r.find(ctx, bson.M{"restaurant_id": restaurantID}, limit)
}

func (r *OrderRepositoryImpl) FindByDateRange(ctx context.Context, from, to time.Time) ([]Order, error) {
	return r.find(ctx, bson.M{"created_at": bson.M{"$gte": from, "$lt": to}}, 0)
}

func (r *OrderRepositoryImpl) find(ctx context.Context, filter bson.M, limit int64) ([]Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepositoryImpl) List(ctx context.Context, q *models.ListQuery) ([]Order, int64, error) {
	q.Normalize()

	filter := bson.M{}
	if q.Search != "" {
		filter["order_number"] = bson.M{"$regex": q.Search, "$options": "i"}
	}
	if status, ok := q.Filters["status"]; ok {
		filter["status"] = status
	}
	if payment, ok := q.Filters["payment_status"]; ok {
		filter["payment_status"] = payment
	}
	if restaurant, ok := q.Filters["restaurant_id"]; ok {
		filter["restaurant_id"] = restaurant
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

	var orders []Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepositoryImpl) Update(ctx context.Context, id string, patch bson.M) (*Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var o Order
	err = r.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
