package file

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-backoffice/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FileRepository interface {
	Create(ctx context.Context, f *File) (*File, error)
	Get(ctx context.Context, id string) (*File, error)
	FindByOwner(ctx context.Context, ownerType, ownerID string) ([]*File, error)
	FindByOwnerAndCollection(ctx context.Context, ownerType, ownerID, collection string) ([]*File, error)
	NextOrder(ctx context.Context, ownerType, ownerID, collection string) (int, error)
	Update(ctx context.Context, id string, patch bson.M) (*File, error)
	Delete(ctx context.Context, id string) error
	SetOwnerAndCollection(ctx context.Context, ids []string, ownerType, ownerID, collection string) error
	EnsureIndexes(ctx context.Context) error
}

// scopeLocks serializes order assignment per (ownerType, ownerID, collection)
// scope. NextOrder followed by insert must not interleave for the same scope
// or two concurrent uploads end up with the same display order.
type scopeLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newScopeLocks() *scopeLocks {
	return &scopeLocks{locks: make(map[string]*sync.Mutex)}
}

func (s *scopeLocks) get(ownerType, ownerID, collection string) *sync.Mutex {
	key := ownerType + "|" + ownerID + "|" + collection
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

type FileRepositoryImpl struct {
	collection *mongo.Collection
	scopes     *scopeLocks
}

func NewFileRepository(mongodb *database.MongodbDB) FileRepository {
	return &FileRepositoryImpl{
		collection: mongodb.DB.Collection("files"),
		scopes:     newScopeLocks(),
	}
}

func (r *FileRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "filename", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "owner_type", Value: 1},
				{Key: "owner_id", Value: 1},
				{Key: "collection", Value: 1},
				{Key: "order", Value: 1},
			},
		},
	})
	return err
}

// Create assigns the identifier, timestamps and, for owned records, the next
// display order in the scope. Order computation and insert run under the
// scope lock. A duplicate generated filename surfaces as ValidationError so
// the caller can regenerate and retry.
func (r *FileRepositoryImpl) Create(ctx context.Context, f *File) (*File, error) {
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now
	if f.Meta == nil {
		f.Meta = map[string]any{}
	}

	insert := func() error {
		if f.OwnerType != "" {
			next, err := r.NextOrder(ctx, f.OwnerType, f.OwnerID, f.Collection)
			if err != nil {
				return err
			}
			f.Order = next
		}
		_, err := r.collection.InsertOne(ctx, f)
		return err
	}

	var err error
	if f.OwnerType != "" {
		lock := r.scopes.get(f.OwnerType, f.OwnerID, f.Collection)
		lock.Lock()
		err = insert()
		lock.Unlock()
	} else {
		err = insert()
	}

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, &ValidationError{Reason: "generated filename is not unique"}
		}
		return nil, err
	}
	return f, nil
}

func (r *FileRepositoryImpl) Get(ctx context.Context, id string) (*File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var f File
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// order ascending, ties broken by identifier
var byOrder = bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}}

func (r *FileRepositoryImpl) find(ctx context.Context, filter bson.M) ([]*File, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(byOrder))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var files []*File
	if err := cursor.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (r *FileRepositoryImpl) FindByOwner(ctx context.Context, ownerType, ownerID string) ([]*File, error) {
	return r.find(ctx, bson.M{"owner_type": ownerType, "owner_id": ownerID})
}

func (r *FileRepositoryImpl) FindByOwnerAndCollection(ctx context.Context, ownerType, ownerID, collection string) ([]*File, error) {
	return r.find(ctx, bson.M{"owner_type": ownerType, "owner_id": ownerID, "collection": collection})
}

// NextOrder returns max(order)+1 within the scope, or 0 when the scope is
// empty. Callers needing atomicity with a subsequent write must hold the
// scope lock; Create and SetOwnerAndCollection do.
func (r *FileRepositoryImpl) NextOrder(ctx context.Context, ownerType, ownerID, collection string) (int, error) {
	filter := bson.M{"owner_type": ownerType, "owner_id": ownerID, "collection": collection}
	opts := options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})

	var top File
	err := r.collection.FindOne(ctx, filter, opts).Decode(&top)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return top.Order + 1, nil
}

func (r *FileRepositoryImpl) Update(ctx context.Context, id string, patch bson.M) (*File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	patch["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var f File
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": patch}, opts).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FileRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetOwnerAndCollection reassigns the given records into the target scope.
// Records already in the scope keep their order; everything else gets the
// next free order under the scope lock.
func (r *FileRepositoryImpl) SetOwnerAndCollection(ctx context.Context, ids []string, ownerType, ownerID, collection string) error {
	lock := r.scopes.get(ownerType, ownerID, collection)
	lock.Lock()
	defer lock.Unlock()

	for _, id := range ids {
		f, err := r.Get(ctx, id)
		if err != nil {
			return err
		}
		if f.OwnerType == ownerType && f.OwnerID == ownerID && f.Collection == collection {
			continue
		}

		next, err := r.NextOrder(ctx, ownerType, ownerID, collection)
		if err != nil {
			return err
		}

		patch := bson.M{
			"owner_type": ownerType,
			"owner_id":   ownerID,
			"collection": collection,
			"order":      next,
		}
		if _, err := r.Update(ctx, id, patch); err != nil {
			return err
		}
	}
	return nil
}
