package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"sort"
	"sync"
	"testing"
	"time"

	"go-backoffice/internal/media"
	"go-backoffice/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// memRepo is an in-memory FileRepository with the same semantics as the
// Mongo implementation: unique generated filenames and order assignment
// serialized per owner scope.
type memRepo struct {
	mu    sync.Mutex
	files map[string]*File
	names map[string]bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		files: make(map[string]*File),
		names: make(map[string]bool),
	}
}

func (r *memRepo) Create(ctx context.Context, f *File) (*File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.names[f.Filename] {
		return nil, &ValidationError{Reason: "generated filename is not unique"}
	}
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now
	if f.Meta == nil {
		f.Meta = map[string]any{}
	}
	if f.OwnerType != "" {
		f.Order = r.nextOrderLocked(f.OwnerType, f.OwnerID, f.Collection)
	}

	cp := *f
	r.files[f.ID.Hex()] = &cp
	r.names[f.Filename] = true
	return f, nil
}

func (r *memRepo) Get(ctx context.Context, id string) (*File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *memRepo) findLocked(match func(*File) bool) []*File {
	var out []*File
	for _, f := range r.files {
		if match(f) {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out
}

func (r *memRepo) FindByOwner(ctx context.Context, ownerType, ownerID string) ([]*File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(func(f *File) bool {
		return f.OwnerType == ownerType && f.OwnerID == ownerID
	}), nil
}

func (r *memRepo) FindByOwnerAndCollection(ctx context.Context, ownerType, ownerID, collection string) ([]*File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(func(f *File) bool {
		return f.OwnerType == ownerType && f.OwnerID == ownerID && f.Collection == collection
	}), nil
}

func (r *memRepo) nextOrderLocked(ownerType, ownerID, collection string) int {
	next := 0
	for _, f := range r.files {
		if f.OwnerType == ownerType && f.OwnerID == ownerID && f.Collection == collection && f.Order >= next {
			next = f.Order + 1
		}
	}
	return next
}

func (r *memRepo) NextOrder(ctx context.Context, ownerType, ownerID, collection string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextOrderLocked(ownerType, ownerID, collection), nil
}

func (r *memRepo) Update(ctx context.Context, id string, patch bson.M) (*File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	for k, v := range patch {
		switch k {
		case "order":
			f.Order = v.(int)
		case "owner_type":
			f.OwnerType = v.(string)
		case "owner_id":
			f.OwnerID = v.(string)
		case "collection":
			f.Collection = v.(string)
		}
	}
	f.UpdatedAt = time.Now()
	cp := *f
	return &cp, nil
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.names, f.Filename)
	delete(r.files, id)
	return nil
}

func (r *memRepo) SetOwnerAndCollection(ctx context.Context, ids []string, ownerType, ownerID, collection string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		f, ok := r.files[id]
		if !ok {
			return ErrNotFound
		}
		if f.OwnerType == ownerType && f.OwnerID == ownerID && f.Collection == collection {
			continue
		}
		f.OwnerType = ownerType
		f.OwnerID = ownerID
		f.Collection = collection
		f.Order = r.nextOrderLocked(ownerType, ownerID, collection)
		f.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memRepo) EnsureIndexes(ctx context.Context) error { return nil }

// newTestService wires the service against the memory double and an
// in-memory public disk
func newTestService(t *testing.T) (*FileServiceImpl, *memRepo, *storage.Memory) {
	t.Helper()
	repo := newMemRepo()
	disk := storage.NewMemory()
	disks := storage.NewEmptyManager()
	disks.Register(storage.DefaultDisk, disk)

	svc := &FileServiceImpl{
		Repo:      repo,
		Disks:     disks,
		Generator: media.NewGenerator(nil),
		Logger:    zap.NewNop(),
		MaxBytes:  10 << 20,
	}
	return svc, repo, disk
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y += 10 {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test jpeg: %v", err)
	}
	return buf.Bytes()
}
