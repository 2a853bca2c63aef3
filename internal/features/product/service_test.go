package product

import (
	"context"
	"strings"
	"sync"
	"testing"

	"go-backoffice/internal/common/models"
	"go-backoffice/internal/features/file"
	"go-backoffice/internal/media"
	"go-backoffice/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type memProductRepo struct {
	mu       sync.Mutex
	products map[string]*Product
	slugs    map[string]bool
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{
		products: make(map[string]*Product),
		slugs:    make(map[string]bool),
	}
}

func (r *memProductRepo) Create(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slugs[p.Slug] {
		return mongo.WriteException{WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: "duplicate key"},
		}}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	r.products[p.ID.Hex()] = &cp
	r.slugs[p.Slug] = true
	return nil
}

func (r *memProductRepo) FindByID(ctx context.Context, id string) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memProductRepo) List(ctx context.Context, q *models.ListQuery) ([]Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *memProductRepo) All(ctx context.Context) ([]Product, error) {
	out, _, err := r.List(ctx, nil)
	return out, err
}

func (r *memProductRepo) Update(ctx context.Context, id string, patch bson.M) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	if name, ok := patch["name"].(string); ok {
		p.Name = name
	}
	if slug, ok := patch["slug"].(string); ok {
		p.Slug = slug
	}
	if status, ok := patch["status"].(string); ok {
		p.Status = status
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.slugs, p.Slug)
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if err := r.Delete(ctx, id); err == nil {
			n++
		}
	}
	return n, nil
}

func (r *memProductRepo) EnsureIndexes(ctx context.Context) error { return nil }

// memFileRepo is a minimal in-memory file store so the service under test
// can run against a real file service.
type memFileRepo struct {
	mu    sync.Mutex
	files map[string]*file.File
}

func newMemFileRepo() *memFileRepo {
	return &memFileRepo{files: make(map[string]*file.File)}
}

func (r *memFileRepo) Create(ctx context.Context, f *file.File) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	cp := *f
	r.files[f.ID.Hex()] = &cp
	return f, nil
}

func (r *memFileRepo) Get(ctx context.Context, id string) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok {
		return nil, file.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *memFileRepo) FindByOwner(ctx context.Context, ownerType, ownerID string) ([]*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*file.File
	for _, f := range r.files {
		if f.OwnerType == ownerType && f.OwnerID == ownerID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memFileRepo) FindByOwnerAndCollection(ctx context.Context, ownerType, ownerID, collection string) ([]*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*file.File
	for _, f := range r.files {
		if f.OwnerType == ownerType && f.OwnerID == ownerID && f.Collection == collection {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memFileRepo) NextOrder(ctx context.Context, ownerType, ownerID, collection string) (int, error) {
	return 0, nil
}

func (r *memFileRepo) Update(ctx context.Context, id string, patch bson.M) (*file.File, error) {
	return r.Get(ctx, id)
}

func (r *memFileRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.files[id]; !ok {
		return file.ErrNotFound
	}
	delete(r.files, id)
	return nil
}

func (r *memFileRepo) SetOwnerAndCollection(ctx context.Context, ids []string, ownerType, ownerID, collection string) error {
	return nil
}

func (r *memFileRepo) EnsureIndexes(ctx context.Context) error { return nil }

func newTestProductService(t *testing.T) (ProductService, *memProductRepo, *memFileRepo) {
	t.Helper()
	repo := newMemProductRepo()
	fileRepo := newMemFileRepo()

	disks := storage.NewEmptyManager()
	disks.Register(storage.DefaultDisk, storage.NewMemory())
	fsvc := &file.FileServiceImpl{
		Repo:      fileRepo,
		Disks:     disks,
		Generator: media.NewGenerator(nil),
		Logger:    zap.NewNop(),
		MaxBytes:  10 << 20,
	}

	return NewProductService(repo, fsvc, zap.NewNop()), repo, fileRepo
}

func TestCreateProductDefaults(t *testing.T) {
	svc, _, _ := newTestProductService(t)

	p, err := svc.CreateProduct(context.Background(), &Product{
		Name:  "Espresso Machine Pro",
		Price: 499.99,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Slug != "espresso-machine-pro" {
		t.Errorf("slug = %q", p.Slug)
	}
	if p.Status != StatusDraft {
		t.Errorf("status = %q, want draft", p.Status)
	}
	if p.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestCreateProductSlugCollision(t *testing.T) {
	svc, _, _ := newTestProductService(t)
	ctx := context.Background()

	first, err := svc.CreateProduct(ctx, &Product{Name: "Mug", Price: 5})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}

	second, err := svc.CreateProduct(ctx, &Product{Name: "Mug", Price: 7})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.Slug == first.Slug {
		t.Errorf("colliding slug was not disambiguated: %q", second.Slug)
	}
	if !strings.HasPrefix(second.Slug, "mug-") {
		t.Errorf("slug = %q, want mug- prefix", second.Slug)
	}
}

func TestUpdateProductRegeneratesSlug(t *testing.T) {
	svc, _, _ := newTestProductService(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, &Product{Name: "Old Name", Price: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateProduct(ctx, p.ID.Hex(), bson.M{"name": "New Name"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "new-name" {
		t.Errorf("slug = %q, want new-name", updated.Slug)
	}
}

func TestDeleteProductCascadesToFiles(t *testing.T) {
	svc, repo, fileRepo := newTestProductService(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, &Product{Name: "Camera", Price: 300})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// attach two files directly through the store
	for _, coll := range []string{CollectionThumbnail, CollectionGallery} {
		_, err := fileRepo.Create(ctx, &file.File{
			Filename:   coll + ".jpg",
			Path:       "uploads/" + coll + ".jpg",
			Disk:       storage.DefaultDisk,
			MimeType:   "image/jpeg",
			OwnerType:  OwnerType,
			OwnerID:    p.ID.Hex(),
			Collection: coll,
		})
		if err != nil {
			t.Fatalf("attach: %v", err)
		}
	}

	if err := svc.DeleteProduct(ctx, p.ID.Hex()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.FindByID(ctx, p.ID.Hex()); err != ErrNotFound {
		t.Errorf("product should be gone, got %v", err)
	}
	left, _ := fileRepo.FindByOwner(ctx, OwnerType, p.ID.Hex())
	if len(left) != 0 {
		t.Errorf("%d attachments survived the delete", len(left))
	}
}

func TestDeleteProductNotFound(t *testing.T) {
	svc, _, _ := newTestProductService(t)

	err := svc.DeleteProduct(context.Background(), primitive.NewObjectID().Hex())
	if err != ErrNotFound {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}
