package blog

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go-backoffice/internal/common/models"
	"go-backoffice/internal/features/file"
	"go-backoffice/internal/media"
	"go-backoffice/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type memBlogRepo struct {
	mu    sync.Mutex
	blogs map[string]*Blog
	slugs map[string]bool
}

func newMemBlogRepo() *memBlogRepo {
	return &memBlogRepo{
		blogs: make(map[string]*Blog),
		slugs: make(map[string]bool),
	}
}

func (r *memBlogRepo) Create(ctx context.Context, b *Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slugs[b.Slug] {
		return mongo.WriteException{WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: "duplicate key"},
		}}
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	cp := *b
	r.blogs[b.ID.Hex()] = &cp
	r.slugs[b.Slug] = true
	return nil
}

func (r *memBlogRepo) FindByID(ctx context.Context, id string) (*Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blogs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memBlogRepo) FindBySlug(ctx context.Context, slug string) (*Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.blogs {
		if b.Slug == slug {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memBlogRepo) List(ctx context.Context, q *models.ListQuery) ([]Blog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Blog
	for _, b := range r.blogs {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *memBlogRepo) All(ctx context.Context) ([]Blog, error) {
	out, _, err := r.List(ctx, nil)
	return out, err
}

func (r *memBlogRepo) Update(ctx context.Context, id string, patch bson.M) (*Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blogs[id]
	if !ok {
		return nil, ErrNotFound
	}
	if title, ok := patch["title"].(string); ok {
		b.Title = title
	}
	if slug, ok := patch["slug"].(string); ok {
		b.Slug = slug
	}
	if status, ok := patch["status"].(string); ok {
		b.Status = status
	}
	if published, ok := patch["published_at"].(time.Time); ok {
		b.PublishedAt = &published
	}
	cp := *b
	return &cp, nil
}

func (r *memBlogRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blogs[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.slugs, b.Slug)
	delete(r.blogs, id)
	return nil
}

func (r *memBlogRepo) EnsureIndexes(ctx context.Context) error { return nil }

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

func newTestBlogService(t *testing.T) (BlogService, *memBlogRepo, *memFileRepo) {
	t.Helper()
	repo := newMemBlogRepo()
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

	return NewBlogService(repo, fsvc, zap.NewNop()), repo, fileRepo
}

func TestCreateBlogDefaults(t *testing.T) {
	svc, _, _ := newTestBlogService(t)

	b, err := svc.CreateBlog(context.Background(), &Blog{
		Title:   "Getting Started With Fiber",
		Content: "body",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Slug != "getting-started-with-fiber" {
		t.Errorf("slug = %q", b.Slug)
	}
	if b.Status != StatusDraft {
		t.Errorf("status = %q, want draft", b.Status)
	}
	if b.PublishedAt != nil {
		t.Error("draft should not carry a publish date")
	}
}

func TestCreateBlogSlugCollision(t *testing.T) {
	svc, _, _ := newTestBlogService(t)
	ctx := context.Background()

	first, err := svc.CreateBlog(ctx, &Blog{Title: "Weekly Notes", Content: "a"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.CreateBlog(ctx, &Blog{Title: "Weekly Notes", Content: "b"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.Slug == first.Slug {
		t.Errorf("colliding slug was not disambiguated: %q", second.Slug)
	}
	if !strings.HasPrefix(second.Slug, "weekly-notes-") {
		t.Errorf("slug = %q, want weekly-notes- prefix", second.Slug)
	}
}

func TestPublishSetsStatusAndDate(t *testing.T) {
	svc, _, _ := newTestBlogService(t)
	ctx := context.Background()

	b, err := svc.CreateBlog(ctx, &Blog{Title: "Draft Post", Content: "c"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	published, err := svc.Publish(ctx, b.ID.Hex())
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.Status != StatusPublished {
		t.Errorf("status = %q, want published", published.Status)
	}
	if published.PublishedAt == nil || published.PublishedAt.IsZero() {
		t.Error("published_at not set")
	}
}

func TestUpdateBlogRegeneratesSlug(t *testing.T) {
	svc, _, _ := newTestBlogService(t)
	ctx := context.Background()

	b, err := svc.CreateBlog(ctx, &Blog{Title: "Old Title", Content: "c"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateBlog(ctx, b.ID.Hex(), bson.M{"title": "New Title"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "new-title" {
		t.Errorf("slug = %q, want new-title", updated.Slug)
	}
}

func TestDeleteBlogCascadesToFiles(t *testing.T) {
	svc, repo, fileRepo := newTestBlogService(t)
	ctx := context.Background()

	b, err := svc.CreateBlog(ctx, &Blog{Title: "Illustrated Post", Content: "c"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = fileRepo.Create(ctx, &file.File{
		Filename:   "cover.jpg",
		Path:       "uploads/cover.jpg",
		Disk:       storage.DefaultDisk,
		MimeType:   "image/jpeg",
		OwnerType:  OwnerType,
		OwnerID:    b.ID.Hex(),
		Collection: CollectionCover,
	})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}

	if err := svc.DeleteBlog(ctx, b.ID.Hex()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.FindByID(ctx, b.ID.Hex()); err != ErrNotFound {
		t.Errorf("post should be gone, got %v", err)
	}
	left, _ := fileRepo.FindByOwner(ctx, OwnerType, b.ID.Hex())
	if len(left) != 0 {
		t.Errorf("%d attachments survived the delete", len(left))
	}
}
