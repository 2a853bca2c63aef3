package importer

import (
	"context"
	"strings"
	"testing"

	"go-backoffice/internal/common/models"
	"go-backoffice/internal/features/blog"
	"go-backoffice/internal/features/product"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memImportRepo struct {
	jobs []*ImportJob
}

func (r *memImportRepo) Create(ctx context.Context, job *ImportJob) error {
	if job.ID.IsZero() {
		job.ID = primitive.NewObjectID()
	}
	r.jobs = append(r.jobs, job)
	return nil
}

func (r *memImportRepo) Get(ctx context.Context, id string) (*ImportJob, error) {
	for _, j := range r.jobs {
		if j.ID.Hex() == id {
			return j, nil
		}
	}
	return nil, ErrJobNotFound
}

func (r *memImportRepo) FindRecent(ctx context.Context, limit int64) ([]ImportJob, error) {
	var out []ImportJob
	for _, j := range r.jobs {
		out = append(out, *j)
	}
	return out, nil
}

// productServiceStub records created products, everything else is unused
type productServiceStub struct {
	created []*product.Product
}

func (s *productServiceStub) CreateProduct(ctx context.Context, p *product.Product) (*product.Product, error) {
	p.ID = primitive.NewObjectID()
	s.created = append(s.created, p)
	return p, nil
}

func (s *productServiceStub) GetProduct(ctx context.Context, id string) (*product.Resource, error) {
	return nil, product.ErrNotFound
}

func (s *productServiceStub) GetBySlug(ctx context.Context, slug string) (*product.Resource, error) {
	return nil, product.ErrNotFound
}

func (s *productServiceStub) ListProducts(ctx context.Context, q *models.ListQuery) (*models.PagedResult, error) {
	return nil, nil
}

func (s *productServiceStub) UpdateProduct(ctx context.Context, id string, patch bson.M) (*product.Product, error) {
	return nil, product.ErrNotFound
}

func (s *productServiceStub) DeleteProduct(ctx context.Context, id string) error {
	return product.ErrNotFound
}

func (s *productServiceStub) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	return 0, nil
}

// blogServiceStub records created posts
type blogServiceStub struct {
	created []*blog.Blog
}

func (s *blogServiceStub) CreateBlog(ctx context.Context, b *blog.Blog) (*blog.Blog, error) {
	b.ID = primitive.NewObjectID()
	s.created = append(s.created, b)
	return b, nil
}

func (s *blogServiceStub) GetBlog(ctx context.Context, id string) (*blog.Resource, error) {
	return nil, blog.ErrNotFound
}

func (s *blogServiceStub) GetBySlug(ctx context.Context, slug string) (*blog.Resource, error) {
	return nil, blog.ErrNotFound
}

func (s *blogServiceStub) ListBlogs(ctx context.Context, q *models.ListQuery) (*models.PagedResult, error) {
	return nil, nil
}

func (s *blogServiceStub) AllBlogs(ctx context.Context) ([]blog.Blog, error) {
	return nil, nil
}

func (s *blogServiceStub) UpdateBlog(ctx context.Context, id string, patch bson.M) (*blog.Blog, error) {
	return nil, blog.ErrNotFound
}

func (s *blogServiceStub) Publish(ctx context.Context, id string) (*blog.Blog, error) {
	return nil, blog.ErrNotFound
}

func (s *blogServiceStub) DeleteBlog(ctx context.Context, id string) error {
	return blog.ErrNotFound
}

func newTestImporter() (ImportService, *productServiceStub, *blogServiceStub, *memImportRepo) {
	repo := &memImportRepo{}
	products := &productServiceStub{}
	blogs := &blogServiceStub{}
	return NewImportService(repo, products, blogs, zap.NewNop()), products, blogs, repo
}

func TestPreviewCSV(t *testing.T) {
	svc, _, _, _ := newTestImporter()

	csv := "name,price,stock\nMug,7.50,100\nPlate,12.00,40\nBowl,9.25,60\n"
	preview, err := svc.Preview(context.Background(), strings.NewReader(csv), "products.csv")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}

	if len(preview.Headers) != 3 || preview.Headers[0] != "name" {
		t.Errorf("headers = %v", preview.Headers)
	}
	if preview.TotalRows != 3 {
		t.Errorf("total = %d, want 3", preview.TotalRows)
	}
	if len(preview.SampleRows) != 3 {
		t.Errorf("samples = %d, want 3", len(preview.SampleRows))
	}
	if preview.SampleRows[1]["price"] != "12.00" {
		t.Errorf("sample row = %v", preview.SampleRows[1])
	}
}

func TestPreviewRejectsUnknownFormat(t *testing.T) {
	svc, _, _, _ := newTestImporter()

	_, err := svc.Preview(context.Background(), strings.NewReader("x"), "data.docx")
	if err == nil {
		t.Error("docx should be rejected")
	}
}

func TestImportProductsWithMapping(t *testing.T) {
	svc, products, _, repo := newTestImporter()

	csv := "Product Name,Unit Price,Qty\nMug,7.50,100\nPlate,12.00,40\n"
	mapping := map[string]string{
		"Product Name": "name",
		"Unit Price":   "price",
		"Qty":          "stock",
	}

	job, err := svc.Import(context.Background(), strings.NewReader(csv), "products.csv", EntityProducts, mapping, "u1")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if job.Status != JobStatusCompleted || job.Imported != 2 || job.Failed != 0 {
		t.Errorf("job = %+v", job)
	}
	if len(products.created) != 2 {
		t.Fatalf("created %d products", len(products.created))
	}
	if p := products.created[0]; p.Name != "Mug" || p.Price != 7.50 || p.Stock != 100 {
		t.Errorf("product = %+v", p)
	}
	if len(repo.jobs) != 1 {
		t.Error("job was not persisted")
	}
}

func TestImportSkipsBadRows(t *testing.T) {
	svc, products, _, _ := newTestImporter()

	// second row has no name, third has a bad price
	csv := "name,price\nMug,7.50\n,3.00\nPlate,cheap\n"
	job, err := svc.Import(context.Background(), strings.NewReader(csv), "products.csv", EntityProducts, nil, "u1")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if job.Status != JobStatusPartial {
		t.Errorf("status = %s, want partial", job.Status)
	}
	if job.Imported != 1 || job.Failed != 2 {
		t.Errorf("imported/failed = %d/%d", job.Imported, job.Failed)
	}
	if len(job.Errors) != 2 {
		t.Errorf("errors = %v", job.Errors)
	}
	if len(products.created) != 1 {
		t.Errorf("created %d products, want 1", len(products.created))
	}
}

func TestImportBlogsSplitsTags(t *testing.T) {
	svc, _, blogs, _ := newTestImporter()

	csv := "title,content,tags\nHello,World,\"go, fiber , mongo\"\n"
	job, err := svc.Import(context.Background(), strings.NewReader(csv), "posts.csv", EntityBlogs, nil, "u1")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if job.Imported != 1 {
		t.Fatalf("imported = %d", job.Imported)
	}

	b := blogs.created[0]
	if len(b.Tags) != 3 || b.Tags[1] != "fiber" {
		t.Errorf("tags = %v", b.Tags)
	}
}

func TestImportRejectsUnknownEntity(t *testing.T) {
	svc, _, _, _ := newTestImporter()

	_, err := svc.Import(context.Background(), strings.NewReader("a\n1\n"), "a.csv", "users", nil, "u1")
	if err == nil {
		t.Error("unknown entity should be rejected")
	}
}
