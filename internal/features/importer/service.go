package importer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go-backoffice/internal/features/blog"
	"go-backoffice/internal/features/product"

	"go.uber.org/zap"
)

type ImportService interface {
	Preview(ctx context.Context, file io.Reader, filename string) (*Preview, error)
	Import(ctx context.Context, file io.Reader, filename, entity string, mapping map[string]string, userID string) (*ImportJob, error)
	GetJob(ctx context.Context, id string) (*ImportJob, error)
	RecentJobs(ctx context.Context) ([]ImportJob, error)
}

type ImportServiceImpl struct {
	Repo     ImportRepository
	Products product.ProductService
	Blogs    blog.BlogService
	Logger   *zap.Logger
}

func NewImportService(repo ImportRepository, products product.ProductService, blogs blog.BlogService, logger *zap.Logger) ImportService {
	return &ImportServiceImpl{
		Repo:     repo,
		Products: products,
		Blogs:    blogs,
		Logger:   logger,
	}
}

func (s *ImportServiceImpl) Preview(ctx context.Context, file io.Reader, filename string) (*Preview, error) {
	headers, rows, err := parseFile(file, filename)
	if err != nil {
		return nil, err
	}

	sample := rows
	if len(sample) > sampleRowCount {
		sample = sample[:sampleRowCount]
	}

	return &Preview{
		Headers:    headers,
		SampleRows: sample,
		TotalRows:  len(rows),
	}, nil
}

// Import parses the file and creates one record per row. mapping translates
// column headers to target fields; rows that fail validation are skipped and
// recorded on the job, they never abort the run.
func (s *ImportServiceImpl) Import(ctx context.Context, file io.Reader, filename, entity string, mapping map[string]string, userID string) (*ImportJob, error) {
	if entity != EntityProducts && entity != EntityBlogs {
		return nil, fmt.Errorf("unsupported import entity: %s", entity)
	}

	_, rows, err := parseFile(file, filename)
	if err != nil {
		return nil, err
	}

	job := &ImportJob{
		Entity:    entity,
		Filename:  filename,
		TotalRows: len(rows),
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}

	for i, raw := range rows {
		fields := applyMapping(raw, mapping)

		var rowErr error
		switch entity {
		case EntityProducts:
			rowErr = s.importProduct(ctx, fields)
		case EntityBlogs:
			rowErr = s.importBlog(ctx, fields)
		}

		if rowErr != nil {
			job.Failed++
			if len(job.Errors) < 20 {
				job.Errors = append(job.Errors, fmt.Sprintf("row %d: %v", i+2, rowErr))
			}
			continue
		}
		job.Imported++
	}

	switch {
	case job.Imported == 0 && job.TotalRows > 0:
		job.Status = JobStatusFailed
	case job.Failed > 0:
		job.Status = JobStatusPartial
	default:
		job.Status = JobStatusCompleted
	}

	if err := s.Repo.Create(ctx, job); err != nil {
		return nil, err
	}

	s.Logger.Info("import finished",
		zap.String("entity", entity),
		zap.String("filename", filename),
		zap.Int("imported", job.Imported),
		zap.Int("failed", job.Failed))
	return job, nil
}

func (s *ImportServiceImpl) GetJob(ctx context.Context, id string) (*ImportJob, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ImportServiceImpl) RecentJobs(ctx context.Context) ([]ImportJob, error) {
	return s.Repo.FindRecent(ctx, 50)
}

// applyMapping renames columns to target fields. An empty mapping keeps the
// column headers as-is (lowercased).
func applyMapping(row map[string]string, mapping map[string]string) map[string]string {
	out := make(map[string]string, len(row))
	for col, value := range row {
		field := mapping[col]
		if field == "" {
			field = strings.ToLower(strings.TrimSpace(col))
		}
		out[field] = value
	}
	return out
}

func (s *ImportServiceImpl) importProduct(ctx context.Context, fields map[string]string) error {
	name := strings.TrimSpace(fields["name"])
	if name == "" {
		return fmt.Errorf("name is required")
	}

	var price float64
	if raw := fields["price"]; raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return fmt.Errorf("invalid price %q", raw)
		}
		price = v
	}
	var stock int
	if raw := fields["stock"]; raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid stock %q", raw)
		}
		stock = v
	}

	_, err := s.Products.CreateProduct(ctx, &product.Product{
		Name:        name,
		SKU:         strings.TrimSpace(fields["sku"]),
		Description: fields["description"],
		Price:       price,
		Stock:       stock,
		Status:      strings.TrimSpace(fields["status"]),
	})
	return err
}

func (s *ImportServiceImpl) importBlog(ctx context.Context, fields map[string]string) error {
	title := strings.TrimSpace(fields["title"])
	content := fields["content"]
	if title == "" || content == "" {
		return fmt.Errorf("title and content are required")
	}

	var tags []string
	if raw := fields["tags"]; raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	_, err := s.Blogs.CreateBlog(ctx, &blog.Blog{
		Title:   title,
		Content: content,
		Excerpt: fields["excerpt"],
		Tags:    tags,
		Status:  strings.TrimSpace(fields["status"]),
	})
	return err
}
