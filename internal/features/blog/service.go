package blog

import (
	"context"
	"time"

	"go-backoffice/internal/common/models"
	"go-backoffice/internal/features/file"
	"go-backoffice/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type BlogService interface {
	CreateBlog(ctx context.Context, b *Blog) (*Blog, error)
	GetBlog(ctx context.Context, id string) (*Resource, error)
	GetBySlug(ctx context.Context, slug string) (*Resource, error)
	ListBlogs(ctx context.Context, q *models.ListQuery) (*models.PagedResult, error)
	AllBlogs(ctx context.Context) ([]Blog, error)
	UpdateBlog(ctx context.Context, id string, patch bson.M) (*Blog, error)
	Publish(ctx context.Context, id string) (*Blog, error)
	DeleteBlog(ctx context.Context, id string) error
}

type BlogServiceImpl struct {
	Repo   BlogRepository
	Files  file.FileService
	Logger *zap.Logger
}

func NewBlogService(repo BlogRepository, files file.FileService, logger *zap.Logger) BlogService {
	return &BlogServiceImpl{
		Repo:   repo,
		Files:  files,
		Logger: logger,
	}
}

func (s *BlogServiceImpl) CreateBlog(ctx context.Context, b *Blog) (*Blog, error) {
	if b.Slug == "" {
		b.Slug = utils.Slugify(b.Title)
	}
	if b.Status == "" {
		b.Status = StatusDraft
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = time.Now()

	err := s.Repo.Create(ctx, b)
	if mongo.IsDuplicateKeyError(err) {
		b.Slug = b.Slug + "-" + primitive.NewObjectID().Hex()[:4]
		err = s.Repo.Create(ctx, b)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BlogServiceImpl) GetBlog(ctx context.Context, id string) (*Resource, error) {
	b, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resource(ctx, b)
}

func (s *BlogServiceImpl) GetBySlug(ctx context.Context, slug string) (*Resource, error) {
	b, err := s.Repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.resource(ctx, b)
}

func (s *BlogServiceImpl) ListBlogs(ctx context.Context, q *models.ListQuery) (*models.PagedResult, error) {
	blogs, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	resources := make([]*Resource, 0, len(blogs))
	for i := range blogs {
		res, err := s.resource(ctx, &blogs[i])
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}

	return &models.PagedResult{
		Data: resources,
		Meta: models.NewPageMeta(total, q.PerPage, q.Page, int64(len(resources))),
	}, nil
}

func (s *BlogServiceImpl) AllBlogs(ctx context.Context) ([]Blog, error) {
	return s.Repo.All(ctx)
}

func (s *BlogServiceImpl) UpdateBlog(ctx context.Context, id string, patch bson.M) (*Blog, error) {
	if title, ok := patch["title"].(string); ok {
		if _, hasSlug := patch["slug"]; !hasSlug {
			patch["slug"] = utils.Slugify(title)
		}
	}
	patch["updated_at"] = time.Now()
	return s.Repo.Update(ctx, id, patch)
}

func (s *BlogServiceImpl) Publish(ctx context.Context, id string) (*Blog, error) {
	now := time.Now()
	return s.Repo.Update(ctx, id, bson.M{
		"status":       StatusPublished,
		"published_at": now,
		"updated_at":   now,
	})
}

func (s *BlogServiceImpl) DeleteBlog(ctx context.Context, id string) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return err
	}

	if ok, err := s.Files.For(OwnerType, id).DeleteAll(ctx, ""); !ok {
		s.Logger.Warn("blog attachment cleanup incomplete",
			zap.String("blog_id", id), zap.Error(err))
	}

	return s.Repo.Delete(ctx, id)
}

func (s *BlogServiceImpl) resource(ctx context.Context, b *Blog) (*Resource, error) {
	cover, err := s.Files.For(OwnerType, b.ID.Hex()).URL(ctx, CollectionCover, "medium")
	if err != nil {
		return nil, err
	}
	return &Resource{
		Blog:     b,
		CoverURL: cover,
	}, nil
}
