package product

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

type ProductService interface {
	CreateProduct(ctx context.Context, p *Product) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Resource, error)
	GetBySlug(ctx context.Context, slug string) (*Resource, error)
	ListProducts(ctx context.Context, q *models.ListQuery) (*models.PagedResult, error)
	UpdateProduct(ctx context.Context, id string, patch bson.M) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)
}

type ProductServiceImpl struct {
	Repo   ProductRepository
	Files  file.FileService
	Logger *zap.Logger
}

func NewProductService(repo ProductRepository, files file.FileService, logger *zap.Logger) ProductService {
	return &ProductServiceImpl{
		Repo:   repo,
		Files:  files,
		Logger: logger,
	}
}

func (s *ProductServiceImpl) CreateProduct(ctx context.Context, p *Product) (*Product, error) {
	if p.Slug == "" {
		p.Slug = utils.Slugify(p.Name)
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	err := s.Repo.Create(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		// slug taken, retry once with a random suffix
		p.Slug = p.Slug + "-" + primitive.NewObjectID().Hex()[:4]
		err = s.Repo.Create(ctx, p)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductServiceImpl) GetProduct(ctx context.Context, id string) (*Resource, error) {
	p, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resource(ctx, p)
}

func (s *ProductServiceImpl) GetBySlug(ctx context.Context, slug string) (*Resource, error) {
	p, err := s.Repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.resource(ctx, p)
}

func (s *ProductServiceImpl) ListProducts(ctx context.Context, q *models.ListQuery) (*models.PagedResult, error) {
	products, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	resources := make([]*Resource, 0, len(products))
	for i := range products {
		res, err := s.resource(ctx, &products[i])
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

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, id string, patch bson.M) (*Product, error) {
	if name, ok := patch["name"].(string); ok {
		if _, hasSlug := patch["slug"]; !hasSlug {
			patch["slug"] = utils.Slugify(name)
		}
	}
	patch["updated_at"] = time.Now()
	return s.Repo.Update(ctx, id, patch)
}

// DeleteProduct removes the product and all of its attachments. Attachment
// cleanup happens first so a crash leaves orphaned files, never a product
// pointing at deleted ones.
func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return err
	}

	if ok, err := s.Files.For(OwnerType, id).DeleteAll(ctx, ""); !ok {
		s.Logger.Warn("product attachment cleanup incomplete",
			zap.String("product_id", id), zap.Error(err))
	}

	return s.Repo.Delete(ctx, id)
}

func (s *ProductServiceImpl) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	for _, id := range ids {
		if ok, err := s.Files.For(OwnerType, id).DeleteAll(ctx, ""); !ok {
			s.Logger.Warn("product attachment cleanup incomplete",
				zap.String("product_id", id), zap.Error(err))
		}
	}
	return s.Repo.DeleteMany(ctx, ids)
}

func (s *ProductServiceImpl) resource(ctx context.Context, p *Product) (*Resource, error) {
	attachments := s.Files.For(OwnerType, p.ID.Hex())

	thumbnail, err := attachments.URL(ctx, CollectionThumbnail, "thumbnail")
	if err != nil {
		return nil, err
	}

	gallery, err := attachments.InCollection(ctx, CollectionGallery)
	if err != nil {
		return nil, err
	}
	items := make([]any, 0, len(gallery))
	for _, f := range gallery {
		res, err := s.Files.Resource(f)
		if err != nil {
			return nil, err
		}
		items = append(items, res)
	}

	return &Resource{
		Product:      p,
		ThumbnailURL: thumbnail,
		Gallery:      items,
	}, nil
}
