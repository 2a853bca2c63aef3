package restaurant

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

type RestaurantService interface {
	CreateRestaurant(ctx context.Context, rst *Restaurant) (*Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*Resource, error)
	GetBySlug(ctx context.Context, slug string) (*Resource, error)
	ListRestaurants(ctx context.Context, q *models.ListQuery) (*models.PagedResult, error)
	FindFeatured(ctx context.Context, limit int64) ([]Restaurant, error)
	FindNearby(ctx context.Context, lng, lat, radiusKm float64, limit int64) ([]Restaurant, error)
	UpdateRestaurant(ctx context.Context, id string, patch bson.M) (*Restaurant, error)
	DeleteRestaurant(ctx context.Context, id string) error
}

type RestaurantServiceImpl struct {
	Repo   RestaurantRepository
	Files  file.FileService
	Logger *zap.Logger
}

func NewRestaurantService(repo RestaurantRepository, files file.FileService, logger *zap.Logger) RestaurantService {
	return &RestaurantServiceImpl{
		Repo:   repo,
		Files:  files,
		Logger: logger,
	}
}

func (s *RestaurantServiceImpl) CreateRestaurant(ctx context.Context, rst *Restaurant) (*Restaurant, error) {
	if rst.Slug == "" {
		rst.Slug = utils.Slugify(rst.Name)
	}
	if rst.Status == "" {
		rst.Status = StatusDraft
	}
	rst.CreatedAt = time.Now()
	rst.UpdatedAt = time.Now()

	err := s.Repo.Create(ctx, rst)
	if mongo.IsDuplicateKeyError(err) {
		rst.Slug = rst.Slug + "-" + primitive.NewObjectID().Hex()[:4]
		err = s.Repo.Create(ctx, rst)
	}
	if err != nil {
		return nil, err
	}
	return rst, nil
}

func (s *RestaurantServiceImpl) GetRestaurant(ctx context.Context, id string) (*Resource, error) {
	rst, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resource(ctx, rst)
}

func (s *RestaurantServiceImpl) GetBySlug(ctx context.Context, slug string) (*Resource, error) {
	rst, err := s.Repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.resource(ctx, rst)
}

func (s *RestaurantServiceImpl) ListRestaurants(ctx context.Context, q *models.ListQuery) (*models.PagedResult, error) {
	restaurants, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	resources := make([]*Resource, 0, len(restaurants))
	for i := range restaurants {
		res, err := s.resource(ctx, &restaurants[i])
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

func (s *RestaurantServiceImpl) FindFeatured(ctx context.Context, limit int64) ([]Restaurant, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.Repo.FindFeatured(ctx, limit)
}

func (s *RestaurantServiceImpl) FindNearby(ctx context.Context, lng, lat, radiusKm float64, limit int64) ([]Restaurant, error) {
	if radiusKm <= 0 {
		radiusKm = 5
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.Repo.FindNearby(ctx, lng, lat, radiusKm*1000, limit)
}

func (s *RestaurantServiceImpl) UpdateRestaurant(ctx context.Context, id string, patch bson.M) (*Restaurant, error) {
	if name, ok := patch["name"].(string); ok {
		if _, hasSlug := patch["slug"]; !hasSlug {
			patch["slug"] = utils.Slugify(name)
		}
	}
	patch["updated_at"] = time.Now()
	return s.Repo.Update(ctx, id, patch)
}

func (s *RestaurantServiceImpl) DeleteRestaurant(ctx context.Context, id string) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return err
	}

	if ok, err := s.Files.For(OwnerType, id).DeleteAll(ctx, ""); !ok {
		s.Logger.Warn("restaurant attachment cleanup incomplete",
			zap.String("restaurant_id", id), zap.Error(err))
	}

	return s.Repo.Delete(ctx, id)
}

func (s *RestaurantServiceImpl) resource(ctx context.Context, rst *Restaurant) (*Resource, error) {
	logo, err := s.Files.For(OwnerType, rst.ID.Hex()).URL(ctx, CollectionLogo, "thumbnail")
	if err != nil {
		return nil, err
	}
	return &Resource{
		Restaurant: rst,
		LogoURL:    logo,
	}, nil
}
