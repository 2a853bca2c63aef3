package user

import (
	"context"
	"errors"
	"time"

	"go-backoffice/internal/common/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var ErrEmailTaken = errors.New("email already in use")

type UserService interface {
	CreateUser(ctx context.Context, name, email, password string, roles []string) (*User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context, q *models.ListQuery) (*models.PagedResult, error)
	UpdateUser(ctx context.Context, id string, patch bson.M) (*User, error)
	UpdateStatus(ctx context.Context, id, status string) (*User, error)
	ChangePassword(ctx context.Context, id, password string) error
	DeleteUser(ctx context.Context, id string) error
}

type UserServiceImpl struct {
	Repo UserRepository
}

func NewUserService(repo UserRepository) UserService {
	return &UserServiceImpl{
		Repo: repo,
	}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, name, email, password string, roles []string) (*User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []string{"staff"}
	}

	user := &User{
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		Roles:     roles,
		Status:    StatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*User, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, q *models.ListQuery) (*models.PagedResult, error) {
	users, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &models.PagedResult{
		Data: users,
		Meta: models.NewPageMeta(total, q.PerPage, q.Page, int64(len(users))),
	}, nil
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, id string, patch bson.M) (*User, error) {
	patch["updated_at"] = time.Now()
	return s.Repo.Update(ctx, id, patch)
}

func (s *UserServiceImpl) UpdateStatus(ctx context.Context, id, status string) (*User, error) {
	switch status {
	case StatusActive, StatusInactive, StatusSuspended:
	default:
		return nil, errors.New("invalid status")
	}
	return s.UpdateUser(ctx, id, bson.M{"status": status})
}

func (s *UserServiceImpl) ChangePassword(ctx context.Context, id, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.UpdateUser(ctx, id, bson.M{"password": string(hashed)})
	return err
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
