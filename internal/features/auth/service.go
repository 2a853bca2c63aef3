package auth

import (
	"context"
	"errors"

	"go-backoffice/internal/features/user"
	"go-backoffice/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*user.User, error)
	Login(ctx context.Context, email, password string) (string, *user.User, error)
	Me(ctx context.Context, userID string) (*user.User, error)
}

type AuthServiceImpl struct {
	Users    user.UserService
	UserRepo user.UserRepository
}

func NewAuthService(users user.UserService, userRepo user.UserRepository) AuthService {
	return &AuthServiceImpl{
		Users:    users,
		UserRepo: userRepo,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string) (*user.User, error) {
	return s.Users.CreateUser(ctx, name, email, password, nil)
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	usr, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	switch usr.Status {
	case user.StatusSuspended:
		return "", nil, errors.New("account suspended")
	case user.StatusInactive:
		return "", nil, errors.New("account inactive")
	}

	token, err := utils.GenerateToken(usr.ID, usr.Name, usr.Roles)
	if err != nil {
		return "", nil, err
	}
	return token, usr, nil
}

func (s *AuthServiceImpl) Me(ctx context.Context, userID string) (*user.User, error) {
	return s.UserRepo.FindByID(ctx, userID)
}
