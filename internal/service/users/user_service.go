package users

import (
	"context"
	"errors"

	"github.com/Domenick1991/tourtrek/internal/domain"
	"github.com/Domenick1991/tourtrek/internal/repository"
)

var ErrEmailRequired = errors.New("email is required")

type UserUseCase interface {
	// Register is find-or-create by email: an existing user is left
	// untouched and domain.ErrDuplicate is returned.
	Register(ctx context.Context, user domain.User) (*domain.InsertResult, error)
	Role(ctx context.Context, email string) (domain.Role, error)
}

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Register(ctx context.Context, user domain.User) (*domain.InsertResult, error) {
	if user.Email == "" {
		return nil, ErrEmailRequired
	}

	_, err := s.users.FindByEmail(ctx, user.Email)
	if err == nil {
		return nil, domain.ErrDuplicate
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// New accounts always start as plain users; role is not client-settable.
	user.ID = ""
	user.Role = domain.RoleUser
	return s.users.Insert(ctx, &user)
}

func (s *UserService) Role(ctx context.Context, email string) (domain.Role, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

var _ UserUseCase = (*UserService)(nil)
