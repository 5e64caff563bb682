package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id int) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register creates an ordinary user. Administrative accounts are only made
// through Promote.
func (s *Service) Register(ctx context.Context, email, password, name string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return s.repo.Create(ctx, User{
		Email:    email,
		Password: string(hashed),
		Name:     strings.TrimSpace(name),
		Role:     RoleUser,
	})
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

// Promote grants the admin role to the account registered under email.
func (s *Service) Promote(ctx context.Context, email string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return User{}, err
	}
	return s.repo.UpdateRole(ctx, u.ID, RoleAdmin)
}
