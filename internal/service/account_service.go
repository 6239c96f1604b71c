package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "blogsite/internal/errors"
	"blogsite/internal/model"
	"blogsite/internal/repository"
)

// AccountService handles registration and credential verification.
type AccountService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

type accountService struct {
	users repository.UserRepository
}

// NewAccountService creates a new account service.
func NewAccountService(users repository.UserRepository) AccountService {
	return &accountService{users: users}
}

// Register creates a new account with an empty blog list. Registering an email
// that is already taken fails with ErrDuplicateAccount and writes nothing.
func (s *accountService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateAccount
	}
	if err != nil && !errors.Is(err, apperrors.ErrAccountNotFound) {
		return nil, fmt.Errorf("check account existence: %w", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: password,
		Blogs:    []model.Blog{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateAccount) {
			// Lost the race against a concurrent registration; the unique
			// index is the authoritative check.
			return nil, apperrors.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	return user, nil
}

// Authenticate succeeds iff an account exists whose stored email and password
// both exactly equal the inputs.
func (s *accountService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByCredentials(ctx, email, password)
	if errors.Is(err, apperrors.ErrAccountNotFound) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("verify credentials: %w", err)
	}
	return user, nil
}
