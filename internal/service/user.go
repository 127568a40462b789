package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jkowalik/sleepstats/internal/domain"
)

// UserService handles user operations
type UserService struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo domain.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create registers a new user. The name is normalized (trimmed, lowercased)
// before the uniqueness check; an empty timezone defaults to UTC.
func (s *UserService) Create(ctx context.Context, input domain.UserCreate) (*domain.User, error) {
	name := domain.NormalizeUserName(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be blank", domain.ErrValidation)
	}

	timeZone, err := resolveTimeZone(input.TimeZone)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:        uuid.New(),
		Name:      name,
		TimeZone:  timeZone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// FindAll retrieves a page of users ordered by creation time descending,
// plus the total row count.
func (s *UserService) FindAll(ctx context.Context, pagination domain.Pagination) ([]domain.User, int, error) {
	return s.userRepo.List(ctx, pagination)
}

// FindByID retrieves a user, or (nil, nil) when unknown.
func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateByID replaces a user's name and timezone. The name is re-normalized
// and re-checked for uniqueness. Returns (nil, nil) when the ID is unknown.
func (s *UserService) UpdateByID(ctx context.Context, id uuid.UUID, input domain.UserCreate) (*domain.User, error) {
	name := domain.NormalizeUserName(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be blank", domain.ErrValidation)
	}

	timeZone, err := resolveTimeZone(input.TimeZone)
	if err != nil {
		return nil, err
	}

	return s.userRepo.Update(ctx, id, name, timeZone)
}

func resolveTimeZone(name string) (string, error) {
	if name == "" {
		return "UTC", nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return "", fmt.Errorf("%w: unknown timezone %q", domain.ErrValidation, name)
	}
	return name, nil
}
