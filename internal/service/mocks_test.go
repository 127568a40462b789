package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jkowalik/sleepstats/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the domain.UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, pagination domain.Pagination) ([]domain.User, int, error) {
	args := m.Called(ctx, pagination)
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, name, timeZone string) (*domain.User, error) {
	args := m.Called(ctx, id, name, timeZone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockSleepLogRepository mocks the domain.SleepLogRepository interface
type MockSleepLogRepository struct {
	mock.Mock
}

func (m *MockSleepLogRepository) Create(ctx context.Context, log *domain.SleepLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockSleepLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, pagination domain.Pagination) ([]domain.SleepLog, error) {
	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SleepLog), args.Error(1)
}

func (m *MockSleepLogRepository) GetLatest(ctx context.Context, userID uuid.UUID) (*domain.SleepLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SleepLog), args.Error(1)
}

func (m *MockSleepLogRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SleepLog, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SleepLog), args.Error(1)
}

func (m *MockSleepLogRepository) Update(ctx context.Context, log *domain.SleepLog) (*domain.SleepLog, error) {
	args := m.Called(ctx, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SleepLog), args.Error(1)
}

func (m *MockSleepLogRepository) Delete(ctx context.Context, userID, id uuid.UUID) (*domain.SleepLog, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SleepLog), args.Error(1)
}

func (m *MockSleepLogRepository) ListSince(ctx context.Context, userID uuid.UUID, from domain.Date) ([]domain.SleepLog, error) {
	args := m.Called(ctx, userID, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SleepLog), args.Error(1)
}

// fixedClock is a Clock pinned to a single instant
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
