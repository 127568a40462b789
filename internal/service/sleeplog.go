package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jkowalik/sleepstats/internal/domain"
	"github.com/jkowalik/sleepstats/internal/repository/redis"
	"github.com/rs/zerolog/log"
)

// SleepLogService handles sleep log operations
type SleepLogService struct {
	sleepLogRepo domain.SleepLogRepository
	userRepo     domain.UserRepository
	statsCache   *redis.StatsCache // nil disables caching
}

// NewSleepLogService creates a new sleep log service
func NewSleepLogService(
	sleepLogRepo domain.SleepLogRepository,
	userRepo domain.UserRepository,
	statsCache *redis.StatsCache,
) *SleepLogService {
	return &SleepLogService{
		sleepLogRepo: sleepLogRepo,
		userRepo:     userRepo,
		statsCache:   statsCache,
	}
}

// Create records a new sleep session. The log's date is the calendar date of
// the wake time in the owning user's timezone; a second log for that date
// fails with domain.ErrDuplicateKey.
func (s *SleepLogService) Create(ctx context.Context, userID uuid.UUID, input domain.SleepLogCreate) (*domain.SleepLog, error) {
	if err := validateSleepLogInput(input); err != nil {
		return nil, err
	}

	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sleepLog, err := buildSleepLog(user, input)
	if err != nil {
		return nil, err
	}
	sleepLog.ID = uuid.New()
	sleepLog.CreatedAt = now
	sleepLog.UpdatedAt = now

	if err := s.sleepLogRepo.Create(ctx, sleepLog); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, userID)
	return sleepLog, nil
}

// FindAll retrieves a page of the user's sleep logs, most recent wake time
// first.
func (s *SleepLogService) FindAll(ctx context.Context, userID uuid.UUID, pagination domain.Pagination) ([]domain.SleepLog, error) {
	return s.sleepLogRepo.ListByUser(ctx, userID, pagination)
}

// FindLatest retrieves the user's most recent sleep log, or (nil, nil).
func (s *SleepLogService) FindLatest(ctx context.Context, userID uuid.UUID) (*domain.SleepLog, error) {
	return s.sleepLogRepo.GetLatest(ctx, userID)
}

// FindByID retrieves a sleep log scoped to its owner; logs of other users
// are absent, never revealed.
func (s *SleepLogService) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.SleepLog, error) {
	return s.sleepLogRepo.GetByID(ctx, userID, id)
}

// UpdateByID fully replaces bed time, wake time and mood, re-deriving the
// date. Returns (nil, nil) when the log does not exist or belongs to a
// different user.
func (s *SleepLogService) UpdateByID(ctx context.Context, userID, id uuid.UUID, input domain.SleepLogCreate) (*domain.SleepLog, error) {
	if err := validateSleepLogInput(input); err != nil {
		return nil, err
	}

	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sleepLog, err := buildSleepLog(user, input)
	if err != nil {
		return nil, err
	}
	sleepLog.ID = id
	sleepLog.UpdatedAt = time.Now()

	updated, err := s.sleepLogRepo.Update(ctx, sleepLog)
	if err != nil {
		return nil, err
	}
	if updated != nil {
		s.invalidateStats(ctx, userID)
	}

	return updated, nil
}

// DeleteByID removes a sleep log and returns the deleted record, or
// (nil, nil) when no matching row exists.
func (s *SleepLogService) DeleteByID(ctx context.Context, userID, id uuid.UUID) (*domain.SleepLog, error) {
	deleted, err := s.sleepLogRepo.Delete(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if deleted != nil {
		s.invalidateStats(ctx, userID)
	}

	return deleted, nil
}

func (s *SleepLogService) requireUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: unknown user %s", domain.ErrReferentialIntegrity, userID)
	}
	return user, nil
}

// validateSleepLogInput runs the pre-storage checks. The wake-after-bed rule
// is also enforced by a database check constraint; a violation slipping past
// here surfaces as domain.ErrConstraintViolation instead.
func validateSleepLogInput(input domain.SleepLogCreate) error {
	if !input.WakeTime.After(input.BedTime) {
		return fmt.Errorf("%w: wake time must be after bed time", domain.ErrValidation)
	}
	if !input.Mood.Valid() {
		return fmt.Errorf("%w: unknown mood %q", domain.ErrValidation, input.Mood)
	}
	return nil
}

// buildSleepLog derives the log's date and duration from a validated
// payload. ID and timestamps are left for the caller.
func buildSleepLog(user *domain.User, input domain.SleepLogCreate) (*domain.SleepLog, error) {
	loc, err := user.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone %q: %w", user.TimeZone, err)
	}

	return &domain.SleepLog{
		UserID:   user.ID,
		BedTime:  input.BedTime,
		WakeTime: input.WakeTime,
		Mood:     input.Mood,
		Date:     domain.DateOf(input.WakeTime, loc),
		Duration: input.WakeTime.Sub(input.BedTime),
	}, nil
}

func (s *SleepLogService) invalidateStats(ctx context.Context, userID uuid.UUID) {
	if s.statsCache == nil {
		return
	}
	if err := s.statsCache.InvalidateUser(ctx, userID); err != nil {
		log.Warn().Err(err).Stringer("user_id", userID).Msg("Failed to invalidate stats cache")
	}
}
