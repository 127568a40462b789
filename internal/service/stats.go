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

// StatsService computes rolling-window sleep statistics
type StatsService struct {
	sleepLogRepo domain.SleepLogRepository
	userRepo     domain.UserRepository
	statsCache   *redis.StatsCache // nil disables caching
	clock        Clock
}

// NewStatsService creates a new stats service
func NewStatsService(
	sleepLogRepo domain.SleepLogRepository,
	userRepo domain.UserRepository,
	statsCache *redis.StatsCache,
	clock Clock,
) *StatsService {
	return &StatsService{
		sleepLogRepo: sleepLogRepo,
		userRepo:     userRepo,
		statsCache:   statsCache,
		clock:        clock,
	}
}

// CalculateSleepStats aggregates the user's sleep logs over the trailing
// daysBack window ending today in the user's timezone. Returns (nil, nil)
// when the user is unknown or the window holds no logs.
//
// Average bed and wake times are circular averages: each log's times are
// expressed as signed offsets from midnight of that log's own date, the
// offsets are averaged arithmetically, and the mean is normalized into
// [0, 24h). A bedtime of 23:30 the night before is the offset -30m, so
// averaging it with +30m lands near midnight instead of midday.
//
// Midnight anchors are evaluated in the user's timezone at query time. Logs
// written under a previous timezone keep their stored date, so a timezone
// change mid-window can skew their offsets by the zone difference.
func (s *StatsService) CalculateSleepStats(ctx context.Context, userID uuid.UUID, daysBack int) (*domain.SleepStats, error) {
	if daysBack <= 0 {
		return nil, fmt.Errorf("%w: days back must be positive", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	if s.statsCache != nil {
		cached, err := s.statsCache.Get(ctx, userID, daysBack)
		if err != nil {
			log.Warn().Err(err).Stringer("user_id", userID).Msg("Failed to read stats cache")
		}
		if cached != nil {
			return cached, nil
		}
	}

	loc, err := user.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone %q: %w", user.TimeZone, err)
	}

	// Calendar arithmetic on dates, not instants, so the window boundary
	// is unaffected by DST transitions.
	toDate := domain.DateOf(s.clock.Now(), loc)
	fromDate := toDate.AddDays(-daysBack)

	logs, err := s.sleepLogRepo.ListSince(ctx, userID, fromDate)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, nil
	}

	var bedSum, wakeSum, durationSum time.Duration
	var freq domain.MoodFrequencies

	for _, sl := range logs {
		midnight := sl.Date.MidnightIn(loc)
		bedSum += sl.BedTime.Sub(midnight)
		wakeSum += sl.WakeTime.Sub(midnight)
		durationSum += sl.WakeTime.Sub(sl.BedTime)

		switch sl.Mood {
		case domain.MoodBad:
			freq.Bad++
		case domain.MoodOK:
			freq.OK++
		case domain.MoodGood:
			freq.Good++
		}
	}

	n := time.Duration(len(logs))
	stats := &domain.SleepStats{
		UserID:          userID,
		TimeZone:        user.TimeZone,
		FromDate:        fromDate,
		ToDate:          toDate,
		AverageBedTime:  domain.TimeOfDayFromOffset(bedSum / n),
		AverageWakeTime: domain.TimeOfDayFromOffset(wakeSum / n),
		AverageDuration: durationSum / n,
		MoodFrequencies: freq,
	}

	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, daysBack, stats); err != nil {
			log.Warn().Err(err).Stringer("user_id", userID).Msg("Failed to write stats cache")
		}
	}

	return stats, nil
}
