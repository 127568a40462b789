package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jkowalik/sleepstats/internal/domain"
)

const statsCachePrefix = "sleepstats:"

// StatsCache holds computed sleep statistics in Redis for a short TTL, keyed
// by user and window size. Every sleep log mutation for a user invalidates
// all of that user's entries.
type StatsCache struct {
	client *Client
	ttl    time.Duration
}

// NewStatsCache creates a new stats cache
func NewStatsCache(client *Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func statsKey(userID uuid.UUID, daysBack int) string {
	return fmt.Sprintf("%s%s:%d", statsCachePrefix, userID, daysBack)
}

// Get retrieves cached stats for a user and window. A miss returns (nil, nil).
func (c *StatsCache) Get(ctx context.Context, userID uuid.UUID, daysBack int) (*domain.SleepStats, error) {
	data, err := c.client.rdb.Get(ctx, statsKey(userID, daysBack)).Bytes()
	if err != nil {
		return nil, nil // cache miss
	}

	var stats domain.SleepStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached stats: %w", err)
	}

	return &stats, nil
}

// Set caches stats for a user and window
func (c *StatsCache) Set(ctx context.Context, daysBack int, stats *domain.SleepStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	return c.client.rdb.Set(ctx, statsKey(stats.UserID, daysBack), data, c.ttl).Err()
}

// InvalidateUser removes all cached windows for a user
func (c *StatsCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("%s%s:*", statsCachePrefix, userID)
	var cursor uint64

	for {
		keys, nextCursor, err := c.client.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan stats keys: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete stats keys: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			return nil
		}
	}
}
