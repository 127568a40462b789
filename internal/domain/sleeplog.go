package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Mood is the self-reported feeling after a night of sleep.
type Mood string

const (
	MoodBad  Mood = "BAD"
	MoodOK   Mood = "OK"
	MoodGood Mood = "GOOD"
)

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	switch m {
	case MoodBad, MoodOK, MoodGood:
		return true
	}
	return false
}

// SleepLog represents one recorded sleep session. Date is derived from
// WakeTime in the owning user's timezone at write time and is never set
// directly; at most one log exists per user per date.
type SleepLog struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	BedTime   time.Time     `json:"bed_time"`
	WakeTime  time.Time     `json:"wake_time"`
	Mood      Mood          `json:"mood"`
	Date      Date          `json:"date"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SleepLogCreate represents sleep log creation data. The same payload
// performs a full replace on update.
type SleepLogCreate struct {
	BedTime  time.Time `json:"bed_time" validate:"required"`
	WakeTime time.Time `json:"wake_time" validate:"required,gtfield=BedTime"`
	Mood     Mood      `json:"mood" validate:"required,oneof=BAD OK GOOD"`
}

// SleepLogRepository defines the interface for sleep log storage. Lookups
// scoped by userID report rows belonging to other users as absent.
type SleepLogRepository interface {
	Create(ctx context.Context, log *SleepLog) error
	ListByUser(ctx context.Context, userID uuid.UUID, pagination Pagination) ([]SleepLog, error)
	GetLatest(ctx context.Context, userID uuid.UUID) (*SleepLog, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*SleepLog, error)
	Update(ctx context.Context, log *SleepLog) (*SleepLog, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (*SleepLog, error)
	ListSince(ctx context.Context, userID uuid.UUID, from Date) ([]SleepLog, error)
}
