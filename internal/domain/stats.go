package domain

import (
	"time"

	"github.com/google/uuid"
)

// SleepStats holds rolling-window aggregates for one user. It is derived on
// demand from stored sleep logs and never persisted.
type SleepStats struct {
	UserID          uuid.UUID       `json:"user_id"`
	TimeZone        string          `json:"time_zone"`
	FromDate        Date            `json:"from_date"`
	ToDate          Date            `json:"to_date"`
	AverageBedTime  TimeOfDay       `json:"average_bed_time"`
	AverageWakeTime TimeOfDay       `json:"average_wake_time"`
	AverageDuration time.Duration   `json:"average_duration"`
	MoodFrequencies MoodFrequencies `json:"mood_frequencies"`
}

// MoodFrequencies counts logs per mood within the window. Moods with no
// logs are reported as zero, not omitted.
type MoodFrequencies struct {
	Bad  int `json:"bad"`
	OK   int `json:"ok"`
	Good int `json:"good"`
}
