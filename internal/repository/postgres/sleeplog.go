package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jkowalik/sleepstats/internal/domain"
)

const sleepLogColumns = `id, user_id, bed_time, wake_time, mood, date, created_at, updated_at`

// SleepLogRepository handles sleep log data access
type SleepLogRepository struct {
	db *DB
}

// NewSleepLogRepository creates a new sleep log repository
func NewSleepLogRepository(db *DB) *SleepLogRepository {
	return &SleepLogRepository{db: db}
}

// Create inserts a new sleep log inside a transaction so the derived date
// and the write land together. A second log for the same (user, date)
// surfaces as domain.ErrDuplicateKey, an unknown user as
// domain.ErrReferentialIntegrity.
func (r *SleepLogRepository) Create(ctx context.Context, log *domain.SleepLog) error {
	query := `
		INSERT INTO sleep_logs (id, user_id, bed_time, wake_time, mood, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	err := pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			log.ID,
			log.UserID,
			log.BedTime,
			log.WakeTime,
			log.Mood,
			log.Date.MidnightIn(time.UTC),
			log.CreatedAt,
			log.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create sleep log: %w", translateError(err))
	}

	return nil
}

// ListByUser retrieves a page of sleep logs ordered by wake time descending.
func (r *SleepLogRepository) ListByUser(ctx context.Context, userID uuid.UUID, pagination domain.Pagination) ([]domain.SleepLog, error) {
	query := `
		SELECT ` + sleepLogColumns + `
		FROM sleep_logs
		WHERE user_id = $1
		ORDER BY wake_time DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep logs: %w", err)
	}
	defer rows.Close()

	return collectSleepLogs(rows)
}

// GetLatest retrieves the most recent sleep log by wake time, or (nil, nil)
// when the user has none.
func (r *SleepLogRepository) GetLatest(ctx context.Context, userID uuid.UUID) (*domain.SleepLog, error) {
	query := `
		SELECT ` + sleepLogColumns + `
		FROM sleep_logs
		WHERE user_id = $1
		ORDER BY wake_time DESC
		LIMIT 1
	`

	log, err := scanSleepLog(r.db.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest sleep log: %w", err)
	}

	return log, nil
}

// GetByID retrieves a sleep log scoped to its owner. A log belonging to a
// different user is reported as absent, not as an error.
func (r *SleepLogRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.SleepLog, error) {
	query := `
		SELECT ` + sleepLogColumns + `
		FROM sleep_logs
		WHERE user_id = $1 AND id = $2
	`

	log, err := scanSleepLog(r.db.Pool.QueryRow(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sleep log: %w", err)
	}

	return log, nil
}

// Update replaces bed time, wake time, mood and the re-derived date, bumping
// updated_at. Returns (nil, nil) when no row matches the user and ID.
func (r *SleepLogRepository) Update(ctx context.Context, log *domain.SleepLog) (*domain.SleepLog, error) {
	query := `
		UPDATE sleep_logs
		SET bed_time = $3, wake_time = $4, mood = $5, date = $6, updated_at = $7
		WHERE user_id = $1 AND id = $2
		RETURNING ` + sleepLogColumns + `
	`

	var updated *domain.SleepLog
	err := pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, query,
			log.UserID,
			log.ID,
			log.BedTime,
			log.WakeTime,
			log.Mood,
			log.Date.MidnightIn(time.UTC),
			log.UpdatedAt,
		)

		var err error
		updated, err = scanSleepLog(row)
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update sleep log: %w", translateError(err))
	}

	return updated, nil
}

// Delete removes a sleep log scoped to its owner and returns the deleted
// record, or (nil, nil) when no row matches.
func (r *SleepLogRepository) Delete(ctx context.Context, userID, id uuid.UUID) (*domain.SleepLog, error) {
	query := `
		DELETE FROM sleep_logs
		WHERE user_id = $1 AND id = $2
		RETURNING ` + sleepLogColumns + `
	`

	var deleted *domain.SleepLog
	err := pgx.BeginFunc(ctx, r.db.Pool, func(tx pgx.Tx) error {
		var err error
		deleted, err = scanSleepLog(tx.QueryRow(ctx, query, userID, id))
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete sleep log: %w", err)
	}

	return deleted, nil
}

// ListSince retrieves all sleep logs with date >= from, for the statistics
// window. No pagination: a window holds at most one log per day.
func (r *SleepLogRepository) ListSince(ctx context.Context, userID uuid.UUID, from domain.Date) ([]domain.SleepLog, error) {
	query := `
		SELECT ` + sleepLogColumns + `
		FROM sleep_logs
		WHERE user_id = $1 AND date >= $2
		ORDER BY date
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, from.MidnightIn(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to list sleep logs since %s: %w", from, err)
	}
	defer rows.Close()

	return collectSleepLogs(rows)
}

func collectSleepLogs(rows pgx.Rows) ([]domain.SleepLog, error) {
	var logs []domain.SleepLog
	for rows.Next() {
		log, err := scanSleepLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sleep log: %w", err)
		}
		logs = append(logs, *log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sleep logs: %w", err)
	}
	return logs, nil
}

func scanSleepLog(row pgx.Row) (*domain.SleepLog, error) {
	var log domain.SleepLog
	var date time.Time

	if err := row.Scan(
		&log.ID,
		&log.UserID,
		&log.BedTime,
		&log.WakeTime,
		&log.Mood,
		&date,
		&log.CreatedAt,
		&log.UpdatedAt,
	); err != nil {
		return nil, err
	}

	log.Date = domain.DateOf(date, time.UTC)
	log.Duration = log.WakeTime.Sub(log.BedTime)
	return &log, nil
}
