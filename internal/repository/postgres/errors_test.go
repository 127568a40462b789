package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jkowalik/sleepstats/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, translateError(nil))
	})

	t.Run("unique violation becomes duplicate key", func(t *testing.T) {
		err := translateError(&pgconn.PgError{Code: "23505", ConstraintName: "users_name_key"})
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
		assert.Contains(t, err.Error(), "users_name_key")
	})

	t.Run("foreign key violation becomes referential integrity", func(t *testing.T) {
		err := translateError(&pgconn.PgError{Code: "23503", ConstraintName: "sleep_logs_user_id_fkey"})
		assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
	})

	t.Run("check violation becomes constraint violation", func(t *testing.T) {
		err := translateError(&pgconn.PgError{Code: "23514", ConstraintName: "sleep_logs_wake_after_bed"})
		assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	})

	t.Run("not null violation becomes constraint violation", func(t *testing.T) {
		err := translateError(&pgconn.PgError{Code: "23502"})
		assert.ErrorIs(t, err, domain.ErrConstraintViolation)
	})

	t.Run("wrapped pg errors are still translated", func(t *testing.T) {
		wrapped := fmt.Errorf("insert user: %w", &pgconn.PgError{Code: "23505"})
		assert.ErrorIs(t, translateError(wrapped), domain.ErrDuplicateKey)
	})

	t.Run("other errors pass through unchanged", func(t *testing.T) {
		sentinel := errors.New("connection refused")
		assert.Equal(t, sentinel, translateError(sentinel))
	})
}
