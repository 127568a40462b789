package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jkowalik/sleepstats/internal/domain"
)

// PostgreSQL error codes relevant to the schema constraints.
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// translateError maps PostgreSQL constraint failures onto the domain error
// taxonomy so callers can distinguish duplicates, foreign key violations and
// check failures with errors.Is. Other errors pass through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, pgErr.ConstraintName)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrReferentialIntegrity, pgErr.ConstraintName)
	case codeCheckViolation, codeNotNullViolation:
		return fmt.Errorf("%w: %s", domain.ErrConstraintViolation, pgErr.ConstraintName)
	}

	return err
}
