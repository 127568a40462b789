package domain

import "errors"

// Error taxonomy for storage and validation failures. Callers distinguish
// these with errors.Is; absent rows are reported as (nil, nil), never as an
// error.
var (
	// ErrValidation marks input rejected before any storage access.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateKey marks a uniqueness violation (user name, or one
	// sleep log per user per date).
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrConstraintViolation marks a database-level invariant rejected at
	// the storage boundary (check or not-null constraint).
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrReferentialIntegrity marks a foreign key violation, i.e. a sleep
	// log referencing an unknown user.
	ErrReferentialIntegrity = errors.New("referential integrity violation")
)
