package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	util "github.com/spec-kit/user-service/pkg/util"
)

// uniqueViolationCode is the PostgreSQL error code for unique constraint
// violations.
const uniqueViolationCode = "23505"

// MapError translates a driver error into the service's closed error
// taxonomy. Uniqueness violations become conflicts on every path, including
// update. Pool acquire starvation surfaces as a context deadline under a
// request timeout and is reported as a transient condition rather than an
// opaque failure.
func MapError(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return util.NewNotFound(resource, nil)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return util.NewConflict("email already in use", map[string]any{
			"constraint": pgErr.ConstraintName,
		})
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return util.NewPoolTimeout(err)
	}

	return util.NewStorageFailure(err)
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
