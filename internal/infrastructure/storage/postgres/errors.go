package postgres

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"stocktake/internal/core/apperror"
)

// PostgreSQL SQLSTATE codes handled by MapError.
const (
	pgForeignKeyViolation  = "23503"
	pgUniqueViolation      = "23505"
	pgCheckViolation       = "23514"
	pgNotNullViolation     = "23502"
	pgNumericOutOfRange    = "22003"
	pgInvalidTextRepr      = "22P02"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgQueryCanceled        = "57014"
)

// MapError translates driver errors into AppErrors.
// AppErrors and unknown errors pass through unchanged; callers wrap the rest
// with NewInternal at the HTTP boundary.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr, err)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperror.NewTimeout(err)
	case errors.Is(err, context.Canceled):
		return err
	case pgconn.SafeToRetry(err), pgconn.Timeout(err):
		return apperror.NewTransient(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperror.NewTransient(err)
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return apperror.NewTransient(err)
	}

	return err
}

func mapPgError(pgErr *pgconn.PgError, err error) error {
	switch pgErr.Code {
	case pgForeignKeyViolation:
		// Insert/update pointing at a missing row vs delete blocked by children.
		if strings.HasPrefix(pgErr.Message, "update or delete") ||
			strings.Contains(pgErr.Detail, "is still referenced") {
			return apperror.NewReferenceInUse(pgErr.TableName, nil).
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		}
		return apperror.NewNotFound("referenced record", nil).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	case pgUniqueViolation:
		return apperror.NewDuplicate(pgErr.TableName, pgErr.ConstraintName, nil).WithCause(err)
	case pgCheckViolation, pgNotNullViolation:
		return apperror.NewValidation("value violates constraint").
			WithDetail("constraint", pgErr.ConstraintName).
			WithDetail("column", pgErr.ColumnName).
			WithCause(err)
	case pgNumericOutOfRange, pgInvalidTextRepr:
		return apperror.NewValidation("value out of range").WithCause(err)
	case pgSerializationFailure, pgDeadlockDetected:
		return apperror.NewTransient(err)
	case pgQueryCanceled:
		return apperror.NewTimeout(err)
	}

	// Class 08: connection exceptions
	if strings.HasPrefix(pgErr.Code, "08") {
		return apperror.NewTransient(err)
	}
	return err
}

// IsNoRows reports whether err is pgx.ErrNoRows.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsSerializationFailure reports whether err carries a serialization failure
// or deadlock raised by PostgreSQL, including through a mapped AppError.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
}
