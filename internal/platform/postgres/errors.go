package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shoresh/familytree-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// MapError maps a database error to the store's sentinel errors, keeping the
// original error in the chain.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case IsUniqueViolation(err):
		return fmt.Errorf("%w: %w", store.ErrPersonExists, err)
	case IsCheckConstraintViolation(err):
		return fmt.Errorf(
			"%w: check constraint violation (%s): %w",
			store.ErrInvalidEntity,
			pgErr.ConstraintName,
			err,
		)
	case pgErr.Code == notNullViolationCode:
		return fmt.Errorf(
			"%w: not null violation (%s): %w",
			store.ErrInvalidEntity,
			pgErr.ColumnName,
			err,
		)
	}

	return err
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsCheckConstraintViolation checks if the given error is a PostgreSQL check constraint violation.
func IsCheckConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == checkViolationCode
}

// updateFailed maps err and marks it as a failed UPDATE.
func updateFailed(err error) error {
	return fmt.Errorf("%w: %w", store.ErrUpdateFailed, MapError(err))
}

// deleteFailed maps err and marks it as a failed DELETE.
func deleteFailed(err error) error {
	return fmt.Errorf("%w: %w", store.ErrDeleteFailed, MapError(err))
}

// checkRowsAffected returns store.ErrPersonNotFound when an UPDATE or DELETE
// matched no row.
func checkRowsAffected(result sql.Result) error {
	if result == nil {
		return fmt.Errorf("nil result provided to checkRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrPersonNotFound
	}
	return nil
}
