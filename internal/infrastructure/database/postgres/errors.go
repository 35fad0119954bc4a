package postgres

import (
	"errors"

	appErrors "bookstore-management/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// isUniqueViolation recognises a unique index hit whether or not gorm has
// already translated the driver error.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// translate turns a persistence error into the result contract: unique
// violations become conflict, anything else is internal.
func translate(err error, conflict *appErrors.AppError, op string) error {
	if err == nil {
		return nil
	}
	if conflict != nil && isUniqueViolation(err) {
		return conflict
	}
	return appErrors.Internal(op, err)
}
