package data

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/plugashop/storefront/internal/errors"
)

// Shared sentinel errors for data-layer repositories.
var (
	ErrStoreNotFound   = errors.New("store not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
)

// mapPgError converts Postgres constraint violations into structured
// application errors. Unknown errors pass through unchanged for the caller
// to wrap.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return apperrors.Wrap(err, apperrors.ErrCodeConflict, "record already exists")
	case pgerrcode.ForeignKeyViolation:
		return apperrors.Wrap(err, apperrors.ErrCodeForeignKey, "referenced record does not exist")
	case pgerrcode.NotNullViolation, pgerrcode.CheckViolation:
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid record data")
	}
	return err
}

// isNoRows reports whether err is the pgx empty-result sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
