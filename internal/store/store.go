// Package store implements the service persistence contracts on PostgreSQL
// using pgx. Row-not-found and unique-violation errors are translated to the
// service sentinels; everything else is wrapped and surfaces as a 500.
package store

import (
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/NandiniVerma123/Ecommerce-BE/internal/service"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// translate maps driver errors to service sentinels, wrapping anything else
// with the given context.
func translate(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return service.ErrNotFound
	case isUniqueViolation(err):
		return service.ErrConflict
	default:
		return errors.Wrap(err, msg)
	}
}
