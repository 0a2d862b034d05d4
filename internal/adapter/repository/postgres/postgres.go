// Package postgres implements the repositories over sqlx and the pgx stdlib
// driver. Uniqueness of short codes and emails is enforced by unique indexes;
// constraint violations are mapped to the entity sentinel errors.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationErrCode = "23505"

func isUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolationErrCode
}
