package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgErrCode extracts the SQLSTATE code from a pgconn error, or "" when err
// did not come from Postgres.
func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsPgDuplicateError reports a unique-constraint violation (23505). The
// constraints that can trip it here are the username column, the
// (user_id, url) bookmark pair and the extension token value; each
// repository translates it into a ConflictError or a silent skip.
func IsPgDuplicateError(err error) bool {
	return pgErrCode(err) == "23505"
}

// IsPgNoRowsError reports a query that matched nothing
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError reports a foreign-key violation (23503), raised when a
// collection's parent_id or a bookmark's collection_id points at a row that
// vanished between the ownership check and the insert.
func IsPgForeignKeyError(err error) bool {
	return pgErrCode(err) == "23503"
}
