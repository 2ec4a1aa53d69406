// Package store holds the SQL access layer. All functions run single
// statements over database.DB so handlers can substitute a FakeDB in tests.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound marks a lookup or row-targeting write that matched nothing.
	ErrNotFound = errors.New("no encontrado")
	// ErrDuplicate marks a unique-constraint violation on insert.
	ErrDuplicate = errors.New("ya existe")
)

const pgUniqueViolation = "23505"

// mapError translates pgx errors into the store sentinels.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicate
	}
	return err
}
