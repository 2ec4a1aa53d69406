package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxDB adapts a pgxpool.Pool to the DB interface, adding the transaction
// scope on top of the pool's statement methods.
type pgxDB struct {
	*pgxpool.Pool
}

func (p *pgxDB) InTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := p.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// NewPgxPool opens a pgx connection pool against the configured Postgres URL.
func NewPgxPool(ctx context.Context, url string) (DB, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &pgxDB{Pool: pool}, nil
}
