package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

// DBConnKey carries a request- or transaction-scoped connection. Repositories
// check for it before falling back to the shared pool, so code running inside
// WithSerializableTx automatically sees uncommitted writes.
const DBConnKey contextKey = "db_conn"

// Querier is the subset of pgx operations repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// ConnFromContext retrieves the scoped connection from context, if any.
func ConnFromContext(ctx context.Context) Querier {
	q, _ := ctx.Value(DBConnKey).(Querier)
	return q
}

// WithConn returns a context whose repositories will run on the given querier.
func WithConn(ctx context.Context, q Querier) context.Context {
	return context.WithValue(ctx, DBConnKey, q)
}

// IsSerializationFailure reports whether err is a Postgres serialization
// conflict (SQLSTATE 40001). Callers typically retry or surface a conflict.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

// WithSerializableTx runs fn inside a SERIALIZABLE transaction. The
// transaction is placed on the context so repository calls inside fn execute
// on it. The transaction commits when fn returns nil and rolls back otherwise.
func WithSerializableTx(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context) error) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(WithConn(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// TxRunner abstracts transactional execution so services can be tested
// without a live database.
type TxRunner interface {
	RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// PoolTxRunner is the production TxRunner backed by a pgx pool.
type PoolTxRunner struct {
	Pool *pgxpool.Pool
}

func (r *PoolTxRunner) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithSerializableTx(ctx, r.Pool, fn)
}
