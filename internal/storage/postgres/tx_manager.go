package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations shared by a pool and a transaction.
// Repositories obtain one through TxManager.GetQuerier so the same code runs
// inside or outside a unit of work.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxOptions configures transaction behavior.
type TxOptions struct {
	IsolationLevel pgx.TxIsoLevel
	AccessMode     pgx.TxAccessMode
}

// SerializableTxOptions is used by every read/check/write protocol: the
// store's serializable guarantee is what keeps concurrent bookings and
// payments consistent.
func SerializableTxOptions() TxOptions {
	return TxOptions{
		IsolationLevel: pgx.Serializable,
		AccessMode:     pgx.ReadWrite,
	}
}

// ReadOnlyTxOptions is used for multi-statement listings.
func ReadOnlyTxOptions() TxOptions {
	return TxOptions{
		IsolationLevel: pgx.ReadCommitted,
		AccessMode:     pgx.ReadOnly,
	}
}

// TxManager bounds units of work with begin/commit-or-rollback. The active
// transaction travels in the context, so a protocol function and every
// repository call it makes observe the same isolation.
type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

type txKey struct{}

// RunSerializable executes fn as one serializable unit of work.
func (m *TxManager) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTransaction(ctx, SerializableTxOptions(), fn)
}

// RunReadOnly executes fn in a read-only transaction.
func (m *TxManager) RunReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTransaction(ctx, ReadOnlyTxOptions(), fn)
}

// RunInTransaction executes fn with the given options. If a transaction is
// already open in ctx it is reused: protocols never nest units of work.
func (m *TxManager) RunInTransaction(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) error {
	if existing := m.getTx(ctx); existing != nil {
		return fn(ctx)
	}

	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   opts.IsolationLevel,
		AccessMode: opts.AccessMode,
	})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)

	if err := fn(txCtx); err != nil {
		// Rollback with a background context so the unit is closed even
		// when the caller's context was cancelled mid-flight.
		_ = tx.Rollback(context.Background())
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(context.Background())
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (m *TxManager) getTx(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}

// GetQuerier returns the open transaction from ctx, or the pool when no unit
// of work is active.
func (m *TxManager) GetQuerier(ctx context.Context) Querier {
	if tx := m.getTx(ctx); tx != nil {
		return tx
	}
	return m.pool
}

// IsSerializationFailure reports whether err is the store signalling that a
// concurrent writer invalidated this transaction's view (SQLSTATE 40001).
// The colliding unit has already been rolled back; the caller reports the
// operation's generic failure and may re-issue the request.
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

// IsUniqueViolation reports a unique constraint violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
