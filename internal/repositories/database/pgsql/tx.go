package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fintrackd/fintrack_backend/internal/apperrors"
	portsrepo "github.com/fintrackd/fintrack_backend/internal/core/ports/repositories"
)

// PgxPool is the subset of pgxpool.Pool the repositories need. pgxmock's
// pool satisfies it too, so repository tests run without a live database.
type PgxPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// Querier runs statements on a live transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txState int

const (
	txPending txState = iota
	txCommitted
	txRolledBack
)

// TxWithCallback wraps one live pgx transaction plus an ordered list of
// post-commit callbacks. It moves through exactly one of three terminal
// states: committed, rolled back, or abandoned (in which case the driver
// rolls the transaction back when the connection is released).
type TxWithCallback struct {
	tx        pgx.Tx
	callbacks []func() error
	state     txState
}

// TxManager begins TxWithCallback transactions on a pool.
type TxManager struct {
	pool PgxPool
}

// NewTxManager creates a transaction manager over pool.
func NewTxManager(pool PgxPool) *TxManager {
	return &TxManager{pool: pool}
}

var _ portsrepo.TransactionManager = (*TxManager)(nil)

// Begin starts a new database transaction.
func (m *TxManager) Begin(ctx context.Context) (portsrepo.Tx, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewDataAccessError("begin transaction", err)
	}
	return &TxWithCallback{tx: tx}, nil
}

// QueueCallback registers fn to run after a successful commit, in
// registration order.
func (t *TxWithCallback) QueueCallback(fn func() error) {
	t.callbacks = append(t.callbacks, fn)
}

// Commit commits the underlying transaction and then runs the queued
// callbacks in order. All callbacks run even when earlier ones fail; their
// failures are joined into the returned error. A callback failure does not
// undo the commit.
func (t *TxWithCallback) Commit(ctx context.Context) error {
	if t.state != txPending {
		return apperrors.ErrTxFinished
	}
	if err := t.tx.Commit(ctx); err != nil {
		return apperrors.NewDataAccessError("commit transaction", err)
	}
	t.state = txCommitted

	var callbackErrs []error
	for _, fn := range t.callbacks {
		if err := fn(); err != nil {
			callbackErrs = append(callbackErrs, err)
		}
	}
	return errors.Join(callbackErrs...)
}

// Rollback discards the transaction. Callbacks never run.
func (t *TxWithCallback) Rollback(ctx context.Context) error {
	if t.state != txPending {
		return apperrors.ErrTxFinished
	}
	t.state = txRolledBack
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewDataAccessError("rollback transaction", err)
	}
	return nil
}

// querierFrom unwraps a ports transaction into its live pgx transaction.
// It rejects transactions that were not begun by this store or that have
// already finished.
func querierFrom(tx portsrepo.Tx) (Querier, error) {
	wrapped, ok := tx.(*TxWithCallback)
	if !ok {
		return nil, apperrors.NewDataAccessError("unwrap transaction", errors.New("transaction was not begun by this store"))
	}
	if wrapped.state != txPending {
		return nil, apperrors.ErrTxFinished
	}
	return wrapped.tx, nil
}
