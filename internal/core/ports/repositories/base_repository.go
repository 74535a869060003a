package repositories

import "context"

// Tx is a live database transaction with deferred post-commit callbacks.
//
// A Tx is single-owner: it belongs to the call chain that began it and must
// not be shared across concurrent goroutines. Commit commits the underlying
// transaction and then runs the queued callbacks in registration order;
// Rollback never runs callbacks. Either call finishes the transaction, and a
// second finish reports ErrTxFinished. A Tx abandoned without a finish is
// rolled back by the underlying driver when its connection is released, so
// callers must not rely on abandonment for commit semantics.
type Tx interface {
	// Commit commits the transaction, then runs queued callbacks in order.
	// Callback failures are joined into the returned error; the commit
	// itself has already succeeded when only callbacks fail.
	Commit(ctx context.Context) error

	// Rollback discards the transaction without running callbacks.
	Rollback(ctx context.Context) error

	// QueueCallback registers fn to run after a successful commit.
	QueueCallback(fn func() error)
}

// TransactionManager begins transactions against the backing store.
type TransactionManager interface {
	Begin(ctx context.Context) (Tx, error)
}
