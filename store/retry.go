package store

import (
	"context"
	"errors"
)

// TxBeginner begins serializable transactions. *Manager is the production
// implementation.
type TxBeginner interface {
	Begin(ctx context.Context) (*Tx, error)
}

// RunInTx runs fn inside a serializable transaction and commits it. When
// the store reports a serialization conflict — from any statement or from
// the commit itself — the transaction is rolled back and the whole unit of
// work retried, up to attempts tries in total. Once exhausted, the last
// conflict is returned wrapped in RetriesExceededError. Every other error
// aborts immediately after rollback and propagates unchanged.
//
// Nothing retries automatically elsewhere in this package; this loop is the
// one retry policy, and opting into it is the caller's choice.
func RunInTx(ctx context.Context, b TxBeginner, attempts int, fn func(ctx context.Context, tx *Tx) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var last error
	for i := 0; i < attempts; i++ {
		err := runInTxOnce(ctx, b, fn)
		if err == nil {
			return nil
		}
		var serErr *SerializationError
		if !errors.As(err, &serErr) {
			return err
		}
		last = err
	}
	return &RetriesExceededError{Err: last}
}

func runInTxOnce(ctx context.Context, b TxBeginner, fn func(ctx context.Context, tx *Tx) error) error {
	tx, err := b.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
