package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrTxDone is returned when a committed or rolled back Tx is used again.
var ErrTxDone = errors.New("store: transaction already committed or rolled back")

// Tx is a single serializable unit of work, produced only by Manager.Begin.
// It is exclusively owned by the logical operation that began it: do not
// share one Tx between concurrent operations, statement order inside a
// transaction must stay deterministic.
//
// Commit and Rollback consume the Tx. Go cannot enforce that at compile
// time, so every later use returns ErrTxDone (statements issued through a
// spent Tx fail with the driver's closed-transaction error).
type Tx struct {
	tx   pgx.Tx
	done bool
}

// Commit commits the underlying transaction and consumes the Tx.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	if err := t.tx.Commit(ctx); err != nil {
		return classifyErr(err)
	}
	return nil
}

// Rollback rolls the underlying transaction back and consumes the Tx.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	if err := t.tx.Rollback(ctx); err != nil {
		return classifyErr(err)
	}
	return nil
}

// IsTransaction reports true.
func (t *Tx) IsTransaction() bool { return true }

func (t *Tx) raw() querier { return t.tx }
