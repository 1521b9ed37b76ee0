package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is the narrow execution surface shared by *pgxpool.Pool and
// pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Executor is a handle the CRUD operations execute through. Callers can hold
// one and pass it around, but cannot run SQL with it themselves: the method
// yielding the underlying querier is unexported, so only this package can
// reach it. That keeps every statement inside the engine's audited builders.
//
// The only two implementations are *Manager (pool-backed) and *Tx.
type Executor interface {
	// IsTransaction reports whether statements run inside an open
	// transaction.
	IsTransaction() bool

	raw() querier
}
