package store

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Manager wraps a connection pool behind the sealed Executor interface. It
// is safe for concurrent use; the pool hands each statement its own
// connection.
type Manager struct {
	pool *pgxpool.Pool
}

// Ensure both Executor producers implement the interface
var (
	_ Executor = (*Manager)(nil)
	_ Executor = (*Tx)(nil)
)

// NewManager connects a pool using conf and returns the Manager wrapping it.
func NewManager(ctx context.Context, conf *Conf) (*Manager, error) {
	return NewManagerDSN(ctx, conf.dsn(), conf.MaxConns)
}

// NewManagerDSN connects a pool for the given dsn. maxConns <= 0 keeps the
// pgxpool default.
func NewManagerDSN(ctx context.Context, dsn string, maxConns int32) (*Manager, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, &PoolError{Err: fmt.Errorf("failed to parse pgx config: %w", err)}
	}
	if maxConns > 0 {
		config.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, &PoolError{Err: fmt.Errorf("failed to connect pgx Pool: %w", err)}
	}
	log.Print("[INFO] store pool opened")
	return &Manager{pool: pool}, nil
}

// FromPool wraps an already-connected pool.
func FromPool(pool *pgxpool.Pool) *Manager {
	return &Manager{pool: pool}
}

// Ping checks liveness by executing a trivial statement.
func (m *Manager) Ping(ctx context.Context) error {
	if _, err := m.pool.Exec(ctx, "SELECT 1"); err != nil {
		return fmt.Errorf("store ping failed: %w", err)
	}
	return nil
}

// Begin opens a transaction at serializable isolation. The isolation level
// is part of the BEGIN itself; if it cannot be set no Tx is returned.
func (m *Manager) Begin(ctx context.Context) (*Tx, error) {
	raw, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, classifyErr(fmt.Errorf("begin transaction failed: %w", err))
	}
	return &Tx{tx: raw}, nil
}

func (m *Manager) Close() {
	if m.pool == nil {
		return
	}
	log.Print("[INFO] closing store pool")
	m.pool.Close()
}

// IsTransaction reports false: the manager executes each statement on its
// own pooled connection.
func (m *Manager) IsTransaction() bool { return false }

func (m *Manager) raw() querier { return m.pool }
