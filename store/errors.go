package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// codeSerializationFailure is the Postgres SQLSTATE reported when a
// serializable transaction could not be linearized with concurrent peers.
const codeSerializationFailure = "40001"

// Op identifies which of the engine's operations produced an error.
type Op int

const (
	OpCount Op = iota
	OpCreate
	OpDelete
	OpGet
	OpList
	OpListPaginated
	OpUpdate
)

func (o Op) String() string {
	switch o {
	case OpCount:
		return "COUNT"
	case OpCreate:
		return "CREATE"
	case OpDelete:
		return "DELETE"
	case OpGet:
		return "GET"
	case OpList:
		return "LIST"
	case OpListPaginated:
		return "LIST PAGINATED"
	case OpUpdate:
		return "UPDATE"
	}
	return "UNKNOWN"
}

// OpError wraps a driver error with the entity and operation that produced
// it. Serialization conflicts never reach this type; they classify as
// SerializationError first.
type OpError struct {
	Entity string
	Op     Op
	Err    error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("error performing %s for entity '%s': %v", e.Op, e.Entity, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// NotFoundError reports a single-row lookup that matched nothing.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find '%s' with id '%s'", e.Entity, e.ID)
}

// EmptyUpdateError reports an update whose data produced no SET pairs. The
// engine refuses to issue the statement.
type EmptyUpdateError struct {
	Entity string
	ID     string
}

func (e *EmptyUpdateError) Error() string {
	return fmt.Sprintf("attempted empty update for '%s' with id '%s'", e.Entity, e.ID)
}

// PoolError reports a failure to construct the connection pool.
type PoolError struct {
	Err error
}

func (e *PoolError) Error() string {
	return fmt.Sprintf("failed to create db pool: %v", e.Err)
}

func (e *PoolError) Unwrap() error { return e.Err }

// SerializationError is the retryable classification of a serialization
// conflict, regardless of which operation triggered it. Callers should
// retry the whole transactional unit of work, not just the last statement.
type SerializationError struct {
	Err *pgconn.PgError
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("transaction serialization error: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// RetriesExceededError is the terminal signal after a caller-bounded retry
// loop exhausted its attempts; it wraps the last serialization error.
type RetriesExceededError struct {
	Err error
}

func (e *RetriesExceededError) Error() string {
	return fmt.Sprintf("transaction retries exceeded: %v", e.Err)
}

func (e *RetriesExceededError) Unwrap() error { return e.Err }

// CountConversionError reports a row count that does not fit an unsigned
// size.
type CountConversionError struct {
	Count int64
}

func (e *CountConversionError) Error() string {
	return fmt.Sprintf("count %d cannot be converted to an unsigned size", e.Count)
}

// MigrateError wraps a failure while applying one migration file.
type MigrateError struct {
	Name string
	Err  error
}

func (e *MigrateError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("migration failed: %v", e.Err)
	}
	return fmt.Sprintf("migration '%s' failed: %v", e.Name, e.Err)
}

func (e *MigrateError) Unwrap() error { return e.Err }

// classifyErr re-wraps serialization conflicts so clients can match them
// generically; every other error passes through unchanged.
func classifyErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeSerializationFailure {
		return &SerializationError{Err: pgErr}
	}
	return err
}

func wrapOpErr(entity string, op Op, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeSerializationFailure {
		return &SerializationError{Err: pgErr}
	}
	return &OpError{Entity: entity, Op: op, Err: err}
}
