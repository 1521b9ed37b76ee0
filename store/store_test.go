package store

// Shared test fixtures: a book model in the shape generated model
// boilerplate would produce, plus scripted fakes for the driver surface.

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mattcl/bodega/nullable"
)

var (
	colID     = MustColumn("id")
	colTitle  = MustColumn("title")
	colAuthor = MustColumn("author")
	colPages  = MustColumn("pages")
)

type book struct {
	ID     int64
	Title  string
	Author string
	Pages  int64
}

func (b *book) SelectColumns() []Column { return []Column{colID, colTitle, colAuthor, colPages} }
func (b *book) ScanTargets() []any      { return []any{&b.ID, &b.Title, &b.Author, &b.Pages} }
func (b *book) CursorValue() int64      { return b.ID }
func (b *book) CursorColumn() Column    { return colID }

type bookBmc struct{}

func (bookBmc) EntityName() string   { return "book" }
func (bookBmc) TableName() string    { return "books" }
func (bookBmc) IDColumn() Column     { return colID }
func (bookBmc) IDValue(id int64) any { return id }

type bookCreate struct {
	Title  string
	Author string
	Pages  int64
}

func (c bookCreate) InsertColumns() []Column { return []Column{colTitle, colAuthor, colPages} }
func (c bookCreate) InsertValues() []any     { return []any{c.Title, c.Author, c.Pages} }

type bookUpdate struct {
	Title  nullable.String
	Author nullable.String
	Pages  nullable.Int
}

func (u bookUpdate) UpdateAssignments() []Assignment {
	var sets []Assignment
	if !u.Title.IsNil() {
		sets = append(sets, Assignment{Column: colTitle, Value: u.Title.ForceValue()})
	}
	if !u.Author.IsNil() {
		sets = append(sets, Assignment{Column: colAuthor, Value: u.Author.ForceValue()})
	}
	if !u.Pages.IsNil() {
		sets = append(sets, Assignment{Column: colPages, Value: u.Pages.ForceValue()})
	}
	return sets
}

type bookFilter struct {
	limit  int
	cursor *int64
	author nullable.String
	desc   bool
}

func (f *bookFilter) FilterConds() []Cond {
	var conds []Cond
	if !f.author.IsNil() {
		conds = append(conds, Eq(colAuthor, f.author.ForceValue()))
	}
	return conds
}

func (f *bookFilter) Cursor() (int64, bool) {
	if f.cursor == nil {
		return 0, false
	}
	return *f.cursor, true
}

func (f *bookFilter) SetCursor(c int64) { f.cursor = &c }
func (f *bookFilter) PageLimit() int    { return f.limit }
func (f *bookFilter) Descending() bool  { return f.desc }

// --- driver fakes ---

type call struct {
	sql  string
	args []any
}

// fakeQuerier scripts driver responses and records every statement it sees.
type fakeQuerier struct {
	calls []call

	execErr  error
	queryErr error
	rowErr   error

	tags    []pgconn.CommandTag
	results [][][]any // successive Query results
	rows    [][]any   // successive QueryRow results; a nil row means no rows
}

func (q *fakeQuerier) record(sql string, args []any) {
	q.calls = append(q.calls, call{sql: sql, args: args})
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.record(sql, args)
	if q.execErr != nil {
		return pgconn.CommandTag{}, q.execErr
	}
	tag := q.tags[0]
	q.tags = q.tags[1:]
	return tag, nil
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.record(sql, args)
	if q.queryErr != nil {
		return nil, q.queryErr
	}
	result := q.results[0]
	q.results = q.results[1:]
	return &fakeRows{data: result}, nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.record(sql, args)
	if q.rowErr != nil {
		return &fakeRow{err: q.rowErr}
	}
	row := q.rows[0]
	q.rows = q.rows[1:]
	if row == nil {
		return &fakeRow{err: pgx.ErrNoRows}
	}
	return &fakeRow{vals: row}
}

type fakeRow struct {
	vals []any
	err  error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanInto(dest, r.vals)
}

type fakeRows struct {
	data [][]any
	idx  int
	err  error
}

var _ pgx.Rows = (*fakeRows)(nil)

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error                       { return scanInto(dest, r.data[r.idx-1]) }
func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func scanInto(dest, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("scan: want %d destinations, have %d values", len(dest), len(vals))
	}
	for i, v := range vals {
		switch d := dest[i].(type) {
		case *int64:
			val, ok := v.(int64)
			if !ok {
				return fmt.Errorf("scan: value %d is %T, not int64", i, v)
			}
			*d = val
		case *string:
			val, ok := v.(string)
			if !ok {
				return fmt.Errorf("scan: value %d is %T, not string", i, v)
			}
			*d = val
		case *bool:
			val, ok := v.(bool)
			if !ok {
				return fmt.Errorf("scan: value %d is %T, not bool", i, v)
			}
			*d = val
		default:
			return fmt.Errorf("scan: unsupported destination %T", dest[i])
		}
	}
	return nil
}

// fakeExecutor stands in for the pool-backed executor in engine tests.
type fakeExecutor struct {
	q *fakeQuerier
}

func (f *fakeExecutor) IsTransaction() bool { return false }
func (f *fakeExecutor) raw() querier        { return f.q }

// fakePgxTx implements pgx.Tx for transaction tests.
type fakePgxTx struct {
	q           *fakeQuerier
	commitErr   error
	rollbackErr error
	commits     int
	rollbacks   int
}

var _ pgx.Tx = (*fakePgxTx)(nil)

func (t *fakePgxTx) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, errors.New("nested transactions unsupported")
}

func (t *fakePgxTx) Commit(ctx context.Context) error {
	t.commits++
	return t.commitErr
}

func (t *fakePgxTx) Rollback(ctx context.Context) error {
	t.rollbacks++
	return t.rollbackErr
}

func (t *fakePgxTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakePgxTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return nil
}

func (t *fakePgxTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakePgxTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakePgxTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.q.Exec(ctx, sql, args...)
}

func (t *fakePgxTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.q.Query(ctx, sql, args...)
}

func (t *fakePgxTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.q.QueryRow(ctx, sql, args...)
}

func (t *fakePgxTx) Conn() *pgx.Conn { return nil }

// fakeBeginner hands out Txs wrapping fresh fakePgxTxs.
type fakeBeginner struct {
	makeTx   func() *fakePgxTx
	beginErr error
	begun    []*fakePgxTx
}

func (b *fakeBeginner) Begin(ctx context.Context) (*Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	ftx := b.makeTx()
	b.begun = append(b.begun, ftx)
	return &Tx{tx: ftx}, nil
}
