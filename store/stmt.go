package store

import (
	"strconv"
	"strings"
)

type condOp string

const (
	condEq condOp = " = "
	condGt condOp = " > "
	condLt condOp = " < "
)

// Cond is a single WHERE predicate comparing a validated column against one
// bound value. Conds render in append order, joined with AND.
type Cond struct {
	column Column
	op     condOp
	value  any
}

func Eq(column Column, value any) Cond {
	return Cond{column: column, op: condEq, value: value}
}

func Gt(column Column, value any) Cond {
	return Cond{column: column, op: condGt, value: value}
}

func Lt(column Column, value any) Cond {
	return Cond{column: column, op: condLt, value: value}
}

// OrderBy defines a validated ORDER BY clause over a single column.
type OrderBy struct {
	Column Column
	Desc   bool
}

// String returns the safe ORDER BY clause fragment (without the "ORDER BY" prefix).
func (o OrderBy) String() string {
	if o.Desc {
		return o.Column.Name() + " DESC"
	}
	return o.Column.Name() + " ASC"
}

func writeColumnList(b *strings.Builder, columns []Column) {
	for i, c := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Name())
	}
}

// writeConds renders the WHERE clause with $n placeholders starting at start
// and returns the bound values in placeholder order.
func writeConds(b *strings.Builder, conds []Cond, start int) []any {
	if len(conds) == 0 {
		return nil
	}
	args := make([]any, 0, len(conds))
	b.WriteString(" WHERE ")
	for i, c := range conds {
		if i > 0 {
			b.WriteString(" AND ")
		}
		b.WriteString(c.column.Name())
		b.WriteString(string(c.op))
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(start + i))
		args = append(args, c.value)
	}
	return args
}

// selectStmt renders SELECT (or SELECT COUNT) statements. The clause order is
// fixed: columns, table, conds in append order, order by, limit.
type selectStmt struct {
	table    string
	columns  []Column
	count    bool // render COUNT(columns[0]) instead of the column list
	conds    []Cond
	order    *OrderBy
	limit    uint64
	hasLimit bool
}

func (s *selectStmt) setLimit(limit uint64) {
	s.limit = limit
	s.hasLimit = true
}

func (s *selectStmt) build() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	if s.count {
		b.WriteString("COUNT(")
		b.WriteString(s.columns[0].Name())
		b.WriteByte(')')
	} else {
		writeColumnList(&b, s.columns)
	}
	b.WriteString(" FROM ")
	b.WriteString(s.table)
	args := writeConds(&b, s.conds, 1)
	if s.order != nil {
		b.WriteString(" ORDER BY ")
		b.WriteString(s.order.String())
	}
	if s.hasLimit {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.FormatUint(s.limit, 10))
	}
	return b.String(), args
}

type insertStmt struct {
	table     string
	columns   []Column
	values    []any
	returning []Column
}

func (s *insertStmt) build() (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(s.table)
	b.WriteString(" (")
	writeColumnList(&b, s.columns)
	b.WriteString(") VALUES (")
	for i := range s.values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(i + 1))
	}
	b.WriteString(") RETURNING ")
	writeColumnList(&b, s.returning)
	return b.String(), s.values
}

type updateStmt struct {
	table     string
	sets      []Assignment
	cond      Cond
	returning []Column
}

func (s *updateStmt) build() (string, []any) {
	var b strings.Builder
	args := make([]any, 0, len(s.sets)+1)
	b.WriteString("UPDATE ")
	b.WriteString(s.table)
	b.WriteString(" SET ")
	for i, set := range s.sets {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(set.Column.Name())
		b.WriteString(" = $")
		b.WriteString(strconv.Itoa(i + 1))
		args = append(args, set.Value)
	}
	args = append(args, writeConds(&b, []Cond{s.cond}, len(s.sets)+1)...)
	b.WriteString(" RETURNING ")
	writeColumnList(&b, s.returning)
	return b.String(), args
}

type deleteStmt struct {
	table string
	cond  Cond
}

func (s *deleteStmt) build() (string, []any) {
	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(s.table)
	args := writeConds(&b, []Cond{s.cond}, 1)
	return b.String(), args
}
