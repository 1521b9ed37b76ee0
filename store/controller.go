// Package store is a generic CRUD execution engine for Postgres. A static
// per-model Controller descriptor parameterizes six generic operations
// (count, create, get, list, list paginated, update, delete); statements are
// built internally and run through a capability-sealed Executor so that all
// mutations pass through the declared CRUD surface.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Controller is the static descriptor bound to one entity type. Implement it
// on an empty struct with value receivers; the values are fixed for the
// lifetime of the model definition.
type Controller interface {
	// EntityName is the human-readable identifier used in diagnostics
	// (i.e. "book").
	EntityName() string

	// TableName is the physical table the entities reside in.
	TableName() string

	// IDColumn is the column used for single-row lookups.
	IDColumn() Column
}

// Bmc is a Controller narrowed to the id type its lookups accept.
type Bmc[ID any] interface {
	Controller

	// IDValue converts an id into the query argument bound to IDColumn.
	IDValue(id ID) any
}

// Count counts all rows in the controller's table.
func Count[MC Controller](ctx context.Context, x Executor) (uint64, error) {
	var mc MC
	stmt := &selectStmt{
		table:   mc.TableName(),
		columns: []Column{mc.IDColumn()},
		count:   true,
	}
	sql, args := stmt.build()

	var num int64
	if err := x.raw().QueryRow(ctx, sql, args...).Scan(&num); err != nil {
		return 0, wrapOpErr(mc.EntityName(), OpCount, err)
	}
	// this should practically never fail, but fine.
	if num < 0 {
		return 0, wrapOpErr(mc.EntityName(), OpCount, &CountConversionError{Count: num})
	}
	return uint64(num), nil
}

// Create inserts a new row built from data and returns the stored entity.
// data is consumed; do not reuse it after the call.
func Create[MC Controller, E any, EP Selectable[E], I Insertable](ctx context.Context, x Executor, data I) (*E, error) {
	var mc MC
	var entity E
	ep := EP(&entity)
	stmt := &insertStmt{
		table:     mc.TableName(),
		columns:   data.InsertColumns(),
		values:    data.InsertValues(),
		returning: ep.SelectColumns(),
	}
	sql, args := stmt.build()

	if err := x.raw().QueryRow(ctx, sql, args...).Scan(ep.ScanTargets()...); err != nil {
		return nil, wrapOpErr(mc.EntityName(), OpCreate, err)
	}
	return &entity, nil
}

// Get fetches the row with the given id.
func Get[MC Bmc[ID], E any, EP Selectable[E], ID any](ctx context.Context, x Executor, id ID) (*E, error) {
	var mc MC
	var entity E
	ep := EP(&entity)
	stmt := &selectStmt{
		table:   mc.TableName(),
		columns: ep.SelectColumns(),
		conds:   []Cond{Eq(mc.IDColumn(), mc.IDValue(id))},
	}
	sql, args := stmt.build()

	if err := x.raw().QueryRow(ctx, sql, args...).Scan(ep.ScanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: mc.EntityName(), ID: fmt.Sprint(id)}
		}
		return nil, wrapOpErr(mc.EntityName(), OpGet, err)
	}
	return &entity, nil
}

// List fetches every row in the controller's table, unfiltered and
// unbounded. Use ListPaginated when the result needs to stay bounded.
func List[MC Controller, E any, EP Selectable[E]](ctx context.Context, x Executor) ([]*E, error) {
	var mc MC
	var probe E
	stmt := &selectStmt{
		table:   mc.TableName(),
		columns: EP(&probe).SelectColumns(),
	}
	sql, args := stmt.build()

	rows, err := x.raw().Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapOpErr(mc.EntityName(), OpList, err)
	}
	defer rows.Close()

	entities, err := scanAll[E, EP](rows)
	if err != nil {
		return nil, wrapOpErr(mc.EntityName(), OpList, err)
	}
	return entities, nil
}

// ListPaginated fetches one page of rows ordered over the entity's cursor
// column in the filter's fixed direction. When the filter carries a cursor,
// the page starts strictly past it (keyset pagination). The clause build
// order is fixed so the rendered SQL stays deterministic.
func ListPaginated[MC Controller, E any, EP CursoredSelectable[E, C], C any, F CursoredFilter[C]](ctx context.Context, x Executor, filter F) (*Paginated[E, C], error) {
	var mc MC
	var probe E
	ep := EP(&probe)
	cursorCol := ep.CursorColumn()

	stmt := &selectStmt{
		table:   mc.TableName(),
		columns: ep.SelectColumns(),
		order:   &OrderBy{Column: cursorCol, Desc: filter.Descending()},
	}
	stmt.setLimit(uint64(filter.PageLimit()))
	stmt.conds = append(stmt.conds, filter.FilterConds()...)
	if cursor, ok := filter.Cursor(); ok {
		if filter.Descending() {
			stmt.conds = append(stmt.conds, Lt(cursorCol, cursor))
		} else {
			stmt.conds = append(stmt.conds, Gt(cursorCol, cursor))
		}
	}
	sql, args := stmt.build()

	rows, err := x.raw().Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapOpErr(mc.EntityName(), OpListPaginated, err)
	}
	defer rows.Close()

	entities, err := scanAll[E, EP](rows)
	if err != nil {
		return nil, wrapOpErr(mc.EntityName(), OpListPaginated, err)
	}
	return NewPaginated[E, EP, C](entities, filter.PageLimit()), nil
}

// Update writes the pairs produced by data to the row with the given id and
// returns the stored entity. An empty pair set fails with EmptyUpdateError
// before any statement is issued. data is consumed; do not reuse it.
func Update[MC Bmc[ID], E any, EP Selectable[E], ID any, U Updatable](ctx context.Context, x Executor, id ID, data U) (*E, error) {
	var mc MC
	sets := data.UpdateAssignments()
	if len(sets) == 0 {
		return nil, &EmptyUpdateError{Entity: mc.EntityName(), ID: fmt.Sprint(id)}
	}

	var entity E
	ep := EP(&entity)
	stmt := &updateStmt{
		table:     mc.TableName(),
		sets:      sets,
		cond:      Eq(mc.IDColumn(), mc.IDValue(id)),
		returning: ep.SelectColumns(),
	}
	sql, args := stmt.build()

	if err := x.raw().QueryRow(ctx, sql, args...).Scan(ep.ScanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Entity: mc.EntityName(), ID: fmt.Sprint(id)}
		}
		return nil, wrapOpErr(mc.EntityName(), OpUpdate, err)
	}
	return &entity, nil
}

// Delete removes the row with the given id.
func Delete[MC Bmc[ID], ID any](ctx context.Context, x Executor, id ID) error {
	var mc MC
	stmt := &deleteStmt{
		table: mc.TableName(),
		cond:  Eq(mc.IDColumn(), mc.IDValue(id)),
	}
	sql, args := stmt.build()

	tag, err := x.raw().Exec(ctx, sql, args...)
	if err != nil {
		return wrapOpErr(mc.EntityName(), OpDelete, err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Entity: mc.EntityName(), ID: fmt.Sprint(id)}
	}
	return nil
}

func scanAll[E any, EP Selectable[E]](rows pgx.Rows) ([]*E, error) {
	var entities []*E
	for rows.Next() {
		var entity E // struct with zero values for the fields
		ep := EP(&entity)
		if err := rows.Scan(ep.ScanTargets()...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		entities = append(entities, &entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during iterating rows: %w", err)
	}
	return entities, nil
}
