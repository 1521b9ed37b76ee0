package store

// Selectable constrains *E to a model type that declares the columns to
// fetch and provides the scan destinations a driver row is read into.
type Selectable[E any] interface {
	~*E // Type Constraint: Underlying Type(~) = *E

	// SelectColumns returns the ordered column set to fetch. Callable on a
	// zero value.
	SelectColumns() []Column

	// ScanTargets returns pointers to the receiver's fields, in
	// SelectColumns order.
	ScanTargets() []any
}

// Insertable produces the parallel (columns, values) pair for an INSERT.
//
// InsertValues hands the data over to the statement builder; the value is
// considered consumed after the call and must not be reused as pending
// insert data.
type Insertable interface {
	InsertColumns() []Column
	InsertValues() []any
}

// Updatable produces the SET pairs for an UPDATE. Optional fields that are
// absent contribute no pair, which is what makes updates partial: only
// changed fields are written. Like Insertable, the value is considered
// consumed after the call.
type Updatable interface {
	UpdateAssignments() []Assignment
}

// Cursored exposes the pagination cursor a model carries and the column
// backing it.
type Cursored[C any] interface {
	CursorValue() C
	CursorColumn() Column
}

// CursoredSelectable is the model contract for paginated listing.
type CursoredSelectable[E, C any] interface {
	Selectable[E]
	Cursored[C]
}

// Filter adds caller-defined WHERE predicates to a paginated select. The
// engine treats the conds as opaque and appends them in order.
type Filter interface {
	FilterConds() []Cond
}

// CursoredFilter is a Filter that also drives keyset pagination.
type CursoredFilter[C any] interface {
	Filter

	// Cursor returns the lower (ascending) or upper (descending) page
	// boundary, if one is set.
	Cursor() (C, bool)

	// SetCursor is a convenience for walking pages; it cannot clear a
	// cursor once set. Build a fresh filter to start over.
	SetCursor(cursor C)

	PageLimit() int

	// Descending reports the ordering over the cursor column. It is a
	// property of the filter type, not a per-call parameter, because the
	// cursor comparison direction depends on it.
	Descending() bool
}
