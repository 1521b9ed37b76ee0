package store

// Paginated is one fetched page plus what a caller needs to request the
// next one. Constructed once per ListPaginated call; not mutated afterward.
type Paginated[E, C any] struct {
	Entries    []*E
	NextCursor *C
	Limit      int
}

// NewPaginated wraps the fetched entries. The next cursor is taken from the
// last entry whenever the fetched count reaches the limit. This has the
// effect that a result count that is an exact multiple of the limit still
// advertises a next page; the follow-up fetch comes back empty. Detecting
// the true boundary would require fetching limit+1 rows.
func NewPaginated[E any, EP CursoredSelectable[E, C], C any](entries []*E, limit int) *Paginated[E, C] {
	p := &Paginated[E, C]{
		Entries: entries,
		Limit:   limit,
	}
	if len(entries) >= limit && len(entries) > 0 {
		cursor := EP(entries[len(entries)-1]).CursorValue()
		p.NextCursor = &cursor
	}
	return p
}

// HasNext reports whether a next page was advertised.
func (p *Paginated[E, C]) HasNext() bool {
	return p.NextCursor != nil
}
