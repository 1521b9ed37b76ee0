package store

import (
	"fmt"
	"regexp"
)

var regexIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Column is a validated SQL identifier (e.g. "books.author").
// It cannot be created directly — only via NewColumn() or MustColumn().
type Column struct {
	name string // unexported → cannot bypass validation
}

// Name returns the identifier string.
func (c Column) Name() string { return c.name }

func NewColumn(name string) (Column, error) {
	if !regexIdentifier.MatchString(name) {
		return Column{}, fmt.Errorf("invalid SQL identifier: %q", name)
	}
	return Column{name: name}, nil
}

// MustColumn validates the name and returns a safe Column value.
// It panics if the given name is not a valid SQL identifier, which makes it
// suitable for the package-level column sets model definitions declare.
func MustColumn(name string) Column {
	if !regexIdentifier.MatchString(name) {
		panic(fmt.Errorf("invalid SQL identifier: %q", name))
	}
	return Column{name: name}
}

// Assignment is a single (column, value) SET pair for an UPDATE statement.
type Assignment struct {
	Column Column
	Value  any
}
