package store

import (
	"context"
	"io/fs"
	"log"
)

// Migrate applies every *.sql file in fsys, in lexical filename order,
// inside a single serializable transaction. It is meant for embedded
// migration directories:
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	sub, _ := fs.Sub(migrations, "migrations")
//	err := store.Migrate(ctx, mgr, sub)
//
// Failures while reading or executing a file roll everything back and wrap
// as MigrateError.
func Migrate(ctx context.Context, b TxBeginner, fsys fs.FS) error {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return &MigrateError{Err: err}
	}
	tx, err := b.Begin(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			_ = tx.Rollback(ctx)
			return &MigrateError{Name: name, Err: err}
		}
		if _, err := tx.raw().Exec(ctx, string(data)); err != nil {
			_ = tx.Rollback(ctx)
			return &MigrateError{Name: name, Err: classifyErr(err)}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	log.Printf("[INFO] %d migrations applied", len(names))
	return nil
}
