package storage

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	"max.ks1230/expense-tracker/internal/model/storage/migrations"
)

// Migrate applies the embedded schema migrations of the dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect.gooseDialect()); err != nil {
		return errors.Wrap(err, "migrate")
	}
	if err := goose.UpContext(ctx, db, dialect.migrationsDir()); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return nil
}
