package storage

import (
	sq "github.com/Masterminds/squirrel"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) placeholders() sq.PlaceholderFormat {
	if d == Postgres {
		return sq.Dollar
	}
	return sq.Question
}

// lockSuffix locks the selected row until the transaction ends, sqlite locks the whole
// database on the first write instead.
func (d Dialect) lockSuffix() string {
	if d == Postgres {
		return "FOR UPDATE"
	}
	return ""
}

func (d Dialect) gooseDialect() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite3"
}

func (d Dialect) migrationsDir() string {
	return string(d)
}
