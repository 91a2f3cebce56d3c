package main

import (
	"context"
	"database/sql"
	"fmt"
)

// Dialect abstracts the engine-specific parts of verification so the same
// battery can run against MySQL, SQLite or PostgreSQL.
type Dialect interface {
	// Name returns a human-readable name for the engine ("MySQL", "SQLite").
	Name() string

	// OpenDB opens a database handle with driver-specific options.
	OpenDB(dsn string) (*sql.DB, error)

	// ExtractDBName extracts a logical database name from the DSN.
	ExtractDBName(dsn string) (string, error)

	// TableExists reports whether a table with exactly this name exists.
	TableExists(ctx context.Context, db *sql.DB, dbName, table string) (bool, error)

	// DescribeTable runs the engine's structure-introspection query for a table.
	DescribeTable(ctx context.Context, db *sql.DB, dbName, table string) ([]ColumnInfo, error)

	// QuoteIdentifier quotes an identifier for use in queries.
	QuoteIdentifier(name string) string

	// SetCharset sets the character set for the connection.
	// For MySQL, this is injected into the DSN. Other engines ignore it.
	SetCharset(charset string)
}

// newDialect returns a Dialect implementation for the given database type.
func newDialect(dbType string) (Dialect, error) {
	switch dbType {
	case "mysql":
		return &mysqlDialect{}, nil
	case "sqlite":
		return &sqliteDialect{}, nil
	case "postgres":
		return &postgresDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q (must be mysql, sqlite or postgres)", dbType)
	}
}
