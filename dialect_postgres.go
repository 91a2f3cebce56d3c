package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

type postgresDialect struct{}

func (p *postgresDialect) Name() string { return "PostgreSQL" }

func (p *postgresDialect) SetCharset(string) {}

func (p *postgresDialect) OpenDB(dsn string) (*sql.DB, error) {
	if _, err := pgx.ParseConfig(dsn); err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

func (p *postgresDialect) ExtractDBName(dsn string) (string, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return "", fmt.Errorf("cannot extract database name from DSN: %w", err)
	}
	if cfg.Database == "" {
		return "", fmt.Errorf("cannot extract database name from DSN: empty name")
	}
	return cfg.Database, nil
}

// TableExists resolves the quoted name against the search_path, so the
// lookup is case-sensitive like the other engines.
func (p *postgresDialect) TableExists(ctx context.Context, db *sql.DB, _ string, table string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM pg_class
		   WHERE oid = to_regclass($1::text) AND relkind IN ('r', 'p')
		 )`,
		p.QuoteIdentifier(table),
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (p *postgresDialect) DescribeTable(ctx context.Context, db *sql.DB, _ string, table string) ([]ColumnInfo, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT a.attname,
		        format_type(a.atttypid, a.atttypmod),
		        NOT a.attnotnull,
		        COALESCE((
		          SELECT CASE
		                   WHEN bool_or(c.contype = 'p') THEN 'PRI'
		                   WHEN bool_or(c.contype = 'u' AND array_length(c.conkey, 1) = 1) THEN 'UNI'
		                   WHEN bool_or(c.contype = 'f') THEN 'MUL'
		                 END
		          FROM pg_constraint c
		          WHERE c.conrelid = a.attrelid AND a.attnum = ANY (c.conkey)
		        ), '')
		 FROM pg_attribute a
		 WHERE a.attrelid = to_regclass($1::text) AND a.attnum > 0 AND NOT a.attisdropped
		 ORDER BY a.attnum`,
		p.QuoteIdentifier(table),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var name, typ, key string
		var nullable bool
		if err := rows.Scan(&name, &typ, &nullable, &key); err != nil {
			return nil, err
		}
		cols = append(cols, ColumnInfo{
			Name:     name,
			Type:     normalizePGType(typ),
			Nullable: nullable,
			Key:      parseKeyRole(key),
		})
	}
	return cols, rows.Err()
}

func (p *postgresDialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// pgTypeAliases maps format_type spellings to the MySQL-style names used by fixtures.
var pgTypeAliases = []struct{ pg, short string }{
	{"character varying", "varchar"},
	{"character", "char"},
	{"integer", "int"},
	{"timestamp without time zone", "timestamp"},
	{"double precision", "double"},
}

// normalizePGType rewrites a PostgreSQL type name into the spelling MySQL's
// DESCRIBE would use, keeping any length modifier.
func normalizePGType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	base, mod := t, ""
	if i := strings.IndexByte(t, '('); i >= 0 {
		base, mod = strings.TrimSpace(t[:i]), t[i:]
	}
	for _, a := range pgTypeAliases {
		if base == a.pg {
			return a.short + mod
		}
	}
	return t
}
