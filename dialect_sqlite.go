package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

type sqliteDialect struct{}

func (s *sqliteDialect) Name() string { return "SQLite" }

func (s *sqliteDialect) SetCharset(string) {}

func (s *sqliteDialect) OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

// ExtractDBName derives the logical name from the file's base name without
// extension. SQLite has no server-side database name, and the file name is
// what users recognise in log lines.
func (s *sqliteDialect) ExtractDBName(dsn string) (string, error) {
	path := dsn
	// Strip file: URI prefix
	if strings.HasPrefix(dsn, "file:") {
		u, err := url.Parse(dsn)
		if err == nil {
			path = u.Path
			if path == "" {
				path = u.Opaque
			}
		} else {
			path = strings.TrimPrefix(dsn, "file:")
			if idx := strings.IndexByte(path, '?'); idx >= 0 {
				path = path[:idx]
			}
		}
	}
	base := filepath.Base(path)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	if base == "" || base == "." {
		return "sqlite", nil
	}
	return base, nil
}

func (s *sqliteDialect) TableExists(ctx context.Context, db *sql.DB, _ string, table string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DescribeTable combines PRAGMA table_info with the foreign key and index
// lists to produce DESCRIBE-like rows. Primary key columns are reported
// NOT NULL, as MySQL does.
func (s *sqliteDialect) DescribeTable(ctx context.Context, db *sql.DB, _ string, table string) ([]ColumnInfo, error) {
	quoted := s.QuoteIdentifier(table)

	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoted))
	if err != nil {
		return nil, err
	}
	var cols []ColumnInfo
	for rows.Next() {
		var cid, notNull, pk int
		var name, typ string
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			rows.Close()
			return nil, err
		}
		c := ColumnInfo{
			Name:     name,
			Type:     strings.ToLower(typ),
			Nullable: notNull == 0 && pk == 0,
		}
		if pk > 0 {
			c.Key = KeyPrimary
		}
		cols = append(cols, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	fkCols, err := sqliteForeignKeyColumns(ctx, db, quoted)
	if err != nil {
		return nil, fmt.Errorf("foreign keys for %s: %w", table, err)
	}
	uniqueCols, err := s.uniqueColumns(ctx, db, quoted)
	if err != nil {
		return nil, fmt.Errorf("unique indexes for %s: %w", table, err)
	}

	for i := range cols {
		if cols[i].Key != KeyNone {
			continue
		}
		switch {
		case uniqueCols[cols[i].Name]:
			cols[i].Key = KeyUnique
		case fkCols[cols[i].Name]:
			cols[i].Key = KeyForeign
		}
	}
	return cols, nil
}

func sqliteForeignKeyColumns(ctx context.Context, db *sql.DB, quotedTable string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA foreign_key_list(%s)", quotedTable))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id, seq int
		var refTable, from string
		var to, onUpdate, onDelete, match sql.NullString
		if err := rows.Scan(&id, &seq, &refTable, &from, &to, &onUpdate, &onDelete, &match); err != nil {
			return nil, err
		}
		out[from] = true
	}
	return out, rows.Err()
}

// uniqueColumns returns columns covered alone by a unique, non-primary-key index.
func (s *sqliteDialect) uniqueColumns(ctx context.Context, db *sql.DB, quotedTable string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA index_list(%s)", quotedTable))
	if err != nil {
		return nil, err
	}
	var indexes []string
	for rows.Next() {
		var seq, unique, partial int
		var name, origin string
		if err := rows.Scan(&seq, &name, &unique, &origin, &partial); err != nil {
			rows.Close()
			return nil, err
		}
		if unique == 1 && origin != "pk" && partial == 0 {
			indexes = append(indexes, name)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]bool)
	for _, idx := range indexes {
		var cols []string
		if err := collectIndexColumns(ctx, db, fmt.Sprintf("PRAGMA index_info(%s)", s.QuoteIdentifier(idx)), &cols); err != nil {
			return nil, err
		}
		if len(cols) == 1 {
			out[cols[0]] = true
		}
	}
	return out, nil
}

func collectIndexColumns(ctx context.Context, db *sql.DB, query string, out *[]string) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var seqno, cid int
		var name sql.NullString
		if err := rows.Scan(&seqno, &cid, &name); err != nil {
			return err
		}
		if name.Valid {
			*out = append(*out, name.String)
		}
	}
	return rows.Err()
}

func (s *sqliteDialect) QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
