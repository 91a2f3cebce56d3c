package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type mysqlDialect struct {
	charset string
}

func (m *mysqlDialect) Name() string { return "MySQL" }

func (m *mysqlDialect) SetCharset(charset string) { m.charset = charset }

func (m *mysqlDialect) OpenDB(dsn string) (*sql.DB, error) {
	normalized, err := mysqlDSNWithOptions(dsn, m.charset)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", normalized)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return db, nil
}

func (m *mysqlDialect) ExtractDBName(dsn string) (string, error) {
	return extractMySQLDBName(dsn)
}

func (m *mysqlDialect) TableExists(ctx context.Context, db *sql.DB, dbName, table string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES
		 WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?`,
		dbName, table,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DescribeTable runs DESCRIBE and maps its Field/Type/Null/Key columns.
func (m *mysqlDialect) DescribeTable(ctx context.Context, db *sql.DB, _ string, table string) ([]ColumnInfo, error) {
	rows, err := db.QueryContext(ctx, "DESCRIBE "+m.QuoteIdentifier(table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []ColumnInfo
	for rows.Next() {
		var field, typ, null, key string
		var dflt, extra sql.NullString
		if err := rows.Scan(&field, &typ, &null, &key, &dflt, &extra); err != nil {
			return nil, err
		}
		cols = append(cols, ColumnInfo{
			Name:     field,
			Type:     strings.ToLower(typ),
			Nullable: null == "YES",
			Key:      parseKeyRole(key),
		})
	}
	return cols, rows.Err()
}

func (m *mysqlDialect) QuoteIdentifier(name string) string {
	return fmt.Sprintf("`%s`", strings.ReplaceAll(name, "`", "``"))
}
