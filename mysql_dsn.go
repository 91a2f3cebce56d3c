package main

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// mysqlDSNWithOptions normalizes a MySQL DSN for verification reads.
func mysqlDSNWithOptions(baseDSN, charset string) (string, error) {
	cfg, err := mysql.ParseDSN(baseDSN)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.InterpolateParams = true
	cfg.Loc = time.UTC
	if charset != "" {
		if err := cfg.Apply(mysql.Charset(charset, "")); err != nil {
			return "", fmt.Errorf("apply mysql charset: %w", err)
		}
	}
	return cfg.FormatDSN(), nil
}

// extractMySQLDBName pulls the database name from a MySQL DSN.
func extractMySQLDBName(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("cannot extract database name from DSN: %w", err)
	}
	if cfg.DBName == "" {
		return "", fmt.Errorf("cannot extract database name from DSN: empty name")
	}
	return cfg.DBName, nil
}
