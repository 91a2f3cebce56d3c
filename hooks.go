package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
)

// execHookFiles reads each SQL file and executes every statement on db.
func execHookFiles(ctx context.Context, db *sql.DB, cfg *VerifyConfig, files []string, phase string) error {
	if len(files) == 0 {
		return nil
	}
	log.Printf("running %s hooks (%d files)...", phase, len(files))

	for _, f := range files {
		data, err := os.ReadFile(cfg.resolvePath(f))
		if err != nil {
			return fmt.Errorf("hook %s: read %s: %w", phase, f, err)
		}

		stmts := splitStatements(string(data))
		log.Printf("  %s: %d statements", f, len(stmts))
		for i, stmt := range stmts {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("hook %s: %s: statement %d: %w\nSQL: %s", phase, f, i+1, err, stmt)
			}
		}
	}
	return nil
}

// splitStatements splits SQL text on semicolons, ignoring empty entries
// and semicolons inside single-quoted strings, double-quoted identifiers
// and backtick-quoted identifiers.
func splitStatements(sql string) []string {
	var stmts []string
	var current strings.Builder
	var quote byte

	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case quote == 0 && (c == '\'' || c == '"' || c == '`'):
			quote = c
			current.WriteByte(c)
		case quote != 0 && c == quote:
			// Doubled quote is an escape
			if i+1 < len(sql) && sql[i+1] == quote {
				current.WriteByte(c)
				current.WriteByte(c)
				i++
			} else {
				quote = 0
				current.WriteByte(c)
			}
		case c == ';' && quote == 0:
			if s := strings.TrimSpace(current.String()); s != "" {
				stmts = append(stmts, s)
			}
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}

	// Trailing statement without semicolon
	if s := strings.TrimSpace(current.String()); s != "" {
		stmts = append(stmts, s)
	}

	return stmts
}
