package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

var (
	errMissingTable    = errors.New("missing table")
	errFixtureMismatch = errors.New("fixture mismatch")
)

func tableExistsCheck(table string) Check {
	return Check{
		Name: fmt.Sprintf("%s table exists", table),
		Run: func(ctx context.Context, s *Session) error {
			ok, err := s.Dialect.TableExists(ctx, s.DB, s.DBName, table)
			if err != nil {
				return fmt.Errorf("look up table %s: %w", table, err)
			}
			if !ok {
				return fmt.Errorf("%w: %s", errMissingTable, table)
			}
			return nil
		},
	}
}

func columnStructureCheck(table string, expected []ColumnSpec) Check {
	return Check{
		Name: fmt.Sprintf("%s table structure", table),
		Run: func(ctx context.Context, s *Session) error {
			actual, err := s.Dialect.DescribeTable(ctx, s.DB, s.DBName, table)
			if err != nil {
				return fmt.Errorf("describe %s: %w", table, err)
			}
			for _, want := range expected {
				if err := matchColumn(table, want, actual); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func matchColumn(table string, want ColumnSpec, actual []ColumnInfo) error {
	i := slices.IndexFunc(actual, func(c ColumnInfo) bool {
		return strings.EqualFold(c.Name, want.Name)
	})
	if i < 0 {
		return fmt.Errorf("%w: column %s.%s should be present", errFixtureMismatch, table, want.Name)
	}
	got := actual[i]
	if !strings.EqualFold(got.Type, want.Type) {
		return fmt.Errorf("%w: data type mismatch for %s.%s: expected %q, got %q",
			errFixtureMismatch, table, want.Name, strings.ToLower(want.Type), got.Type)
	}
	if got.Nullable != want.Nullable {
		return fmt.Errorf("%w: nullability mismatch for %s.%s: expected %s, got %s",
			errFixtureMismatch, table, want.Name, yesNo(want.Nullable), yesNo(got.Nullable))
	}
	if got.Key != want.Key {
		return fmt.Errorf("%w: key mismatch for %s.%s: expected %q, got %q",
			errFixtureMismatch, table, want.Name, want.Key, got.Key)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func rowContentCheck(spec TableSpec) Check {
	return Check{
		Name: fmt.Sprintf("%s data", spec.Name),
		Run: func(ctx context.Context, s *Session) error {
			q := fmt.Sprintf("SELECT * FROM %s ORDER BY %s",
				s.Dialect.QuoteIdentifier(spec.Name), s.Dialect.QuoteIdentifier(spec.OrderBy))
			rows, err := s.DB.QueryContext(ctx, q)
			if err != nil {
				return fmt.Errorf("query %s: %w", spec.Name, err)
			}
			defer rows.Close()

			names, err := rows.Columns()
			if err != nil {
				return err
			}
			idx := make([]int, len(spec.Columns))
			for i, c := range spec.Columns {
				idx[i] = slices.IndexFunc(names, func(n string) bool { return strings.EqualFold(n, c.Name) })
				if idx[i] < 0 {
					return fmt.Errorf("%w: column %s.%s missing from result set", errFixtureMismatch, spec.Name, c.Name)
				}
			}

			vals := make([]sql.NullString, len(names))
			dest := make([]any, len(names))
			for i := range vals {
				dest[i] = &vals[i]
			}

			n := 0
			for rows.Next() {
				if err := rows.Scan(dest...); err != nil {
					return err
				}
				if n < len(spec.Rows) {
					for i, c := range spec.Columns {
						if !valueMatches(spec.Rows[n][i], vals[idx[i]]) {
							return fmt.Errorf("%w: %s row %d column %s: expected %v, got %s",
								errFixtureMismatch, spec.Name, n+1, c.Name, spec.Rows[n][i], nullString(vals[idx[i]]))
						}
					}
				}
				n++
			}
			if err := rows.Err(); err != nil {
				return err
			}
			if n != len(spec.Rows) {
				return fmt.Errorf("%w: %s: expected %d rows, got %d", errFixtureMismatch, spec.Name, len(spec.Rows), n)
			}
			return nil
		},
	}
}

// valueMatches compares strings case-insensitively and everything else by
// its formatted value.
func valueMatches(want any, got sql.NullString) bool {
	switch w := want.(type) {
	case nil:
		return !got.Valid
	case string:
		return got.Valid && strings.EqualFold(w, got.String)
	default:
		return got.Valid && fmt.Sprint(w) == got.String
	}
}

func nullString(v sql.NullString) string {
	if !v.Valid {
		return "NULL"
	}
	return v.String
}

func queryOutputCheck(spec QuerySpec) Check {
	return Check{
		Name: fmt.Sprintf("query %d output: %s", spec.Index+1, spec.Description),
		Run: func(ctx context.Context, s *Session) error {
			queries, err := readQueryFile(s.QueriesPath)
			if err != nil {
				return err
			}
			if len(queries) <= spec.Index {
				return fmt.Errorf("%w: query %d not found in %s (%d parsed)",
					errQueryFile, spec.Index+1, s.QueriesPath, len(queries))
			}

			got, err := projectColumn(ctx, s.DB, queries[spec.Index], spec.Column)
			if err != nil {
				return fmt.Errorf("query %d: %w", spec.Index+1, err)
			}

			if spec.Unordered {
				want, have := lowerSet(spec.Want), lowerSet(got)
				if !maps.Equal(want, have) {
					return fmt.Errorf("%w: query %d result mismatch (%s): expected %v, got %v",
						errFixtureMismatch, spec.Index+1, spec.Description,
						slices.Sorted(maps.Keys(want)), slices.Sorted(maps.Keys(have)))
				}
				return nil
			}
			if !slices.EqualFunc(spec.Want, got, strings.EqualFold) {
				return fmt.Errorf("%w: query %d result mismatch (%s): expected %v, got %v",
					errFixtureMismatch, spec.Index+1, spec.Description, spec.Want, got)
			}
			return nil
		},
	}
}

// projectColumn runs query and collects one named column in result order.
func projectColumn(ctx context.Context, db *sql.DB, query, column string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	col := slices.IndexFunc(names, func(n string) bool { return strings.EqualFold(n, column) })
	if col < 0 {
		return nil, fmt.Errorf("%w: column %s not in result set %v", errFixtureMismatch, column, names)
	}

	vals := make([]sql.NullString, len(names))
	dest := make([]any, len(names))
	for i := range vals {
		dest[i] = &vals[i]
	}

	out := []string{}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, nullString(vals[col]))
	}
	return out, rows.Err()
}

func lowerSet(vals []string) map[string]struct{} {
	out := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		out[strings.ToLower(v)] = struct{}{}
	}
	return out
}
