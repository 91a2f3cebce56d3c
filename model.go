package main

import "strings"

// KeyRole is the index role a column plays in its table, in the vocabulary
// of MySQL's DESCRIBE output.
type KeyRole int

const (
	KeyNone    KeyRole = iota
	KeyPrimary         // PRI
	KeyForeign         // MUL: first column of a non-unique index, as created for foreign keys
	KeyUnique          // UNI
)

func (k KeyRole) String() string {
	switch k {
	case KeyPrimary:
		return "PRI"
	case KeyForeign:
		return "MUL"
	case KeyUnique:
		return "UNI"
	default:
		return ""
	}
}

// parseKeyRole maps a DESCRIBE "Key" value to a KeyRole. Unknown values map to KeyNone.
func parseKeyRole(s string) KeyRole {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PRI":
		return KeyPrimary
	case "MUL":
		return KeyForeign
	case "UNI":
		return KeyUnique
	default:
		return KeyNone
	}
}

// ColumnSpec is one expected column of a fixture table.
type ColumnSpec struct {
	Name     string
	Type     string // declared type, e.g. "int", "varchar(100)"
	Nullable bool
	Key      KeyRole
}

// ColumnInfo is one column as reported by a dialect's structure introspection.
type ColumnInfo struct {
	Name     string
	Type     string
	Nullable bool
	Key      KeyRole
}

// TableSpec holds the expected structure and seeded rows of a fixture table.
// Row values are positional against Columns.
type TableSpec struct {
	Name    string
	Columns []ColumnSpec
	OrderBy string
	Rows    [][]any
}

// QuerySpec describes the expected projection of one statement from the query file.
type QuerySpec struct {
	Index       int    // zero-based position in the query file
	Column      string // projected column
	Want        []string
	Unordered   bool // compare as a case-insensitive set
	Description string
}

// Fixture is the full expected database state the battery verifies.
type Fixture struct {
	Tables  []TableSpec
	Queries []QuerySpec
}
