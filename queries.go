package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errQueryFile = errors.New("query file")

// readQueryFile parses a file of semicolon-terminated SQL statements.
// Blank lines are skipped and each remaining line is trimmed and joined to
// the current statement with a single space. A statement ends on a line whose
// trimmed content ends with ';'. Content after the last terminated statement
// is discarded. Lines have no length limit.
func readQueryFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errQueryFile, err)
	}
	defer f.Close()

	var queries []string
	var current strings.Builder
	r := bufio.NewReader(f)
	for {
		raw, err := r.ReadString('\n')
		if line := strings.TrimSpace(raw); line != "" {
			current.WriteString(line)
			current.WriteByte(' ')
			if strings.HasSuffix(line, ";") {
				q := strings.TrimSpace(current.String())
				q = strings.TrimSpace(strings.TrimSuffix(q, ";"))
				queries = append(queries, q)
				current.Reset()
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", errQueryFile, path, err)
		}
	}
	return queries, nil
}
