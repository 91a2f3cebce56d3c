package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Session carries everything a check needs. It is passed explicitly to each
// check; the connection is owned by the caller of runChecks.
type Session struct {
	DB          *sql.DB
	Dialect     Dialect
	DBName      string
	QueriesPath string
}

// Check is one independent assertion against the database.
type Check struct {
	Name string
	Run  func(ctx context.Context, s *Session) error
}

// Result is the outcome of a single check.
type Result struct {
	Name    string
	Err     error
	Elapsed time.Duration
}

func (r Result) Passed() bool { return r.Err == nil }

// runChecks executes every check in order. A failing or panicking check is
// recorded and does not stop the checks after it.
func runChecks(ctx context.Context, s *Session, checks []Check) []Result {
	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		start := time.Now()
		err := runCheck(ctx, s, c)
		results = append(results, Result{Name: c.Name, Err: err, Elapsed: time.Since(start)})
	}
	return results
}

func runCheck(ctx context.Context, s *Session, c Check) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Run(ctx, s)
}

// countFailed returns the number of results that did not pass.
func countFailed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed() {
			n++
		}
	}
	return n
}
