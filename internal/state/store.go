// Package state keeps the history of check runs in SQLite.
// It records each run's summary and violations so later runs can tell
// which violations are new.
package state

import (
	"context"
	"time"

	"github.com/leapstack-labs/boardcheck/pkg/drc"
)

// Run is the stored summary of one check run.
type Run struct {
	ID         string        `json:"id"`
	Board      string        `json:"board"`
	BoardHash  string        `json:"board_hash"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	Errors     int           `json:"errors"`
	Warnings   int           `json:"warnings"`
	Violations int           `json:"violations"`
	Completed  bool          `json:"completed"`
}

// Store persists check runs.
type Store interface {
	// SaveRun records a result and its violations in one transaction.
	SaveRun(ctx context.Context, res *drc.Result, startedAt time.Time) (*Run, error)

	// GetRun retrieves a run by ID.
	GetRun(ctx context.Context, id string) (*Run, error)

	// LatestRun returns the most recent run of a board, or nil if there is none.
	LatestRun(ctx context.Context, board string) (*Run, error)

	// ListRuns returns the most recent runs, newest first. An empty board
	// lists runs of every board.
	ListRuns(ctx context.Context, board string, limit int) ([]*Run, error)

	// Violations returns the violations of a run in report order.
	Violations(ctx context.Context, runID string) ([]drc.Violation, error)

	// Fingerprints returns the set of violation fingerprints of a run.
	Fingerprints(ctx context.Context, runID string) (map[string]bool, error)

	Close() error
}

// MarkNew reports, per violation, whether its fingerprint is missing from
// previous. With no previous run every violation is new.
func MarkNew(previous map[string]bool, vs []drc.Violation) []bool {
	out := make([]bool, len(vs))
	for i, v := range vs {
		out[i] = !previous[v.Fingerprint]
	}
	return out
}
