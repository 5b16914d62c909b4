package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"github.com/leapstack-labs/boardcheck/pkg/drc"
)

const runColumns = `id, board, board_hash, started_at, duration_ms, errors, warnings, violations, completed`

// SaveRun records a result and its violations in one transaction.
func (s *SQLiteStore) SaveRun(ctx context.Context, res *drc.Result, startedAt time.Time) (*Run, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	run := &Run{
		ID:         generateID(),
		Board:      res.Board,
		BoardHash:  res.BoardHash,
		StartedAt:  startedAt.UTC().Truncate(time.Millisecond),
		Duration:   res.Duration.Truncate(time.Millisecond),
		Errors:     res.Errors,
		Warnings:   res.Warnings,
		Violations: len(res.Violations),
		Completed:  true,
	}
	for _, p := range res.Providers {
		run.Completed = run.Completed && p.Completed
	}

	s.logger.Debug("saving run", slog.String("id", run.ID), slog.String("board", run.Board))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Board, run.BoardHash, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(),
		run.Errors, run.Warnings, run.Violations, run.Completed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	for i, v := range res.Violations {
		items, err := json.Marshal(v.Items)
		if err != nil {
			return nil, fmt.Errorf("failed to encode items: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO violations (run_id, seq, fingerprint, code, severity, provider, message, x, y, items)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, v.Fingerprint, v.Code.String(), v.Severity.String(), v.Provider, v.Message,
			v.Position.X, v.Position.Y, string(items),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to save violation %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return run, nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// LatestRun retrieves the most recent run of a board.
func (s *SQLiteStore) LatestRun(ctx context.Context, board string) (*Run, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE board = ? ORDER BY started_at DESC, rowid DESC LIMIT 1`,
		board,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // No runs found, return nil without error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}
	return run, nil
}

// ListRuns retrieves the most recent runs up to the given limit.
func (s *SQLiteStore) ListRuns(ctx context.Context, board string, limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, errNotOpened
	}
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + runColumns + ` FROM runs`
	args := []any{}
	if board != "" {
		query += ` WHERE board = ?`
		args = append(args, board)
	}
	query += ` ORDER BY started_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Violations returns the violations of a run in report order.
func (s *SQLiteStore) Violations(ctx context.Context, runID string) ([]drc.Violation, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT fingerprint, code, severity, provider, message, x, y, items
		 FROM violations WHERE run_id = ? ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}
	defer rows.Close()

	var out []drc.Violation
	for rows.Next() {
		var (
			v              drc.Violation
			code, severity string
			items          string
		)
		if err := rows.Scan(&v.Fingerprint, &code, &severity, &v.Provider, &v.Message,
			&v.Position.X, &v.Position.Y, &items); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		if err := v.Code.UnmarshalText([]byte(code)); err != nil {
			return nil, err
		}
		if err := v.Severity.UnmarshalText([]byte(severity)); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(items), &v.Items); err != nil {
			return nil, fmt.Errorf("failed to decode items: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Fingerprints returns the set of violation fingerprints of a run.
func (s *SQLiteStore) Fingerprints(ctx context.Context, runID string) (map[string]bool, error) {
	if s.db == nil {
		return nil, errNotOpened
	}

	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT fingerprint FROM violations WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fingerprints: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, fmt.Errorf("failed to scan fingerprint: %w", err)
		}
		out[fp] = true
	}
	return out, rows.Err()
}

// PreviousFingerprints returns the fingerprints of the latest run of a
// board, or nil when the board has no history.
func (s *SQLiteStore) PreviousFingerprints(ctx context.Context, board string) (map[string]bool, error) {
	run, err := s.LatestRun(ctx, board)
	if err != nil || run == nil {
		return nil, err
	}
	return s.Fingerprints(ctx, run.ID)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run        Run
		startedAt  int64
		durationMS int64
	)
	if err := row.Scan(&run.ID, &run.Board, &run.BoardHash, &startedAt, &durationMS,
		&run.Errors, &run.Warnings, &run.Violations, &run.Completed); err != nil {
		return nil, err
	}
	run.StartedAt = time.UnixMilli(startedAt).UTC()
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}
