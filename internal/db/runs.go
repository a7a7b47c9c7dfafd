package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-intel/internal/types"
)

// CreateScoreRun starts a run within a session, snapshotting the weights
// the run will score with.
func (db *DB) CreateScoreRun(ctx context.Context, sessionID uuid.UUID, weights []byte) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO score_runs (session_id, weights, status)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		sessionID, weights, RunStatusRunning,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create score run: %w", err)
	}
	return id, nil
}

// CompleteScoreRun marks a run as completed or failed.
func (db *DB) CompleteScoreRun(ctx context.Context, runID uuid.UUID, status string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE score_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete score run: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("score run not found: %s", runID)
	}
	return nil
}

// GetScoreRun retrieves a run by ID. Returns nil when not found.
func (db *DB) GetScoreRun(ctx context.Context, runID uuid.UUID) (*ScoreRun, error) {
	var run ScoreRun
	err := db.pool.QueryRow(ctx,
		`SELECT id, session_id, status, weights, created_at, completed_at
		 FROM score_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.SessionID, &run.Status, &run.Weights, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score run: %w", err)
	}
	return &run, nil
}

// ListRunsBySession retrieves a session's runs, newest first.
func (db *DB) ListRunsBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]ScoreRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, status, weights, created_at, completed_at
		 FROM score_runs WHERE session_id = $1 ORDER BY created_at DESC LIMIT $2`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list score runs: %w", err)
	}
	defer rows.Close()

	var runs []ScoreRun
	for rows.Next() {
		var run ScoreRun
		if err := rows.Scan(&run.ID, &run.SessionID, &run.Status, &run.Weights, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// SaveScoreResults stores the ranked results of a run. Results are written
// in rank order; re-saving a (run, ref) pair overwrites the earlier row.
func (db *DB) SaveScoreResults(ctx context.Context, runID uuid.UUID, results []types.ScoreResult) error {
	for rank, r := range results {
		if r.Ref == "" {
			return fmt.Errorf("score result at rank %d has no ref", rank)
		}
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal score result %s: %w", r.Ref, err)
		}

		_, err = db.pool.Exec(ctx,
			`INSERT INTO score_results (run_id, ref, rank, score, result)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (run_id, ref) DO UPDATE SET rank = $3, score = $4, result = $5, created_at = NOW()`,
			runID, r.Ref, rank, r.Score, payload,
		)
		if err != nil {
			return fmt.Errorf("failed to save score result %s: %w", r.Ref, err)
		}
	}
	return nil
}

// GetScoreResults retrieves a run's results in rank order.
func (db *DB) GetScoreResults(ctx context.Context, runID uuid.UUID) ([]ScoreResultRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, run_id, ref, rank, score, result, created_at
		 FROM score_results WHERE run_id = $1 ORDER BY rank ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get score results: %w", err)
	}
	defer rows.Close()

	var results []ScoreResultRow
	for rows.Next() {
		var r ScoreResultRow
		if err := rows.Scan(&r.ID, &r.RunID, &r.Ref, &r.Rank, &r.Score, &r.Result, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// GetScoreResult retrieves one candidate's result within a run. Returns
// nil when not found.
func (db *DB) GetScoreResult(ctx context.Context, runID uuid.UUID, ref string) (*ScoreResultRow, error) {
	var r ScoreResultRow
	err := db.pool.QueryRow(ctx,
		`SELECT id, run_id, ref, rank, score, result, created_at
		 FROM score_results WHERE run_id = $1 AND ref = $2`,
		runID, ref,
	).Scan(&r.ID, &r.RunID, &r.Ref, &r.Rank, &r.Score, &r.Result, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score result: %w", err)
	}
	return &r, nil
}
