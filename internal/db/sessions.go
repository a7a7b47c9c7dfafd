package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateSession inserts a scoring session and returns its ID. The job and
// weights snapshots are JSON produced by the caller; job may be nil when
// the session starts before a posting has been parsed.
func (db *DB) CreateSession(ctx context.Context, userID uuid.UUID, title string, job, weights []byte) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO sessions (user_id, title, job, weights)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, title, job, weights,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// GetSession retrieves a session by ID. Returns nil when not found.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	var s Session
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, title, job, weights, created_at, updated_at
		 FROM sessions WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.UserID, &s.Title, &s.Job, &s.Weights, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// UpdateSessionJob replaces the session's job snapshot.
func (db *DB) UpdateSessionJob(ctx context.Context, id uuid.UUID, job []byte) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE sessions SET job = $1, updated_at = NOW() WHERE id = $2`,
		job, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update session job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}

// UpdateSessionWeights replaces the session's weight snapshot. Feedback
// adjustments persist here so later runs in the session pick them up.
func (db *DB) UpdateSessionWeights(ctx context.Context, id uuid.UUID, weights []byte) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE sessions SET weights = $1, updated_at = NOW() WHERE id = $2`,
		weights, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update session weights: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}

// ListSessionsByUser retrieves a user's sessions, newest first.
func (db *DB) ListSessionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, title, job, weights, created_at, updated_at
		 FROM sessions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.Title, &s.Job, &s.Weights, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// DeleteSession deletes a session and its runs via cascade.
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}
