package db

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus values for score_runs.status.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// User represents a recruiter account
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session represents a scoring session: one job description plus the
// weight vector that feedback has evolved so far. The job and weights
// columns are JSONB snapshots owned by the caller.
type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Job       []byte    `json:"job,omitempty"`
	Weights   []byte    `json:"weights"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScoreRun represents one batch scoring execution within a session.
type ScoreRun struct {
	ID          uuid.UUID  `json:"id"`
	SessionID   uuid.UUID  `json:"session_id"`
	Status      string     `json:"status"`
	Weights     []byte     `json:"weights"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ScoreResultRow is one ranked candidate within a run. Result holds the
// full scored record as JSONB.
type ScoreResultRow struct {
	ID        uuid.UUID `json:"id"`
	RunID     uuid.UUID `json:"run_id"`
	Ref       string    `json:"ref"`
	Rank      int       `json:"rank"`
	Score     float64   `json:"score"`
	Result    []byte    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}
