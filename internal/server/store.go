package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/talent-intel/internal/db"
	"github.com/jonathan/talent-intel/internal/types"
)

// Store is the persistence surface the server depends on. *db.DB satisfies
// it; tests substitute fakes.
type Store interface {
	// Users
	CreateUser(ctx context.Context, name, email string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// Sessions
	CreateSession(ctx context.Context, userID uuid.UUID, title string, job, weights []byte) (uuid.UUID, error)
	GetSession(ctx context.Context, id uuid.UUID) (*db.Session, error)
	UpdateSessionJob(ctx context.Context, id uuid.UUID, job []byte) error
	UpdateSessionWeights(ctx context.Context, id uuid.UUID, weights []byte) error
	ListSessionsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db.Session, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error

	// Runs and results
	CreateScoreRun(ctx context.Context, sessionID uuid.UUID, weights []byte) (uuid.UUID, error)
	CompleteScoreRun(ctx context.Context, runID uuid.UUID, status string) error
	GetScoreRun(ctx context.Context, runID uuid.UUID) (*db.ScoreRun, error)
	ListRunsBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]db.ScoreRun, error)
	SaveScoreResults(ctx context.Context, runID uuid.UUID, results []types.ScoreResult) error
	GetScoreResults(ctx context.Context, runID uuid.UUID) ([]db.ScoreResultRow, error)
	GetScoreResult(ctx context.Context, runID uuid.UUID, ref string) (*db.ScoreResultRow, error)
}
