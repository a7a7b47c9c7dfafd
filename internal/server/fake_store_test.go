package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-intel/internal/db"
	"github.com/jonathan/talent-intel/internal/types"
)

// fakeStore is an in-memory Store for tests.
type fakeStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*db.User
	sessions map[uuid.UUID]*db.Session
	runs     map[uuid.UUID]*db.ScoreRun
	results  map[uuid.UUID][]db.ScoreResultRow
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*db.User),
		sessions: make(map[uuid.UUID]*db.Session),
		runs:     make(map[uuid.UUID]*db.ScoreRun),
		results:  make(map[uuid.UUID][]db.ScoreResultRow),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, name, email string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	now := time.Now()
	f.users[id] = &db.User{ID: id, Name: name, Email: email, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, userID uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user not found: %s", userID)
	}
	u.PasswordHash = passwordHash
	u.PasswordSet = true
	return nil
}

func (f *fakeStore) CreateSession(_ context.Context, userID uuid.UUID, title string, job, weights []byte) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	now := time.Now()
	f.sessions[id] = &db.Session{
		ID: id, UserID: userID, Title: title,
		Job: job, Weights: weights,
		CreatedAt: now, UpdatedAt: now,
	}
	return id, nil
}

func (f *fakeStore) GetSession(_ context.Context, id uuid.UUID) (*db.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[id], nil
}

func (f *fakeStore) UpdateSessionJob(_ context.Context, id uuid.UUID, job []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	s.Job = job
	return nil
}

func (f *fakeStore) UpdateSessionWeights(_ context.Context, id uuid.UUID, weights []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	s.Weights = weights
	return nil
}

func (f *fakeStore) ListSessionsByUser(_ context.Context, userID uuid.UUID, _ int) ([]db.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Session
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteSession(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

func (f *fakeStore) CreateScoreRun(_ context.Context, sessionID uuid.UUID, weights []byte) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.runs[id] = &db.ScoreRun{
		ID: id, SessionID: sessionID,
		Status: db.RunStatusRunning, Weights: weights,
		CreatedAt: time.Now(),
	}
	return id, nil
}

func (f *fakeStore) CompleteScoreRun(_ context.Context, runID uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	run, ok := f.runs[runID]
	if !ok {
		return fmt.Errorf("run not found: %s", runID)
	}
	run.Status = status
	now := time.Now()
	run.CompletedAt = &now
	return nil
}

func (f *fakeStore) GetScoreRun(_ context.Context, runID uuid.UUID) (*db.ScoreRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs[runID], nil
}

func (f *fakeStore) ListRunsBySession(_ context.Context, sessionID uuid.UUID, _ int) ([]db.ScoreRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.ScoreRun
	for _, run := range f.runs {
		if run.SessionID == sessionID {
			out = append(out, *run)
		}
	}
	return out, nil
}

func (f *fakeStore) SaveScoreResults(_ context.Context, runID uuid.UUID, results []types.ScoreResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := make([]db.ScoreResultRow, 0, len(results))
	for i, result := range results {
		payload, err := json.Marshal(result)
		if err != nil {
			return err
		}
		rows = append(rows, db.ScoreResultRow{
			ID: uuid.New(), RunID: runID,
			Ref: result.Ref, Rank: i + 1, Score: result.Score,
			Result: payload, CreatedAt: time.Now(),
		})
	}
	f.results[runID] = rows
	return nil
}

func (f *fakeStore) GetScoreResults(_ context.Context, runID uuid.UUID) ([]db.ScoreResultRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results[runID], nil
}

func (f *fakeStore) GetScoreResult(_ context.Context, runID uuid.UUID, ref string) (*db.ScoreResultRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.results[runID] {
		if row.Ref == ref {
			return &row, nil
		}
	}
	return nil, nil
}
