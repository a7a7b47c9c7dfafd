package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/talent-intel/internal/server/middleware"
	"github.com/jonathan/talent-intel/internal/types"
)

// newTestServer wires a Server around the fake store, skipping the real
// database, LLM, and embedding clients.
func newTestServer(store Store, service *ScoreService) *Server {
	return &Server{
		store:        store,
		scoreService: service,
		metrics:      newMetrics(),
		logger:       zap.NewNop(),
	}
}

func authedRequest(method, target string, userID uuid.UUID, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestHandleCreateSession(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store, testScoreService(store, &stubRecordParser{}, nil))
	userID := uuid.New()

	req := authedRequest(http.MethodPost, "/sessions", userID, types.CreateSessionRequest{
		Title:   "backend search",
		Weights: &types.WeightVector{Experience: 2, Skills: 1, Trajectory: 1},
	})
	rec := httptest.NewRecorder()
	server.handleCreateSession(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		ID      uuid.UUID          `json:"id"`
		Title   string             `json:"title"`
		Weights types.WeightVector `json:"weights"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "backend search", resp.Title)
	assert.InDelta(t, 0.5, resp.Weights.Experience, 1e-9)
	assert.InDelta(t, 0.25, resp.Weights.Skills, 1e-9)

	session, err := store.GetSession(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, userID, session.UserID)
}

func TestHandleCreateSession_DefaultWeights(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store, testScoreService(store, &stubRecordParser{}, nil))

	req := authedRequest(http.MethodPost, "/sessions", uuid.New(), types.CreateSessionRequest{})
	rec := httptest.NewRecorder()
	server.handleCreateSession(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Weights types.WeightVector `json:"weights"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, types.DefaultWeights(), resp.Weights)
}

func TestHandleCreateSession_Unauthenticated(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store, testScoreService(store, &stubRecordParser{}, nil))

	req := httptest.NewRequest(http.MethodPost, "/sessions", bytes.NewBufferString("{}"))
	rec := httptest.NewRecorder()
	server.handleCreateSession(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleGetSession(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store, testScoreService(store, &stubRecordParser{}, nil))
	userID := uuid.New()
	sessionID := createTestSession(t, store, userID)

	req := authedRequest(http.MethodGet, "/sessions/"+sessionID.String(), userID, nil)
	req.SetPathValue("id", sessionID.String())
	rec := httptest.NewRecorder()
	server.handleGetSession(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp sessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, sessionID, resp.ID)
	assert.Equal(t, "backend search", resp.Title)
	assert.Equal(t, types.DefaultWeights(), resp.Weights)
}

func TestHandleGetSession_OtherUser(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store, testScoreService(store, &stubRecordParser{}, nil))
	sessionID := createTestSession(t, store, uuid.New())

	req := authedRequest(http.MethodGet, "/sessions/"+sessionID.String(), uuid.New(), nil)
	req.SetPathValue("id", sessionID.String())
	rec := httptest.NewRecorder()
	server.handleGetSession(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleGetSession_NotFound(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store, testScoreService(store, &stubRecordParser{}, nil))

	missing := uuid.New()
	req := authedRequest(http.MethodGet, "/sessions/"+missing.String(), uuid.New(), nil)
	req.SetPathValue("id", missing.String())
	rec := httptest.NewRecorder()
	server.handleGetSession(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetSession_BadID(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store, testScoreService(store, &stubRecordParser{}, nil))

	req := authedRequest(http.MethodGet, "/sessions/nope", uuid.New(), nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	server.handleGetSession(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListSessions(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store, testScoreService(store, &stubRecordParser{}, nil))
	userID := uuid.New()
	createTestSession(t, store, userID)
	createTestSession(t, store, userID)
	createTestSession(t, store, uuid.New()) // other user's, not listed

	req := authedRequest(http.MethodGet, "/sessions", userID, nil)
	rec := httptest.NewRecorder()
	server.handleListSessions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []sessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
}

func TestHandleScore(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store, testScoreService(store, &stubRecordParser{}, nil))
	userID := uuid.New()
	sessionID := createTestSession(t, store, userID)

	body := types.ScoreRequest{
		Job: testJob(),
		Resumes: []types.ResumeInput{
			{Ref: "strong.pdf", Record: &types.ResumeRecord{
				Seniority:         types.SenioritySenior,
				Skills:            []string{"go", "postgres"},
				ExperienceBullets: []string{"Ran backend services"},
			}},
			{Ref: "weak.pdf", Record: &types.ResumeRecord{
				Skills:            []string{"excel"},
				ExperienceBullets: []string{"Maintained spreadsheets"},
			}},
		},
	}
	req := authedRequest(http.MethodPost, "/sessions/"+sessionID.String()+"/score", userID, body)
	req.SetPathValue("id", sessionID.String())
	rec := httptest.NewRecorder()
	server.handleScore(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp RunOutput
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "strong.pdf", resp.Results[0].Ref)
}

func TestHandleScore_NoJobSource(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store, testScoreService(store, &stubRecordParser{}, nil))
	userID := uuid.New()
	sessionID := createTestSession(t, store, userID)

	body := types.ScoreRequest{
		Resumes: []types.ResumeInput{{Ref: "a.pdf", Text: "text"}},
	}
	req := authedRequest(http.MethodPost, "/sessions/"+sessionID.String()+"/score", userID, body)
	req.SetPathValue("id", sessionID.String())
	rec := httptest.NewRecorder()
	server.handleScore(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleScore_NoResumes(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store, testScoreService(store, &stubRecordParser{}, nil))
	userID := uuid.New()
	sessionID := createTestSession(t, store, userID)

	req := authedRequest(http.MethodPost, "/sessions/"+sessionID.String()+"/score", userID, types.ScoreRequest{Job: testJob()})
	req.SetPathValue("id", sessionID.String())
	rec := httptest.NewRecorder()
	server.handleScore(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleFeedback(t *testing.T) {
	store := newFakeStore()
	service := testScoreService(store, &stubRecordParser{}, nil)
	server := newTestServer(store, service)
	userID := uuid.New()
	sessionID := createTestSession(t, store, userID)

	output, err := service.Score(context.Background(), userID, sessionID, &types.ScoreRequest{
		Job: testJob(),
		Resumes: []types.ResumeInput{{Ref: "a.pdf", Record: &types.ResumeRecord{
			Skills:            []string{"go"},
			ExperienceBullets: []string{"Go services"},
		}}},
	})
	require.NoError(t, err)

	req := authedRequest(http.MethodPost, "/sessions/"+sessionID.String()+"/feedback", userID, types.FeedbackRequest{
		RunID:   output.RunID.String(),
		Ref:     "a.pdf",
		Approve: true,
	})
	req.SetPathValue("id", sessionID.String())
	rec := httptest.NewRecorder()
	server.handleFeedback(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		RunID   string             `json:"run_id"`
		Ref     string             `json:"ref"`
		Weights types.WeightVector `json:"weights"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, output.RunID.String(), resp.RunID)
	assert.Equal(t, "a.pdf", resp.Ref)
	assert.InDelta(t, 1.0, resp.Weights.Sum(), 1e-9)
}

func TestHandleFeedback_BadRequest(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store, testScoreService(store, &stubRecordParser{}, nil))
	userID := uuid.New()
	sessionID := createTestSession(t, store, userID)

	req := authedRequest(http.MethodPost, "/sessions/"+sessionID.String()+"/feedback", userID, types.FeedbackRequest{
		RunID: "not-a-uuid",
		Ref:   "a.pdf",
	})
	req.SetPathValue("id", sessionID.String())
	rec := httptest.NewRecorder()
	server.handleFeedback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetRun(t *testing.T) {
	store := newFakeStore()
	service := testScoreService(store, &stubRecordParser{}, nil)
	server := newTestServer(store, service)
	userID := uuid.New()
	sessionID := createTestSession(t, store, userID)

	output, err := service.Score(context.Background(), userID, sessionID, &types.ScoreRequest{
		Job: testJob(),
		Resumes: []types.ResumeInput{{Ref: "a.pdf", Record: &types.ResumeRecord{
			Skills:            []string{"go"},
			ExperienceBullets: []string{"Go services"},
		}}},
	})
	require.NoError(t, err)

	req := authedRequest(http.MethodGet, "/runs/"+output.RunID.String(), userID, nil)
	req.SetPathValue("id", output.RunID.String())
	rec := httptest.NewRecorder()
	server.handleGetRun(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp runResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, output.RunID, resp.ID)
	assert.Equal(t, sessionID, resp.SessionID)
	assert.Equal(t, "completed", resp.Status)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "a.pdf", resp.Results[0].Ref)
	assert.NotEmpty(t, resp.CompletedAt)
}

func TestHandleGetRun_OtherUser(t *testing.T) {
	store := newFakeStore()
	service := testScoreService(store, &stubRecordParser{}, nil)
	server := newTestServer(store, service)
	owner := uuid.New()
	sessionID := createTestSession(t, store, owner)

	output, err := service.Score(context.Background(), owner, sessionID, &types.ScoreRequest{
		Job:     testJob(),
		Resumes: []types.ResumeInput{{Ref: "a.pdf", Record: &types.ResumeRecord{}}},
	})
	require.NoError(t, err)

	req := authedRequest(http.MethodGet, "/runs/"+output.RunID.String(), uuid.New(), nil)
	req.SetPathValue("id", output.RunID.String())
	rec := httptest.NewRecorder()
	server.handleGetRun(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleGetRun_NotFound(t *testing.T) {
	store := newFakeStore()
	server := newTestServer(store, testScoreService(store, &stubRecordParser{}, nil))

	missing := uuid.New()
	req := authedRequest(http.MethodGet, "/runs/"+missing.String(), uuid.New(), nil)
	req.SetPathValue("id", missing.String())
	rec := httptest.NewRecorder()
	server.handleGetRun(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleListRuns(t *testing.T) {
	store := newFakeStore()
	service := testScoreService(store, &stubRecordParser{}, nil)
	server := newTestServer(store, service)
	userID := uuid.New()
	sessionID := createTestSession(t, store, userID)

	for range 2 {
		_, err := service.Score(context.Background(), userID, sessionID, &types.ScoreRequest{
			Job:     testJob(),
			Resumes: []types.ResumeInput{{Ref: "a.pdf", Record: &types.ResumeRecord{}}},
		})
		require.NoError(t, err)
	}

	req := authedRequest(http.MethodGet, "/sessions/"+sessionID.String()+"/runs", userID, nil)
	req.SetPathValue("id", sessionID.String())
	rec := httptest.NewRecorder()
	server.handleListRuns(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(newFakeStore(), nil)

	rec := httptest.NewRecorder()
	server.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
