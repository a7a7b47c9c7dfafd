package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talent-intel/internal/db"
	"github.com/jonathan/talent-intel/internal/server/middleware"
	"github.com/jonathan/talent-intel/internal/types"
)

// sessionResponse is the API view of a stored session with its JSONB
// snapshots decoded.
type sessionResponse struct {
	ID        uuid.UUID          `json:"id"`
	Title     string             `json:"title"`
	Job       *types.JobRecord   `json:"job,omitempty"`
	Weights   types.WeightVector `json:"weights"`
	CreatedAt string             `json:"created_at"`
	UpdatedAt string             `json:"updated_at"`
}

func toSessionResponse(s *db.Session) (*sessionResponse, error) {
	resp := &sessionResponse{
		ID:        s.ID,
		Title:     s.Title,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: s.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if err := json.Unmarshal(s.Weights, &resp.Weights); err != nil {
		return nil, err
	}
	if len(s.Job) > 0 {
		if err := json.Unmarshal(s.Job, &resp.Job); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// handleCreateSession starts a scoring session for the authenticated user.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	weights := types.DefaultWeights()
	if req.Weights != nil {
		weights = req.Weights.Normalized()
	}
	weightsJSON, err := json.Marshal(weights)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to encode weights")
		return
	}

	sessionID, err := s.store.CreateSession(r.Context(), userID, req.Title, nil, weightsJSON)
	if err != nil {
		s.logger.Error("failed to create session", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":      sessionID,
		"title":   req.Title,
		"weights": weights,
	})
}

// handleGetSession returns one of the user's sessions.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	session, err := s.scoreService.ownedSession(r.Context(), userID, sessionID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	resp, err := toSessionResponse(session)
	if err != nil {
		s.logger.Error("failed to decode session", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to decode session")
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListSessions returns the user's sessions, newest first.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sessions, err := s.store.ListSessionsByUser(r.Context(), userID, 50)
	if err != nil {
		s.logger.Error("failed to list sessions", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	responses := make([]*sessionResponse, 0, len(sessions))
	for i := range sessions {
		resp, err := toSessionResponse(&sessions[i])
		if err != nil {
			s.logger.Error("failed to decode session", zap.Error(err))
			continue
		}
		responses = append(responses, resp)
	}
	s.jsonResponse(w, http.StatusOK, responses)
}

// handleScore runs batch scoring within a session.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	var req types.ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	output, err := s.scoreService.Score(r.Context(), userID, sessionID, &req)
	if err != nil {
		s.metrics.recordRun(db.RunStatusFailed, 0)
		s.serviceError(w, err)
		return
	}
	s.metrics.recordRun(db.RunStatusCompleted, len(output.Results))

	s.jsonResponse(w, http.StatusOK, output)
}

// handleFeedback applies approve/reject feedback to a scored candidate
// within a session.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	var req types.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	weights, err := s.scoreService.Feedback(r.Context(), userID, sessionID, &req)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.metrics.recordFeedback(req.Approve)

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"run_id":  req.RunID,
		"ref":     req.Ref,
		"weights": weights,
	})
}

// runResponse is the API view of a stored run with its ranked results.
type runResponse struct {
	ID          uuid.UUID           `json:"id"`
	SessionID   uuid.UUID           `json:"session_id"`
	Status      string              `json:"status"`
	Weights     types.WeightVector  `json:"weights"`
	Results     []types.ScoreResult `json:"results"`
	CreatedAt   string              `json:"created_at"`
	CompletedAt string              `json:"completed_at,omitempty"`
}

// handleGetRun returns a run and its ranked results.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid run ID")
		return
	}

	run, err := s.store.GetScoreRun(r.Context(), runID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if run == nil {
		s.serviceError(w, &ErrRunNotFound{RunID: runID})
		return
	}
	if _, err := s.scoreService.ownedSession(r.Context(), userID, run.SessionID); err != nil {
		s.serviceError(w, err)
		return
	}

	rows, err := s.store.GetScoreResults(r.Context(), runID)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	resp := runResponse{
		ID:        run.ID,
		SessionID: run.SessionID,
		Status:    run.Status,
		Results:   make([]types.ScoreResult, 0, len(rows)),
		CreatedAt: run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if run.CompletedAt != nil {
		resp.CompletedAt = run.CompletedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	if err := json.Unmarshal(run.Weights, &resp.Weights); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to decode run weights")
		return
	}
	for _, row := range rows {
		var result types.ScoreResult
		if err := json.Unmarshal(row.Result, &result); err != nil {
			s.logger.Error("failed to decode stored result",
				zap.String("ref", row.Ref),
				zap.Error(err),
			)
			continue
		}
		resp.Results = append(resp.Results, result)
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListRuns returns a session's runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	sessionID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid session ID")
		return
	}
	if _, err := s.scoreService.ownedSession(r.Context(), userID, sessionID); err != nil {
		s.serviceError(w, err)
		return
	}

	runs, err := s.store.ListRunsBySession(r.Context(), sessionID, 50)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, runs)
}

// serviceError maps service errors onto HTTP responses.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		s.errorResponse(w, status, "internal error")
		return
	}
	s.errorResponse(w, status, err.Error())
}
