package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/talent-intel/internal/db"
	"github.com/jonathan/talent-intel/internal/scoring"
	"github.com/jonathan/talent-intel/internal/types"
)

// RecordParser extracts structured records from raw text. *parsing.Parser
// satisfies it.
type RecordParser interface {
	ParseJobRecord(ctx context.Context, rawText string) (*types.JobRecord, error)
	ParseResumeRecord(ctx context.Context, ref, rawText string) (*types.ResumeRecord, error)
}

// ResumeAuditor assesses resumes for AI-generated content after their raw
// text has been registered. *parsing.Auditor satisfies it.
type ResumeAuditor interface {
	scoring.AIAssessor
	Register(ref, rawText string)
}

// PostingFetcher retrieves the plain text of a job posting URL.
type PostingFetcher func(ctx context.Context, url string) (string, error)

// ScoreService orchestrates a scoring run: resolve the job, structure the
// resumes, score the batch, and persist the ranked results.
type ScoreService struct {
	store        Store
	parser       RecordParser
	auditor      ResumeAuditor
	embedder     scoring.Embedder
	policy       scoring.Policy
	fetchPosting PostingFetcher
	logger       *zap.Logger
}

// ScoreServiceConfig configures a ScoreService.
type ScoreServiceConfig struct {
	Store        Store
	Parser       RecordParser
	Auditor      ResumeAuditor
	Embedder     scoring.Embedder
	Policy       scoring.Policy
	FetchPosting PostingFetcher
	Logger       *zap.Logger
}

// NewScoreService creates a ScoreService.
func NewScoreService(cfg ScoreServiceConfig) *ScoreService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoreService{
		store:        cfg.Store,
		parser:       cfg.Parser,
		auditor:      cfg.Auditor,
		embedder:     cfg.Embedder,
		policy:       cfg.Policy,
		fetchPosting: cfg.FetchPosting,
		logger:       logger,
	}
}

// RunOutput is the result of one scoring run.
type RunOutput struct {
	RunID   uuid.UUID           `json:"run_id"`
	Job     *types.JobRecord    `json:"job"`
	Weights types.WeightVector  `json:"weights"`
	Results []types.ScoreResult `json:"results"`
}

// Score executes a scoring run inside the user's session.
func (s *ScoreService) Score(ctx context.Context, userID, sessionID uuid.UUID, req *types.ScoreRequest) (*RunOutput, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	var weights types.WeightVector
	if err := json.Unmarshal(session.Weights, &weights); err != nil {
		return nil, fmt.Errorf("failed to decode session weights: %w", err)
	}
	weights = weights.Normalized()

	job, err := s.resolveJob(ctx, sessionID, req)
	if err != nil {
		return nil, err
	}

	resumes := s.buildResumes(ctx, req)

	weightsJSON, err := json.Marshal(weights)
	if err != nil {
		return nil, fmt.Errorf("failed to encode weights: %w", err)
	}
	runID, err := s.store.CreateScoreRun(ctx, sessionID, weightsJSON)
	if err != nil {
		return nil, err
	}

	var assessor scoring.AIAssessor
	if req.DetectAI && s.auditor != nil {
		assessor = s.auditor
	}
	scorer := scoring.NewScorer(scoring.ScorerConfig{
		Embedder: s.embedder,
		Assessor: assessor,
		Policy:   s.policy,
		Logger:   s.logger,
	})

	results, err := scorer.ScoreAll(ctx, job, resumes, weights)
	if err != nil {
		_ = s.store.CompleteScoreRun(ctx, runID, db.RunStatusFailed)
		return nil, err
	}

	if err := s.store.SaveScoreResults(ctx, runID, results); err != nil {
		_ = s.store.CompleteScoreRun(ctx, runID, db.RunStatusFailed)
		return nil, err
	}
	if err := s.store.CompleteScoreRun(ctx, runID, db.RunStatusCompleted); err != nil {
		return nil, err
	}

	s.logger.Info("score run completed",
		zap.String("run_id", runID.String()),
		zap.String("session_id", sessionID.String()),
		zap.Int("resumes", len(results)),
	)

	return &RunOutput{
		RunID:   runID,
		Job:     job,
		Weights: weights,
		Results: results,
	}, nil
}

// Feedback applies one approve/reject event to the session's weights and
// returns the adjusted vector. The run must belong to the session.
func (s *ScoreService) Feedback(ctx context.Context, userID, sessionID uuid.UUID, req *types.FeedbackRequest) (types.WeightVector, error) {
	var zero types.WeightVector

	runID, err := uuid.Parse(req.RunID)
	if err != nil {
		return zero, &ErrValidation{Field: "run_id", Message: "must be a UUID"}
	}

	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return zero, err
	}

	run, err := s.store.GetScoreRun(ctx, runID)
	if err != nil {
		return zero, err
	}
	if run == nil || run.SessionID != session.ID {
		return zero, &ErrRunNotFound{RunID: runID}
	}

	row, err := s.store.GetScoreResult(ctx, runID, req.Ref)
	if err != nil {
		return zero, err
	}
	if row == nil {
		return zero, &ErrResultNotFound{RunID: runID, Ref: req.Ref}
	}

	var result types.ScoreResult
	if err := json.Unmarshal(row.Result, &result); err != nil {
		return zero, fmt.Errorf("failed to decode stored result: %w", err)
	}

	var weights types.WeightVector
	if err := json.Unmarshal(session.Weights, &weights); err != nil {
		return zero, fmt.Errorf("failed to decode session weights: %w", err)
	}

	adjusted := s.policy.AdjustWeights(weights, &result, req.Approve)

	adjustedJSON, err := json.Marshal(adjusted)
	if err != nil {
		return zero, fmt.Errorf("failed to encode weights: %w", err)
	}
	if err := s.store.UpdateSessionWeights(ctx, session.ID, adjustedJSON); err != nil {
		return zero, err
	}

	s.logger.Info("feedback applied",
		zap.String("run_id", runID.String()),
		zap.String("ref", req.Ref),
		zap.Bool("approve", req.Approve),
	)
	return adjusted, nil
}

// ownedSession loads a session and checks it belongs to the user.
func (s *ScoreService) ownedSession(ctx context.Context, userID, sessionID uuid.UUID) (*db.Session, error) {
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, &ErrSessionNotFound{SessionID: sessionID}
	}
	if session.UserID != userID {
		return nil, &ErrForbidden{}
	}
	return session, nil
}

// resolveJob produces the job record from whichever source the request
// carries, persisting freshly parsed jobs on the session.
func (s *ScoreService) resolveJob(ctx context.Context, sessionID uuid.UUID, req *types.ScoreRequest) (*types.JobRecord, error) {
	if req.Job != nil {
		return req.Job, nil
	}

	rawText := req.JobText
	if req.JobURL != "" {
		if s.fetchPosting == nil {
			return nil, fmt.Errorf("job URL fetching is not configured")
		}
		fetched, err := s.fetchPosting(ctx, req.JobURL)
		if err != nil {
			return nil, err
		}
		rawText = fetched
	}

	job, err := s.parser.ParseJobRecord(ctx, rawText)
	if err != nil {
		return nil, err
	}

	if jobJSON, err := json.Marshal(job); err == nil {
		if err := s.store.UpdateSessionJob(ctx, sessionID, jobJSON); err != nil {
			s.logger.Warn("failed to persist session job", zap.Error(err))
		}
	}
	return job, nil
}

// buildResumes structures every resume input. A resume whose text fails
// LLM extraction still enters the batch: its raw text becomes the
// experience section so the embedding signal survives, and the skill and
// trajectory signals degrade.
func (s *ScoreService) buildResumes(ctx context.Context, req *types.ScoreRequest) []*types.ResumeRecord {
	resumes := make([]*types.ResumeRecord, 0, len(req.Resumes))
	for _, input := range req.Resumes {
		if req.DetectAI && input.Text != "" && s.auditor != nil {
			s.auditor.Register(input.Ref, input.Text)
		}

		if input.Record != nil {
			record := input.Record
			record.Ref = input.Ref
			resumes = append(resumes, record)
			continue
		}

		record, err := s.parser.ParseResumeRecord(ctx, input.Ref, input.Text)
		if err != nil {
			s.logger.Warn("resume extraction failed, scoring raw text",
				zap.String("ref", input.Ref),
				zap.Error(err),
			)
			record = &types.ResumeRecord{
				Ref:               input.Ref,
				ExperienceBullets: []string{input.Text},
			}
		}
		resumes = append(resumes, record)
	}
	return resumes
}
