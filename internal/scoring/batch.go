package scoring

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/talent-intel/internal/types"
)

// scoreEpsilon is the tie-break tolerance: results whose scores differ by
// less than this keep their original input order.
const scoreEpsilon = 1e-9

// Embedder turns text into a fixed-length vector. Implementations must be
// deterministic for identical text under a fixed model version and return
// consistent dimensionality within one batch.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// AIAssessor estimates how likely a resume's text is AI-generated.
type AIAssessor interface {
	Assess(ctx context.Context, resume *types.ResumeRecord) (*types.AIAssessment, error)
}

// Scorer applies the aggregator across one job description and a batch of
// resumes. It holds no mutable state between calls; the session-scoped
// weight vector is threaded through by the caller.
type Scorer struct {
	embedder Embedder
	assessor AIAssessor
	policy   Policy
	logger   *zap.Logger
}

// ScorerConfig configures a Scorer. Embedder and Assessor may be nil, in
// which case the corresponding signals degrade to their conservative
// defaults (with flags on every result).
type ScorerConfig struct {
	Embedder Embedder
	Assessor AIAssessor
	Policy   Policy
	Logger   *zap.Logger
}

// NewScorer creates a Scorer from the given configuration.
func NewScorer(cfg ScorerConfig) *Scorer {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{
		embedder: cfg.Embedder,
		assessor: cfg.Assessor,
		policy:   cfg.Policy.normalize(),
		logger:   logger,
	}
}

// ScoreAll scores every resume against the job and returns the results
// sorted by score descending; ties within epsilon preserve input order.
// A batch of N resumes always yields N results: a failing collaborator or
// degenerate resume degrades that resume's signals and flags the result,
// never aborting the batch. The only errors are a malformed job record,
// a resume missing its ref, or an empty batch.
func (s *Scorer) ScoreAll(ctx context.Context, job *types.JobRecord, resumes []*types.ResumeRecord, weights types.WeightVector) ([]types.ScoreResult, error) {
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job record: %w", err)
	}
	if len(resumes) == 0 {
		return nil, fmt.Errorf("no resumes to score")
	}
	for i, resume := range resumes {
		if err := resume.Validate(); err != nil {
			return nil, fmt.Errorf("invalid resume record at index %d: %w", i, err)
		}
	}

	weights = weights.Normalized()

	// The job side of the experience signal is embedded once per batch.
	jobVec, jobEmbedErr := s.embedJob(ctx, job)

	results := make([]types.ScoreResult, len(resumes))

	// Resumes are independent, so scoring is embarrassingly parallel. The
	// group carries no errors: per-resume failures degrade signals instead.
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.policy.Concurrency)
	for i, resume := range resumes {
		g.Go(func() error {
			results[i] = s.scoreOne(gCtx, job, jobVec, jobEmbedErr, resume, weights)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score-results[j].Score > scoreEpsilon
	})

	s.logger.Debug("batch scored",
		zap.String("job_title", job.Title),
		zap.Int("resumes", len(resumes)),
	)
	return results, nil
}

// embedJob embeds the job's comparison text, or reports why it could not.
func (s *Scorer) embedJob(ctx context.Context, job *types.JobRecord) ([]float32, error) {
	if s.embedder == nil {
		return nil, fmt.Errorf("no embedder configured")
	}
	text := job.ComparisonText()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("job has no comparison text")
	}
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		s.logger.Warn("job embedding failed, experience signal degrades for the whole batch", zap.Error(err))
		return nil, err
	}
	return vec, nil
}

// scoreOne computes all signals for a single resume and aggregates them.
func (s *Scorer) scoreOne(ctx context.Context, job *types.JobRecord, jobVec []float32, jobEmbedErr error, resume *types.ResumeRecord, weights types.WeightVector) types.ScoreResult {
	var flags []string

	// Experience similarity. Any upstream failure degrades to 0.
	expSim := 0.0
	resumeText := resume.ComparisonText()
	switch {
	case jobEmbedErr != nil:
		flags = append(flags, types.FlagEmbeddingUnavailable)
	case strings.TrimSpace(resumeText) == "":
		flags = append(flags, types.FlagNoExperienceText)
	default:
		vec, err := s.embedder.Embed(ctx, resumeText)
		if err != nil {
			s.logger.Warn("resume embedding failed",
				zap.String("ref", resume.Ref),
				zap.Error(err),
			)
			flags = append(flags, types.FlagEmbeddingUnavailable)
		} else {
			expSim = ExperienceSimilarity(jobVec, vec)
		}
	}

	skillOverlap, matched := SkillOverlap(resume.Skills, job.RequiredSkills)
	niceMatches := MatchSkills(resume.Skills, job.NiceToHaveSkills)

	trajectory, jobKnown, resumeKnown := TrajectoryAlignment(job.Seniority, resume.Seniority)
	if !jobKnown {
		flags = append(flags, types.FlagJobSeniorityUnknown)
	}
	if !resumeKnown {
		flags = append(flags, types.FlagResumeSeniorityUnknown)
	}

	aiPct := 0.0
	if s.assessor != nil {
		assessment, err := s.assessor.Assess(ctx, resume)
		if err != nil {
			s.logger.Warn("AI assessment failed",
				zap.String("ref", resume.Ref),
				zap.Error(err),
			)
			flags = append(flags, types.FlagAIAssessmentUnavailable)
		} else {
			aiPct = assessment.ClampedPercent()
		}
	}

	result := s.policy.Aggregate(Signals{
		ExpSim:       expSim,
		SkillOverlap: skillOverlap,
		Trajectory:   trajectory,
	}, weights, aiPct, s.domainBonus(job, resume))

	result.Ref = resume.Ref
	result.MatchedSkills = matched
	result.MatchedNiceToHaves = niceMatches
	result.Flags = flags
	result.Job = job
	result.Resume = resume
	return result
}

// domainBonus awards the policy bonus when the job's domain appears among
// the resume's domains (case-insensitive).
func (s *Scorer) domainBonus(job *types.JobRecord, resume *types.ResumeRecord) float64 {
	jobDomain := strings.ToLower(strings.TrimSpace(job.Domain))
	if jobDomain == "" {
		return 0
	}
	for _, d := range resume.Domains {
		if strings.ToLower(strings.TrimSpace(d)) == jobDomain {
			return s.policy.DomainBonus
		}
	}
	return 0
}
