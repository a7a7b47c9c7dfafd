package types

// Degradation flags recorded on a ScoreResult when a signal's upstream
// dependency was unavailable and a conservative default was substituted.
// They surface per-resume recovery to the caller without failing the batch.
const (
	FlagEmbeddingUnavailable    = "embedding_unavailable"
	FlagAIAssessmentUnavailable = "ai_assessment_unavailable"
	FlagJobSeniorityUnknown     = "job_seniority_unknown"
	FlagResumeSeniorityUnknown  = "resume_seniority_unknown"
	FlagNoExperienceText        = "no_experience_text"
)

// ScoreResult is the explained score for one (job, resume, weights) triple.
// It is created once and never mutated; rescoring under new weights yields
// a new ScoreResult. All fields are flat and serializable for direct
// rendering or report export.
type ScoreResult struct {
	Ref string `json:"ref"`

	// Score is the final ranked score in [0,100].
	Score float64 `json:"score"`

	// Component signals, each in [0,1].
	ExpSim       float64 `json:"exp_sim"`
	SkillOverlap float64 `json:"skill_overlap"`
	Trajectory   float64 `json:"trajectory"`

	// AI-content penalty inputs.
	AIPct       float64 `json:"ai_pct"`
	ValidityPct float64 `json:"validity_pct"`

	// DomainBonus is the additive fractional adjustment applied for
	// industry/domain alignment, zero when none applied.
	DomainBonus float64 `json:"domain_bonus,omitempty"`

	// Explainability surface.
	MatchedSkills      []string `json:"matched_skills,omitempty"`
	MatchedNiceToHaves []string `json:"matched_nice_to_haves,omitempty"`
	Flags              []string `json:"flags,omitempty"`

	// Snapshots of the inputs that produced this result.
	Weights WeightVector  `json:"weights"`
	Job     *JobRecord    `json:"job,omitempty"`
	Resume  *ResumeRecord `json:"resume,omitempty"`
}

// HasFlag reports whether the result carries the given degradation flag.
func (r *ScoreResult) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}
