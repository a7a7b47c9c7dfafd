package types

import "github.com/go-playground/validator/v10"

// CreateSessionRequest starts a ranking session. Weights are optional; the
// server normalizes whatever non-negative triple the caller supplies and
// falls back to the defaults when absent.
type CreateSessionRequest struct {
	Title   string        `json:"title,omitempty"`
	Weights *WeightVector `json:"weights,omitempty"`
}

// ResumeInput is one candidate resume submitted for scoring. Either the
// pre-structured record or raw text must be present; raw text goes through
// the LLM parser server-side.
type ResumeInput struct {
	Ref    string        `json:"ref" validate:"required,min=1"`
	Text   string        `json:"text,omitempty"`
	Record *ResumeRecord `json:"record,omitempty"`
}

// ScoreRequest scores a batch of resumes against one job description within
// a session. Exactly one of job_url, job_text, or job must be provided.
type ScoreRequest struct {
	JobURL  string        `json:"job_url,omitempty" validate:"omitempty,url"`
	JobText string        `json:"job_text,omitempty"`
	Job     *JobRecord    `json:"job,omitempty"`
	Resumes []ResumeInput `json:"resumes" validate:"required,min=1,dive"`

	// DetectAI enables the AI-content audit for each resume.
	DetectAI bool `json:"detect_ai,omitempty"`
}

// FeedbackRequest applies approval or rejection feedback for one scored
// candidate, nudging the session's weights for subsequent rounds.
type FeedbackRequest struct {
	RunID   string `json:"run_id" validate:"required,uuid"`
	Ref     string `json:"ref" validate:"required,min=1"`
	Approve bool   `json:"approve"`
}

// Validate validates the ScoreRequest using the validator, plus the
// mutually-exclusive job source rule that tags cannot express.
func (r *ScoreRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	sources := 0
	if r.JobURL != "" {
		sources++
	}
	if r.JobText != "" {
		sources++
	}
	if r.Job != nil {
		sources++
	}
	if sources != 1 {
		return &ErrJobSource{Provided: sources}
	}
	return nil
}

// Validate validates the FeedbackRequest using the validator.
func (r *FeedbackRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ErrJobSource indicates that a score request did not provide exactly one
// job source.
type ErrJobSource struct {
	Provided int
}

func (e *ErrJobSource) Error() string {
	if e.Provided == 0 {
		return "one of job_url, job_text, or job is required"
	}
	return "job_url, job_text, and job are mutually exclusive"
}
