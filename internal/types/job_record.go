package types

import (
	"fmt"
	"strings"
)

// JobRecord represents a structured job description produced by upstream
// parsing. It is immutable once created; scoring never modifies it.
type JobRecord struct {
	Title            string    `json:"title"`
	Seniority        Seniority `json:"seniority"`
	RequiredSkills   []string  `json:"required_skills"`
	NiceToHaveSkills []string  `json:"nice_to_have_skills,omitempty"`
	Responsibilities []string  `json:"responsibilities,omitempty"`
	Domain           string    `json:"domain,omitempty"`
	RawSummary       string    `json:"raw_summary,omitempty"`
}

// Validate checks that the record carries enough identity to score against.
// A job with neither a title nor any text to compare is a caller error.
func (j *JobRecord) Validate() error {
	if j == nil {
		return fmt.Errorf("job record is nil")
	}
	if strings.TrimSpace(j.Title) == "" && strings.TrimSpace(j.RawSummary) == "" && len(j.Responsibilities) == 0 {
		return fmt.Errorf("job record has no title, summary, or responsibilities")
	}
	return nil
}

// ComparisonText returns the text used for semantic comparison: the raw
// summary when present, otherwise the responsibilities joined together.
func (j *JobRecord) ComparisonText() string {
	if strings.TrimSpace(j.RawSummary) != "" {
		return j.RawSummary
	}
	return strings.Join(j.Responsibilities, "\n")
}
