package types

import (
	"fmt"
	"strings"
)

// ResumeRecord represents a structured resume produced by upstream parsing.
// It is immutable once created. Every field except Ref is optional: a
// partially parsed resume still flows through scoring and simply earns the
// lowest defensible sub-scores for the signals it cannot support.
type ResumeRecord struct {
	// Ref identifies the resume to the caller (typically the source file
	// name or an upload ID). It is the only mandatory field.
	Ref string `json:"ref"`

	Name              string    `json:"name,omitempty"`
	Titles            []string  `json:"titles,omitempty"` // most recent first
	Seniority         Seniority `json:"seniority"`
	Skills            []string  `json:"skills,omitempty"`
	ExperienceBullets []string  `json:"experience_bullets,omitempty"`
	Education         []string  `json:"education,omitempty"`
	Domains           []string  `json:"domains,omitempty"`
}

// Validate checks that the record carries its mandatory identity field.
func (r *ResumeRecord) Validate() error {
	if r == nil {
		return fmt.Errorf("resume record is nil")
	}
	if strings.TrimSpace(r.Ref) == "" {
		return fmt.Errorf("resume record has no ref")
	}
	return nil
}

// ComparisonText returns the text used for semantic comparison against the
// job description: the experience bullets joined together.
func (r *ResumeRecord) ComparisonText() string {
	return strings.Join(r.ExperienceBullets, "\n")
}
