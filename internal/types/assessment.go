package types

// AIAssessment is the AI-content auditor's verdict on a resume. It is
// produced by an external collaborator and consumed read-only as a scoring
// penalty input.
type AIAssessment struct {
	AILikelihoodPercent float64  `json:"ai_likelihood_percent"`
	Rationale           string   `json:"rationale,omitempty"`
	Flags               []string `json:"flags,omitempty"`
}

// ClampedPercent returns the likelihood bounded to [0,100]. The auditor is
// an opaque collaborator, so out-of-range values are clamped rather than
// rejected.
func (a *AIAssessment) ClampedPercent() float64 {
	if a == nil {
		return 0
	}
	if a.AILikelihoodPercent < 0 {
		return 0
	}
	if a.AILikelihoodPercent > 100 {
		return 100
	}
	return a.AILikelihoodPercent
}
