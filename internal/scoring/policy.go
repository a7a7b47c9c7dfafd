// Package scoring implements the candidate scoring engine: bounded
// similarity signals, weighted aggregation with an AI-content penalty,
// batch ranking with per-resume failure isolation, and greedy weight
// adaptation from recruiter feedback.
package scoring

// Policy holds the tunable scoring constants. The observed values have no
// principled derivation, so they are configuration rather than hard-coded
// (defaults below match the reference behavior).
type Policy struct {
	// AIPenaltyFactor is the maximum fractional deduction attributable to
	// suspected AI-generated content. ai_pct of 100 deducts this much from
	// the pre-clamp score.
	AIPenaltyFactor float64 `json:"ai_penalty_factor"`

	// DomainBonus is the additive fractional bonus applied when the job's
	// domain appears among the resume's domains.
	DomainBonus float64 `json:"domain_bonus"`

	// BoostFactor multiplies the weight of the strongest signal on
	// approval feedback, capped at 1.0 before renormalization.
	BoostFactor float64 `json:"boost_factor"`

	// DecayFactor multiplies the weight of the weakest signal on rejection
	// feedback.
	DecayFactor float64 `json:"decay_factor"`

	// MinWeight floors a decayed weight so no signal is driven to zero
	// influence.
	MinWeight float64 `json:"min_weight"`

	// Concurrency bounds the number of resumes scored in parallel within
	// one batch.
	Concurrency int `json:"concurrency"`
}

// DefaultPolicy returns the standard scoring constants.
func DefaultPolicy() Policy {
	return Policy{
		AIPenaltyFactor: 0.10,
		DomainBonus:     0.10,
		BoostFactor:     1.2,
		DecayFactor:     0.8,
		MinWeight:       0.05,
		Concurrency:     4,
	}
}

// normalize fills zero-valued fields with defaults so a partially
// configured policy still behaves sensibly.
func (p Policy) normalize() Policy {
	def := DefaultPolicy()
	if p.AIPenaltyFactor == 0 {
		p.AIPenaltyFactor = def.AIPenaltyFactor
	}
	if p.DomainBonus == 0 {
		p.DomainBonus = def.DomainBonus
	}
	if p.BoostFactor == 0 {
		p.BoostFactor = def.BoostFactor
	}
	if p.DecayFactor == 0 {
		p.DecayFactor = def.DecayFactor
	}
	if p.MinWeight == 0 {
		p.MinWeight = def.MinWeight
	}
	if p.Concurrency <= 0 {
		p.Concurrency = def.Concurrency
	}
	return p
}
