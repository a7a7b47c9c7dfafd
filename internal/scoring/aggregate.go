package scoring

import "github.com/jonathan/talent-intel/internal/types"

// Signals bundles the three bounded sub-scores for one resume.
type Signals struct {
	ExpSim       float64
	SkillOverlap float64
	Trajectory   float64
}

// Aggregate combines the signals, weights, AI-content penalty, and optional
// domain bonus into one explained result. It never fails: component inputs
// are clamped, not rejected, because the signal functions are total. The
// weights are expected to be normalized already (that is the WeightVector
// constructor's job); a violation is a programming error reported by a
// debug-only assertion, not silently corrected here.
func (p Policy) Aggregate(sig Signals, weights types.WeightVector, aiPct, domainBonus float64) types.ScoreResult {
	p = p.normalize()
	assertNormalized(weights)

	expSim := clamp01(sig.ExpSim)
	skillOverlap := clamp01(sig.SkillOverlap)
	trajectory := clamp01(sig.Trajectory)
	if aiPct < 0 {
		aiPct = 0
	} else if aiPct > 100 {
		aiPct = 100
	}

	raw := weights.Experience*expSim +
		weights.Skills*skillOverlap +
		weights.Trajectory*trajectory

	penalty := aiPct / 100 * p.AIPenaltyFactor
	final := clamp01(raw+domainBonus-penalty) * 100

	return types.ScoreResult{
		Score:        final,
		ExpSim:       expSim,
		SkillOverlap: skillOverlap,
		Trajectory:   trajectory,
		AIPct:        aiPct,
		ValidityPct:  100 - aiPct,
		DomainBonus:  domainBonus,
		Weights:      weights,
	}
}
