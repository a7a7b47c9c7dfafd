package scoring

import "github.com/jonathan/talent-intel/internal/types"

// AdjustWeights applies one recruiter feedback event to a session's weight
// vector and returns a new, renormalized vector; the input is never
// mutated. Approval boosts the weight of the candidate's strongest signal;
// rejection decays the weight of the weakest, floored so no signal loses
// all influence.
//
// This is a greedy single-step heuristic, not a learned model: it carries
// no convergence guarantee toward any ground truth, only the guarantee of
// staying inside the valid simplex.
func (p Policy) AdjustWeights(weights types.WeightVector, result *types.ScoreResult, approve bool) types.WeightVector {
	p = p.normalize()
	adjusted := weights.Normalized()

	if approve {
		switch strongestSignal(result) {
		case signalExperience:
			adjusted.Experience = min(adjusted.Experience*p.BoostFactor, 1.0)
		case signalSkills:
			adjusted.Skills = min(adjusted.Skills*p.BoostFactor, 1.0)
		case signalTrajectory:
			adjusted.Trajectory = min(adjusted.Trajectory*p.BoostFactor, 1.0)
		}
	} else {
		switch weakestSignal(result) {
		case signalExperience:
			adjusted.Experience = max(adjusted.Experience*p.DecayFactor, p.MinWeight)
		case signalSkills:
			adjusted.Skills = max(adjusted.Skills*p.DecayFactor, p.MinWeight)
		case signalTrajectory:
			adjusted.Trajectory = max(adjusted.Trajectory*p.DecayFactor, p.MinWeight)
		}
	}

	return adjusted.Normalized()
}

type signal int

const (
	signalExperience signal = iota
	signalSkills
	signalTrajectory
)

// strongestSignal picks the sub-signal with the highest value; earlier
// signals win ties, matching the declaration order of the weight vector.
func strongestSignal(r *types.ScoreResult) signal {
	best := signalExperience
	bestVal := r.ExpSim
	if r.SkillOverlap > bestVal {
		best, bestVal = signalSkills, r.SkillOverlap
	}
	if r.Trajectory > bestVal {
		best = signalTrajectory
	}
	return best
}

// weakestSignal picks the sub-signal with the lowest value.
func weakestSignal(r *types.ScoreResult) signal {
	worst := signalExperience
	worstVal := r.ExpSim
	if r.SkillOverlap < worstVal {
		worst, worstVal = signalSkills, r.SkillOverlap
	}
	if r.Trajectory < worstVal {
		worst = signalTrajectory
	}
	return worst
}
