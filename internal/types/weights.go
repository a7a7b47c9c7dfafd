package types

// WeightVector holds the relative importance of the three scoring signals.
// A valid vector is non-negative and sums to 1; Normalized produces one
// from any non-negative input.
type WeightVector struct {
	Experience float64 `json:"experience"`
	Skills     float64 `json:"skills"`
	Trajectory float64 `json:"trajectory"`
}

// weightEpsilon is the floor for the normalization denominator. Inputs
// whose components sum to less than this are treated as degenerate and
// recovered with uniform weights instead of dividing by (near) zero.
const weightEpsilon = 1e-9

// DefaultWeights returns the session-start weights: experience-heavy,
// skills next, trajectory last.
func DefaultWeights() WeightVector {
	return WeightVector{Experience: 0.5, Skills: 0.35, Trajectory: 0.15}
}

// UniformWeights returns the 1/3-each fallback used when a caller-supplied
// vector cannot be normalized.
func UniformWeights() WeightVector {
	return WeightVector{Experience: 1.0 / 3.0, Skills: 1.0 / 3.0, Trajectory: 1.0 / 3.0}
}

// Normalized returns a new vector scaled to sum to 1. Negative components
// are clamped to zero first. An all-zero (or sub-epsilon) input recovers to
// uniform weights; scoring must always produce a result, so this is never
// an error.
func (w WeightVector) Normalized() WeightVector {
	e := max(w.Experience, 0)
	s := max(w.Skills, 0)
	t := max(w.Trajectory, 0)

	sum := e + s + t
	if sum < weightEpsilon {
		return UniformWeights()
	}
	return WeightVector{Experience: e / sum, Skills: s / sum, Trajectory: t / sum}
}

// Sum returns the total of the three components.
func (w WeightVector) Sum() float64 {
	return w.Experience + w.Skills + w.Trajectory
}
