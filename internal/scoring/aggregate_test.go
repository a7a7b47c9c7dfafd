package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-intel/internal/types"
)

func TestAggregate_WeightedSum(t *testing.T) {
	policy := DefaultPolicy()
	weights := types.WeightVector{Experience: 0.5, Skills: 0.35, Trajectory: 0.15}

	result := policy.Aggregate(Signals{ExpSim: 0.8, SkillOverlap: 1.0, Trajectory: 0.5}, weights, 0, 0)

	// 0.5*0.8 + 0.35*1.0 + 0.15*0.5 = 0.825
	assert.InDelta(t, 82.5, result.Score, 1e-6)
	assert.InDelta(t, 0.8, result.ExpSim, 1e-9)
	assert.InDelta(t, 1.0, result.SkillOverlap, 1e-9)
	assert.InDelta(t, 0.5, result.Trajectory, 1e-9)
	assert.Equal(t, weights, result.Weights)
}

func TestAggregate_AIPenalty(t *testing.T) {
	policy := DefaultPolicy()
	weights := types.UniformWeights()

	clean := policy.Aggregate(Signals{ExpSim: 0.6, SkillOverlap: 0.6, Trajectory: 0.6}, weights, 0, 0)
	flagged := policy.Aggregate(Signals{ExpSim: 0.6, SkillOverlap: 0.6, Trajectory: 0.6}, weights, 100, 0)

	// A fully AI-flagged resume loses AIPenaltyFactor (10 points at default).
	assert.InDelta(t, clean.Score-10, flagged.Score, 1e-6)
	assert.Equal(t, 100.0, flagged.AIPct)
	assert.Equal(t, 0.0, flagged.ValidityPct)
}

func TestAggregate_DomainBonus(t *testing.T) {
	policy := DefaultPolicy()
	weights := types.UniformWeights()

	base := policy.Aggregate(Signals{ExpSim: 0.5, SkillOverlap: 0.5, Trajectory: 0.5}, weights, 0, 0)
	boosted := policy.Aggregate(Signals{ExpSim: 0.5, SkillOverlap: 0.5, Trajectory: 0.5}, weights, 0, 0.10)

	assert.InDelta(t, base.Score+10, boosted.Score, 1e-6)
	assert.InDelta(t, 0.10, boosted.DomainBonus, 1e-9)
}

func TestAggregate_OutputAlwaysBounded(t *testing.T) {
	policy := DefaultPolicy()
	weights := types.UniformWeights()

	signalGrid := []float64{0, 0.25, 0.5, 0.75, 1}
	aiGrid := []float64{0, 50, 100}
	bonusGrid := []float64{0, 0.10, 1}

	for _, e := range signalGrid {
		for _, s := range signalGrid {
			for _, tr := range signalGrid {
				for _, ai := range aiGrid {
					for _, b := range bonusGrid {
						result := policy.Aggregate(Signals{ExpSim: e, SkillOverlap: s, Trajectory: tr}, weights, ai, b)
						assert.GreaterOrEqual(t, result.Score, 0.0)
						assert.LessOrEqual(t, result.Score, 100.0)
					}
				}
			}
		}
	}
}

func TestAggregate_ClampsOutOfRangeInputs(t *testing.T) {
	policy := DefaultPolicy()
	weights := types.UniformWeights()

	result := policy.Aggregate(Signals{ExpSim: 1.7, SkillOverlap: -0.5, Trajectory: 0.5}, weights, 250, 0)

	assert.InDelta(t, 1.0, result.ExpSim, 1e-9)
	assert.InDelta(t, 0.0, result.SkillOverlap, 1e-9)
	assert.Equal(t, 100.0, result.AIPct)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 100.0)
}

func TestAggregate_PenaltyCannotGoNegative(t *testing.T) {
	policy := DefaultPolicy()
	result := policy.Aggregate(Signals{}, types.UniformWeights(), 100, 0)
	assert.Equal(t, 0.0, result.Score)
}

func TestAggregate_Deterministic(t *testing.T) {
	policy := DefaultPolicy()
	weights := types.WeightVector{Experience: 0.4, Skills: 0.4, Trajectory: 0.2}
	sig := Signals{ExpSim: 0.73, SkillOverlap: 0.41, Trajectory: 0.9}

	first := policy.Aggregate(sig, weights, 33, 0.10)
	second := policy.Aggregate(sig, weights, 33, 0.10)
	assert.Equal(t, first, second)
}
