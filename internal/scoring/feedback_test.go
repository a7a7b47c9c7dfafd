package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-intel/internal/types"
)

func TestAdjustWeights_ApprovalBoostsStrongestSignal(t *testing.T) {
	policy := DefaultPolicy()
	weights := types.DefaultWeights()
	result := &types.ScoreResult{ExpSim: 0.4, SkillOverlap: 0.9, Trajectory: 0.5}

	adjusted := policy.AdjustWeights(weights, result, true)

	// Skill overlap is the strongest signal, so the skills share strictly
	// increases relative to the other two.
	assert.Greater(t, adjusted.Skills, weights.Skills)
	assert.Less(t, adjusted.Experience, weights.Experience)
	assert.Less(t, adjusted.Trajectory, weights.Trajectory)
	assert.InDelta(t, 1.0, adjusted.Sum(), 1e-6)
}

func TestAdjustWeights_RejectionDecaysWeakestSignal(t *testing.T) {
	policy := DefaultPolicy()
	weights := types.DefaultWeights()
	result := &types.ScoreResult{ExpSim: 0.8, SkillOverlap: 0.7, Trajectory: 0.1}

	adjusted := policy.AdjustWeights(weights, result, false)

	assert.Less(t, adjusted.Trajectory, weights.Trajectory)
	assert.Greater(t, adjusted.Experience, weights.Experience)
	assert.Greater(t, adjusted.Skills, weights.Skills)
	assert.InDelta(t, 1.0, adjusted.Sum(), 1e-6)
}

func TestAdjustWeights_DecayFlooredAtMinWeight(t *testing.T) {
	policy := DefaultPolicy()
	weights := types.WeightVector{Experience: 0.9, Skills: 0.06, Trajectory: 0.04}.Normalized()
	result := &types.ScoreResult{ExpSim: 0.9, SkillOverlap: 0.8, Trajectory: 0.1}

	// Repeated rejections keep decaying trajectory, but it never reaches
	// zero influence.
	for i := 0; i < 50; i++ {
		weights = policy.AdjustWeights(weights, result, false)
	}

	assert.Greater(t, weights.Trajectory, 0.0)
	assert.InDelta(t, 1.0, weights.Sum(), 1e-6)
}

func TestAdjustWeights_BoostCappedBeforeRenormalization(t *testing.T) {
	policy := DefaultPolicy()
	weights := types.WeightVector{Experience: 0.9, Skills: 0.05, Trajectory: 0.05}
	result := &types.ScoreResult{ExpSim: 0.95, SkillOverlap: 0.1, Trajectory: 0.1}

	adjusted := policy.AdjustWeights(weights, result, true)

	// 0.9 × 1.2 caps at 1.0 before renormalization.
	assert.InDelta(t, 1.0/1.1, adjusted.Experience, 1e-6)
	assert.InDelta(t, 1.0, adjusted.Sum(), 1e-6)
}

func TestAdjustWeights_DoesNotMutateInput(t *testing.T) {
	policy := DefaultPolicy()
	weights := types.DefaultWeights()
	before := weights
	result := &types.ScoreResult{ExpSim: 0.9, SkillOverlap: 0.2, Trajectory: 0.3}

	_ = policy.AdjustWeights(weights, result, true)
	assert.Equal(t, before, weights)
}

func TestAdjustWeights_StaysInSimplex(t *testing.T) {
	policy := DefaultPolicy()
	weights := types.DefaultWeights()
	results := []*types.ScoreResult{
		{ExpSim: 0.9, SkillOverlap: 0.1, Trajectory: 0.5},
		{ExpSim: 0.2, SkillOverlap: 0.8, Trajectory: 0.3},
		{ExpSim: 0.4, SkillOverlap: 0.4, Trajectory: 0.9},
	}

	for round := 0; round < 30; round++ {
		result := results[round%len(results)]
		weights = policy.AdjustWeights(weights, result, round%2 == 0)

		assert.InDelta(t, 1.0, weights.Sum(), 1e-6)
		assert.GreaterOrEqual(t, weights.Experience, 0.0)
		assert.GreaterOrEqual(t, weights.Skills, 0.0)
		assert.GreaterOrEqual(t, weights.Trajectory, 0.0)
	}
}
