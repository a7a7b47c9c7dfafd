package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/talent-intel/internal/types"
)

// The three similarity signals are total functions over their inputs: they
// never error, and every return value lies in [0,1].

// Cosine computes the cosine similarity between two embedding vectors.
// Mismatched dimensions or zero-magnitude vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// ExperienceSimilarity converts a raw cosine similarity into the bounded
// experience signal. Negative cosines truncate to 0: domain texts are
// rarely semantically opposed, and the clamp keeps the contract even for
// adversarial input.
func ExperienceSimilarity(jobVec, resumeVec []float32) float64 {
	return clamp01(Cosine(jobVec, resumeVec))
}

// SkillOverlap returns |resume ∩ required| / max(1, |required|) over
// case-normalized skill sets, along with the matched skills for
// explainability. An empty requirement set yields 0, never a division
// fault.
func SkillOverlap(resumeSkills, requiredSkills []string) (float64, []string) {
	required := normalizeSkillSet(requiredSkills)
	if len(required) == 0 {
		return 0, nil
	}

	resume := normalizeSkillSet(resumeSkills)
	var matched []string
	for skill := range required {
		if resume[skill] {
			matched = append(matched, skill)
		}
	}
	return float64(len(matched)) / float64(len(required)), matched
}

// MatchSkills returns the case-normalized intersection of the resume's
// skills with the given set. Used to surface nice-to-have matches, which
// never enter the overlap ratio.
func MatchSkills(resumeSkills, against []string) []string {
	resume := normalizeSkillSet(resumeSkills)
	var matched []string
	for skill := range normalizeSkillSet(against) {
		if resume[skill] {
			matched = append(matched, skill)
		}
	}
	return matched
}

// TrajectoryAlignment maps both seniorities onto the ordinal scale and
// penalizes proportionally to their distance: a resume strictly above the
// target level is penalized the same as one equally far below it. The
// returned booleans report whether each side carried usable evidence;
// unknown levels sit at the scale midpoint.
func TrajectoryAlignment(job, resume types.Seniority) (score float64, jobKnown, resumeKnown bool) {
	jobOrd, jobKnown := job.Ordinal()
	resumeOrd, resumeKnown := resume.Ordinal()

	distance := float64(jobOrd - resumeOrd)
	if distance < 0 {
		distance = -distance
	}
	score = 1 - math.Min(1, distance/float64(types.SeniorityScaleLen-1))
	return score, jobKnown, resumeKnown
}

// normalizeSkillSet lowercases and trims skill tokens into a set, dropping
// empties.
func normalizeSkillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			set[s] = true
		}
	}
	return set
}

// clamp01 bounds v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
