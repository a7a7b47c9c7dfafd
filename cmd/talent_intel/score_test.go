package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/talent-intel/internal/config"
	"github.com/jonathan/talent-intel/internal/observability"
	"github.com/jonathan/talent-intel/internal/scoring"
	"github.com/jonathan/talent-intel/internal/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadResumeInputs_ExplicitPaths(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "alice.txt", "Alice's experience")
	b := writeFile(t, dir, "bob.txt", "Bob's experience")

	inputs, err := loadResumeInputs([]string{a, b}, "")
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "alice.txt", inputs[0].ref)
	assert.Equal(t, "Alice's experience", inputs[0].text)
	assert.Equal(t, "bob.txt", inputs[1].ref)
}

func TestLoadResumeInputs_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "alice.txt", "Alice")
	writeFile(t, dir, "bob.md", "Bob")
	writeFile(t, dir, "notes.pdf", "binary") // skipped extension
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	inputs, err := loadResumeInputs(nil, dir)
	require.NoError(t, err)
	require.Len(t, inputs, 2)
}

func TestLoadResumeInputs_DeduplicatesByRef(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "alice.txt", "Alice")

	inputs, err := loadResumeInputs([]string{path}, dir)
	require.NoError(t, err)
	assert.Len(t, inputs, 1)
}

func TestLoadResumeInputs_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.txt", "   \n")

	_, err := loadResumeInputs([]string{path}, "")
	assert.ErrorContains(t, err, "empty")
}

func TestLoadResumeInputs_MissingFile(t *testing.T) {
	_, err := loadResumeInputs([]string{"/nonexistent/resume.txt"}, "")
	assert.Error(t, err)
}

func TestLoadResumeInputs_NoneFound(t *testing.T) {
	_, err := loadResumeInputs(nil, t.TempDir())
	assert.ErrorContains(t, err, "no resume files found")
}

func TestWeightsFromConfig(t *testing.T) {
	assert.Equal(t, types.DefaultWeights(), weightsFromConfig(nil))

	weights := weightsFromConfig(&config.Weights{Experience: 2, Skills: 1, Trajectory: 1})
	assert.InDelta(t, 0.5, weights.Experience, 1e-9)
	assert.InDelta(t, 0.25, weights.Skills, 1e-9)
	assert.InDelta(t, 0.25, weights.Trajectory, 1e-9)
}

func TestParseFeedbackCommand(t *testing.T) {
	tests := []struct {
		line string
		verb string
		arg  string
	}{
		{"approve alice.txt", "approve", "alice.txt"},
		{"  REJECT bob.txt  ", "reject", "bob.txt"},
		{"quit", "quit", ""},
		{"", "", ""},
		{"   ", "", ""},
	}
	for _, tt := range tests {
		verb, arg := parseFeedbackCommand(tt.line)
		assert.Equal(t, tt.verb, verb, tt.line)
		assert.Equal(t, tt.arg, arg, tt.line)
	}
}

func TestFindResult(t *testing.T) {
	results := []types.ScoreResult{{Ref: "a.txt"}, {Ref: "b.txt"}}

	assert.Equal(t, "b.txt", findResult(results, "b.txt").Ref)
	assert.Nil(t, findResult(results, "c.txt"))
}

func TestFeedbackLoop(t *testing.T) {
	job := &types.JobRecord{
		Title:          "Backend Engineer",
		RequiredSkills: []string{"go"},
		RawSummary:     "Build APIs",
	}
	resumes := []*types.ResumeRecord{
		{Ref: "alice.txt", Skills: []string{"go"}, ExperienceBullets: []string{"Go services"}},
		{Ref: "bob.txt", Skills: []string{"excel"}},
	}

	policy := scoring.DefaultPolicy()
	// No embedder: the experience signal degrades but scoring still works.
	scorer := scoring.NewScorer(scoring.ScorerConfig{Policy: policy})
	results, err := scorer.ScoreAll(context.Background(), job, resumes, types.DefaultWeights())
	require.NoError(t, err)

	in := strings.NewReader("approve alice.txt\nweights\nrescore\nbogus\napprove nobody.txt\nquit\n")
	var out strings.Builder
	printer := observability.NewPrinter(&out)

	err = feedbackLoop(context.Background(), in, &out, printer, scorer, policy, job, resumes, types.DefaultWeights(), results)
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "SCORING WEIGHTS")
	assert.Contains(t, output, "RANKED CANDIDATES")
	assert.Contains(t, output, `unknown command "bogus"`)
	assert.Contains(t, output, `no candidate "nobody.txt"`)
}

func TestFeedbackLoop_EOF(t *testing.T) {
	var out strings.Builder
	printer := observability.NewPrinter(&out)
	policy := scoring.DefaultPolicy()
	scorer := scoring.NewScorer(scoring.ScorerConfig{Policy: policy})

	err := feedbackLoop(context.Background(), strings.NewReader(""), &out, printer, scorer, policy, nil, nil, types.DefaultWeights(), nil)
	assert.NoError(t, err)
}
