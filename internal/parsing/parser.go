// Package parsing turns raw job-posting and resume text into structured
// records using LLM extraction, and audits resumes for AI-generated
// content. All outputs are normalized and schema-validated before they
// reach scoring.
package parsing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/talent-intel/internal/llm"
	"github.com/jonathan/talent-intel/internal/prompts"
	"github.com/jonathan/talent-intel/internal/schemas"
	"github.com/jonathan/talent-intel/internal/types"
)

// maxInputChars caps the text handed to the LLM, mirroring the upstream
// fetch limit.
const maxInputChars = 20000

// Parser extracts structured records from raw text via the LLM client.
type Parser struct {
	client llm.Client
}

// New creates a Parser around an LLM client.
func New(client llm.Client) *Parser {
	return &Parser{client: client}
}

// rawJobRecord matches the LLM's JSON output before seniority
// canonicalization.
type rawJobRecord struct {
	Title            string   `json:"title"`
	Seniority        string   `json:"seniority"`
	RequiredSkills   []string `json:"required_skills"`
	NiceToHaveSkills []string `json:"nice_to_have_skills"`
	Responsibilities []string `json:"responsibilities"`
	Domain           string   `json:"domain"`
	RawSummary       string   `json:"raw_summary"`
}

// ParseJobRecord extracts a structured JobRecord from raw job posting text.
func (p *Parser) ParseJobRecord(ctx context.Context, rawText string) (*types.JobRecord, error) {
	payload, err := p.generate(ctx, "extract-job-record", rawText, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemas.JobRecord, payload); err != nil {
		return nil, &ParseError{Message: "job record failed schema validation", Cause: err}
	}

	var raw rawJobRecord
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, &ParseError{Message: "failed to parse job record JSON", Cause: err}
	}

	job := &types.JobRecord{
		Title:            raw.Title,
		Seniority:        types.ParseSeniority(raw.Seniority),
		RequiredSkills:   normalizeTokens(raw.RequiredSkills),
		NiceToHaveSkills: normalizeTokens(raw.NiceToHaveSkills),
		Responsibilities: trimAll(raw.Responsibilities),
		Domain:           normalizeToken(raw.Domain),
		RawSummary:       raw.RawSummary,
	}
	if job.RawSummary == "" {
		// Keep the comparison text populated even when the model skips the
		// summary field.
		job.RawSummary = truncate(rawText, 2000)
	}
	if err := job.Validate(); err != nil {
		return nil, &ParseError{Message: "extracted job record is unusable", Cause: err}
	}
	return job, nil
}

// rawResumeRecord matches the LLM's JSON output for resumes.
type rawResumeRecord struct {
	Name              string   `json:"name"`
	Titles            []string `json:"titles"`
	Seniority         string   `json:"seniority"`
	Skills            []string `json:"skills"`
	ExperienceBullets []string `json:"experience_bullets"`
	Education         []string `json:"education"`
	Domains           []string `json:"domains"`
}

// ParseResumeRecord extracts a structured ResumeRecord from raw resume
// text. The ref identifies the resume to the caller and is never sent to
// the model.
func (p *Parser) ParseResumeRecord(ctx context.Context, ref, rawText string) (*types.ResumeRecord, error) {
	if ref == "" {
		return nil, fmt.Errorf("resume ref is required")
	}

	payload, err := p.generate(ctx, "extract-resume-record", rawText, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemas.ResumeRecord, payload); err != nil {
		return nil, &ParseError{Message: "resume record failed schema validation", Cause: err}
	}

	var raw rawResumeRecord
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, &ParseError{Message: "failed to parse resume record JSON", Cause: err}
	}

	return &types.ResumeRecord{
		Ref:               ref,
		Name:              raw.Name,
		Titles:            trimAll(raw.Titles),
		Seniority:         types.ParseSeniority(raw.Seniority),
		Skills:            normalizeTokens(raw.Skills),
		ExperienceBullets: trimAll(raw.ExperienceBullets),
		Education:         trimAll(raw.Education),
		Domains:           normalizeTokens(raw.Domains),
	}, nil
}

// DetectAIContent audits resume text for AI-generated content.
func (p *Parser) DetectAIContent(ctx context.Context, rawText string) (*types.AIAssessment, error) {
	payload, err := p.generate(ctx, "detect-ai-content", rawText, llm.TierLite)
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemas.AIAssessment, payload); err != nil {
		return nil, &ParseError{Message: "AI assessment failed schema validation", Cause: err}
	}

	var assessment types.AIAssessment
	if err := json.Unmarshal(payload, &assessment); err != nil {
		return nil, &ParseError{Message: "failed to parse AI assessment JSON", Cause: err}
	}
	return &assessment, nil
}

// generate runs one prompt through the LLM and returns the JSON payload.
func (p *Parser) generate(ctx context.Context, promptKey, text string, tier llm.ModelTier) ([]byte, error) {
	if p.client == nil {
		return nil, &APICallError{Message: "no LLM client configured"}
	}

	template := prompts.MustGet("parsing.json", promptKey)
	prompt := prompts.Format(template, map[string]string{
		"Text": truncate(text, maxInputChars),
	})

	response, err := p.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate content from LLM", Cause: err}
	}
	return []byte(response), nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
