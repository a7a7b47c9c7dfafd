package parsing

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/talent-intel/internal/types"
)

// Auditor adapts the AI-content detector to the scoring engine's assessor
// interface. Structured resume records do not carry their source text, so
// the Auditor keeps the raw text registered per ref.
type Auditor struct {
	parser *Parser

	mu    sync.RWMutex
	texts map[string]string
}

// NewAuditor creates an Auditor around a Parser.
func NewAuditor(parser *Parser) *Auditor {
	return &Auditor{parser: parser, texts: make(map[string]string)}
}

// Register associates raw resume text with a ref for later assessment.
func (a *Auditor) Register(ref, rawText string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.texts[ref] = rawText
}

// Assess runs the AI-content audit for the resume's registered text.
func (a *Auditor) Assess(ctx context.Context, resume *types.ResumeRecord) (*types.AIAssessment, error) {
	a.mu.RLock()
	text, ok := a.texts[resume.Ref]
	a.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no raw text registered for resume %q", resume.Ref)
	}
	return a.parser.DetectAIContent(ctx, text)
}
