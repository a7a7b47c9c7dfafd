// Package embedding provides text embedding providers for the experience
// similarity signal.
package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the default embedding model. Scoring only requires that
// the provider is deterministic for identical text under a fixed model
// version and returns consistent dimensionality within one batch.
const DefaultModel = "text-embedding-004"

// Gemini embeds text via the Gemini embedding API.
type Gemini struct {
	client *genai.Client
	model  string

	mu  sync.Mutex
	dim int // dimensionality observed on the first call
}

// NewGemini creates a Gemini embedding provider. An empty model selects
// DefaultModel.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Embed returns the embedding vector for the given text.
func (g *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}

	em := g.client.EmbeddingModel(g.model)
	res, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("embedding response is empty")
	}

	vec := res.Embedding.Values
	if err := g.checkDimension(len(vec)); err != nil {
		return nil, err
	}
	return vec, nil
}

// checkDimension enforces consistent dimensionality across calls. A model
// that changes dimension mid-batch would silently zero out every cosine.
func (g *Gemini) checkDimension(n int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dim == 0 {
		g.dim = n
		return nil
	}
	if g.dim != n {
		return fmt.Errorf("embedding dimension changed from %d to %d", g.dim, n)
	}
	return nil
}

// Close releases resources held by the provider.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
