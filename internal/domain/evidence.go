package domain

import (
	"context"

	"github.com/google/uuid"
)

// EvidenceItem is one retrieved piece of evidence for a query.
type EvidenceItem struct {
	ID      uuid.UUID `json:"id"`
	Content string    `json:"content"`
	Source  string    `json:"source,omitempty"`
	Score   float32   `json:"score"`
}

// Searcher is the pluggable evidence retrieval capability. Session
// initialization never calls it; it exists for the iterative loop and is
// specified here only at its interface.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]EvidenceItem, error)
}

// EmbeddingClient turns text into a vector for similarity search.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EvidenceStore persists evidence items and retrieves them by vector
// similarity.
type EvidenceStore interface {
	Create(ctx context.Context, item *EvidenceItem, embedding []float32) error
	FindSimilar(ctx context.Context, embedding []float32, topK int) ([]EvidenceItem, error)
}
