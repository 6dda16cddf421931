package search

import (
	"context"
	"strings"

	"credo/internal/domain"
)

// Mock is a deterministic, scripted searcher for tests and offline runs.
// It matches by case-insensitive substring against its fixed corpus and
// scores by match position, so the same query always returns the same
// items in the same order.
type Mock struct {
	corpus []domain.EvidenceItem
}

// NewMock returns a mock searcher over the given corpus. A nil corpus
// yields a searcher that finds nothing.
func NewMock(corpus []domain.EvidenceItem) *Mock {
	return &Mock{corpus: corpus}
}

func (m *Mock) Search(ctx context.Context, query string, topK int) ([]domain.EvidenceItem, error) {
	q := strings.ToLower(query)
	var hits []domain.EvidenceItem
	for _, item := range m.corpus {
		if !strings.Contains(strings.ToLower(item.Content), q) {
			continue
		}
		hit := item
		hit.Score = 1.0
		hits = append(hits, hit)
		if len(hits) == topK {
			break
		}
	}
	return hits, nil
}
