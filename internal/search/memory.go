package search

import (
	"context"
	"math"
	"sort"
	"sync"

	"credo/internal/domain"
)

// MemoryStore is an in-process evidence store with brute-force cosine
// similarity. Suited to small corpora, local development, and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items []memoryItem
}

type memoryItem struct {
	item      domain.EvidenceItem
	embedding []float32
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Create(ctx context.Context, item *domain.EvidenceItem, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, memoryItem{item: *item, embedding: embedding})
	return nil
}

func (s *MemoryStore) FindSimilar(ctx context.Context, embedding []float32, topK int) ([]domain.EvidenceItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scored := make([]domain.EvidenceItem, 0, len(s.items))
	for _, mi := range s.items {
		item := mi.item
		item.Score = cosine(embedding, mi.embedding)
		scored = append(scored, item)
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
