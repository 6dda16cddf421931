package service

import (
	"context"
	"errors"
	"fmt"

	"credo/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrEvidenceContentEmpty = errors.New("evidence content is required")
	ErrSearchQueryEmpty     = errors.New("search query is required")
)

const DefaultSearchTopK = 5

// EvidenceService indexes evidence items and retrieves them by similarity.
// It backs the pluggable search capability consumed by the iterative
// reasoning loop; session initialization never touches it.
type EvidenceService struct {
	store    domain.EvidenceStore
	embedder domain.EmbeddingClient
	logger   *zap.Logger
}

func NewEvidenceService(store domain.EvidenceStore, embedder domain.EmbeddingClient, logger *zap.Logger) *EvidenceService {
	return &EvidenceService{store: store, embedder: embedder, logger: logger}
}

// Index embeds and stores one evidence item.
func (s *EvidenceService) Index(ctx context.Context, item *domain.EvidenceItem) error {
	if item.Content == "" {
		return ErrEvidenceContentEmpty
	}

	embedding, err := s.embedder.Embed(ctx, item.Content)
	if err != nil {
		return fmt.Errorf("embed evidence: %w", err)
	}

	if err := s.store.Create(ctx, item, embedding); err != nil {
		return fmt.Errorf("store evidence: %w", err)
	}

	s.logger.Debug("evidence indexed",
		zap.String("evidence_id", item.ID.String()),
		zap.String("source", item.Source))
	return nil
}

// Search returns the topK most similar evidence items for a query.
func (s *EvidenceService) Search(ctx context.Context, query string, topK int) ([]domain.EvidenceItem, error) {
	if query == "" {
		return nil, ErrSearchQueryEmpty
	}
	if topK <= 0 {
		topK = DefaultSearchTopK
	}

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	items, err := s.store.FindSimilar(ctx, embedding, topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	return items, nil
}
