package search

import (
	"context"
	"errors"
	"fmt"

	"credo/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
)

var ErrNotFound = errors.New("not found")

// EvidenceStore persists evidence items with their embeddings in postgres
// and retrieves them by cosine similarity via pgvector.
type EvidenceStore struct {
	db *pgxpool.Pool
}

func NewEvidenceStore(db *pgxpool.Pool) *EvidenceStore {
	return &EvidenceStore{db: db}
}

// EnsureSchema creates the evidence table if it does not exist. The vector
// column dimension follows the production embedding model.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`)
	if err != nil {
		return fmt.Errorf("enable pgvector extension: %w", err)
	}
	_, err = db.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS evidence_items (
			id UUID PRIMARY KEY,
			content TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			embedding vector(1536),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create evidence_items table: %w", err)
	}
	return nil
}

func (s *EvidenceStore) Create(ctx context.Context, item *domain.EvidenceItem, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	_, err := s.db.Exec(ctx,
		`INSERT INTO evidence_items (id, content, source, embedding) VALUES ($1, $2, $3, $4)`,
		item.ID, item.Content, item.Source, vec)
	return err
}

func (s *EvidenceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.EvidenceItem, error) {
	item := &domain.EvidenceItem{}
	err := s.db.QueryRow(ctx,
		`SELECT id, content, source FROM evidence_items WHERE id = $1`, id,
	).Scan(&item.ID, &item.Content, &item.Source)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *EvidenceStore) FindSimilar(ctx context.Context, embedding []float32, topK int) ([]domain.EvidenceItem, error) {
	vec := pgvector.NewVector(embedding)
	rows, err := s.db.Query(ctx,
		`SELECT id, content, source, 1 - (embedding <=> $1) AS score
		 FROM evidence_items
		 WHERE embedding IS NOT NULL
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		vec, topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.EvidenceItem
	for rows.Next() {
		var item domain.EvidenceItem
		if err := rows.Scan(&item.ID, &item.Content, &item.Source, &item.Score); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
