// Package search provides evidence retrieval backends for the
// domain.Searcher capability: a postgres/pgvector store, a brute-force
// in-memory store, and a deterministic scripted searcher for tests.
package search

import (
	"fmt"

	"credo/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Provider constants
const (
	ProviderPostgres = "postgres"
	ProviderMemory   = "memory"
)

// NewStore creates an evidence store based on the provider name.
// The postgres provider requires a database pool.
func NewStore(provider string, db *pgxpool.Pool) (domain.EvidenceStore, error) {
	switch provider {
	case ProviderPostgres:
		if db == nil {
			return nil, fmt.Errorf("DATABASE_URL is required for postgres search provider")
		}
		return NewEvidenceStore(db), nil

	case ProviderMemory:
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s (valid options: postgres, memory)", provider)
	}
}
