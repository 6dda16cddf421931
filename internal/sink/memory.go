// Package sink provides audit sink implementations: an in-memory variant
// for tests and single-process use, a postgres-backed variant for a
// durable trail, and a zap decorator that mirrors appends to the log.
package sink

import (
	"context"
	"sync"

	"credo/internal/domain"
)

// Memory is an append-only, in-process audit sink. Safe for concurrent
// appends; read-back preserves append order.
type Memory struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(ctx context.Context, event domain.AuditEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *Memory) Events(ctx context.Context) ([]domain.AuditEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AuditEvent, len(m.events))
	copy(out, m.events)
	return out, nil
}
