package domain

import "context"

// Audit event types emitted by session initialization.
const (
	// EventInvariantSumToOne records the ledger total at the point the
	// absorber invariant was enforced. Appended once per session,
	// unconditionally: the audit log records reality, it does not gate on
	// correctness.
	EventInvariantSumToOne = "INVARIANT_SUM_TO_ONE_CHECK"
)

// AuditEvent is one immutable record in a session's append-only trail.
// The component raising the event owns it; sinks append and read back,
// never mutate.
type AuditEvent struct {
	Type    string         `json:"event_type"`
	Payload map[string]any `json:"payload"`
}

// AuditSink is the append-only log collaborator. Within one session's
// sequence of appends, events must be read back complete and in append
// order. A sink shared across concurrent sessions is responsible for its
// own append safety; the core makes no cross-session ordering guarantee.
type AuditSink interface {
	Append(ctx context.Context, event AuditEvent) error
	Events(ctx context.Context) ([]AuditEvent, error)
}
