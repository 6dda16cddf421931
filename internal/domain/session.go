package domain

// StopReason is the closed set of terminal states a session can surface.
// Absent (empty) means reasoning simply has not concluded.
type StopReason string

const (
	// StopCreditsExhausted: the session had no credits to spend at start,
	// or ran out during iteration. Not an error; a normal terminal state.
	StopCreditsExhausted StopReason = "CREDITS_EXHAUSTED"
	// StopFrontierConfident is reserved for the iterative evidence loop;
	// session initialization never produces it.
	StopFrontierConfident StopReason = "FRONTIER_CONFIDENT"
)

// SessionConfig carries the caller's reasoning parameters. Session
// initialization reads only Gamma (the catch-all prior); the rest are
// threaded through for the iterative loop.
type SessionConfig struct {
	Tau     float64 `json:"tau"`
	Epsilon float64 `json:"epsilon"`
	Gamma   float64 `json:"gamma"`
	Alpha   float64 `json:"alpha"`
}

// SessionRequest describes one reasoning session over a claim.
type SessionRequest struct {
	Claim         string         `json:"claim"`
	Roots         []RootSpec     `json:"roots"`
	Config        SessionConfig  `json:"config"`
	Credits       int            `json:"credits"`
	RequiredSlots map[string]any `json:"required_slots,omitempty"`
}

// RootView is the external, read-only projection of one hypothesis in a
// session result.
type RootView struct {
	RootID          string           `json:"root_id"`
	Statement       string           `json:"statement"`
	ExclusionClause string           `json:"exclusion_clause,omitempty"`
	CanonicalID     string           `json:"canonical_id"`
	Status          HypothesisStatus `json:"status"`
	KRoot           float64          `json:"k_root"`
}

// OperationRecord is one entry in the session's operation log. Initialization
// performs no credit-spending operations, so the log starts empty; the
// iterative loop appends to it.
type OperationRecord struct {
	Kind    string         `json:"kind"`
	Detail  map[string]any `json:"detail,omitempty"`
	Credits int            `json:"credits"`
}

// SessionResult is the immutable snapshot returned to the caller. Its JSON
// encoding is the plain nested-mapping view of the session.
type SessionResult struct {
	Claim             string              `json:"claim"`
	Roots             map[string]RootView `json:"roots"`
	Ledger            map[string]float64  `json:"ledger"`
	Audit             []AuditEvent        `json:"audit"`
	StopReason        StopReason          `json:"stop_reason,omitempty"`
	CreditsRemaining  int                 `json:"credits_remaining"`
	TotalCreditsSpent int                 `json:"total_credits_spent"`
	OperationLog      []OperationRecord   `json:"operation_log"`
	// LedgerAnomaly is set when the post-enforcement ledger total fell
	// outside tolerance of 1 (named roots overcommitted, absorber negative).
	// Reported, never thrown: the audit record is still captured.
	LedgerAnomaly bool `json:"ledger_anomaly,omitempty"`
}
