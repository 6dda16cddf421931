package service

import (
	"context"
	"errors"
	"fmt"

	"credo/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrGammaOutOfRange = errors.New("gamma must be within [0,1]")
	ErrReservedRootID  = errors.New("root id reuses the reserved catch-all id")
	ErrDuplicateRootID = errors.New("duplicate root id")
	ErrNegativeCredits = errors.New("credits must be non-negative")
)

// SessionService builds the initial belief state for a claim, enforces the
// absorber invariant over its ledger, and assembles the auditable result.
type SessionService struct {
	newSink func() domain.AuditSink
	logger  *zap.Logger
}

// NewSessionService returns a session service. newSink is called once per
// session to obtain that session's audit trail; sessions share no mutable
// state. A caller holding its own sink uses RunWithSink instead.
func NewSessionService(newSink func() domain.AuditSink, logger *zap.Logger) *SessionService {
	return &SessionService{newSink: newSink, logger: logger}
}

// Validate rejects requests that cannot produce a well-formed hypothesis
// set. These are hard failures: nothing is constructed and nothing is
// appended to the audit trail.
func Validate(req *domain.SessionRequest) error {
	if req.Config.Gamma < 0 || req.Config.Gamma > 1 {
		return fmt.Errorf("%w: got %v", ErrGammaOutOfRange, req.Config.Gamma)
	}
	if req.Credits < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeCredits, req.Credits)
	}
	seen := make(map[string]struct{}, len(req.Roots))
	for _, r := range req.Roots {
		if r.RootID == domain.HOtherID {
			return fmt.Errorf("%w: %q", ErrReservedRootID, r.RootID)
		}
		if _, dup := seen[r.RootID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateRootID, r.RootID)
		}
		seen[r.RootID] = struct{}{}
	}
	return nil
}

// Run initializes a session: ledger construction, absorber enforcement,
// the invariant audit record, and the result snapshot. The sink append is
// the only side effect; everything else is a pure transform of the request.
//
// Failures past validation are recoverable at the session boundary and
// surface inside the result (stop reason, anomaly flag) rather than as an
// aborted call.
func (s *SessionService) Run(ctx context.Context, req *domain.SessionRequest) (*domain.SessionResult, error) {
	return s.RunWithSink(ctx, req, s.newSink())
}

// RunWithSink runs a session against a caller-provided audit sink. If the
// sink is shared across concurrent sessions, the sink implementation is
// responsible for append safety; within this session appends stay ordered.
func (s *SessionService) RunWithSink(ctx context.Context, req *domain.SessionRequest, sink domain.AuditSink) (*domain.SessionResult, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	set := domain.NewHypothesisSet(req.Roots, req.Config.Gamma)
	EnforceAbsorber(set.Ledger, set.NamedRootIDs())

	total := set.LedgerTotal()
	ok := SumToOne(total)

	// The self-check record goes in unconditionally, every session, even
	// when the total is off: the trail records reality, it does not gate
	// on correctness.
	event := domain.AuditEvent{
		Type:    domain.EventInvariantSumToOne,
		Payload: map[string]any{"total": total, "ok": ok},
	}
	if err := sink.Append(ctx, event); err != nil {
		return nil, fmt.Errorf("append invariant check: %w", err)
	}

	if !ok {
		s.logger.Warn("ledger mass not conserved",
			zap.String("claim", req.Claim),
			zap.Float64("total", total))
	}

	var stop domain.StopReason
	if req.Credits == 0 {
		stop = domain.StopCreditsExhausted
	}

	audit, err := sink.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("read back audit trail: %w", err)
	}

	views := make(map[string]domain.RootView, len(set.Roots))
	for id, r := range set.Roots {
		views[id] = domain.RootView{
			RootID:          r.RootID,
			Statement:       r.Statement,
			ExclusionClause: r.ExclusionClause,
			CanonicalID:     r.CanonicalID,
			Status:          r.Status,
			KRoot:           r.KRoot,
		}
	}

	ledger := make(map[string]float64, len(set.Ledger))
	for id, p := range set.Ledger {
		ledger[id] = p
	}

	s.logger.Debug("session initialized",
		zap.String("claim", req.Claim),
		zap.Int("named_roots", len(req.Roots)),
		zap.Float64("gamma", req.Config.Gamma),
		zap.Int("credits", req.Credits),
		zap.String("stop_reason", string(stop)))

	return &domain.SessionResult{
		Claim:             req.Claim,
		Roots:             views,
		Ledger:            ledger,
		Audit:             audit,
		StopReason:        stop,
		CreditsRemaining:  req.Credits,
		TotalCreditsSpent: 0,
		OperationLog:      []domain.OperationRecord{},
		LedgerAnomaly:     !ok,
	}, nil
}
