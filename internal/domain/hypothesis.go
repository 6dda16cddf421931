package domain

import "credo/internal/canon"

// HOtherID is the reserved id of the catch-all hypothesis. It is the single
// definition shared by the hypothesis model and the absorber enforcement;
// no named root may use it.
const HOtherID = "H_OTHER"

// DefaultKRoot is the initial per-root scoring weight. Downstream scoring
// consumes it; session initialization only threads it through.
const DefaultKRoot = 0.15

// HypothesisStatus is the lifecycle tag of a root hypothesis.
type HypothesisStatus string

const (
	// StatusUnscoped is the initial state: no evidence has narrowed the
	// hypothesis yet.
	StatusUnscoped HypothesisStatus = "UNSCOPED"
	// StatusScoped means later reasoning has bounded what the hypothesis
	// explains. Set outside session initialization.
	StatusScoped HypothesisStatus = "SCOPED"
	// StatusEliminated means evidence has ruled the hypothesis out.
	// Set outside session initialization.
	StatusEliminated HypothesisStatus = "ELIMINATED"
)

// RootHypothesis is one candidate explanation for the session's claim.
type RootHypothesis struct {
	RootID          string           `json:"root_id"`
	Statement       string           `json:"statement"`
	ExclusionClause string           `json:"exclusion_clause,omitempty"`
	CanonicalID     string           `json:"canonical_id"`
	Status          HypothesisStatus `json:"status"`
	KRoot           float64          `json:"k_root"`
}

// HypothesisSet is the full belief state of one session: the named roots
// plus exactly one catch-all, and the probability ledger over all of them.
//
// Invariants, held at every observable point:
//   - the ledger sums to 1 within floating tolerance;
//   - the catch-all's mass is derived from the named roots, never assigned;
//   - no named root reuses HOtherID.
type HypothesisSet struct {
	Roots  map[string]RootHypothesis `json:"roots"`
	Ledger map[string]float64        `json:"ledger"`
}

// RootSpec is the caller-supplied shape of a named root, before the model
// derives canonical ids and assigns initial mass.
type RootSpec struct {
	RootID          string `json:"root_id"`
	Statement       string `json:"statement"`
	ExclusionClause string `json:"exclusion_clause,omitempty"`
}

// NewHypothesisSet builds the initial belief state from pre-validated named
// roots and the catch-all prior gamma. With n named roots each receives
// (1-gamma)/n and the catch-all receives gamma; with none, the catch-all
// absorbs all mass. Input validation (gamma range, reserved id, duplicate
// ids) is the service layer's job.
func NewHypothesisSet(roots []RootSpec, gamma float64) *HypothesisSet {
	set := &HypothesisSet{
		Roots:  make(map[string]RootHypothesis, len(roots)+1),
		Ledger: make(map[string]float64, len(roots)+1),
	}

	for _, r := range roots {
		set.Roots[r.RootID] = RootHypothesis{
			RootID:          r.RootID,
			Statement:       r.Statement,
			ExclusionClause: r.ExclusionClause,
			CanonicalID:     canon.ID(r.Statement),
			Status:          StatusUnscoped,
			KRoot:           DefaultKRoot,
		}
	}

	set.Roots[HOtherID] = RootHypothesis{
		RootID:      HOtherID,
		Statement:   "Other",
		CanonicalID: canon.ID("Other"),
		Status:      StatusUnscoped,
		KRoot:       DefaultKRoot,
	}

	if len(roots) == 0 {
		set.Ledger[HOtherID] = 1.0
		return set
	}

	p := (1.0 - gamma) / float64(len(roots))
	for _, r := range roots {
		set.Ledger[r.RootID] = p
	}
	set.Ledger[HOtherID] = gamma

	return set
}

// NamedRootIDs returns the ids of the named roots, excluding the catch-all.
// Order is unspecified.
func (s *HypothesisSet) NamedRootIDs() []string {
	ids := make([]string, 0, len(s.Roots))
	for id := range s.Roots {
		if id != HOtherID {
			ids = append(ids, id)
		}
	}
	return ids
}

// LedgerTotal returns the current sum of all probability mass in the ledger.
func (s *HypothesisSet) LedgerTotal() float64 {
	var total float64
	for _, p := range s.Ledger {
		total += p
	}
	return total
}
