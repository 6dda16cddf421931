package service

import (
	"math"

	"credo/internal/domain"
)

// SumTolerance is the floating-point tolerance applied when checking that
// a ledger's total mass equals 1.
const SumTolerance = 1e-9

// EnforceAbsorber pins the catch-all entry of the ledger to the residual
// mass left by the named roots, in place. This is the single point of
// truth for the absorber's value: every path that creates or mutates a
// ledger routes through it before the ledger is considered valid.
//
// Named ids absent from the ledger contribute zero. The absorber entry is
// created if missing, and an empty id list leaves it with all mass. No
// clamping and no renormalization happen here: if the named roots sum past
// 1 the absorber goes negative, which the ledger total check reports as an
// anomaly. Idempotent.
func EnforceAbsorber(ledger map[string]float64, namedRootIDs []string) {
	var named float64
	for _, id := range namedRootIDs {
		named += ledger[id]
	}
	ledger[domain.HOtherID] = 1.0 - named
}

// SumToOne reports whether total is within tolerance of 1.
func SumToOne(total float64) bool {
	return math.Abs(total-1.0) <= SumTolerance
}
