package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
)

// ValidateParticipants checks the invariants every accepted share set must
// satisfy: the set is non-empty, every amount is non-negative, and the
// amounts sum to the expense total within one minor unit.
//
// The custom split path calls this internally; it is also the guard for
// callers that edit shares directly, e.g. adding or removing a participant
// during an expense edit.
func ValidateParticipants(total decimal.Decimal, shares []domain.ParticipantShare) error {
	if len(shares) == 0 {
		return ErrEmptyParticipantSet
	}

	sum := decimal.Zero
	for _, s := range shares {
		if s.Amount.IsNegative() {
			return fmt.Errorf("%w: share for member %s is %s", ErrNegativeShare, s.MemberID, s.Amount)
		}
		sum = sum.Add(s.Amount)
	}

	if sum.Sub(total).Abs().GreaterThan(sumTolerance) {
		return fmt.Errorf("%w: shares sum to %s, expense total is %s", ErrSplitMismatch, sum, total)
	}
	return nil
}
