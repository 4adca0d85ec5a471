package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
)

// settleEpsilon is the threshold below which a residual balance counts as
// settled; one-cent debts are still collected.
var settleEpsilon = decimal.New(1, -minorUnitPlaces)

// OptimizeSettlements reduces a set of net balances to the transfers that
// zero them out, matching the largest creditor against the largest debtor
// with a two-pointer greedy walk.
//
// The input is never mutated. Balances are stable-sorted descending by net
// balance, so ties keep the original membership order and the output is
// fully deterministic. The total transferred equals the sum of positive
// net balances, and at most n-1 transfers are emitted; balances already
// within a cent of zero produce nothing.
func OptimizeSettlements(balances []domain.Balance) []domain.Settlement {
	work := make([]domain.Balance, len(balances))
	copy(work, balances)
	sort.SliceStable(work, func(i, j int) bool {
		return work[i].NetBalance.GreaterThan(work[j].NetBalance)
	})

	settlements := []domain.Settlement{}
	left, right := 0, len(work)-1
	for left < right {
		switch {
		case work[left].NetBalance.Abs().LessThan(settleEpsilon):
			left++
		case work[right].NetBalance.Abs().LessThan(settleEpsilon):
			right--
		case !work[left].NetBalance.IsPositive():
			left++ // No creditors remain on the left
		case work[right].NetBalance.Sign() >= 0:
			right-- // No debtors remain on the right
		default:
			amount := decimal.Min(work[left].NetBalance, work[right].NetBalance.Neg()).Round(minorUnitPlaces)
			if amount.IsPositive() {
				settlements = append(settlements, domain.Settlement{
					GroupID:    work[right].GroupID,
					FromUserID: work[right].MemberID,
					ToUserID:   work[left].MemberID,
					Amount:     amount,
				})
				work[left].NetBalance = work[left].NetBalance.Sub(amount)
				work[right].NetBalance = work[right].NetBalance.Add(amount)
			}
			if work[left].NetBalance.Abs().LessThan(settleEpsilon) {
				left++
			}
			if work[right].NetBalance.Abs().LessThan(settleEpsilon) {
				right--
			}
		}
	}
	return settlements
}
