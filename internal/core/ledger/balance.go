package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
)

// ComputeBalances folds a group's expense history into one net balance per
// member.
//
// For each expense the payer's TotalLent grows by the full expense amount,
// whether or not the payer is also a participant; each participant share
// that has not been marked paid adds to that member's TotalOwed. The net
// balance is TotalLent minus TotalOwed.
//
// Output order follows the group's membership order, so identical inputs
// always produce identical output. Member ids referenced by an expense but
// absent from the group are skipped.
func ComputeBalances(group domain.Group, expenses []domain.Expense) []domain.Balance {
	balances := make([]domain.Balance, len(group.MemberIDs))
	index := make(map[string]int, len(group.MemberIDs))
	for i, memberID := range group.MemberIDs {
		balances[i] = domain.Balance{
			MemberID:   memberID,
			GroupID:    group.GroupID,
			TotalOwed:  decimal.Zero,
			TotalLent:  decimal.Zero,
			NetBalance: decimal.Zero,
		}
		index[memberID] = i
	}

	for _, expense := range expenses {
		if i, ok := index[expense.PayerID]; ok {
			balances[i].TotalLent = balances[i].TotalLent.Add(expense.TotalAmount)
		}
		for _, share := range expense.Participants {
			if share.Paid {
				continue
			}
			if i, ok := index[share.MemberID]; ok {
				balances[i].TotalOwed = balances[i].TotalOwed.Add(share.Amount)
			}
		}
	}

	for i := range balances {
		balances[i].NetBalance = balances[i].TotalLent.Sub(balances[i].TotalOwed)
	}
	return balances
}
