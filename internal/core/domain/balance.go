package domain

import "github.com/shopspring/decimal"

// Balance is one member's net position within a group.
// It is fully derived from the group's expense set on every call; the
// application never persists balances or updates them incrementally.
type Balance struct {
	MemberID   string          `json:"memberID"`
	GroupID    string          `json:"groupID"`
	TotalOwed  decimal.Decimal `json:"totalOwed"` // Sum of this member's unpaid shares
	TotalLent  decimal.Decimal `json:"totalLent"` // Sum of expense totals this member paid for
	NetBalance decimal.Decimal `json:"netBalance"`
}
