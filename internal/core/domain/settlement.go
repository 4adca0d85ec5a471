package domain

import "github.com/shopspring/decimal"

// Settlement is a one-way transfer from a debtor to a creditor that
// reduces outstanding group debt.
//
// The settlement optimizer emits these as suggestions with an empty
// SettlementID. A suggestion only becomes a payment record when a user
// records it, at which point it is persisted with an ID and audit fields.
type Settlement struct {
	SettlementID string          `json:"settlementID,omitempty"`
	GroupID      string          `json:"groupID"`
	FromUserID   string          `json:"fromUserID"` // Debtor
	ToUserID     string          `json:"toUserID"`   // Creditor
	Amount       decimal.Decimal `json:"amount"`
	Note         string          `json:"note,omitempty"`
	AuditFields
}
