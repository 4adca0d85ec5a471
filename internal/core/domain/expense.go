package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitPolicy is the rule governing how an expense total is divided into
// participant shares.
type SplitPolicy string

const (
	SplitEqual      SplitPolicy = "EQUAL"
	SplitCustom     SplitPolicy = "CUSTOM"
	SplitPercentage SplitPolicy = "PERCENTAGE"
)

// ParticipantShare is one participant's slice of an expense.
// It is owned by the expense that created it and changes only through
// "mark paid" operations or a full expense edit.
type ParticipantShare struct {
	MemberID string          `json:"memberID"`
	Amount   decimal.Decimal `json:"amount"`
	Paid     bool            `json:"paid"`
	PaidAt   *time.Time      `json:"paidAt,omitempty"`
}

// Expense is a shared cost paid by one member and split among participants.
// It is the authoritative source of truth for the ledger: balances are
// always derived from the expense set, never stored.
type Expense struct {
	ExpenseID    string             `json:"expenseID"`
	GroupID      string             `json:"groupID"`
	PayerID      string             `json:"payerID"`
	Description  string             `json:"description"`
	TotalAmount  decimal.Decimal    `json:"totalAmount"`
	SplitPolicy  SplitPolicy        `json:"splitPolicy"`
	Participants []ParticipantShare `json:"participants"` // Ordered; first entries absorb rounding cents on equal splits
	AuditFields
}
