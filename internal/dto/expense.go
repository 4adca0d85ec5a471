package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
)

// ExpenseShareInput is one participant's amount in a custom split.
type ExpenseShareInput struct {
	MemberID string          `json:"memberID" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

// ExpensePercentInput is one participant's percentage in a percentage split.
type ExpensePercentInput struct {
	MemberID string          `json:"memberID" binding:"required"`
	Percent  decimal.Decimal `json:"percent" binding:"required"`
}

// CreateExpenseRequest defines the payload for creating or editing an
// expense. Exactly one of ParticipantIDs, Shares or Percentages must be
// populated, matching the split policy; the service rejects mismatches.
type CreateExpenseRequest struct {
	Description    string                `json:"description" binding:"required"`
	PayerID        string                `json:"payerID" binding:"required"`
	TotalAmount    decimal.Decimal       `json:"totalAmount" binding:"required"`
	SplitPolicy    string                `json:"splitPolicy" binding:"required,splitpolicy"`
	ParticipantIDs []string              `json:"participantIDs,omitempty"`
	Shares         []ExpenseShareInput   `json:"shares,omitempty"`
	Percentages    []ExpensePercentInput `json:"percentages,omitempty"`
}

// ShareResponse defines one participant share returned to clients.
type ShareResponse struct {
	MemberID string          `json:"memberID"`
	Amount   decimal.Decimal `json:"amount"`
	Paid     bool            `json:"paid"`
	PaidAt   *time.Time      `json:"paidAt,omitempty"`
}

// ExpenseResponse defines the expense data returned to clients.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	GroupID     string          `json:"groupID"`
	PayerID     string          `json:"payerID"`
	Description string          `json:"description"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	SplitPolicy string          `json:"splitPolicy"`
	Shares      []ShareResponse `json:"shares"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ListExpensesResponse wraps a group's expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	shares := make([]ShareResponse, len(e.Participants))
	for i, s := range e.Participants {
		shares[i] = ShareResponse{
			MemberID: s.MemberID,
			Amount:   s.Amount,
			Paid:     s.Paid,
			PaidAt:   s.PaidAt,
		}
	}
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		GroupID:     e.GroupID,
		PayerID:     e.PayerID,
		Description: e.Description,
		TotalAmount: e.TotalAmount,
		SplitPolicy: string(e.SplitPolicy),
		Shares:      shares,
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
}

// ToExpenseResponses converts a slice of domain.Expense to []ExpenseResponse.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses
}
