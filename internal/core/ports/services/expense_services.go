package services

import (
	"context"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
	"github.com/hisaab-app/hisaab-backend/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves an expense; the requesting user must belong
	// to the expense's group.
	GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error)

	// ListExpensesByGroup retrieves a group's expenses, oldest first.
	ListExpensesByGroup(ctx context.Context, groupID string, requestingUserID string) ([]domain.Expense, error)
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// CreateExpense validates the request, computes participant shares under
	// the chosen split policy and persists the expense.
	CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error)

	// UpdateExpense replaces an expense's details and recomputes its shares.
	UpdateExpense(ctx context.Context, expenseID string, req dto.CreateExpenseRequest, requestingUserID string) (*domain.Expense, error)

	// MarkSharePaid flags one participant's share of an expense as paid.
	MarkSharePaid(ctx context.Context, expenseID string, memberID string, requestingUserID string) (*domain.Expense, error)

	// DeleteExpense soft-deletes an expense, removing it from derived balances.
	DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error
}

// ExpenseSvcFacade combines all expense-related service interfaces
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
}
