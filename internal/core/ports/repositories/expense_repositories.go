package repositories

import (
	"context"
	"time"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense with its ordered participant shares.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByGroup retrieves all live expenses of a group, oldest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]domain.Expense, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists an expense and its shares atomically.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// ReplaceExpense updates an expense and replaces its share set atomically.
	ReplaceExpense(ctx context.Context, expense domain.Expense) error

	// MarkSharePaid flags one participant share as paid.
	MarkSharePaid(ctx context.Context, expenseID string, memberID string, paidAt time.Time, updatedBy string) error

	// MarkExpenseDeleted soft-deletes an expense, removing its contribution
	// from derived balances.
	MarkExpenseDeleted(ctx context.Context, expenseID string, deletedBy string, deletedAt time.Time) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
