package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hisaab-app/hisaab-backend/internal/apperrors"
	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
	portsrepo "github.com/hisaab-app/hisaab-backend/internal/core/ports/repositories"
)

type PgxExpenseRepository struct {
	BaseRepository
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{BaseRepository{Pool: db}}
}

// Ensure PgxExpenseRepository implements portsrepo.ExpenseRepositoryFacade
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, group_id, payer_id, description, total_amount, split_policy, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(
		&e.ExpenseID,
		&e.GroupID,
		&e.PayerID,
		&e.Description,
		&e.TotalAmount,
		&e.SplitPolicy,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// loadShares fetches an expense's participant shares in their stored
// position order. Equal splits lean on this order to keep rounding cents
// on the same participants across reads.
func (r *PgxExpenseRepository) loadShares(ctx context.Context, expenseID string) ([]domain.ParticipantShare, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT member_id, amount, paid, paid_at
		FROM expense_shares
		WHERE expense_id = $1
		ORDER BY position;
	`, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense shares: %w", err)
	}
	defer rows.Close()

	var shares []domain.ParticipantShare
	for rows.Next() {
		var s domain.ParticipantShare
		if err := rows.Scan(&s.MemberID, &s.Amount, &s.Paid, &s.PaidAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense share row: %w", err)
		}
		shares = append(shares, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense share rows: %w", err)
	}
	return shares, nil
}

func (r *PgxExpenseRepository) insertShares(ctx context.Context, tx pgx.Tx, expenseID string, shares []domain.ParticipantShare) error {
	query := `
		INSERT INTO expense_shares (expense_id, member_id, position, amount, paid, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for i, share := range shares {
		if _, err := tx.Exec(ctx, query, expenseID, share.MemberID, i, share.Amount, share.Paid, share.PaidAt); err != nil {
			return fmt.Errorf("failed to insert share for member %s: %w", share.MemberID, err)
		}
	}
	return nil
}

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
        INSERT INTO expenses (expense_id, group_id, payer_id, description, total_amount, split_policy, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err = tx.Exec(ctx, query,
		expense.ExpenseID,
		expense.GroupID,
		expense.PayerID,
		expense.Description,
		expense.TotalAmount,
		expense.SplitPolicy,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}

	if err := r.insertShares(ctx, tx, expense.ExpenseID, expense.Participants); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxExpenseRepository) ReplaceExpense(ctx context.Context, expense domain.Expense) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE expenses
		SET payer_id = $1, description = $2, total_amount = $3, split_policy = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE expense_id = $7 AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query,
		expense.PayerID,
		expense.Description,
		expense.TotalAmount,
		expense.SplitPolicy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
		expense.ExpenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", expense.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM expense_shares WHERE expense_id = $1;`, expense.ExpenseID); err != nil {
		return fmt.Errorf("failed to clear shares for expense %s: %w", expense.ExpenseID, err)
	}
	if err := r.insertShares(ctx, tx, expense.ExpenseID, expense.Participants); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1 AND deleted_at IS NULL;`

	expense, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}

	expense.Participants, err = r.loadShares(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func (r *PgxExpenseRepository) ListExpensesByGroup(ctx context.Context, groupID string) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE group_id = $1 AND deleted_at IS NULL
		ORDER BY created_at, expense_id;
	`
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for group %s: %w", groupID, err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense rows: %w", err)
	}

	for i := range expenses {
		expenses[i].Participants, err = r.loadShares(ctx, expenses[i].ExpenseID)
		if err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

func (r *PgxExpenseRepository) MarkSharePaid(ctx context.Context, expenseID string, memberID string, paidAt time.Time, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE expense_shares
		SET paid = TRUE, paid_at = $1
		WHERE expense_id = $2 AND member_id = $3 AND paid = FALSE;
	`
	tag, err := tx.Exec(ctx, query, paidAt, expenseID, memberID)
	if err != nil {
		return fmt.Errorf("failed to mark share paid on expense %s: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: no unpaid share for member %s on expense %s", apperrors.ErrNotFound, memberID, expenseID)
	}

	touchQuery := `
		UPDATE expenses SET last_updated_at = $1, last_updated_by = $2 WHERE expense_id = $3;
	`
	if _, err := tx.Exec(ctx, touchQuery, paidAt, updatedBy, expenseID); err != nil {
		return fmt.Errorf("failed to touch expense %s: %w", expenseID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxExpenseRepository) MarkExpenseDeleted(ctx context.Context, expenseID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE expenses
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE expense_id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, deletedAt, deletedBy, expenseID)
	if err != nil {
		return fmt.Errorf("failed to mark expense %s deleted: %w", expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
