package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hisaab-app/hisaab-backend/internal/apperrors"
	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
	"github.com/hisaab-app/hisaab-backend/internal/core/ledger"
	portsrepo "github.com/hisaab-app/hisaab-backend/internal/core/ports/repositories"
	portssvc "github.com/hisaab-app/hisaab-backend/internal/core/ports/services"
	"github.com/hisaab-app/hisaab-backend/internal/dto"
	"github.com/hisaab-app/hisaab-backend/internal/middleware"
)

// ExpenseService handles expense creation, edits and share payment flags.
// Share computation is delegated to the ledger package; this service only
// adds membership checks and persistence.
type ExpenseService struct {
	expenseRepo portsrepo.ExpenseRepositoryFacade
	groupRepo   portsrepo.GroupRepositoryFacade
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepositoryFacade, groupRepo portsrepo.GroupRepositoryFacade) portssvc.ExpenseSvcFacade {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		groupRepo:   groupRepo,
	}
}

// Ensure ExpenseService implements the portssvc.ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*ExpenseService)(nil)

// requireGroupMember loads the group and verifies membership.
func (s *ExpenseService) requireGroupMember(ctx context.Context, groupID string, userID string) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to find group %s: %w", groupID, err)
	}
	if !group.HasMember(userID) {
		return nil, fmt.Errorf("%w: user %s is not a member of group %s", apperrors.ErrForbidden, userID, groupID)
	}
	return group, nil
}

// buildShares computes the participant shares for the request's split
// policy. Every participant must belong to the group and appear only once.
func buildShares(group *domain.Group, req dto.CreateExpenseRequest) ([]domain.ParticipantShare, error) {
	checkParticipant := func(seen map[string]bool, memberID string) error {
		if !group.HasMember(memberID) {
			return fmt.Errorf("%w: participant %s is not a member of group %s", apperrors.ErrValidation, memberID, group.GroupID)
		}
		if seen[memberID] {
			return fmt.Errorf("%w: duplicate participant %s", apperrors.ErrValidation, memberID)
		}
		seen[memberID] = true
		return nil
	}

	var (
		shares []domain.ParticipantShare
		err    error
	)
	seen := make(map[string]bool)

	switch domain.SplitPolicy(req.SplitPolicy) {
	case domain.SplitEqual:
		for _, id := range req.ParticipantIDs {
			if cerr := checkParticipant(seen, id); cerr != nil {
				return nil, cerr
			}
		}
		shares, err = ledger.EqualSplit(req.TotalAmount, req.ParticipantIDs)

	case domain.SplitCustom:
		entries := make([]ledger.ShareEntry, len(req.Shares))
		for i, in := range req.Shares {
			if cerr := checkParticipant(seen, in.MemberID); cerr != nil {
				return nil, cerr
			}
			entries[i] = ledger.ShareEntry{MemberID: in.MemberID, Amount: in.Amount}
		}
		shares, err = ledger.CustomSplit(req.TotalAmount, entries)

	case domain.SplitPercentage:
		entries := make([]ledger.PercentEntry, len(req.Percentages))
		for i, in := range req.Percentages {
			if cerr := checkParticipant(seen, in.MemberID); cerr != nil {
				return nil, cerr
			}
			entries[i] = ledger.PercentEntry{MemberID: in.MemberID, Percent: in.Percent}
		}
		shares, err = ledger.PercentageSplit(req.TotalAmount, entries)

	default:
		return nil, fmt.Errorf("%w: unknown split policy %q", apperrors.ErrValidation, req.SplitPolicy)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return shares, nil
}

// markPayerShare flags the payer's own slice as paid. The payer settled
// their part of the bill the moment they paid it.
func markPayerShare(shares []domain.ParticipantShare, payerID string, at time.Time) {
	for i := range shares {
		if shares[i].MemberID == payerID {
			shares[i].Paid = true
			paidAt := at
			shares[i].PaidAt = &paidAt
			return
		}
	}
}

// CreateExpense validates the request, computes shares and persists the expense.
func (s *ExpenseService) CreateExpense(ctx context.Context, groupID string, req dto.CreateExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	group, err := s.requireGroupMember(ctx, groupID, creatorUserID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(req.PayerID) {
		return nil, fmt.Errorf("%w: payer %s is not a member of group %s", apperrors.ErrValidation, req.PayerID, groupID)
	}
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	shares, err := buildShares(group, req)
	if err != nil {
		return nil, err
	}
	markPayerShare(shares, req.PayerID, now)

	expense := domain.Expense{
		ExpenseID:    uuid.NewString(),
		GroupID:      groupID,
		PayerID:      req.PayerID,
		Description:  req.Description,
		TotalAmount:  req.TotalAmount.Round(2),
		SplitPolicy:  domain.SplitPolicy(req.SplitPolicy),
		Participants: shares,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		logger.Error("Failed to save expense", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	logger.Info("Expense created",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("group_id", groupID),
		slog.String("split_policy", req.SplitPolicy))
	return &expense, nil
}

// GetExpenseByID retrieves an expense; only group members may see it.
func (s *ExpenseService) GetExpenseByID(ctx context.Context, expenseID string, requestingUserID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	if _, err := s.requireGroupMember(ctx, expense.GroupID, requestingUserID); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesByGroup retrieves a group's expenses, oldest first.
func (s *ExpenseService) ListExpensesByGroup(ctx context.Context, groupID string, requestingUserID string) ([]domain.Expense, error) {
	if _, err := s.requireGroupMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for group %s: %w", groupID, err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// UpdateExpense replaces an expense's details and recomputes its shares.
// Paid flags are reset; only the payer's own share stays paid.
func (s *ExpenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.CreateExpenseRequest, requestingUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	group, err := s.requireGroupMember(ctx, existing.GroupID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(req.PayerID) {
		return nil, fmt.Errorf("%w: payer %s is not a member of group %s", apperrors.ErrValidation, req.PayerID, existing.GroupID)
	}
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	shares, err := buildShares(group, req)
	if err != nil {
		return nil, err
	}
	markPayerShare(shares, req.PayerID, now)

	updated := *existing
	updated.PayerID = req.PayerID
	updated.Description = req.Description
	updated.TotalAmount = req.TotalAmount.Round(2)
	updated.SplitPolicy = domain.SplitPolicy(req.SplitPolicy)
	updated.Participants = shares
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = requestingUserID

	if err := s.expenseRepo.ReplaceExpense(ctx, updated); err != nil {
		logger.Error("Failed to replace expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense %s: %w", expenseID, err)
	}

	logger.Info("Expense updated", slog.String("expense_id", expenseID))
	return &updated, nil
}

// MarkSharePaid flags one participant's share as paid. Marking an already
// paid share is a no-op.
func (s *ExpenseService) MarkSharePaid(ctx context.Context, expenseID string, memberID string, requestingUserID string) (*domain.Expense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	if _, err := s.requireGroupMember(ctx, expense.GroupID, requestingUserID); err != nil {
		return nil, err
	}

	idx := -1
	for i := range expense.Participants {
		if expense.Participants[i].MemberID == memberID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: member %s has no share in expense %s", apperrors.ErrNotFound, memberID, expenseID)
	}
	if expense.Participants[idx].Paid {
		return expense, nil
	}

	now := time.Now()
	if err := s.expenseRepo.MarkSharePaid(ctx, expenseID, memberID, now, requestingUserID); err != nil {
		logger.Error("Failed to mark share paid", slog.String("error", err.Error()), slog.String("expense_id", expenseID), slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to mark share paid on expense %s: %w", expenseID, err)
	}

	expense.Participants[idx].Paid = true
	paidAt := now
	expense.Participants[idx].PaidAt = &paidAt
	expense.LastUpdatedAt = now
	expense.LastUpdatedBy = requestingUserID

	logger.Info("Share marked paid", slog.String("expense_id", expenseID), slog.String("member_id", memberID))
	return expense, nil
}

// DeleteExpense soft-deletes an expense so it no longer contributes to balances.
func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	if _, err := s.requireGroupMember(ctx, expense.GroupID, requestingUserID); err != nil {
		return err
	}

	if err := s.expenseRepo.MarkExpenseDeleted(ctx, expenseID, requestingUserID, time.Now()); err != nil {
		logger.Error("Failed to mark expense deleted", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}

	logger.Info("Expense deleted", slog.String("expense_id", expenseID))
	return nil
}
