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

// SettlementService exposes derived balances, settlement suggestions and
// recorded settlement payments. Balances and suggestions are computed
// fresh from the expense set on every call.
type SettlementService struct {
	settlementRepo portsrepo.SettlementRepositoryFacade
	expenseRepo    portsrepo.ExpenseRepositoryFacade
	groupRepo      portsrepo.GroupRepositoryFacade
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(
	settlementRepo portsrepo.SettlementRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	groupRepo portsrepo.GroupRepositoryFacade,
) portssvc.SettlementSvcFacade {
	return &SettlementService{
		settlementRepo: settlementRepo,
		expenseRepo:    expenseRepo,
		groupRepo:      groupRepo,
	}
}

// Ensure SettlementService implements the portssvc.SettlementSvcFacade interface
var _ portssvc.SettlementSvcFacade = (*SettlementService)(nil)

// requireGroupMember loads the group and verifies membership.
func (s *SettlementService) requireGroupMember(ctx context.Context, groupID string, userID string) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to find group %s: %w", groupID, err)
	}
	if !group.HasMember(userID) {
		return nil, fmt.Errorf("%w: user %s is not a member of group %s", apperrors.ErrForbidden, userID, groupID)
	}
	return group, nil
}

// computeBalances folds the group's live expenses into per-member balances.
func (s *SettlementService) computeBalances(ctx context.Context, group *domain.Group) ([]domain.Balance, error) {
	expenses, err := s.expenseRepo.ListExpensesByGroup(ctx, group.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for group %s: %w", group.GroupID, err)
	}
	return ledger.ComputeBalances(*group, expenses), nil
}

// GetGroupBalances recomputes every member's net balance.
func (s *SettlementService) GetGroupBalances(ctx context.Context, groupID string, requestingUserID string) ([]domain.Balance, error) {
	group, err := s.requireGroupMember(ctx, groupID, requestingUserID)
	if err != nil {
		return nil, err
	}
	return s.computeBalances(ctx, group)
}

// SuggestSettlements reduces the group's balances to a minimal transfer
// list. Suggestions are never persisted.
func (s *SettlementService) SuggestSettlements(ctx context.Context, groupID string, requestingUserID string) ([]domain.Settlement, error) {
	group, err := s.requireGroupMember(ctx, groupID, requestingUserID)
	if err != nil {
		return nil, err
	}
	balances, err := s.computeBalances(ctx, group)
	if err != nil {
		return nil, err
	}
	return ledger.OptimizeSettlements(balances), nil
}

// RecordSettlement persists a payment from the requesting user to another
// member, then marks the payer's unpaid shares on the recipient's
// expenses as paid, oldest expense first, while the amount covers a
// whole share.
func (s *SettlementService) RecordSettlement(ctx context.Context, groupID string, req dto.RecordSettlementRequest, requestingUserID string) (*domain.Settlement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	group, err := s.requireGroupMember(ctx, groupID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(req.ToUserID) {
		return nil, fmt.Errorf("%w: recipient %s is not a member of group %s", apperrors.ErrValidation, req.ToUserID, groupID)
	}
	if req.ToUserID == requestingUserID {
		return nil, fmt.Errorf("%w: cannot settle with yourself", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: settlement amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	settlement := domain.Settlement{
		SettlementID: uuid.NewString(),
		GroupID:      groupID,
		FromUserID:   requestingUserID,
		ToUserID:     req.ToUserID,
		Amount:       req.Amount.Round(2),
		Note:         req.Note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.settlementRepo.SaveSettlement(ctx, settlement); err != nil {
		logger.Error("Failed to save settlement", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to record settlement: %w", err)
	}

	if err := s.applyToShares(ctx, &settlement); err != nil {
		// The payment record is already in; share flags can be fixed by hand.
		logger.Error("Settlement recorded but share flags not fully applied",
			slog.String("error", err.Error()),
			slog.String("settlement_id", settlement.SettlementID))
		return nil, fmt.Errorf("failed to apply settlement %s to shares: %w", settlement.SettlementID, err)
	}

	logger.Info("Settlement recorded",
		slog.String("settlement_id", settlement.SettlementID),
		slog.String("from_user_id", settlement.FromUserID),
		slog.String("to_user_id", settlement.ToUserID))
	return &settlement, nil
}

// applyToShares walks the recipient's expenses oldest first and marks the
// payer's unpaid shares paid while the remaining amount covers them in full.
func (s *SettlementService) applyToShares(ctx context.Context, settlement *domain.Settlement) error {
	expenses, err := s.expenseRepo.ListExpensesByGroup(ctx, settlement.GroupID)
	if err != nil {
		return fmt.Errorf("failed to list expenses for group %s: %w", settlement.GroupID, err)
	}

	remaining := settlement.Amount
	for i := range expenses {
		if expenses[i].PayerID != settlement.ToUserID {
			continue
		}
		for _, share := range expenses[i].Participants {
			if share.MemberID != settlement.FromUserID || share.Paid {
				continue
			}
			if share.Amount.GreaterThan(remaining) {
				return nil
			}
			if err := s.expenseRepo.MarkSharePaid(ctx, expenses[i].ExpenseID, share.MemberID, settlement.CreatedAt, settlement.FromUserID); err != nil {
				return fmt.Errorf("failed to mark share paid on expense %s: %w", expenses[i].ExpenseID, err)
			}
			remaining = remaining.Sub(share.Amount)
		}
	}
	return nil
}

// ListSettlements retrieves the group's recorded settlements, newest first.
func (s *SettlementService) ListSettlements(ctx context.Context, groupID string, requestingUserID string) ([]domain.Settlement, error) {
	if _, err := s.requireGroupMember(ctx, groupID, requestingUserID); err != nil {
		return nil, err
	}
	settlements, err := s.settlementRepo.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements for group %s: %w", groupID, err)
	}
	if settlements == nil {
		return []domain.Settlement{}, nil
	}
	return settlements, nil
}
