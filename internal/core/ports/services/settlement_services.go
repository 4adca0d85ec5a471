package services

import (
	"context"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
	"github.com/hisaab-app/hisaab-backend/internal/dto"
)

// SettlementSvcFacade exposes derived balances, settlement suggestions and
// recorded settlement payments for a group.
type SettlementSvcFacade interface {
	// GetGroupBalances recomputes every member's net balance from the
	// group's current expense set.
	GetGroupBalances(ctx context.Context, groupID string, requestingUserID string) ([]domain.Balance, error)

	// SuggestSettlements reduces the group's balances to a minimal list of
	// transfers. Suggestions are never persisted.
	SuggestSettlements(ctx context.Context, groupID string, requestingUserID string) ([]domain.Settlement, error)

	// RecordSettlement persists a settlement payment and marks the debtor's
	// matching unpaid shares as paid.
	RecordSettlement(ctx context.Context, groupID string, req dto.RecordSettlementRequest, requestingUserID string) (*domain.Settlement, error)

	// ListSettlements retrieves the group's recorded settlements, newest first.
	ListSettlements(ctx context.Context, groupID string, requestingUserID string) ([]domain.Settlement, error)
}
