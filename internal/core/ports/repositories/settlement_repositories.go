package repositories

import (
	"context"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
)

// SettlementReader defines read operations for recorded settlements
type SettlementReader interface {
	// ListSettlementsByGroup retrieves recorded settlements, newest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]domain.Settlement, error)
}

// SettlementWriter defines write operations for recorded settlements
type SettlementWriter interface {
	// SaveSettlement persists a settlement payment record.
	SaveSettlement(ctx context.Context, settlement domain.Settlement) error
}

// SettlementRepositoryFacade combines all settlement-related repository interfaces
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementWriter
}
