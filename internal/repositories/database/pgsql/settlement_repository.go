package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
	portsrepo "github.com/hisaab-app/hisaab-backend/internal/core/ports/repositories"
)

type PgxSettlementRepository struct {
	BaseRepository
}

func newPgxSettlementRepository(db *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{BaseRepository{Pool: db}}
}

// Ensure PgxSettlementRepository implements portsrepo.SettlementRepositoryFacade
var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	query := `
        INSERT INTO settlements (settlement_id, group_id, from_user_id, to_user_id, amount, note, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.Pool.Exec(ctx, query,
		settlement.SettlementID,
		settlement.GroupID,
		settlement.FromUserID,
		settlement.ToUserID,
		settlement.Amount,
		settlement.Note,
		settlement.CreatedAt,
		settlement.CreatedBy,
		settlement.LastUpdatedAt,
		settlement.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save settlement: %w", err)
	}
	return nil
}

func (r *PgxSettlementRepository) ListSettlementsByGroup(ctx context.Context, groupID string) ([]domain.Settlement, error) {
	query := `
		SELECT settlement_id, group_id, from_user_id, to_user_id, amount, note, created_at, created_by, last_updated_at, last_updated_by
		FROM settlements
		WHERE group_id = $1
		ORDER BY created_at DESC, settlement_id;
	`
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements for group %s: %w", groupID, err)
	}
	defer rows.Close()

	var settlements []domain.Settlement
	for rows.Next() {
		var s domain.Settlement
		err := rows.Scan(
			&s.SettlementID,
			&s.GroupID,
			&s.FromUserID,
			&s.ToUserID,
			&s.Amount,
			&s.Note,
			&s.CreatedAt,
			&s.CreatedBy,
			&s.LastUpdatedAt,
			&s.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement row: %w", err)
		}
		settlements = append(settlements, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlement rows: %w", err)
	}
	return settlements, nil
}
