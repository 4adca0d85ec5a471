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

type PgxGroupRepository struct {
	BaseRepository
}

func newPgxGroupRepository(db *pgxpool.Pool) portsrepo.GroupRepositoryFacade {
	return &PgxGroupRepository{BaseRepository{Pool: db}}
}

// Ensure PgxGroupRepository implements portsrepo.GroupRepositoryFacade
var _ portsrepo.GroupRepositoryFacade = (*PgxGroupRepository)(nil)

// loadMemberIDs fetches a group's member IDs ordered by join position.
// Balance output and settlement tie-breaks depend on this order.
func (r *PgxGroupRepository) loadMemberIDs(ctx context.Context, groupID string) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT user_id FROM group_members
		WHERE group_id = $1
		ORDER BY position;
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	var memberIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group member row: %w", err)
		}
		memberIDs = append(memberIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group member rows: %w", err)
	}
	return memberIDs, nil
}

func (r *PgxGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
        INSERT INTO groups (group_id, name, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (group_id) DO UPDATE SET
            name = EXCLUDED.name,
            last_updated_at = EXCLUDED.last_updated_at,
            last_updated_by = EXCLUDED.last_updated_by;
    `
	_, err = tx.Exec(ctx, query,
		group.GroupID,
		group.Name,
		group.CreatedAt,
		group.CreatedBy,
		group.LastUpdatedAt,
		group.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save group: %w", err)
	}

	memberQuery := `
		INSERT INTO group_members (group_id, user_id, position, added_by, added_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (group_id, user_id) DO NOTHING;
	`
	for i, memberID := range group.MemberIDs {
		if _, err := tx.Exec(ctx, memberQuery, group.GroupID, memberID, i, group.CreatedBy, group.CreatedAt); err != nil {
			return fmt.Errorf("failed to save group member %s: %w", memberID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	query := `
		SELECT group_id, name, created_at, created_by, last_updated_at, last_updated_by, deleted_at
		FROM groups
		WHERE group_id = $1 AND deleted_at IS NULL;
	`
	var g domain.Group
	err := r.Pool.QueryRow(ctx, query, groupID).Scan(
		&g.GroupID,
		&g.Name,
		&g.CreatedAt,
		&g.CreatedBy,
		&g.LastUpdatedAt,
		&g.LastUpdatedBy,
		&g.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group by ID %s: %w", groupID, err)
	}

	g.MemberIDs, err = r.loadMemberIDs(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *PgxGroupRepository) FindGroupsByMember(ctx context.Context, userID string) ([]domain.Group, error) {
	query := `
		SELECT g.group_id, g.name, g.created_at, g.created_by, g.last_updated_at, g.last_updated_by, g.deleted_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.group_id
		WHERE gm.user_id = $1 AND g.deleted_at IS NULL
		ORDER BY g.created_at, g.group_id;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups for user %s: %w", userID, err)
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		var g domain.Group
		err := rows.Scan(
			&g.GroupID,
			&g.Name,
			&g.CreatedAt,
			&g.CreatedBy,
			&g.LastUpdatedAt,
			&g.LastUpdatedBy,
			&g.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group rows: %w", err)
	}

	for i := range groups {
		groups[i].MemberIDs, err = r.loadMemberIDs(ctx, groups[i].GroupID)
		if err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (r *PgxGroupRepository) AddGroupMembers(ctx context.Context, groupID string, memberIDs []string, addedBy string, addedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// New members slot in after the current highest position.
	var next int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(position) + 1, 0) FROM group_members WHERE group_id = $1;
	`, groupID).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to find next member position: %w", err)
	}

	query := `
		INSERT INTO group_members (group_id, user_id, position, added_by, added_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (group_id, user_id) DO NOTHING;
	`
	for i, memberID := range memberIDs {
		if _, err := tx.Exec(ctx, query, groupID, memberID, next+i, addedBy, addedAt); err != nil {
			return fmt.Errorf("failed to add group member %s: %w", memberID, err)
		}
	}

	updateQuery := `
		UPDATE groups SET last_updated_at = $1, last_updated_by = $2 WHERE group_id = $3;
	`
	if _, err := tx.Exec(ctx, updateQuery, addedAt, addedBy, groupID); err != nil {
		return fmt.Errorf("failed to touch group %s: %w", groupID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxGroupRepository) MarkGroupDeleted(ctx context.Context, groupID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE groups
		SET deleted_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE group_id = $3 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, deletedAt, deletedBy, groupID)
	if err != nil {
		return fmt.Errorf("failed to mark group %s deleted: %w", groupID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
