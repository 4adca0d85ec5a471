package repositories

import (
	"context"
	"time"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
)

// GroupReader defines read operations for group data
type GroupReader interface {
	// FindGroupByID retrieves a group with its ordered member list.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// FindGroupsByMember retrieves all groups a user belongs to.
	FindGroupsByMember(ctx context.Context, userID string) ([]domain.Group, error)
}

// GroupWriter defines write operations for group data
type GroupWriter interface {
	// SaveGroup persists a group and its membership, preserving member order.
	SaveGroup(ctx context.Context, group domain.Group) error

	// AddGroupMembers appends members to a group's ordered member list.
	AddGroupMembers(ctx context.Context, groupID string, memberIDs []string, addedBy string, addedAt time.Time) error

	// MarkGroupDeleted soft-deletes a group.
	MarkGroupDeleted(ctx context.Context, groupID string, deletedBy string, deletedAt time.Time) error
}

// GroupRepositoryFacade combines all group-related repository interfaces
type GroupRepositoryFacade interface {
	GroupReader
	GroupWriter
}
