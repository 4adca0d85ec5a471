package services

import (
	"context"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
	"github.com/hisaab-app/hisaab-backend/internal/dto"
)

// GroupReaderSvc defines read operations for group data
type GroupReaderSvc interface {
	// GetGroupByID retrieves a group; the requesting user must be a member.
	GetGroupByID(ctx context.Context, groupID string, requestingUserID string) (*domain.Group, error)

	// ListGroupsForUser retrieves the groups the user belongs to.
	ListGroupsForUser(ctx context.Context, userID string) ([]domain.Group, error)
}

// GroupWriterSvc defines write operations for group data
type GroupWriterSvc interface {
	// CreateGroup creates a group; the creator becomes the first member.
	CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error)

	// UpdateGroup renames a group.
	UpdateGroup(ctx context.Context, groupID string, req dto.UpdateGroupRequest, requestingUserID string) (*domain.Group, error)

	// AddMembers appends users to the group's ordered member list.
	AddMembers(ctx context.Context, groupID string, req dto.AddGroupMembersRequest, requestingUserID string) (*domain.Group, error)

	// DeleteGroup soft-deletes a group.
	DeleteGroup(ctx context.Context, groupID string, requestingUserID string) error
}

// GroupSvcFacade combines all group-related service interfaces
type GroupSvcFacade interface {
	GroupReaderSvc
	GroupWriterSvc
}
