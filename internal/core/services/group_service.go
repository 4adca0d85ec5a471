package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hisaab-app/hisaab-backend/internal/apperrors"
	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
	portsrepo "github.com/hisaab-app/hisaab-backend/internal/core/ports/repositories"
	portssvc "github.com/hisaab-app/hisaab-backend/internal/core/ports/services"
	"github.com/hisaab-app/hisaab-backend/internal/dto"
	"github.com/hisaab-app/hisaab-backend/internal/middleware"
)

// GroupService handles group lifecycle and membership management.
type GroupService struct {
	groupRepo portsrepo.GroupRepositoryFacade
	userRepo  portsrepo.UserRepositoryFacade
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo portsrepo.GroupRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.GroupSvcFacade {
	return &GroupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// Ensure GroupService implements the portssvc.GroupSvcFacade interface
var _ portssvc.GroupSvcFacade = (*GroupService)(nil)

// requireMember loads the group and verifies the requesting user belongs to it.
func (s *GroupService) requireMember(ctx context.Context, groupID string, userID string) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to find group %s: %w", groupID, err)
	}
	if !group.HasMember(userID) {
		return nil, fmt.Errorf("%w: user %s is not a member of group %s", apperrors.ErrForbidden, userID, groupID)
	}
	return group, nil
}

// validateUsersExist checks that every ID refers to a live user account.
func (s *GroupService) validateUsersExist(ctx context.Context, userIDs []string) error {
	for _, id := range userIDs {
		if _, err := s.userRepo.FindUserByID(ctx, id); err != nil {
			return fmt.Errorf("%w: user %s does not exist", apperrors.ErrValidation, id)
		}
	}
	return nil
}

// CreateGroup creates a group with the creator as its first member.
// Requested member IDs follow in request order, duplicates dropped.
func (s *GroupService) CreateGroup(ctx context.Context, req dto.CreateGroupRequest, creatorUserID string) (*domain.Group, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	memberIDs := []string{creatorUserID}
	seen := map[string]bool{creatorUserID: true}
	for _, id := range req.MemberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		memberIDs = append(memberIDs, id)
	}

	if err := s.validateUsersExist(ctx, memberIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	group := domain.Group{
		GroupID:   uuid.NewString(),
		Name:      req.Name,
		MemberIDs: memberIDs,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.groupRepo.SaveGroup(ctx, group); err != nil {
		logger.Error("Failed to save group in repository", slog.String("error", err.Error()), slog.String("group_name", req.Name))
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	logger.Info("Group created", slog.String("group_id", group.GroupID), slog.String("creator_user_id", creatorUserID))
	return &group, nil
}

// GetGroupByID retrieves a group; only members may see it.
func (s *GroupService) GetGroupByID(ctx context.Context, groupID string, requestingUserID string) (*domain.Group, error) {
	return s.requireMember(ctx, groupID, requestingUserID)
}

// ListGroupsForUser retrieves the groups the user belongs to.
func (s *GroupService) ListGroupsForUser(ctx context.Context, userID string) ([]domain.Group, error) {
	groups, err := s.groupRepo.FindGroupsByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for user %s: %w", userID, err)
	}
	if groups == nil {
		return []domain.Group{}, nil
	}
	return groups, nil
}

// UpdateGroup renames a group. Any member may rename.
func (s *GroupService) UpdateGroup(ctx context.Context, groupID string, req dto.UpdateGroupRequest, requestingUserID string) (*domain.Group, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	group, err := s.requireMember(ctx, groupID, requestingUserID)
	if err != nil {
		return nil, err
	}

	group.Name = req.Name
	group.LastUpdatedAt = time.Now()
	group.LastUpdatedBy = requestingUserID

	if err := s.groupRepo.SaveGroup(ctx, *group); err != nil {
		logger.Error("Failed to save renamed group", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to update group %s: %w", groupID, err)
	}

	logger.Info("Group updated", slog.String("group_id", groupID))
	return group, nil
}

// AddMembers appends new members to the group's ordered member list.
// Existing members are skipped rather than rejected.
func (s *GroupService) AddMembers(ctx context.Context, groupID string, req dto.AddGroupMembersRequest, requestingUserID string) (*domain.Group, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	group, err := s.requireMember(ctx, groupID, requestingUserID)
	if err != nil {
		return nil, err
	}

	var newMembers []string
	for _, id := range req.MemberIDs {
		if group.HasMember(id) {
			continue
		}
		newMembers = append(newMembers, id)
	}
	if len(newMembers) == 0 {
		return group, nil
	}

	if err := s.validateUsersExist(ctx, newMembers); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.groupRepo.AddGroupMembers(ctx, groupID, newMembers, requestingUserID, now); err != nil {
		logger.Error("Failed to add group members", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to add members to group %s: %w", groupID, err)
	}

	group.MemberIDs = append(group.MemberIDs, newMembers...)
	group.LastUpdatedAt = now
	group.LastUpdatedBy = requestingUserID

	logger.Info("Group members added", slog.String("group_id", groupID), slog.Int("added", len(newMembers)))
	return group, nil
}

// DeleteGroup soft-deletes a group. Only the creator may delete it.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	group, err := s.requireMember(ctx, groupID, requestingUserID)
	if err != nil {
		return err
	}
	if group.CreatedBy != requestingUserID {
		return fmt.Errorf("%w: only the group creator can delete group %s", apperrors.ErrForbidden, groupID)
	}

	if err := s.groupRepo.MarkGroupDeleted(ctx, groupID, requestingUserID, time.Now()); err != nil {
		logger.Error("Failed to mark group deleted", slog.String("error", err.Error()), slog.String("group_id", groupID))
		return fmt.Errorf("failed to delete group %s: %w", groupID, err)
	}

	logger.Info("Group deleted", slog.String("group_id", groupID))
	return nil
}
