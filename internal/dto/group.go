package dto

import (
	"time"

	"github.com/hisaab-app/hisaab-backend/internal/core/domain"
)

// CreateGroupRequest defines the payload for creating a group.
// MemberIDs may be empty; the creator is always added as the first member.
type CreateGroupRequest struct {
	Name      string   `json:"name" binding:"required"`
	MemberIDs []string `json:"memberIDs"`
}

// UpdateGroupRequest defines the payload for renaming a group.
type UpdateGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddGroupMembersRequest defines the payload for appending group members.
type AddGroupMembersRequest struct {
	MemberIDs []string `json:"memberIDs" binding:"required,min=1"`
}

// GroupResponse defines the group data returned to clients.
type GroupResponse struct {
	GroupID   string    `json:"groupID"`
	Name      string    `json:"name"`
	MemberIDs []string  `json:"memberIDs"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ListGroupsResponse wraps the groups a user belongs to.
type ListGroupsResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// ToGroupResponse converts a domain.Group to GroupResponse DTO.
func ToGroupResponse(g *domain.Group) GroupResponse {
	return GroupResponse{
		GroupID:   g.GroupID,
		Name:      g.Name,
		MemberIDs: g.MemberIDs,
		CreatedAt: g.CreatedAt,
		CreatedBy: g.CreatedBy,
	}
}

// ToGroupResponses converts a slice of domain.Group to []GroupResponse.
func ToGroupResponses(groups []domain.Group) []GroupResponse {
	responses := make([]GroupResponse, len(groups))
	for i := range groups {
		responses[i] = ToGroupResponse(&groups[i])
	}
	return responses
}
