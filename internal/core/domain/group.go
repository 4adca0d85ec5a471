package domain

import "time"

// Group represents a set of people who share expenses.
//
// MemberIDs is ordered: membership order is persisted and drives the
// deterministic ordering of balance output and the settlement optimizer's
// tie-breaks, so it must survive round-trips through storage unchanged.
type Group struct {
	GroupID   string   `json:"groupID"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIDs"` // UserID references, in join order
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// HasMember reports whether userID is part of the group.
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
