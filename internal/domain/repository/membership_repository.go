package repository

import (
	"context"
)

// Workspace roles as stored in the hosted database.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// WorkspaceMember represents a workspace membership row
type WorkspaceMember struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	JoinedAt    string `json:"joined_at"`
}

// HasElevatedRole reports whether the member may perform administrative
// operations such as reverting changes.
func (m *WorkspaceMember) HasElevatedRole() bool {
	return m.Role == RoleOwner || m.Role == RoleAdmin
}

// MembershipRepository resolves a user's membership in a workspace from the
// hosted database.
type MembershipRepository interface {
	GetMember(ctx context.Context, userID, workspaceID string) (*WorkspaceMember, error)
}
