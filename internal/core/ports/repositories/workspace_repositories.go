package repositories

import (
	"context"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
)

// WorkspaceReader defines read operations for workspace data
type WorkspaceReader interface {
	// FindWorkspaceByID retrieves a specific workspace by its ID.
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)

	// ListWorkspacesForMember retrieves the workspaces whose member list contains email, in storage order.
	ListWorkspacesForMember(ctx context.Context, email string) ([]domain.Workspace, error)
}

// WorkspaceWriter defines write operations for workspace data
type WorkspaceWriter interface {
	// CreateWorkspace persists a new workspace owned by ownerID with ownerEmail as its only member.
	CreateWorkspace(ctx context.Context, name, ownerID, ownerEmail string) (*domain.Workspace, error)

	// UpdateWorkspace applies a partial settings update.
	UpdateWorkspace(ctx context.Context, workspaceID string, update domain.WorkspaceUpdate) (*domain.Workspace, error)

	// DeleteWorkspace removes a workspace and cascades to its transactions.
	DeleteWorkspace(ctx context.Context, workspaceID string) error
}

// WorkspaceMembershipManager defines operations for managing workspace memberships
type WorkspaceMembershipManager interface {
	// AddMember adds email to the member list; adding an existing member is a no-op.
	AddMember(ctx context.Context, workspaceID, email string) error

	// RemoveMember removes email from the member list; removing a non-member is a no-op.
	// Returns apperrors.ErrForbidden when email belongs to the owner.
	RemoveMember(ctx context.Context, workspaceID, email string) error
}

// WorkspaceRepositoryFacade combines all workspace-related repository interfaces
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
	WorkspaceMembershipManager
}
