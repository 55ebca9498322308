package services

import (
	"context"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
)

// WorkspaceReaderSvc defines read operations for workspace data
type WorkspaceReaderSvc interface {
	GetWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error)
	ListWorkspacesForMember(ctx context.Context, email string) ([]domain.Workspace, error)
}

// WorkspaceWriterSvc defines write operations for workspace data
type WorkspaceWriterSvc interface {
	// CreateWorkspace creates a workspace owned by ownerID.
	CreateWorkspace(ctx context.Context, name, ownerID string) (*domain.Workspace, error)
	UpdateWorkspace(ctx context.Context, workspaceID string, update domain.WorkspaceUpdate) (*domain.Workspace, error)
	DeleteWorkspace(ctx context.Context, workspaceID string) error
}

// WorkspaceMembershipSvc defines operations for managing workspace membership
type WorkspaceMembershipSvc interface {
	AddMember(ctx context.Context, workspaceID, email string) (*domain.Workspace, error)
	RemoveMember(ctx context.Context, workspaceID, email string) (*domain.Workspace, error)
}

// WorkspaceSvcFacade combines all workspace-related service interfaces
type WorkspaceSvcFacade interface {
	WorkspaceReaderSvc
	WorkspaceWriterSvc
	WorkspaceMembershipSvc
}
