package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/orbit_finance/internal/core/ports/services"
)

// workspaceService implements the WorkspaceSvcFacade interface
type workspaceService struct {
	BaseService
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
	userRepo      portsrepo.UserReader
}

// NewWorkspaceService creates a new workspace service with the provided dependencies
func NewWorkspaceService(workspaceRepo portsrepo.WorkspaceRepositoryFacade, userRepo portsrepo.UserReader) portssvc.WorkspaceSvcFacade {
	return &workspaceService{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
	}
}

var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

func (s *workspaceService) GetWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	ws, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to find workspace", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return ws, nil
}

func (s *workspaceService) ListWorkspacesForMember(ctx context.Context, email string) ([]domain.Workspace, error) {
	workspaces, err := s.workspaceRepo.ListWorkspacesForMember(ctx, email)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspaces for member")
		return nil, err
	}
	s.LogDebug(ctx, "Workspaces listed", slog.Int("count", len(workspaces)))
	return workspaces, nil
}

func (s *workspaceService) CreateWorkspace(ctx context.Context, name, ownerID string) (*domain.Workspace, error) {
	owner, err := s.userRepo.FindUserByID(ctx, ownerID)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to resolve workspace owner", slog.String("owner_id", ownerID))
		return nil, err
	}
	ws, err := s.workspaceRepo.CreateWorkspace(ctx, name, owner.ID, owner.Email)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to create workspace", slog.String("owner_id", ownerID))
		return nil, err
	}
	s.LogInfo(ctx, "Workspace created", slog.String("workspace_id", ws.ID))
	return ws, nil
}

func (s *workspaceService) UpdateWorkspace(ctx context.Context, workspaceID string, update domain.WorkspaceUpdate) (*domain.Workspace, error) {
	ws, err := s.workspaceRepo.UpdateWorkspace(ctx, workspaceID, update)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to update workspace", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return ws, nil
}

func (s *workspaceService) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	if err := s.workspaceRepo.DeleteWorkspace(ctx, workspaceID); err != nil {
		s.logUnexpected(ctx, err, "Failed to delete workspace", slog.String("workspace_id", workspaceID))
		return err
	}
	s.LogInfo(ctx, "Workspace deleted", slog.String("workspace_id", workspaceID))
	return nil
}

func (s *workspaceService) AddMember(ctx context.Context, workspaceID, email string) (*domain.Workspace, error) {
	if err := s.workspaceRepo.AddMember(ctx, workspaceID, email); err != nil {
		s.logUnexpected(ctx, err, "Failed to add member", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return s.GetWorkspace(ctx, workspaceID)
}

func (s *workspaceService) RemoveMember(ctx context.Context, workspaceID, email string) (*domain.Workspace, error) {
	if err := s.workspaceRepo.RemoveMember(ctx, workspaceID, email); err != nil {
		s.logUnexpected(ctx, err, "Failed to remove member", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return s.GetWorkspace(ctx, workspaceID)
}
