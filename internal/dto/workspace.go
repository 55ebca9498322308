package dto

import (
	"time"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
)

// --- Workspace DTOs ---

// CreateWorkspaceRequest defines data for creating a new workspace.
// OwnerID defaults to the caller. Only admins may name another user.
type CreateWorkspaceRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	OwnerID string `json:"ownerId,omitempty"`
}

// UpdateWorkspaceRequest carries a partial settings update. A present but empty
// categories array clears the categories.
type UpdateWorkspaceRequest struct {
	Name         *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	CurrencyCode *string  `json:"currencyCode,omitempty" binding:"omitempty,alpha,len=3"`
	Categories   []string `json:"categories" binding:"omitempty,dive,required,max=50"` // null leaves them untouched
}

// ToDomain converts the request into a domain.WorkspaceUpdate.
func (r UpdateWorkspaceRequest) ToDomain() domain.WorkspaceUpdate {
	return domain.WorkspaceUpdate{Name: r.Name, CurrencyCode: r.CurrencyCode, Categories: r.Categories}
}

// FromWorkspaceUpdate builds the request for a domain.WorkspaceUpdate.
func FromWorkspaceUpdate(u domain.WorkspaceUpdate) UpdateWorkspaceRequest {
	return UpdateWorkspaceRequest{Name: u.Name, CurrencyCode: u.CurrencyCode, Categories: u.Categories}
}

// WorkspaceResponse defines data returned for a workspace.
type WorkspaceResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	OwnerID       string    `json:"ownerId"`
	Members       []string  `json:"members"`
	CurrencyCode  string    `json:"currencyCode"`
	Categories    []string  `json:"categories"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
	CreatedBy     string    `json:"createdBy,omitempty"` // UserID
	LastUpdatedAt time.Time `json:"lastUpdatedAt,omitzero"`
	LastUpdatedBy string    `json:"lastUpdatedBy,omitempty"` // UserID
}

// ToWorkspaceResponse converts domain.Workspace to DTO.
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	c := w.Clone()
	if c.Members == nil {
		c.Members = []string{}
	}
	if c.Categories == nil {
		c.Categories = []string{}
	}
	return WorkspaceResponse{
		ID:            c.ID,
		Name:          c.Name,
		OwnerID:       c.OwnerID,
		Members:       c.Members,
		CurrencyCode:  c.CurrencyCode,
		Categories:    c.Categories,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

// ToDomain converts the DTO back into a domain.Workspace.
func (r WorkspaceResponse) ToDomain() *domain.Workspace {
	return &domain.Workspace{
		ID:           r.ID,
		Name:         r.Name,
		OwnerID:      r.OwnerID,
		Members:      r.Members,
		CurrencyCode: r.CurrencyCode,
		Categories:   r.Categories,
		AuditFields: domain.AuditFields{
			CreatedAt:     r.CreatedAt,
			CreatedBy:     r.CreatedBy,
			LastUpdatedAt: r.LastUpdatedAt,
			LastUpdatedBy: r.LastUpdatedBy,
		},
	}
}

// ListWorkspacesResponse wraps a list of workspaces.
type ListWorkspacesResponse struct {
	Workspaces []WorkspaceResponse `json:"workspaces"`
}

// ToListWorkspacesResponse converts a slice of domain.Workspace to DTO.
func ToListWorkspacesResponse(ws []domain.Workspace) ListWorkspacesResponse {
	list := make([]WorkspaceResponse, len(ws))
	for i := range ws {
		list[i] = ToWorkspaceResponse(&ws[i])
	}
	return ListWorkspacesResponse{Workspaces: list}
}

// ToDomain converts the list back into domain workspaces.
func (r ListWorkspacesResponse) ToDomain() []domain.Workspace {
	ws := make([]domain.Workspace, len(r.Workspaces))
	for i, w := range r.Workspaces {
		ws[i] = *w.ToDomain()
	}
	return ws
}

// --- Membership DTOs ---

// MemberRequest names a member by email.
type MemberRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}
