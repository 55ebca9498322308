package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
	"github.com/SscSPs/orbit_finance/internal/dto"
)

var _ portsrepo.LedgerRepository = (*Client)(nil)

// --- users ---

// Authenticate logs in as email and keeps the returned session token.
func (c *Client) Authenticate(ctx context.Context, email string) (*domain.UserProfile, error) {
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, dto.LoginRequest{Email: email}, &resp); err != nil {
		return nil, err
	}
	c.setSession(resp)
	return resp.User.ToDomain(), nil
}

func (c *Client) FindUserByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodGet, pathf("/users/%s", userID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// CreateUser self-registers when the call carries no acting user, and uses the
// admin endpoint otherwise. Self-registration starts a session as the new user.
func (c *Client) CreateUser(ctx context.Context, email, name string, role domain.UserRole) (*domain.UserProfile, error) {
	if domain.ActorFromContext(ctx) != "" {
		var resp dto.UserResponse
		req := dto.CreateUserRequest{Email: email, Name: name, Role: role}
		if err := c.do(ctx, http.MethodPost, "/admin/users", nil, req, &resp); err != nil {
			return nil, err
		}
		return resp.ToDomain(), nil
	}

	if role != domain.RoleUser {
		return nil, apperrors.NewForbiddenError("self-registration cannot grant role " + string(role))
	}
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, dto.RegisterRequest{Email: email, Name: name}, &resp); err != nil {
		return nil, err
	}
	c.setSession(resp)
	return resp.User.ToDomain(), nil
}

func (c *Client) UpdateUser(ctx context.Context, userID string, update domain.UserUpdate) (*domain.UserProfile, error) {
	var resp dto.UserResponse
	if err := c.do(ctx, http.MethodPut, pathf("/users/%s", userID), nil, dto.FromUserUpdate(update), &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// UpdateUserTheme can only change the theme of the logged-in user.
func (c *Client) UpdateUserTheme(ctx context.Context, email string, theme domain.Theme) error {
	if _, self := c.session(); self == "" || self != email {
		return apperrors.NewForbiddenError("theme can only be changed for the logged-in user")
	}
	return c.do(ctx, http.MethodPut, "/users/me/theme", nil, dto.UpdateThemeRequest{Theme: theme}, nil)
}

// DeleteUser ends the session when the logged-in user deletes themselves.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	if err := c.do(ctx, http.MethodDelete, pathf("/users/%s", userID), nil, nil, nil); err != nil {
		return err
	}
	if self, _ := c.session(); self == userID {
		c.clearSession()
	}
	return nil
}

func (c *Client) ResetUserPassword(ctx context.Context, userID, newPassword string) error {
	return c.do(ctx, http.MethodPost, pathf("/admin/users/%s/password", userID), nil, dto.ResetPasswordRequest{NewPassword: newPassword}, nil)
}

func (c *Client) ListAllUsers(ctx context.Context) ([]domain.UserProfile, error) {
	var resp dto.ListUsersResponse
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

func (c *Client) SystemStats(ctx context.Context) (domain.SystemStats, error) {
	var stats domain.SystemStats
	err := c.do(ctx, http.MethodGet, "/admin/stats", nil, nil, &stats)
	return stats, err
}

// --- workspaces ---

func (c *Client) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	var resp dto.WorkspaceResponse
	if err := c.do(ctx, http.MethodGet, pathf("/workspaces/%s", workspaceID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

func (c *Client) ListWorkspacesForMember(ctx context.Context, email string) ([]domain.Workspace, error) {
	var resp dto.ListWorkspacesResponse
	if err := c.do(ctx, http.MethodGet, "/workspaces", url.Values{"member": {email}}, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// CreateWorkspace lets the server resolve ownerEmail from ownerID.
func (c *Client) CreateWorkspace(ctx context.Context, name, ownerID, _ string) (*domain.Workspace, error) {
	var resp dto.WorkspaceResponse
	req := dto.CreateWorkspaceRequest{Name: name, OwnerID: ownerID}
	if err := c.do(ctx, http.MethodPost, "/workspaces", nil, req, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

func (c *Client) UpdateWorkspace(ctx context.Context, workspaceID string, update domain.WorkspaceUpdate) (*domain.Workspace, error) {
	var resp dto.WorkspaceResponse
	if err := c.do(ctx, http.MethodPut, pathf("/workspaces/%s", workspaceID), nil, dto.FromWorkspaceUpdate(update), &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

func (c *Client) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	return c.do(ctx, http.MethodDelete, pathf("/workspaces/%s", workspaceID), nil, nil, nil)
}

func (c *Client) AddMember(ctx context.Context, workspaceID, email string) error {
	return c.do(ctx, http.MethodPost, pathf("/workspaces/%s/members", workspaceID), nil, dto.MemberRequest{Email: email}, nil)
}

func (c *Client) RemoveMember(ctx context.Context, workspaceID, email string) error {
	return c.do(ctx, http.MethodDelete, pathf("/workspaces/%s/members", workspaceID), url.Values{"email": {email}}, nil, nil)
}

// --- transactions ---

func (c *Client) ListTransactions(ctx context.Context, workspaceID string) ([]domain.Transaction, error) {
	var resp dto.ListTransactionsResponse
	if err := c.do(ctx, http.MethodGet, pathf("/workspaces/%s/transactions", workspaceID), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

// AddTransaction records the transaction as the logged-in user; tx.CreatedBy is not sent.
func (c *Client) AddTransaction(ctx context.Context, tx domain.NewTransaction) (*domain.Transaction, error) {
	var resp dto.TransactionResponse
	if err := c.do(ctx, http.MethodPost, pathf("/workspaces/%s/transactions", tx.WorkspaceID), nil, dto.FromNewTransaction(tx), &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

func (c *Client) EditTransaction(ctx context.Context, transactionID string, update domain.TransactionUpdate) (*domain.Transaction, error) {
	var resp dto.TransactionResponse
	if err := c.do(ctx, http.MethodPut, pathf("/transactions/%s", transactionID), nil, dto.FromTransactionUpdate(update), &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

func (c *Client) DeleteTransaction(ctx context.Context, transactionID string) error {
	return c.do(ctx, http.MethodDelete, pathf("/transactions/%s", transactionID), nil, nil, nil)
}
