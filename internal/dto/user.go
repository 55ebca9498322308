package dto

import (
	"time"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
)

// UserResponse defines the data returned for a user.
type UserResponse struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	AvatarURL     string          `json:"avatarUrl,omitempty"`
	Role          domain.UserRole `json:"role"`
	Theme         domain.Theme    `json:"theme,omitempty"`
	CreatedAt     time.Time       `json:"createdAt,omitzero"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt,omitzero"`
	LastUpdatedBy string          `json:"lastUpdatedBy,omitempty"`
}

// ToUserResponse converts a domain.UserProfile to DTO.
func ToUserResponse(u *domain.UserProfile) UserResponse {
	resp := UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		AvatarURL:     u.AvatarURL,
		Role:          u.Role,
		CreatedAt:     u.CreatedAt,
		LastUpdatedAt: u.LastUpdatedAt,
		LastUpdatedBy: u.LastUpdatedBy,
	}
	if u.Preferences != nil {
		resp.Theme = u.Preferences.Theme
	}
	return resp
}

// ToDomain converts the DTO back into a domain.UserProfile.
func (r UserResponse) ToDomain() *domain.UserProfile {
	u := &domain.UserProfile{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		AvatarURL: r.AvatarURL,
		Role:      r.Role,
		AuditFields: domain.AuditFields{
			CreatedAt:     r.CreatedAt,
			LastUpdatedAt: r.LastUpdatedAt,
			LastUpdatedBy: r.LastUpdatedBy,
		},
	}
	if r.Theme != "" {
		u.Preferences = &domain.UserPreferences{Theme: r.Theme}
	}
	return u
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.UserProfile to ListUsersResponse DTO
func ToListUsersResponse(users []domain.UserProfile) ListUsersResponse {
	list := make([]UserResponse, len(users))
	for i := range users {
		list[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: list}
}

// ToDomain converts the list back into domain users.
func (r ListUsersResponse) ToDomain() []domain.UserProfile {
	users := make([]domain.UserProfile, len(r.Users))
	for i, u := range r.Users {
		users[i] = *u.ToDomain()
	}
	return users
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name      *string          `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	AvatarURL *string          `json:"avatarUrl,omitempty" binding:"omitempty,url"`
	Role      *domain.UserRole `json:"role,omitempty" binding:"omitempty,oneof=user admin"`
	Theme     *domain.Theme    `json:"theme,omitempty" binding:"omitempty,oneof=light dark"`
}

// ToDomain converts the request into a domain.UserUpdate.
func (r UpdateUserRequest) ToDomain() domain.UserUpdate {
	return domain.UserUpdate{Name: r.Name, AvatarURL: r.AvatarURL, Role: r.Role, Theme: r.Theme}
}

// FromUserUpdate builds the request for a domain.UserUpdate.
func FromUserUpdate(u domain.UserUpdate) UpdateUserRequest {
	return UpdateUserRequest{Name: u.Name, AvatarURL: u.AvatarURL, Role: u.Role, Theme: u.Theme}
}

// UpdateThemeRequest sets the caller's display theme.
type UpdateThemeRequest struct {
	Theme domain.Theme `json:"theme" binding:"required,oneof=light dark"`
}

// CreateUserRequest is the admin form for creating a user with a role.
type CreateUserRequest struct {
	Email string          `json:"email" binding:"required,email"`
	Name  string          `json:"name" binding:"required,max=100"`
	Role  domain.UserRole `json:"role" binding:"required,oneof=user admin"`
}

// ResetPasswordRequest carries an admin-chosen password.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}
