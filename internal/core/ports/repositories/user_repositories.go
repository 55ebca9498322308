package repositories

import (
	"context"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// Authenticate looks a user up by email. Returns apperrors.ErrNotFound for unknown emails.
	Authenticate(ctx context.Context, email string) (*domain.UserProfile, error)

	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.UserProfile, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// CreateUser registers a user and their default workspace.
	// Returns apperrors.ErrDuplicate when the email is taken.
	CreateUser(ctx context.Context, email, name string, role domain.UserRole) (*domain.UserProfile, error)

	// UpdateUser applies a partial update to a user.
	UpdateUser(ctx context.Context, userID string, update domain.UserUpdate) (*domain.UserProfile, error)

	// UpdateUserTheme stores the theme preference of the user with the given email.
	UpdateUserTheme(ctx context.Context, email string, theme domain.Theme) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// DeleteUser removes a user together with the workspaces they own and those workspaces' transactions.
	// Returns apperrors.ErrForbidden when the user is the last admin.
	DeleteUser(ctx context.Context, userID string) error

	// ResetUserPassword validates and accepts a new password for a user.
	ResetUserPassword(ctx context.Context, userID, newPassword string) error
}

// AdminReader defines the system-wide reads backing the admin panel.
type AdminReader interface {
	// ListAllUsers returns every user in storage order.
	ListAllUsers(ctx context.Context) ([]domain.UserProfile, error)

	// SystemStats counts users, workspaces and transactions.
	SystemStats(ctx context.Context) (domain.SystemStats, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
	AdminReader
}
