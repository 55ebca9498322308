package services

import (
	"context"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.UserProfile, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// UpdateUser applies a partial profile update.
	UpdateUser(ctx context.Context, userID string, update domain.UserUpdate) (*domain.UserProfile, error)

	// UpdateTheme stores the theme preference on the user's profile.
	UpdateTheme(ctx context.Context, userID string, theme domain.Theme) (*domain.UserProfile, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser removes a user and cascades to the workspaces they own.
	DeleteUser(ctx context.Context, userID string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// Login resolves a user by email. There are no credentials.
	Login(ctx context.Context, email string) (*domain.UserProfile, error)

	// Register creates a user with the default workspace.
	Register(ctx context.Context, email, name string) (*domain.UserProfile, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}

// AdminSvc backs the admin panel. Access control lives in the repository policy.
type AdminSvc interface {
	ListAllUsers(ctx context.Context) ([]domain.UserProfile, error)
	SystemStats(ctx context.Context) (domain.SystemStats, error)
	CreateUser(ctx context.Context, email, name string, role domain.UserRole) (*domain.UserProfile, error)
	ResetUserPassword(ctx context.Context, userID, newPassword string) error
}
