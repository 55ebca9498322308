package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/orbit_finance/internal/core/ports/services"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a user service over the user repositories.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, email string) (*domain.UserProfile, error) {
	user, err := s.userRepo.Authenticate(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Login for unknown email")
		} else {
			s.LogError(ctx, err, "Failed to authenticate user")
		}
		return nil, err
	}
	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.ID))
	return user, nil
}

func (s *userService) Register(ctx context.Context, email, name string) (*domain.UserProfile, error) {
	user, err := s.userRepo.CreateUser(ctx, email, name, domain.RoleUser)
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to register user")
		}
		return nil, err
	}
	s.LogInfo(ctx, "User registered", slog.String("user_id", user.ID))
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, update domain.UserUpdate) (*domain.UserProfile, error) {
	if update.IsEmpty() {
		return nil, apperrors.NewValidationFailedError("no fields to update")
	}
	user, err := s.userRepo.UpdateUser(ctx, userID, update)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateTheme(ctx context.Context, userID string, theme domain.Theme) (*domain.UserProfile, error) {
	return s.UpdateUser(ctx, userID, domain.UserUpdate{Theme: &theme})
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		s.logUnexpected(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

type adminService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewAdminService creates the admin panel service.
func NewAdminService(userRepo portsrepo.UserRepositoryFacade) portssvc.AdminSvc {
	return &adminService{userRepo: userRepo}
}

var _ portssvc.AdminSvc = (*adminService)(nil)

func (s *adminService) ListAllUsers(ctx context.Context) ([]domain.UserProfile, error) {
	users, err := s.userRepo.ListAllUsers(ctx)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *adminService) SystemStats(ctx context.Context) (domain.SystemStats, error) {
	stats, err := s.userRepo.SystemStats(ctx)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to read system stats")
		return domain.SystemStats{}, err
	}
	return stats, nil
}

func (s *adminService) CreateUser(ctx context.Context, email, name string, role domain.UserRole) (*domain.UserProfile, error) {
	user, err := s.userRepo.CreateUser(ctx, email, name, role)
	if err != nil {
		s.logUnexpected(ctx, err, "Failed to create user", slog.String("role", string(role)))
		return nil, err
	}
	s.LogInfo(ctx, "User created by admin", slog.String("user_id", user.ID), slog.String("role", string(role)))
	return user, nil
}

func (s *adminService) ResetUserPassword(ctx context.Context, userID, newPassword string) error {
	if err := s.userRepo.ResetUserPassword(ctx, userID, newPassword); err != nil {
		s.logUnexpected(ctx, err, "Failed to reset password", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "Password reset by admin", slog.String("user_id", userID))
	return nil
}
