// Package guarded puts an admin capability check in front of a ledger repository.
// The check is off unless Policy.EnforceAdmin is set, in which case admin-only
// operations need an admin actor in the context (see domain.WithActor).
package guarded

import (
	"context"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
)

// Policy toggles the access checks.
type Policy struct {
	EnforceAdmin bool
}

// Repository forwards every call to the wrapped repository after the policy check.
type Repository struct {
	portsrepo.LedgerRepository
	policy Policy
}

// New wraps inner. With a zero Policy it behaves exactly like inner.
func New(inner portsrepo.LedgerRepository, policy Policy) *Repository {
	return &Repository{LedgerRepository: inner, policy: policy}
}

var _ portsrepo.LedgerRepository = (*Repository)(nil)

func (r *Repository) requireAdmin(ctx context.Context, operation string) error {
	if !r.policy.EnforceAdmin {
		return nil
	}
	actorID := domain.ActorFromContext(ctx)
	if actorID == "" {
		return apperrors.NewForbiddenError(operation + " requires an admin")
	}
	actor, err := r.LedgerRepository.FindUserByID(ctx, actorID)
	if err != nil || !actor.IsAdmin() {
		return apperrors.NewForbiddenError(operation + " requires an admin")
	}
	return nil
}

func (r *Repository) ListAllUsers(ctx context.Context) ([]domain.UserProfile, error) {
	if err := r.requireAdmin(ctx, "listing users"); err != nil {
		return nil, err
	}
	return r.LedgerRepository.ListAllUsers(ctx)
}

func (r *Repository) SystemStats(ctx context.Context) (domain.SystemStats, error) {
	if err := r.requireAdmin(ctx, "reading system stats"); err != nil {
		return domain.SystemStats{}, err
	}
	return r.LedgerRepository.SystemStats(ctx)
}

// CreateUser only guards admin-role creation; self-registration stays open.
func (r *Repository) CreateUser(ctx context.Context, email, name string, role domain.UserRole) (*domain.UserProfile, error) {
	if role == domain.RoleAdmin {
		if err := r.requireAdmin(ctx, "creating an admin"); err != nil {
			return nil, err
		}
	}
	return r.LedgerRepository.CreateUser(ctx, email, name, role)
}

func (r *Repository) UpdateUser(ctx context.Context, userID string, update domain.UserUpdate) (*domain.UserProfile, error) {
	if update.Role != nil {
		if err := r.requireAdmin(ctx, "changing roles"); err != nil {
			return nil, err
		}
	} else if userID != domain.ActorFromContext(ctx) {
		if err := r.requireAdmin(ctx, "updating another user"); err != nil {
			return nil, err
		}
	}
	return r.LedgerRepository.UpdateUser(ctx, userID, update)
}

// DeleteUser lets users delete themselves; deleting anyone else is an admin operation.
func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	if userID != domain.ActorFromContext(ctx) {
		if err := r.requireAdmin(ctx, "deleting another user"); err != nil {
			return err
		}
	}
	return r.LedgerRepository.DeleteUser(ctx, userID)
}

func (r *Repository) ResetUserPassword(ctx context.Context, userID, newPassword string) error {
	if err := r.requireAdmin(ctx, "resetting passwords"); err != nil {
		return err
	}
	return r.LedgerRepository.ResetUserPassword(ctx, userID, newPassword)
}
