package dataset

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
)

const minPasswordLength = 6

func findUser(ds *domain.Dataset, match func(u domain.UserProfile) bool) int {
	return slices.IndexFunc(ds.Users, match)
}

func byID(id string) func(domain.UserProfile) bool {
	return func(u domain.UserProfile) bool { return u.ID == id }
}

func byEmail(email string) func(domain.UserProfile) bool {
	return func(u domain.UserProfile) bool { return u.Email == email }
}

func countAdmins(ds *domain.Dataset) int {
	n := 0
	for _, u := range ds.Users {
		if u.IsAdmin() {
			n++
		}
	}
	return n
}

func (r *Repository) Authenticate(ctx context.Context, email string) (*domain.UserProfile, error) {
	ds, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	i := findUser(&ds, byEmail(email))
	if i < 0 {
		return nil, apperrors.NewNotFoundError("user " + email + " not found")
	}
	u := ds.Users[i].Clone()
	return &u, nil
}

func (r *Repository) FindUserByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	ds, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	i := findUser(&ds, byID(userID))
	if i < 0 {
		return nil, apperrors.NewNotFoundError("user " + userID + " not found")
	}
	u := ds.Users[i].Clone()
	return &u, nil
}

// CreateUser also creates the user's default workspace.
func (r *Repository) CreateUser(ctx context.Context, email, name string, role domain.UserRole) (*domain.UserProfile, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationFailedError("email cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationFailedError("name cannot be empty")
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !role.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown role %q", role))
	}

	var created domain.UserProfile
	err := r.update(ctx, func(ds *domain.Dataset) (bool, error) {
		if findUser(ds, byEmail(email)) >= 0 {
			return false, apperrors.NewConflictError("user with email " + email + " already exists")
		}
		now := r.now()
		actor := domain.ActorFromContext(ctx)

		created = domain.UserProfile{
			ID:          r.newID(),
			Email:       email,
			Name:        name,
			AvatarURL:   domain.AvatarURLFor(name),
			Role:        role,
			Preferences: &domain.UserPreferences{Theme: domain.ThemeLight},
			AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actor, LastUpdatedAt: now, LastUpdatedBy: actor},
		}
		ds.Users = append(ds.Users, created)
		ds.Workspaces = append(ds.Workspaces, r.newWorkspace(ctx, domain.DefaultWorkspaceName, created.ID, email))
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	out := created.Clone()
	return &out, nil
}

func (r *Repository) UpdateUser(ctx context.Context, userID string, update domain.UserUpdate) (*domain.UserProfile, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, apperrors.NewValidationFailedError("name cannot be empty")
	}
	if update.Role != nil && !update.Role.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown role %q", *update.Role))
	}
	if update.Theme != nil && !update.Theme.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown theme %q", *update.Theme))
	}

	var updated domain.UserProfile
	err := r.update(ctx, func(ds *domain.Dataset) (bool, error) {
		i := findUser(ds, byID(userID))
		if i < 0 {
			return false, apperrors.NewNotFoundError("user " + userID + " not found")
		}
		u := &ds.Users[i]
		if update.Role != nil && u.IsAdmin() && *update.Role != domain.RoleAdmin && countAdmins(ds) == 1 {
			return false, apperrors.NewForbiddenError("cannot demote the last admin")
		}
		if update.IsEmpty() {
			updated = u.Clone()
			return false, nil
		}

		if update.Name != nil {
			u.Name = *update.Name
		}
		if update.AvatarURL != nil {
			u.AvatarURL = *update.AvatarURL
		}
		if update.Role != nil {
			u.Role = *update.Role
		}
		if update.Theme != nil {
			u.Preferences = &domain.UserPreferences{Theme: *update.Theme}
		}
		u.Touch(domain.ActorFromContext(ctx), r.now())
		updated = u.Clone()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) UpdateUserTheme(ctx context.Context, email string, theme domain.Theme) error {
	if !theme.IsValid() {
		return apperrors.NewValidationFailedError(fmt.Sprintf("unknown theme %q", theme))
	}
	return r.update(ctx, func(ds *domain.Dataset) (bool, error) {
		i := findUser(ds, byEmail(email))
		if i < 0 {
			return false, apperrors.NewNotFoundError("user " + email + " not found")
		}
		u := &ds.Users[i]
		if u.Preferences != nil && u.Preferences.Theme == theme {
			return false, nil
		}
		u.Preferences = &domain.UserPreferences{Theme: theme}
		u.Touch(domain.ActorFromContext(ctx), r.now())
		return true, nil
	})
}

// DeleteUser removes the user, the workspaces they own and every transaction left
// without a workspace. The user's email is also dropped from other workspaces.
func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	return r.update(ctx, func(ds *domain.Dataset) (bool, error) {
		i := findUser(ds, byID(userID))
		if i < 0 {
			return false, apperrors.NewNotFoundError("user " + userID + " not found")
		}
		user := ds.Users[i]
		if user.IsAdmin() && countAdmins(ds) == 1 {
			return false, apperrors.NewForbiddenError("cannot delete the last admin account")
		}

		ds.Users = slices.Delete(ds.Users, i, i+1)
		ds.Workspaces = slices.DeleteFunc(ds.Workspaces, func(w domain.Workspace) bool {
			return w.OwnerID == user.ID
		})
		for j := range ds.Workspaces {
			ds.Workspaces[j].Members = slices.DeleteFunc(ds.Workspaces[j].Members, func(m string) bool {
				return m == user.Email
			})
		}
		pruneOrphanTransactions(ds)
		return true, nil
	})
}

// ResetUserPassword only checks the user and the password shape. Credentials are not stored.
func (r *Repository) ResetUserPassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationFailedError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	ds, err := r.read(ctx)
	if err != nil {
		return err
	}
	if findUser(&ds, byID(userID)) < 0 {
		return apperrors.NewNotFoundError("user " + userID + " not found")
	}
	return nil
}

func (r *Repository) ListAllUsers(ctx context.Context) ([]domain.UserProfile, error) {
	ds, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]domain.UserProfile, len(ds.Users))
	for i, u := range ds.Users {
		users[i] = u.Clone()
	}
	return users, nil
}

func (r *Repository) SystemStats(ctx context.Context) (domain.SystemStats, error) {
	ds, err := r.read(ctx)
	if err != nil {
		return domain.SystemStats{}, err
	}
	return ds.Stats(), nil
}
