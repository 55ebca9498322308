package dataset

import (
	"context"
	"slices"
	"strings"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
)

func findWorkspace(ds *domain.Dataset, id string) int {
	return slices.IndexFunc(ds.Workspaces, func(w domain.Workspace) bool { return w.ID == id })
}

func (r *Repository) newWorkspace(ctx context.Context, name, ownerID, ownerEmail string) domain.Workspace {
	now := r.now()
	actor := domain.ActorFromContext(ctx)
	return domain.Workspace{
		ID:           r.newID(),
		Name:         name,
		OwnerID:      ownerID,
		Members:      []string{ownerEmail},
		CurrencyCode: domain.DefaultCurrencyCode,
		Categories:   slices.Clone(domain.DefaultCategories),
		AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: actor, LastUpdatedAt: now, LastUpdatedBy: actor},
	}
}

// pruneOrphanTransactions drops transactions whose workspace no longer exists.
func pruneOrphanTransactions(ds *domain.Dataset) {
	live := make(map[string]struct{}, len(ds.Workspaces))
	for _, w := range ds.Workspaces {
		live[w.ID] = struct{}{}
	}
	ds.Transactions = slices.DeleteFunc(ds.Transactions, func(t domain.Transaction) bool {
		_, ok := live[t.WorkspaceID]
		return !ok
	})
}

func (r *Repository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	ds, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	i := findWorkspace(&ds, workspaceID)
	if i < 0 {
		return nil, apperrors.NewNotFoundError("workspace " + workspaceID + " not found")
	}
	w := ds.Workspaces[i].Clone()
	return &w, nil
}

func (r *Repository) ListWorkspacesForMember(ctx context.Context, email string) ([]domain.Workspace, error) {
	ds, err := r.read(ctx)
	if err != nil {
		return nil, err
	}
	workspaces := []domain.Workspace{}
	for _, w := range ds.Workspaces {
		if w.HasMember(email) {
			workspaces = append(workspaces, w.Clone())
		}
	}
	return workspaces, nil
}

func (r *Repository) CreateWorkspace(ctx context.Context, name, ownerID, ownerEmail string) (*domain.Workspace, error) {
	if err := domain.ValidateWorkspaceName(name); err != nil {
		return nil, err
	}
	var created domain.Workspace
	err := r.update(ctx, func(ds *domain.Dataset) (bool, error) {
		i := findUser(ds, byID(ownerID))
		if i < 0 {
			return false, apperrors.NewNotFoundError("owner " + ownerID + " not found")
		}
		if ds.Users[i].Email != ownerEmail {
			return false, apperrors.NewValidationFailedError("owner email does not match owner " + ownerID)
		}
		created = r.newWorkspace(ctx, name, ownerID, ownerEmail)
		ds.Workspaces = append(ds.Workspaces, created)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	out := created.Clone()
	return &out, nil
}

func (r *Repository) UpdateWorkspace(ctx context.Context, workspaceID string, update domain.WorkspaceUpdate) (*domain.Workspace, error) {
	if update.Name != nil {
		if err := domain.ValidateWorkspaceName(*update.Name); err != nil {
			return nil, err
		}
	}
	if update.CurrencyCode != nil && strings.TrimSpace(*update.CurrencyCode) == "" {
		return nil, apperrors.NewValidationFailedError("currency code cannot be empty")
	}
	if update.Categories != nil {
		if err := domain.ValidateCategories(update.Categories); err != nil {
			return nil, err
		}
	}

	var updated domain.Workspace
	err := r.update(ctx, func(ds *domain.Dataset) (bool, error) {
		i := findWorkspace(ds, workspaceID)
		if i < 0 {
			return false, apperrors.NewNotFoundError("workspace " + workspaceID + " not found")
		}
		w := &ds.Workspaces[i]
		if update.IsEmpty() {
			updated = w.Clone()
			return false, nil
		}
		if update.Name != nil {
			w.Name = *update.Name
		}
		if update.CurrencyCode != nil {
			w.CurrencyCode = strings.ToUpper(strings.TrimSpace(*update.CurrencyCode))
		}
		if update.Categories != nil {
			w.Categories = slices.Clone(update.Categories)
		}
		w.Touch(domain.ActorFromContext(ctx), r.now())
		updated = w.Clone()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteWorkspace cascades to the workspace's transactions. Only the owner may delete it.
func (r *Repository) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	return r.update(ctx, func(ds *domain.Dataset) (bool, error) {
		i := findWorkspace(ds, workspaceID)
		if i < 0 {
			return false, apperrors.NewNotFoundError("workspace " + workspaceID + " not found")
		}
		if ds.Workspaces[i].OwnerID != domain.ActorFromContext(ctx) {
			return false, apperrors.NewForbiddenError("only the owner can delete workspace " + workspaceID)
		}
		ds.Workspaces = slices.Delete(ds.Workspaces, i, i+1)
		pruneOrphanTransactions(ds)
		return true, nil
	})
}

func (r *Repository) AddMember(ctx context.Context, workspaceID, email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationFailedError("member email cannot be empty")
	}
	return r.update(ctx, func(ds *domain.Dataset) (bool, error) {
		i := findWorkspace(ds, workspaceID)
		if i < 0 {
			return false, apperrors.NewNotFoundError("workspace " + workspaceID + " not found")
		}
		w := &ds.Workspaces[i]
		if w.HasMember(email) {
			return false, nil
		}
		w.Members = append(w.Members, email)
		w.Touch(domain.ActorFromContext(ctx), r.now())
		return true, nil
	})
}

// RemoveMember refuses to remove the owner so the owner always stays resolvable.
func (r *Repository) RemoveMember(ctx context.Context, workspaceID, email string) error {
	return r.update(ctx, func(ds *domain.Dataset) (bool, error) {
		i := findWorkspace(ds, workspaceID)
		if i < 0 {
			return false, apperrors.NewNotFoundError("workspace " + workspaceID + " not found")
		}
		w := &ds.Workspaces[i]
		if owner := findUser(ds, byID(w.OwnerID)); owner >= 0 && ds.Users[owner].Email == email {
			return false, apperrors.NewForbiddenError("cannot remove the owner from workspace " + workspaceID)
		}
		if !w.HasMember(email) {
			return false, nil
		}
		w.Members = slices.DeleteFunc(w.Members, func(m string) bool { return m == email })
		w.Touch(domain.ActorFromContext(ctx), r.now())
		return true, nil
	})
}
