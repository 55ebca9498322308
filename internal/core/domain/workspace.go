package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
)

// DefaultWorkspaceName is the name of the workspace created for every new user.
const DefaultWorkspaceName = "My Expenses"

// DefaultCategories seeds the workspace created for every new user.
var DefaultCategories = []string{"Food", "Transport", "General"}

// Workspace is a named, shared ledger with an owner, a member set, a currency and a set of categories.
type Workspace struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	OwnerID      string   `json:"ownerId"`
	Members      []string `json:"members"` // member emails, display order preserved
	CurrencyCode string   `json:"currencyCode"`
	Categories   []string `json:"categories"`
	AuditFields
}

// HasMember reports whether email belongs to the member list.
func (w Workspace) HasMember(email string) bool {
	return slices.Contains(w.Members, email)
}

// HasCategory reports whether the category label exists on the workspace.
func (w Workspace) HasCategory(category string) bool {
	return slices.Contains(w.Categories, category)
}

// Clone returns a deep copy so callers cannot alias the stored slices.
func (w Workspace) Clone() Workspace {
	w.Members = slices.Clone(w.Members)
	w.Categories = slices.Clone(w.Categories)
	return w
}

// WorkspaceUpdate carries a partial settings update. Nil fields are left untouched.
type WorkspaceUpdate struct {
	Name         *string
	CurrencyCode *string
	Categories   []string // nil leaves categories untouched; empty slice clears them
}

// IsEmpty reports whether the update changes nothing.
func (u WorkspaceUpdate) IsEmpty() bool {
	return u.Name == nil && u.CurrencyCode == nil && u.Categories == nil
}

// ValidateCategories rejects blank or duplicated category labels.
func ValidateCategories(categories []string) error {
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if strings.TrimSpace(c) == "" {
			return apperrors.NewValidationFailedError("category label cannot be empty")
		}
		if _, dup := seen[c]; dup {
			return apperrors.NewValidationFailedError(fmt.Sprintf("duplicate category %q", c))
		}
		seen[c] = struct{}{}
	}
	return nil
}

// ValidateWorkspaceName rejects blank names.
func ValidateWorkspaceName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationFailedError("workspace name cannot be empty")
	}
	return nil
}
