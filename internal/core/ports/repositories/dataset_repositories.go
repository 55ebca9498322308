package repositories

import (
	"context"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
)

// DatasetStore is the Persistent Store Adapter: whole-document load and save of the dataset.
type DatasetStore interface {
	// Load returns the stored dataset, or the seed dataset when nothing (or nothing readable) is stored.
	Load(ctx context.Context) (domain.Dataset, error)

	// Save overwrites the stored dataset.
	Save(ctx context.Context, dataset domain.Dataset) error
}

// PreferenceStore keeps the scalars that live outside the dataset: the remembered
// session email and the display theme.
type PreferenceStore interface {
	// SessionEmail returns the remembered email, or "" when none is remembered.
	SessionEmail(ctx context.Context) (string, error)
	SetSessionEmail(ctx context.Context, email string) error
	ClearSession(ctx context.Context) error

	// Theme returns the stored theme, or "" when none is stored.
	Theme(ctx context.Context) (domain.Theme, error)
	SetTheme(ctx context.Context, theme domain.Theme) error
}
