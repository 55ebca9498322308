package storage

import (
	"context"
	"errors"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
)

const (
	SessionKey = "orbit_session_email"
	ThemeKey   = "orbit_theme"
)

type preferenceStore struct {
	kv portsrepo.KeyValueStore
}

// NewPreferenceStore keeps the session marker and theme as separate scalar entries in kv.
func NewPreferenceStore(kv portsrepo.KeyValueStore) portsrepo.PreferenceStore {
	return &preferenceStore{kv: kv}
}

var _ portsrepo.PreferenceStore = (*preferenceStore)(nil)

func (s *preferenceStore) SessionEmail(ctx context.Context) (string, error) {
	return s.scalar(ctx, SessionKey)
}

func (s *preferenceStore) SetSessionEmail(ctx context.Context, email string) error {
	return s.kv.Put(ctx, SessionKey, []byte(email))
}

func (s *preferenceStore) ClearSession(ctx context.Context) error {
	return s.kv.Delete(ctx, SessionKey)
}

// Theme ignores unknown stored values.
func (s *preferenceStore) Theme(ctx context.Context) (domain.Theme, error) {
	v, err := s.scalar(ctx, ThemeKey)
	if err != nil {
		return "", err
	}
	theme := domain.Theme(v)
	if !theme.IsValid() {
		return "", nil
	}
	return theme, nil
}

func (s *preferenceStore) SetTheme(ctx context.Context, theme domain.Theme) error {
	if !theme.IsValid() {
		return apperrors.NewValidationFailedError("unknown theme " + string(theme))
	}
	return s.kv.Put(ctx, ThemeKey, []byte(theme))
}

func (s *preferenceStore) scalar(ctx context.Context, key string) (string, error) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(raw), nil
}
