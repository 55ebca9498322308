package guarded_test

import (
	"context"
	"testing"

	"github.com/SscSPs/orbit_finance/internal/adapters/storage"
	"github.com/SscSPs/orbit_finance/internal/adapters/storage/memory"
	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
	"github.com/SscSPs/orbit_finance/internal/repositories/dataset"
	"github.com/SscSPs/orbit_finance/internal/repositories/guarded"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The seed dataset holds u1 (user) and admin1 (admin).
func newRepo(policy guarded.Policy) *guarded.Repository {
	return guarded.New(dataset.New(storage.NewDatasetStore(memory.NewKVStore())), policy)
}

func TestGuarded_DisabledPolicyIsPassThrough(t *testing.T) {
	repo := newRepo(guarded.Policy{})

	users, err := repo.ListAllUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestGuarded_EnforcedPolicy(t *testing.T) {
	repo := newRepo(guarded.Policy{EnforceAdmin: true})
	anon := context.Background()
	asUser := domain.WithActor(anon, "u1")
	asAdmin := domain.WithActor(anon, "admin1")

	_, err := repo.ListAllUsers(anon)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = repo.SystemStats(asUser)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	stats, err := repo.SystemStats(asAdmin)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Users)

	_, err = repo.CreateUser(asUser, "boss@x.com", "Boss", domain.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = repo.CreateUser(anon, "new@x.com", "New", domain.RoleUser)
	assert.NoError(t, err, "self-registration stays open")

	promote := domain.RoleAdmin
	_, err = repo.UpdateUser(asUser, "u1", domain.UserUpdate{Role: &promote})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	name := "Renamed"
	_, err = repo.UpdateUser(asUser, "u1", domain.UserUpdate{Name: &name})
	assert.NoError(t, err)

	assert.ErrorIs(t, repo.ResetUserPassword(asUser, "u1", "secret1"), apperrors.ErrForbidden)
	assert.NoError(t, repo.ResetUserPassword(asAdmin, "u1", "secret1"))

	assert.ErrorIs(t, repo.DeleteUser(asUser, "admin1"), apperrors.ErrForbidden)
	assert.NoError(t, repo.DeleteUser(asAdmin, "u1"))
}
