package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/SscSPs/orbit_finance/internal/repositories/database/sqlite"
	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepository_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "data", "orbit.db")

	repo, err := sqlite.NewKVRepository(dbPath)
	require.NoError(t, err)

	_, err = repo.Get(ctx, "orbit_finance_v5_data")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.Put(ctx, "orbit_finance_v5_data", []byte(`{"users":[]}`)))
	require.NoError(t, repo.Put(ctx, "orbit_finance_v5_data", []byte(`{"users":[1]}`)))
	require.NoError(t, repo.Close())

	// migrations are idempotent on reopen
	reopened, err := sqlite.NewKVRepository(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "orbit_finance_v5_data")
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[1]}`, string(got))

	require.NoError(t, reopened.Delete(ctx, "orbit_finance_v5_data"))
	_, err = reopened.Get(ctx, "orbit_finance_v5_data")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
