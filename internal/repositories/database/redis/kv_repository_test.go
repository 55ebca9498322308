package redis_test

import (
	"context"
	"os"
	"testing"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	orbitredis "github.com/SscSPs/orbit_finance/internal/repositories/database/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKVRepository_RequiresAddress(t *testing.T) {
	_, err := orbitredis.NewKVRepository(context.Background(), orbitredis.Options{})
	assert.Error(t, err)
}

// Runs only against a live server, e.g. REDIS_TEST_ADDR=localhost:6379.
func TestKVRepository_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()

	repo, err := orbitredis.NewKVRepository(ctx, orbitredis.Options{Addr: addr})
	require.NoError(t, err)
	defer repo.Close()

	key := "orbit_test_" + t.Name()
	t.Cleanup(func() { _ = repo.Delete(ctx, key) })

	_, err = repo.Get(ctx, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, repo.Put(ctx, key, []byte(`{"users":[]}`)))
	got, err := repo.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"users":[]}`, string(got))

	require.NoError(t, repo.Delete(ctx, key))
	_, err = repo.Get(ctx, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
