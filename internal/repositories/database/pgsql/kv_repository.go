package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
	"github.com/SscSPs/orbit_finance/internal/models"
)

type PgxKVRepository struct {
	BaseRepository
}

// newPgxKVRepository creates a key-value repository backed by the kv_entries table.
func newPgxKVRepository(db *sql.DB) *PgxKVRepository {
	return &PgxKVRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

// Ensure PgxKVRepository implements portsrepo.ClosableKeyValueStore
var _ portsrepo.ClosableKeyValueStore = (*PgxKVRepository)(nil)

func (r *PgxKVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT key, value, updated_at FROM kv_entries WHERE key = $1;`

	var entry models.KVEntry
	err := r.DB.QueryRowContext(ctx, query, key).Scan(&entry.Key, &entry.Value, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("key " + key + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get key "+key, err)
	}
	return entry.Value, nil
}

// Put replaces the whole value stored under key.
func (r *PgxKVRepository) Put(ctx context.Context, key string, value []byte) error {
	entry := models.KVEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(tx)

	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := tx.ExecContext(ctx, query, entry.Key, entry.Value, entry.UpdatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to put key "+key, err)
	}
	return r.Commit(tx)
}

func (r *PgxKVRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM kv_entries WHERE key = $1;`, key); err != nil {
		return apperrors.NewAppError(500, "failed to delete key "+key, err)
	}
	return nil
}
