package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/orbit_finance/internal/adapters/storage/file"
	"github.com/SscSPs/orbit_finance/internal/adapters/storage/memory"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
	"github.com/SscSPs/orbit_finance/internal/repositories/database/pgsql"
	"github.com/SscSPs/orbit_finance/internal/repositories/database/redis"
	"github.com/SscSPs/orbit_finance/internal/repositories/database/sqlite"
	"github.com/SscSPs/orbit_finance/pkg/database"
)

// Backend names accepted by OpenBackend.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// BackendOptions selects and configures the key-value backend.
type BackendOptions struct {
	Backend       string
	FilePath      string
	SQLitePath    string
	PostgresURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

type nopCloser struct {
	portsrepo.KeyValueStore
}

func (nopCloser) Close() error { return nil }

// OpenBackend opens the configured key-value backend, running schema migrations where needed.
func OpenBackend(ctx context.Context, opts BackendOptions, logger *slog.Logger) (portsrepo.ClosableKeyValueStore, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return nopCloser{memory.NewKVStore()}, nil
	case BackendFile:
		kv, err := file.NewKVStore(opts.FilePath)
		if err != nil {
			return nil, err
		}
		return nopCloser{kv}, nil
	case BackendSQLite:
		kv, err := sqlite.NewKVRepository(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return kv, nil
	case BackendPostgres:
		db, err := database.OpenPostgres(ctx, opts.PostgresURL)
		if err != nil {
			return nil, err
		}
		if err := pgsql.RunMigrations(db, logger); err != nil {
			database.ClosePostgres(db)
			return nil, err
		}
		return pgsql.NewKVStore(db), nil
	case BackendRedis:
		kv, err := redis.NewKVRepository(ctx, redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return kv, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
