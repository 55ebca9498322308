// Package redis stores key-value entries as plain Redis strings.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
	"github.com/go-redis/redis/v8"
)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

type KVRepository struct {
	client *redis.Client
}

var _ portsrepo.ClosableKeyValueStore = (*KVRepository)(nil)

// NewKVRepository connects to Redis and verifies the connection with PING.
func NewKVRepository(ctx context.Context, opts Options) (*KVRepository, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &KVRepository{client: client}, nil
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewNotFoundError("key " + key + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to get key "+key, err)
	}
	return value, nil
}

// Put replaces the value under key with no expiry.
func (r *KVRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return apperrors.NewAppError(500, "failed to put key "+key, err)
	}
	return nil
}

func (r *KVRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return apperrors.NewAppError(500, "failed to delete key "+key, err)
	}
	return nil
}

func (r *KVRepository) Close() error {
	return r.client.Close()
}
