// Package memory provides an in-process key-value store for tests and local development.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
)

// KVStore keeps values in a map guarded by a RWMutex.
type KVStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewKVStore creates an empty in-memory store.
func NewKVStore() *KVStore {
	return &KVStore{values: make(map[string][]byte)}
}

var _ portsrepo.KeyValueStore = (*KVStore)(nil)

func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, apperrors.NewNotFoundError("key " + key + " not found")
	}
	return slices.Clone(v), nil
}

func (s *KVStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = slices.Clone(value)
	return nil
}

func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys.
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
