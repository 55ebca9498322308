// Package file stores each key as a file in a directory. Writes go to a temp
// file that is renamed over the target, so readers never observe a partial value.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// KVStore is a directory-backed key-value store.
type KVStore struct {
	mu  sync.Mutex
	dir string
}

// NewKVStore creates dir if needed and returns a store rooted there.
func NewKVStore(dir string) (*KVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &KVStore{dir: dir}, nil
}

var _ portsrepo.KeyValueStore = (*KVStore)(nil)

func (s *KVStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", apperrors.NewValidationFailedError(fmt.Sprintf("invalid store key %q", key))
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *KVStore) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError("key " + key + " not found")
		}
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

func (s *KVStore) Put(_ context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("replace %s: %w", p, err)
	}
	return nil
}

func (s *KVStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", p, err)
	}
	return nil
}
