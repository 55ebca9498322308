// Package storage adapts a key-value backend to the dataset and preference stores.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/orbit_finance/internal/apperrors"
	"github.com/SscSPs/orbit_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
)

// DefaultNamespace is the key the dataset document is stored under.
const DefaultNamespace = "orbit_finance_v5_data"

type datasetStore struct {
	kv        portsrepo.KeyValueStore
	namespace string
	now       func() time.Time

	seedOnce sync.Once
	seedAt   time.Time
}

// DatasetStoreOption configures a dataset store.
type DatasetStoreOption func(*datasetStore)

// WithNamespace overrides the storage key of the dataset document.
func WithNamespace(namespace string) DatasetStoreOption {
	return func(s *datasetStore) {
		if namespace != "" {
			s.namespace = namespace
		}
	}
}

// WithClock sets the time source used to date the seed transactions. It is read once,
// on the first load that falls back to the seed.
func WithClock(now func() time.Time) DatasetStoreOption {
	return func(s *datasetStore) {
		s.now = now
	}
}

// NewDatasetStore wraps kv. The seed dataset is returned for an empty slot but is only
// written by the first Save.
func NewDatasetStore(kv portsrepo.KeyValueStore, opts ...DatasetStoreOption) portsrepo.DatasetStore {
	s := &datasetStore{
		kv:        kv,
		namespace: DefaultNamespace,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portsrepo.DatasetStore = (*datasetStore)(nil)

// seed returns the seed dataset, dated the same on every call.
func (s *datasetStore) seed() domain.Dataset {
	s.seedOnce.Do(func() { s.seedAt = s.now() })
	return domain.SeedDataset(s.seedAt)
}

func (s *datasetStore) Load(ctx context.Context) (domain.Dataset, error) {
	raw, err := s.kv.Get(ctx, s.namespace)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.seed(), nil
		}
		return domain.Dataset{}, fmt.Errorf("load dataset: %w", err)
	}

	var ds domain.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		slog.WarnContext(ctx, "Stored dataset is unreadable, falling back to seed data",
			slog.String("namespace", s.namespace), slog.String("error", err.Error()))
		return s.seed(), nil
	}
	ds.Normalize()
	return ds, nil
}

func (s *datasetStore) Save(ctx context.Context, ds domain.Dataset) error {
	ds.Normalize()
	raw, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if err := s.kv.Put(ctx, s.namespace, raw); err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}
	return nil
}
