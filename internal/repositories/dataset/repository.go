// Package dataset implements the ledger repository over a whole-document dataset store.
// Every call loads the document, queries or mutates it in memory and saves it back when
// something changed. Nothing is cached between calls.
package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/orbit_finance/internal/core/domain"
	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
	"github.com/google/uuid"
)

// Repository serializes load, mutate and save within this process. Writers in other
// processes sharing the same store are not coordinated; the last save wins.
type Repository struct {
	mu    sync.Mutex
	store portsrepo.DatasetStore
	newID func() string
	now   func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) {
		r.newID = newID
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// New creates a repository on top of store.
func New(store portsrepo.DatasetStore, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ portsrepo.LedgerRepository = (*Repository)(nil)

func (r *Repository) read(ctx context.Context) (domain.Dataset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Load(ctx)
}

// update runs fn on a freshly loaded dataset and saves it if fn reports a change.
func (r *Repository) update(ctx context.Context, fn func(ds *domain.Dataset) (bool, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ds, err := r.store.Load(ctx)
	if err != nil {
		return err
	}
	changed, err := fn(&ds)
	if err != nil || !changed {
		return err
	}
	return r.store.Save(ctx, ds)
}
