package pgsql

import (
	"database/sql"

	portsrepo "github.com/SscSPs/orbit_finance/internal/core/ports/repositories"
)

// NewKVStore returns the Postgres-backed key-value store. The schema must already be migrated.
func NewKVStore(db *sql.DB) portsrepo.ClosableKeyValueStore {
	return newPgxKVRepository(db)
}
