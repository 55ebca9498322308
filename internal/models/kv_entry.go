package models

import "time"

// KVEntry is one row of the kv_entries table.
type KVEntry struct {
	Key       string    `db:"key"`
	Value     []byte    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}
