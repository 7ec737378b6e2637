// Package storage defines the Snapshotter interface — the contract any
// durable backend must satisfy to persist the roster.
//
// WHY AN INTERFACE?
// ─────────────────
// The roster engine should not know or care where its snapshot lives.
// By depending only on this interface:
//
//   - Switching backends = implement the interface for the new one,
//     change one line in main.go. Zero engine changes.
//
//   - Writing tests = pass a fake that satisfies the interface.
//     No real database needed for engine unit tests.
//
// The persistence model is deliberately simple: the full roster is
// written as one snapshot after every successful mutation and read
// back once at startup. There is no incremental write path and no
// schema versioning — the snapshot is a plain ordered list of records.
package storage

import "github.com/aanand-mishra/roster-api/internal/types"

// Snapshotter is the durable-storage contract.
type Snapshotter interface {
	// Load reads the most recent roster snapshot. It returns an empty
	// slice (not an error) when no snapshot has ever been saved.
	Load() ([]types.Student, error)

	// Save replaces the stored snapshot with the given roster. The
	// slice is the complete roster in insertion order; a partial save
	// is never requested.
	Save(students []types.Student) error
}
