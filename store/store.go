// Package store declares the persistence contract the vault format engine
// consumes but does not implement itself (spec.md §1: "storage back-ends"
// are out of scope; only their contracts matter here). mem and redis
// provide two concrete backends.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by LoadEnvelope when vaultID is unknown to the
// backend.
var ErrNotFound = errors.New("store: not found")

// Store persists a vault's raw envelope bytes and, optionally, a
// lower-latency append-only view of its history lines, keyed by vault ID.
// Implementations need not be transactional across the two; the engine's
// own source of truth is always the decoded history (spec.md §7).
type Store interface {
	// SaveEnvelope writes raw (the full signed/compressed/encrypted on-disk
	// form from envelope.Encode) for vaultID, replacing any previous value.
	SaveEnvelope(ctx context.Context, vaultID string, raw string) error

	// LoadEnvelope returns the raw envelope previously saved for vaultID.
	// ErrNotFound is returned if none exists.
	LoadEnvelope(ctx context.Context, vaultID string) (string, error)

	// AppendHistoryLines appends lines to vaultID's durable history log,
	// for backends that can do so without re-writing the whole envelope.
	AppendHistoryLines(ctx context.Context, vaultID string, lines []string) error

	// HistoryLines returns every line appended so far for vaultID.
	HistoryLines(ctx context.Context, vaultID string) ([]string, error)

	// Close releases any resources (connections, file handles) held by the
	// backend.
	Close() error
}
