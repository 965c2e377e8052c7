// Package mem is an in-memory vault/store.Store, suitable for tests and for
// single-process deployments. It is adapted from the same
// scoped-overlay-map approach the teacher's MemoryStorage used for ents,
// here keyed by vault ID rather than by ent type+id.
package mem

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rsms/vaultfmt/store"
)

const (
	envelopeKeyPrefix = "envelope:"
	historyKeyPrefix  = "history:"
)

// layer is the unexported storage cell behind Store. Reads check the
// layer's own entries first, then fall through a chain of ancestor maps
// from nearest to oldest; writes always land in the layer's own map, never
// in an ancestor. A nil value is a tombstone: it marks a key deleted in
// this layer so the same key's value in an ancestor doesn't show through.
//
// Store.Snapshot() builds a child layer whose chain is the parent's own
// map plus the parent's existing chain, so taking a snapshot is an O(1)
// slice append rather than a copy of the accumulated data, and writes
// through the snapshot can never reach back into the parent.
type layer struct {
	chain []map[string][]byte
	own   map[string][]byte
}

func (l *layer) lookup(key string) ([]byte, bool) {
	if v, ok := l.own[key]; ok {
		return v, v != nil
	}
	for _, ancestor := range l.chain {
		if v, ok := ancestor[key]; ok {
			return v, v != nil
		}
	}
	return nil, false
}

func (l *layer) set(key string, value []byte) {
	if l.own == nil {
		l.own = make(map[string][]byte)
	}
	l.own[key] = value
}

func (l *layer) child() layer {
	chain := make([]map[string][]byte, 0, len(l.chain)+1)
	if l.own != nil {
		chain = append(chain, l.own)
	}
	return layer{chain: append(chain, l.chain...)}
}

// Store is a goroutine-safe, in-memory vault/store.Store.
type Store struct {
	mu sync.RWMutex
	l  layer
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

func envelopeKey(vaultID string) string { return envelopeKeyPrefix + vaultID }
func historyKey(vaultID string) string  { return historyKeyPrefix + vaultID }

func (s *Store) SaveEnvelope(_ context.Context, vaultID string, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.l.set(envelopeKey(vaultID), []byte(raw))
	return nil
}

func (s *Store) LoadEnvelope(_ context.Context, vaultID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.l.lookup(envelopeKey(vaultID))
	if !ok {
		return "", store.ErrNotFound
	}
	return string(v), nil
}

func (s *Store) AppendHistoryLines(_ context.Context, vaultID string, lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := historyKey(vaultID)
	existing, _ := s.l.lookup(key)
	s.l.set(key, appendLines(existing, lines))
	return nil
}

func (s *Store) HistoryLines(_ context.Context, vaultID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.l.lookup(historyKey(vaultID))
	if !ok {
		return nil, nil
	}
	return strings.Split(string(v), "\n"), nil
}

func (s *Store) Close() error { return nil }

// Snapshot returns a read-only Store layered on top of s: writes through
// the snapshot never touch s, and reads that miss locally fall through to
// s. This is the mem backend's realization of spec.md §7's "read-only mode
// is... intended for snapshots and for histories undergoing
// merge-preprocessing" -- taking a snapshot is an O(1) layer append, not a
// copy of the whole backing map.
func (s *Store) Snapshot() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Store{l: s.l.child()}
}

func appendLines(existing []byte, lines []string) []byte {
	if len(existing) == 0 {
		return []byte(strings.Join(lines, "\n"))
	}
	return []byte(fmt.Sprintf("%s\n%s", existing, strings.Join(lines, "\n")))
}
