// Package redis is a vault/store.Store backed by Redis. It takes the
// teacher's idea of splitting reads toward a follower pool and writes
// toward a leader pool, and reimplements the pool lifecycle around a
// small fixed-size pool array rather than separate named rwc/roc fields.
// Unlike the teacher, which hand-rolled a low-level RESP reader/writer for
// per-field secondary-index commands (not needed here, since a vault is
// stored as one envelope blob plus one append-only history list), this
// backend uses radix's high-level Cmd/FlatCmd exclusively.
package redis

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/mediocregopher/radix/v3"
	log "github.com/rsms/go-log"

	"github.com/rsms/vaultfmt/store"
)

const (
	envelopeKeyPrefix = "vault:envelope:"
	historyKeyPrefix  = "vault:history:"
)

// slot indexes into Redis.pools.
const (
	slotWrite = iota // leader: all writes, and reads when no follower is set
	slotRead         // follower: reads only, may stay nil
	numSlots
)

// Redis is a vault/store.Store backed by one or two radix pools: a leader
// pool that takes every write, and an optional follower pool consulted
// for reads. With no follower, the leader serves both roles.
type Redis struct {
	Logger *log.Logger

	connected bool
	pools     [numSlots]*radix.Pool
}

// Open dials rwaddr (and roaddr, if it names a different host, for reads)
// and installs the resulting pools.
func (r *Redis) Open(rwaddr, roaddr string, connPoolSize int) error {
	if roaddr == "" {
		roaddr = rwaddr
	} else if rwaddr == "" {
		rwaddr = roaddr
	}

	rwc, err := radix.NewPool("tcp", rwaddr, connPoolSize)
	if err != nil {
		return err
	}

	var roc *radix.Pool
	if roaddr != rwaddr {
		if roc, err = radix.NewPool("tcp", roaddr, connPoolSize); err != nil {
			rwc.Close()
			return err
		}
	}

	if r.Logger != nil {
		if roc != nil {
			r.Logger.Info("connected to rw=%s, ro=%s", rwaddr, roaddr)
		} else {
			r.Logger.Info("connected to %s", rwaddr)
		}
	}

	return r.SetConnections(rwc, roc)
}

// OpenRetry calls Open with exponential backoff until it succeeds or ctx is
// done. Unlike the teacher's bare one-second busy-retry loop, backoff
// widens the delay between attempts and respects cancellation.
func (r *Redis) OpenRetry(ctx context.Context, rwaddr, roaddr string, connPoolSize int) error {
	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	return backoff.Retry(func() error {
		err := r.Open(rwaddr, roaddr, connPoolSize)
		if err != nil && r.Logger != nil {
			r.Logger.Warn("%s; retrying", err)
		}
		return err
	}, policy)
}

// SetConnections installs already-built pools, e.g. for tests that want to
// hand Redis a pool pointed at a miniredis instance rather than go through
// Open's DNS dial.
func (r *Redis) SetConnections(rwc, roc *radix.Pool) error {
	if r.connected {
		return fmt.Errorf("already connected")
	}
	r.connected = true
	r.pools[slotWrite] = rwc
	r.pools[slotRead] = roc

	if r.Logger == nil {
		return nil
	}
	for _, p := range r.pools {
		if p != nil {
			r.watchPoolErrors(p)
		}
	}
	return nil
}

// watchPoolErrors drains p's error channel into r.Logger until p is
// closed, so a recovered connection failure shows up in logs instead of
// being silently swallowed by radix.
func (r *Redis) watchPoolErrors(p *radix.Pool) {
	p.ErrCh = make(chan error)
	go func(errs chan error, logger *log.Logger) {
		for err := range errs {
			logger.Warn("recovered error %v (%v)", err, p)
		}
		logger.Debug("closed connection (%v)", p)
	}(p.ErrCh, r.Logger)
}

func (r *Redis) Close() error {
	var firstErr error
	for i, p := range r.pools {
		if p == nil {
			continue
		}
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		r.pools[i] = nil
	}
	r.connected = false
	return firstErr
}

// readPool picks the follower for a non-mutating action when one is
// configured, falling back to the leader otherwise.
func (r *Redis) readPool() *radix.Pool {
	if r.pools[slotRead] != nil {
		return r.pools[slotRead]
	}
	return r.pools[slotWrite]
}

func (r *Redis) doRead(a radix.Action) error  { return r.readPool().Do(a) }
func (r *Redis) doWrite(a radix.Action) error { return r.pools[slotWrite].Do(a) }

// doWriteIdempotent runs a on the leader, then mirrors it to the follower
// (if any) as a write-through cache update. History appends are NOT
// idempotent (replaying an RPUSH duplicates lines), so
// AppendHistoryLines goes through doWrite instead.
func (r *Redis) doWriteIdempotent(a radix.Action) error {
	err := r.doWrite(a)
	if err == nil && r.pools[slotRead] != nil {
		if cacheErr := r.pools[slotRead].Do(a); cacheErr != nil && r.Logger != nil {
			r.Logger.Warn("write-through cache failure %v (likely harmless)", cacheErr)
		}
	}
	return err
}

func envelopeKey(vaultID string) string { return envelopeKeyPrefix + vaultID }
func historyKey(vaultID string) string  { return historyKeyPrefix + vaultID }

func (r *Redis) SaveEnvelope(_ context.Context, vaultID string, raw string) error {
	return r.doWriteIdempotent(radix.FlatCmd(nil, "SET", envelopeKey(vaultID), raw))
}

func (r *Redis) LoadEnvelope(_ context.Context, vaultID string) (string, error) {
	var raw string
	if err := r.doRead(radix.Cmd(&raw, "GET", envelopeKey(vaultID))); err != nil {
		return "", err
	}
	if raw == "" {
		return "", store.ErrNotFound
	}
	return raw, nil
}

func (r *Redis) AppendHistoryLines(_ context.Context, vaultID string, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	args := make([]interface{}, len(lines))
	for i, line := range lines {
		args[i] = line
	}
	return r.doWrite(radix.FlatCmd(nil, "RPUSH", historyKey(vaultID), args...))
}

func (r *Redis) HistoryLines(_ context.Context, vaultID string) ([]string, error) {
	var lines []string
	err := r.doRead(radix.Cmd(&lines, "LRANGE", historyKey(vaultID), "0", "-1"))
	return lines, err
}

// Ping checks connectivity through the read pool.
func (r *Redis) Ping() error {
	var pong string
	return r.doRead(radix.Cmd(&pong, "PING"))
}
