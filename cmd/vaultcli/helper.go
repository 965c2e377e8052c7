package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rsms/vaultfmt/credentials"
	"github.com/rsms/vaultfmt/cryptoenv"
	"github.com/rsms/vaultfmt/envelope"
	"github.com/rsms/vaultfmt/store"

	vault "github.com/rsms/vaultfmt"
)

var defaultEnv = cryptoenv.Default{}

// loadExecutor opens the configured backend, loads vaultID's envelope (if
// any), decodes it, and replays it into a fresh Executor. A missing vault
// yields an empty Executor rather than an error, mirroring "create" being
// just "open plus the first Execute". It also subscribes x to append every
// newly-committed batch to the backend's fast-path history view, returning
// the unsubscribe func for the caller to defer.
func loadExecutor(ctx context.Context) (x *vault.Executor, s store.Store, unsubscribe func(), err error) {
	s, err = openBackend()
	if err != nil {
		return nil, nil, nil, err
	}

	raw, err := s.LoadEnvelope(ctx, gf.vaultID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		x = vault.NewExecutor()
	case err != nil:
		return nil, s, nil, err
	default:
		creds := credentialsFromEnv()
		lines, derr := envelope.Decode(defaultEnv, creds, gf.credentialsID, raw)
		if derr != nil {
			return nil, s, nil, fmt.Errorf("decode envelope: %w", derr)
		}
		x, err = vault.NewExecutorFromHistory(lines)
		if err != nil {
			return nil, s, nil, fmt.Errorf("replay history: %w", err)
		}
	}

	unsubscribe = x.Subscribe(func(evt vault.Event) {
		if err := s.AppendHistoryLines(ctx, gf.vaultID, evt.Lines); err != nil {
			fmt.Printf("warn: append history lines: %v\n", err)
		}
	})
	return x, s, unsubscribe, nil
}

// saveExecutor re-encodes x's full history into an envelope and replaces
// the stored copy. This is the source of truth; the fast-path history
// lines kept by AppendHistoryLines are a cache of the same data.
func saveExecutor(ctx context.Context, s store.Store, x *vault.Executor) error {
	creds := credentialsFromEnv()
	history := x.GetHistory()

	raw, err := envelope.Encode(defaultEnv, creds, gf.credentialsID, history)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return s.SaveEnvelope(ctx, gf.vaultID, raw)
}

// envelopeDecode decodes raw using the default crypto environment, for
// callers (like watch) that read an envelope directly off disk rather than
// through a store.Store.
func envelopeDecode(raw string, creds *credentials.Store) (vault.History, error) {
	return envelope.Decode(defaultEnv, creds, gf.credentialsID, raw)
}
