package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/loredex/loredex/internal/catalog"
)

// State is the persisted layout: the full record sequence plus the batch
// metadata, one blob per key.
type State struct {
	Records []catalog.Record      `json:"records"`
	Batches []catalog.SourceBatch `json:"batches"`
}

// Adapter serializes the collection store to a fixed key in a KV slot and
// restores it at startup.
type Adapter struct {
	kv  KV
	key string
}

// NewAdapter wraps a KV slot with the fixed state key.
func NewAdapter(kv KV, key string) *Adapter {
	return &Adapter{kv: kv, key: key}
}

// Save writes the current store contents. Called after every mutation; a
// failure is returned so the caller can log it, but the in-memory state is
// already committed and stays authoritative.
func (a *Adapter) Save(ctx context.Context, store *catalog.Store) error {
	state := State{
		Records: store.Snapshot(),
		Batches: store.Batches(),
	}

	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := a.kv.Set(ctx, a.key, string(blob)); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// Restore loads previously saved state into the store. It reports whether
// saved state was found. Corrupt state is logged and treated as absent:
// a bad blob must never keep the process from starting.
func (a *Adapter) Restore(ctx context.Context, store *catalog.Store) (bool, error) {
	blob, ok, err := a.kv.Get(ctx, a.key)
	if err != nil {
		return false, fmt.Errorf("read state: %w", err)
	}
	if !ok {
		return false, nil
	}

	var state State
	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		slog.Warn("discarding corrupt persisted state", "key", a.key, "error", err)
		return false, nil
	}

	store.Restore(state.Records, state.Batches)
	return true, nil
}
