// Package persist stores the application state as a single JSON blob in a
// durable string-keyed slot. The slot itself is pluggable: sqlite is the
// default backend, postgres is available for shared deployments, and the
// memory backend serves tests.
package persist

import "context"

// KV is the durable key-value slot the adapter writes to. Get reports
// whether the key was present; implementations must not treat an absent key
// as an error.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
