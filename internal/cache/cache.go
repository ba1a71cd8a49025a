package cache

import (
	"context"
	"strings"
	"time"
)

// Client is a best-effort key-value cache. Implementations must never
// surface transport errors to callers: a failed read is a miss, a failed
// write is a no-op. The relational store stays the source of truth.
type Client interface {
	Enabled() bool
	// Get unmarshals the cached payload into dest and reports whether the
	// key was present. Any decode or transport failure counts as a miss.
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration)
	Delete(ctx context.Context, key string)
	// SetWithNamespace stores the entry and records the key in the
	// namespace tracking set so the whole family can be dropped at once.
	SetWithNamespace(ctx context.Context, namespace, key string, value any, ttl time.Duration)
	// InvalidateNamespace deletes every tracked key of the namespace plus
	// the tracking set itself. Absent namespace is a no-op.
	InvalidateNamespace(ctx context.Context, namespace string)
}

const keySeparator = ":"

// Key joins the non-empty parts with ":". Absent optional filters are
// passed as "" and skipped, so two lookups that differ only in filters
// nobody supplied land on the same key.
func Key(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, keySeparator)
}

// Noop satisfies Client without a backing store. It is wired when no
// Redis address is configured: every read misses, every write vanishes.
type Noop struct{}

func (Noop) Enabled() bool { return false }

func (Noop) Get(context.Context, string, any) bool { return false }

func (Noop) Set(context.Context, string, any, time.Duration) {}

func (Noop) Delete(context.Context, string) {}

func (Noop) SetWithNamespace(context.Context, string, string, any, time.Duration) {}

func (Noop) InvalidateNamespace(context.Context, string) {}
