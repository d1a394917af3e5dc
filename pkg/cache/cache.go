package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes. Graphs depend only on the bundle bytes, so they live
// longest; artifacts are the largest values and expire first.
const (
	GraphTTL    = 7 * 24 * time.Hour
	DiagramTTL  = 24 * time.Hour
	ArtifactTTL = 6 * time.Hour
)
