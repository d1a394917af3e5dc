// Package cache stores intermediate pipeline results.
//
// The [Runner] caches three stages under content-addressed keys from a
// [Keyer]: the graph built from a bundle, the laid-out and routed diagram,
// and rendered artifacts. Backends:
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [MemoryCache]: process memory, for a single server
//   - [RedisCache]: shared between server instances
//   - [NullCache]: never stores, for --no-cache
//
// [Runner]: github.com/matzehuels/indexflow/pkg/pipeline#Runner
package cache
