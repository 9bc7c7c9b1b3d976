// Package cache provides pluggable result caching for lattice
// analysis.
//
// Decoding and path counting are deterministic functions of the
// lattice content and the lmScale, so their results are cached behind
// the [Cache] interface, keyed by a content hash. Backends:
//   - [FileCache]: directory-based, for the CLI
//   - [RedisCache]: shared, for the HTTP server
//   - [NullCache]: disabled caching, for tests
package cache

import (
	"context"
	"time"
)

// TTLAnalysis is how long cached analysis results live. Results are
// deterministic, so the TTL only bounds storage growth.
const TTLAnalysis = 30 * 24 * time.Hour

// Cache is the interface all cache backends implement.
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a
// clean miss; errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// AnalysisKey builds the cache key for an analysis result: the
// serialized lattice's content hash scoped by the analysis parameters.
func AnalysisKey(latticeText []byte, lmScale float64, silenceToken string) string {
	return hashKey("analysis", Hash(latticeText), lmScale, silenceToken)
}
