package metadata

import (
	"context"
	"errors"
	"time"

	"github.com/okian/tunify/internal/domain/types"
	"github.com/okian/tunify/pkg/logger"
	"github.com/okian/tunify/pkg/metrics"
)

// Resolver is the Provider backed by an upstream Fetcher. Successful lookups
// and confirmed misses are cached; transient failures are not.
type Resolver struct {
	fetcher Fetcher
	cache   *Cache
	timeout time.Duration
	logger  logger.Logger
}

var _ Provider = (*Resolver)(nil)

// NewResolver wraps fetcher with caching, timeouts and metrics.
func NewResolver(fetcher Fetcher, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fetcher: fetcher,
		cache:   NewCache(defaultCacheSize),
		timeout: defaultTimeout,
		logger:  logger.Get().Named("metadata"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup returns metadata for the track, or false when none is available.
func (r *Resolver) Lookup(ctx context.Context, trackName, artistName string) (types.Metadata, bool) {
	key := trackName + "\x1f" + artistName
	if meta, found, ok := r.cache.Get(key); ok {
		metrics.RecordMetadataCache(true, r.cache.Len())
		return meta, found
	}
	metrics.RecordMetadataCache(false, r.cache.Len())

	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	meta, err := r.fetcher.Fetch(lookupCtx, trackName, artistName)
	latency := float64(time.Since(start).Milliseconds())

	switch {
	case err == nil:
		metrics.RecordMetadataLookup(metrics.LookupHit, latency)
		r.cache.Put(key, meta, true)
		return meta, true
	case errors.Is(err, ErrNoMatch):
		metrics.RecordMetadataLookup(metrics.LookupMiss, latency)
		r.cache.Put(key, types.Metadata{}, false)
	case errors.Is(err, ErrCircuitOpen), errors.Is(err, ErrRateLimited):
		metrics.RecordMetadataLookup(metrics.LookupRejected, latency)
		r.logger.Debug(ctx, "metadata lookup rejected", logger.String("track", trackName))
	default:
		metrics.RecordMetadataLookup(metrics.LookupError, latency)
		r.logger.Debug(ctx, "metadata lookup failed",
			logger.String("track", trackName),
			logger.String("artist", artistName),
			logger.Error(err),
		)
	}
	return types.Metadata{}, false
}
