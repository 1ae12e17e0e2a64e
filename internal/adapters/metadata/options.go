package metadata

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/tunify/pkg/logger"
)

const (
	defaultRatePerSec       = 10
	defaultBurst            = 5
	defaultTimeout          = 3 * time.Second
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 30 * time.Second
	defaultBreakerInterval  = time.Minute
)

// SpotifyOption configures a Spotify client.
type SpotifyOption func(*Spotify)

// WithRateLimit caps outgoing searches at perSec with the given burst.
func WithRateLimit(perSec float64, burst int) SpotifyOption {
	return func(s *Spotify) {
		if perSec > 0 && burst > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
		}
	}
}

// WithRequestTimeout bounds each HTTP exchange, token refreshes included.
func WithRequestTimeout(d time.Duration) SpotifyOption {
	return func(s *Spotify) {
		if d > 0 {
			s.httpClient.Timeout = d
		}
	}
}

// BreakerOption configures a Breaker.
type BreakerOption func(*breakerConfig)

// WithFailureThreshold trips the breaker after n consecutive failures.
func WithFailureThreshold(n uint32) BreakerOption {
	return func(c *breakerConfig) {
		if n > 0 {
			c.failureThreshold = n
		}
	}
}

// WithOpenTimeout sets how long the breaker stays open before probing.
func WithOpenTimeout(d time.Duration) BreakerOption {
	return func(c *breakerConfig) {
		if d > 0 {
			c.openTimeout = d
		}
	}
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCacheSize bounds the result cache. Zero or less keeps every result.
func WithCacheSize(n int) ResolverOption {
	return func(r *Resolver) {
		r.cache = NewCache(n)
	}
}

// WithTimeout bounds a single lookup.
func WithTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithLogger sets the resolver logger.
func WithLogger(l logger.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}
