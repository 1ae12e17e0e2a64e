package metadata

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/okian/tunify/internal/domain/types"
	"github.com/okian/tunify/pkg/metrics"
)

// Breaker stops calling a failing upstream until it recovers.
type Breaker struct {
	next Fetcher
	cb   *gobreaker.CircuitBreaker[types.Metadata]
}

var _ Fetcher = (*Breaker)(nil)

// NewBreaker wraps next with a circuit breaker named name. State changes are
// exported as metrics.
func NewBreaker(name string, next Fetcher, opts ...BreakerOption) *Breaker {
	cfg := breakerConfig{
		failureThreshold: defaultFailureThreshold,
		openTimeout:      defaultOpenTimeout,
		interval:         defaultBreakerInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.interval,
		Timeout:     cfg.openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.failureThreshold
		},
		IsSuccessful: func(err error) bool {
			// A missing track, a local rate-limit wait or a cancelled caller says
			// nothing about upstream health.
			return err == nil ||
				errors.Is(err, ErrNoMatch) ||
				errors.Is(err, ErrRateLimited) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.UpdateBreakerState(name, float64(to))
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	}
	metrics.UpdateBreakerState(name, float64(gobreaker.StateClosed))
	return &Breaker{next: next, cb: gobreaker.NewCircuitBreaker[types.Metadata](settings)}
}

// Fetch runs next under the breaker. Rejections wrap ErrCircuitOpen.
func (b *Breaker) Fetch(ctx context.Context, trackName, artistName string) (types.Metadata, error) {
	meta, err := b.cb.Execute(func() (types.Metadata, error) {
		return b.next.Fetch(ctx, trackName, artistName)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return types.Metadata{}, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	}
	return meta, err
}

// State returns the breaker state name.
func (b *Breaker) State() string { return b.cb.State().String() }

type breakerConfig struct {
	failureThreshold uint32
	openTimeout      time.Duration
	interval         time.Duration
}
