// Package enrich decorates result entries with metadata using a bounded pool
// of lookup workers.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/tunify/internal/adapters/metadata"
	"github.com/okian/tunify/internal/domain/types"
	"github.com/okian/tunify/pkg/logger"
	"github.com/okian/tunify/pkg/metrics"
)

const poolShutdownTimeout = 10 * time.Second

// ErrClosed is returned by Shutdown when the pool was already stopped.
var ErrClosed = errors.New("enrich pool closed")

type job struct {
	ctx     context.Context //nolint:containedctx // per-request context travels with the job
	index   int
	entry   types.Entry
	results chan<- result
}

type result struct {
	index int
	meta  *types.Metadata
}

// Pool runs a fixed number of workers that resolve metadata for entries.
type Pool struct {
	provider metadata.Provider
	workers  int
	jobs     chan job

	once     sync.Once
	shutdown chan struct{}
	wg       sync.WaitGroup

	logger logger.Logger
}

// New creates a pool over provider. Enrich blocks until Start has launched
// the workers.
func New(provider metadata.Provider, opts ...Option) *Pool {
	p := &Pool{
		provider: provider,
		workers:  runtime.NumCPU(),
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("enrich"),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.jobs = make(chan job, p.workers)
	return p
}

// Start launches the workers. They exit when ctx is done or on Shutdown.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx)
	}
	metrics.UpdateEnrichWorkers(p.workers)
	p.logger.Info(ctx, "enrich pool started", logger.Int("workers", p.workers))
}

func (p *Pool) run(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case j := <-p.jobs:
			j.results <- p.process(j)
		}
	}
}

func (p *Pool) process(j job) result {
	if j.ctx.Err() != nil {
		return result{index: j.index}
	}
	meta, ok := p.provider.Lookup(j.ctx, j.entry.TrackName, j.entry.ArtistName)
	if !ok || meta.Empty() {
		return result{index: j.index}
	}
	return result{index: j.index, meta: &meta}
}

// Enrich resolves metadata for every entry and returns one pointer per entry
// in input order. Missing metadata, cancellation and a stopped pool all
// yield nil for the affected entries.
func (p *Pool) Enrich(ctx context.Context, entries []types.Entry) []*types.Metadata {
	out := make([]*types.Metadata, len(entries))
	if len(entries) == 0 {
		return out
	}

	results := make(chan result, len(entries))
	submitted := 0
submit:
	for i, e := range entries {
		select {
		case p.jobs <- job{ctx: ctx, index: i, entry: e, results: results}:
			submitted++
		case <-ctx.Done():
			break submit
		case <-p.shutdown:
			break submit
		}
	}

	for received := 0; received < submitted; received++ {
		select {
		case r := <-results:
			out[r.index] = r.meta
		case <-ctx.Done():
			return out
		case <-p.shutdown:
			return out
		}
	}
	return out
}

// Shutdown stops the workers and waits for in-flight lookups to finish.
func (p *Pool) Shutdown(ctx context.Context) error {
	closed := false
	p.once.Do(func() {
		close(p.shutdown)
		closed = true
	})
	if !closed {
		return ErrClosed
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()
	select {
	case <-done:
		metrics.UpdateEnrichWorkers(0)
		return nil
	case <-shutdownCtx.Done():
		p.logger.Warn(ctx, "enrich pool shutdown timed out")
		return fmt.Errorf("enrich shutdown timed out: %w", shutdownCtx.Err())
	}
}
