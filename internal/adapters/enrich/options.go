package enrich

import "github.com/okian/tunify/pkg/logger"

// Option configures a Pool.
type Option func(*Pool)

// WithWorkers sets the number of concurrent lookups.
func WithWorkers(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLogger sets a custom logger for the pool.
func WithLogger(l logger.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.logger = l
		}
	}
}
