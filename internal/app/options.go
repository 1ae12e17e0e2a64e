package service

import (
	"github.com/okian/tunify/internal/adapters/metadata"
	"github.com/okian/tunify/internal/adapters/repository"
	"github.com/okian/tunify/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets where the catalogue is loaded from.
func WithSource(src repository.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithMetadataProvider sets the provider used by the enriched queries.
func WithMetadataProvider(p metadata.Provider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithEnrichWorkers sets the number of concurrent metadata lookups.
func WithEnrichWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.enrichWorkers = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
