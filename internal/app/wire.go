package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/tunify/internal/adapters/metadata"
	"github.com/okian/tunify/internal/adapters/repository"
	"github.com/okian/tunify/internal/config"
	"github.com/okian/tunify/pkg/logger"
)

const breakerName = "spotify"

// NewSource builds the catalogue source selected by cfg.
func NewSource(cfg *config.Config) (repository.Source, error) {
	src, err := repository.New(cfg.CatalogueSource, cfg.CataloguePath, repository.WithTable(cfg.CatalogueTable))
	if err != nil {
		return nil, fmt.Errorf("catalogue source: %w", err)
	}
	return src, nil
}

// NewMetadataProvider returns the Spotify-backed resolver when metadata is
// enabled and credentials are present, and Noop otherwise.
func NewMetadataProvider(ctx context.Context, cfg *config.Config, log logger.Logger) metadata.Provider {
	if !cfg.MetadataEnabled || !cfg.HasSpotifyCredentials() {
		log.Info(ctx, "metadata enrichment disabled",
			logger.Bool("enabled", cfg.MetadataEnabled),
			logger.Bool("credentials", cfg.HasSpotifyCredentials()),
		)
		return metadata.Noop{}
	}

	timeout := time.Duration(cfg.MetadataTimeoutMS) * time.Millisecond
	spotify := metadata.NewSpotify(ctx, metadata.SpotifyConfig{
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		TokenURL:     cfg.SpotifyTokenURL,
		APIURL:       cfg.SpotifyAPIURL,
	},
		metadata.WithRateLimit(cfg.MetadataRatePerSec, cfg.MetadataBurst),
		metadata.WithRequestTimeout(timeout),
	)
	log.Info(ctx, "metadata enrichment enabled", logger.String("api", cfg.SpotifyAPIURL))
	return metadata.NewResolver(
		metadata.NewBreaker(breakerName, spotify),
		metadata.WithCacheSize(cfg.MetadataCacheSize),
		metadata.WithTimeout(timeout),
		metadata.WithLogger(log.Named("metadata")),
	)
}

// FromConfig builds a Service wired to the source and metadata provider
// described by cfg. Extra options are applied last.
func FromConfig(ctx context.Context, cfg *config.Config, log logger.Logger, opts ...Option) (*Service, error) {
	src, err := NewSource(cfg)
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithLogger(log),
		WithSource(src),
		WithMetadataProvider(NewMetadataProvider(ctx, cfg, log)),
		WithEnrichWorkers(cfg.EnrichWorkers),
	}
	return New(append(base, opts...)...), nil
}
