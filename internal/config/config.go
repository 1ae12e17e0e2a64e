// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers file and environment on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"runtime"
)

// Catalogue source kinds.
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"omitempty,oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// CatalogueSource selects where tracks are read from.
	CatalogueSource string `koanf:"catalogue_source" validate:"required,oneof=csv sqlite"`

	// CataloguePath is the CSV file path or the SQLite DSN.
	CataloguePath string `koanf:"catalogue_path" validate:"required"`

	// CatalogueTable is the SQLite table holding tracks.
	CatalogueTable string `koanf:"catalogue_table" validate:"required_if=CatalogueSource sqlite"`

	// DefaultRecommendN is used when /recommend omits n.
	DefaultRecommendN int `koanf:"default_recommend_n" validate:"gte=1"`

	// MaxRecommendN caps /recommend?n.
	MaxRecommendN int `koanf:"max_recommend_n" validate:"gtefield=DefaultRecommendN"`

	// DefaultPlaylistLimit is used when /playlist omits limit.
	DefaultPlaylistLimit int `koanf:"default_playlist_limit" validate:"gte=1"`

	// MaxPlaylistLimit caps /playlist?limit.
	MaxPlaylistLimit int `koanf:"max_playlist_limit" validate:"gtefield=DefaultPlaylistLimit"`

	// MetadataEnabled turns on Spotify enrichment when credentials are present.
	MetadataEnabled bool `koanf:"metadata_enabled"`

	// SpotifyClientID and SpotifyClientSecret are client-credentials for the Web API.
	SpotifyClientID     string `koanf:"spotify_client_id"`
	SpotifyClientSecret string `koanf:"spotify_client_secret"`

	// SpotifyAPIURL and SpotifyTokenURL point at the Web API and the accounts service.
	SpotifyAPIURL   string `koanf:"spotify_api_url" validate:"required,url"`
	SpotifyTokenURL string `koanf:"spotify_token_url" validate:"required,url"`

	// MetadataTimeoutMS bounds a single lookup.
	MetadataTimeoutMS int `koanf:"metadata_timeout_ms" validate:"gte=1"`

	// MetadataRatePerSec and MetadataBurst shape outgoing lookups.
	MetadataRatePerSec float64 `koanf:"metadata_rate_per_sec" validate:"gt=0"`
	MetadataBurst      int     `koanf:"metadata_burst" validate:"gte=1"`

	// MetadataCacheSize bounds the lookup cache; 0 or negative means unbounded.
	MetadataCacheSize int `koanf:"metadata_cache_size"`

	// EnrichWorkers sets the number of concurrent metadata lookups per request.
	EnrichWorkers int `koanf:"enrich_workers" validate:"gte=1"`
}

// HasSpotifyCredentials reports whether both client credentials are set.
func (c *Config) HasSpotifyCredentials() bool {
	return c.SpotifyClientID != "" && c.SpotifyClientSecret != ""
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		CatalogueSource:      SourceCSV,
		CataloguePath:        "data/SpotifyFeatures.csv",
		CatalogueTable:       "tracks",
		DefaultRecommendN:    5,
		MaxRecommendN:        50,
		DefaultPlaylistLimit: 10,
		MaxPlaylistLimit:     100,
		MetadataEnabled:      true,
		SpotifyAPIURL:        "https://api.spotify.com/v1",
		SpotifyTokenURL:      "https://accounts.spotify.com/api/token",
		MetadataTimeoutMS:    3000,
		MetadataRatePerSec:   10,
		MetadataBurst:        5,
		MetadataCacheSize:    10_000,
		EnrichWorkers:        runtime.NumCPU(),
	}
}
