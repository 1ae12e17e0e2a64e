// Package metadata resolves optional presentation links (album art, preview,
// external URL) for catalogue tracks.
package metadata

import (
	"context"

	"github.com/okian/tunify/internal/domain/types"
)

// Provider looks up metadata for a track. It never fails: absence or any
// upstream problem is reported as false.
type Provider interface {
	Lookup(ctx context.Context, trackName, artistName string) (types.Metadata, bool)
}

// Fetcher is a single upstream lookup that reports why it failed.
type Fetcher interface {
	Fetch(ctx context.Context, trackName, artistName string) (types.Metadata, error)
}

// Noop is the Provider used when no credentials are configured.
type Noop struct{}

var _ Provider = Noop{}

// Lookup always reports no metadata.
func (Noop) Lookup(context.Context, string, string) (types.Metadata, bool) {
	return types.Metadata{}, false
}
