// Package repository loads the track catalogue from its backing store.
package repository

import (
	"context"
	"fmt"

	"github.com/okian/tunify/internal/domain/catalogue"
	"github.com/okian/tunify/internal/domain/model"
)

// Source kinds accepted by New.
const (
	KindCSV    = "csv"
	KindSQLite = "sqlite"
)

const defaultTable = "tracks"

// Source produces a fully validated catalogue. A load either succeeds for
// every row or fails; partial catalogues are never returned.
type Source interface {
	Load(ctx context.Context) (*catalogue.Catalogue, error)
}

// New returns the Source for kind reading from path.
func New(kind, path string, opts ...Option) (Source, error) {
	o := options{table: defaultTable}
	for _, opt := range opts {
		opt(&o)
	}
	switch kind {
	case KindCSV:
		return NewCSVSource(path), nil
	case KindSQLite:
		return NewSQLiteSource(path, o.table)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, kind)
	}
}

// Static serves an in-memory track list.
type Static struct {
	tracks []model.Track
}

// NewStatic wraps tracks as a Source.
func NewStatic(tracks []model.Track) *Static {
	return &Static{tracks: tracks}
}

// Load builds the catalogue from the wrapped tracks.
func (s *Static) Load(ctx context.Context) (*catalogue.Catalogue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return catalogue.New(s.tracks), nil
}
