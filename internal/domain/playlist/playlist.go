// Package playlist builds mood-ordered playlists for a genre.
package playlist

import (
	"errors"
	"fmt"
	"sort"

	"github.com/okian/tunify/internal/domain/catalogue"
	"github.com/okian/tunify/internal/domain/model"
)

// ErrInvalidLimit is returned when limit is below one.
var ErrInvalidLimit = errors.New("limit must be at least 1")

// Generate returns up to limit tracks whose genre equals genre exactly,
// ordered by (valence, energy) descending for energetic and ascending for
// calm. Equal keys keep catalogue order. An unknown genre yields an empty
// playlist.
func Generate(cat *catalogue.Catalogue, genre string, mood model.Mood, limit int) ([]model.Track, error) {
	if limit < 1 {
		return nil, fmt.Errorf("playlist limit=%d: %w", limit, ErrInvalidLimit)
	}
	var less func(a, b model.Track) bool
	switch mood {
	case model.MoodEnergetic:
		less = func(a, b model.Track) bool {
			if a.Valence != b.Valence {
				return a.Valence > b.Valence
			}
			return a.Energy > b.Energy
		}
	case model.MoodCalm:
		less = func(a, b model.Track) bool {
			if a.Valence != b.Valence {
				return a.Valence < b.Valence
			}
			return a.Energy < b.Energy
		}
	default:
		return nil, fmt.Errorf("playlist mood %d: %w", mood, model.ErrUnknownMood)
	}

	out := make([]model.Track, 0)
	cat.Each(func(_ int, t model.Track) {
		if t.Genre == genre {
			out = append(out, t)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
