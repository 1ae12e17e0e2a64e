// Package similarity ranks catalogue tracks by cosine similarity of their
// standardized audio features.
package similarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/okian/tunify/internal/domain/catalogue"
	"github.com/okian/tunify/internal/domain/features"
	"github.com/okian/tunify/internal/domain/model"
)

// Match is one ranked neighbour of the query track.
type Match struct {
	Index int
	Track model.Track
	Score float64
}

// Recommender returns the tracks most similar to a named song.
type Recommender interface {
	Recommend(name string, n int) ([]Match, error)
}

// Engine answers similarity queries over a fixed catalogue and its matrix.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	cat    *catalogue.Catalogue
	matrix *features.Matrix
}

var _ Recommender = (*Engine)(nil)

// NewEngine binds a catalogue to its normalized feature matrix.
func NewEngine(cat *catalogue.Catalogue, matrix *features.Matrix) *Engine {
	return &Engine{cat: cat, matrix: matrix}
}

// Cosine returns dot(a,b)/(|a||b|). It is 0 when either vector has zero
// magnitude or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Recommend returns up to n tracks most similar to the first track whose name
// matches name case-insensitively. The query track is never included. Equal
// scores keep catalogue order.
func (e *Engine) Recommend(name string, n int) ([]Match, error) {
	if n < 1 {
		return nil, fmt.Errorf("recommend n=%d: %w", n, ErrInvalidLimit)
	}
	q, ok := e.cat.IndexOf(name)
	if !ok {
		return nil, fmt.Errorf("recommend %q: %w", name, ErrNotFound)
	}

	query := e.matrix.Row(q)
	matches := make([]Match, 0, e.matrix.Rows())
	for i := 0; i < e.matrix.Rows(); i++ {
		if i == q {
			continue
		}
		matches = append(matches, Match{Index: i, Score: Cosine(query, e.matrix.Row(i))})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > n {
		matches = matches[:n]
	}
	for i := range matches {
		matches[i].Track = e.cat.Track(matches[i].Index)
	}
	return matches, nil
}
