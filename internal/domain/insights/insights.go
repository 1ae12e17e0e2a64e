// Package insights summarizes the catalogue by genre and mood.
package insights

import (
	"sort"

	"github.com/okian/tunify/internal/domain/catalogue"
	"github.com/okian/tunify/internal/domain/model"
)

const moodThreshold = 0.5

// GenreCount is the number of tracks in one genre.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// MoodBreakdown counts tracks per mood quadrant.
type MoodBreakdown struct {
	Energetic int `json:"energetic"`
	Calm      int `json:"calm"`
	Mixed     int `json:"mixed"`
	Total     int `json:"total"`
}

// Summary bundles the catalogue insights served to clients.
type Summary struct {
	TopGenres []GenreCount  `json:"top_genres"`
	Moods     MoodBreakdown `json:"moods"`
}

// TopGenres returns the k largest genres. Ties are ordered by name and k < 1
// returns every genre.
func TopGenres(cat *catalogue.Catalogue, k int) []GenreCount {
	counts := make(map[string]int)
	cat.Each(func(_ int, t model.Track) { counts[t.Genre]++ })

	out := make([]GenreCount, 0, len(counts))
	for g, c := range counts {
		out = append(out, GenreCount{Genre: g, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// Moods classifies every track as energetic (valence and energy above 0.5),
// calm (both at or below 0.5) or mixed.
func Moods(cat *catalogue.Catalogue) MoodBreakdown {
	var b MoodBreakdown
	cat.Each(func(_ int, t model.Track) {
		b.Total++
		switch {
		case t.Valence > moodThreshold && t.Energy > moodThreshold:
			b.Energetic++
		case t.Valence <= moodThreshold && t.Energy <= moodThreshold:
			b.Calm++
		default:
			b.Mixed++
		}
	})
	return b
}

// Point is one track on the popularity against danceability chart.
type Point struct {
	TrackName    string  `json:"track_name"`
	ArtistName   string  `json:"artist_name"`
	Genre        string  `json:"genre"`
	Popularity   float64 `json:"popularity"`
	Danceability float64 `json:"danceability"`
}

// Scatter returns the first limit tracks, in catalogue order, as chart
// points. limit < 1 returns every track.
func Scatter(cat *catalogue.Catalogue, limit int) []Point {
	n := cat.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		t := cat.Track(i)
		out = append(out, Point{
			TrackName:    t.TrackName,
			ArtistName:   t.ArtistName,
			Genre:        t.Genre,
			Popularity:   t.Popularity,
			Danceability: t.Danceability,
		})
	}
	return out
}

// Summarize computes TopGenres and Moods together.
func Summarize(cat *catalogue.Catalogue, k int) Summary {
	return Summary{TopGenres: TopGenres(cat, k), Moods: Moods(cat)}
}
