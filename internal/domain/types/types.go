// Package types contains the result shapes returned to callers.
package types

import "github.com/okian/tunify/internal/domain/model"

// Entry is the projection of a track exposed to callers.
type Entry struct {
	TrackName  string  `json:"track_name"`
	ArtistName string  `json:"artist_name"`
	Genre      string  `json:"genre"`
	Popularity float64 `json:"popularity"`
}

// Recommendation is an Entry with its similarity to the query track.
type Recommendation struct {
	Entry
	Similarity float64 `json:"similarity"`
}

// Metadata holds optional presentation links for a track.
type Metadata struct {
	AlbumArtURL string `json:"album_art_url,omitempty"`
	PreviewURL  string `json:"preview_url,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
}

// Empty reports whether no link is set.
func (m Metadata) Empty() bool {
	return m.AlbumArtURL == "" && m.PreviewURL == "" && m.ExternalURL == ""
}

// Enriched is an Entry decorated with metadata when a lookup succeeded.
// Similarity is set only for recommendation results.
type Enriched struct {
	Entry
	Similarity *float64  `json:"similarity,omitempty"`
	Metadata   *Metadata `json:"metadata,omitempty"`
}

// Project keeps the caller-visible fields of a track.
func Project(t model.Track) Entry {
	return Entry{
		TrackName:  t.TrackName,
		ArtistName: t.ArtistName,
		Genre:      t.Genre,
		Popularity: t.Popularity,
	}
}

// ProjectAll projects tracks preserving order.
func ProjectAll(tracks []model.Track) []Entry {
	out := make([]Entry, len(tracks))
	for i, t := range tracks {
		out[i] = Project(t)
	}
	return out
}
