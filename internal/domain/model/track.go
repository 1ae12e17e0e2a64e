// Package model contains domain models passed between layers.
package model

// FeatureCount is the number of audio features used for similarity.
const FeatureCount = 11

// FeatureNames lists the similarity features in column order.
var FeatureNames = [FeatureCount]string{
	"danceability",
	"energy",
	"key",
	"loudness",
	"mode",
	"speechiness",
	"acousticness",
	"instrumentalness",
	"liveness",
	"valence",
	"tempo",
}

// Track is one catalogue row. Key is 0..11 (C..B), Mode is 0 minor / 1 major.
type Track struct {
	TrackName        string
	ArtistName       string
	Genre            string
	Popularity       float64
	Danceability     float64
	Energy           float64
	Key              float64
	Loudness         float64
	Mode             float64
	Speechiness      float64
	Acousticness     float64
	Instrumentalness float64
	Liveness         float64
	Valence          float64
	Tempo            float64
}

// Features returns the similarity features in FeatureNames order.
func (t Track) Features() [FeatureCount]float64 {
	return [FeatureCount]float64{
		t.Danceability,
		t.Energy,
		t.Key,
		t.Loudness,
		t.Mode,
		t.Speechiness,
		t.Acousticness,
		t.Instrumentalness,
		t.Liveness,
		t.Valence,
		t.Tempo,
	}
}
