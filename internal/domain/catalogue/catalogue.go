// Package catalogue builds the immutable, ordered track catalogue and its
// case-insensitive name index.
package catalogue

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/tunify/internal/domain/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Column names required in every dataset.
const (
	ColTrackName        = "track_name"
	ColArtistName       = "artist_name"
	ColGenre            = "genre"
	ColPopularity       = "popularity"
	ColDanceability     = "danceability"
	ColEnergy           = "energy"
	ColKey              = "key"
	ColLoudness         = "loudness"
	ColMode             = "mode"
	ColSpeechiness      = "speechiness"
	ColAcousticness     = "acousticness"
	ColInstrumentalness = "instrumentalness"
	ColLiveness         = "liveness"
	ColValence          = "valence"
	ColTempo            = "tempo"
)

// RequiredColumns lists the dataset columns in canonical order.
var RequiredColumns = []string{
	ColTrackName, ColArtistName, ColGenre, ColPopularity,
	ColDanceability, ColEnergy, ColKey, ColLoudness, ColMode,
	ColSpeechiness, ColAcousticness, ColInstrumentalness,
	ColLiveness, ColValence, ColTempo,
}

// Catalogue is an ordered, read-only set of tracks. The index of a track is
// its identity for the feature matrix.
type Catalogue struct {
	tracks []model.Track
	byName map[string]int
	genres []string
}

// New copies tracks into a Catalogue and builds the folded name index.
// When names collide the first occurrence wins.
func New(tracks []model.Track) *Catalogue {
	c := &Catalogue{
		tracks: make([]model.Track, len(tracks)),
		byName: make(map[string]int, len(tracks)),
	}
	copy(c.tracks, tracks)

	seenGenre := make(map[string]struct{})
	for i, t := range c.tracks {
		key := foldName(t.TrackName)
		if _, exists := c.byName[key]; !exists {
			c.byName[key] = i
		}
		if _, exists := seenGenre[t.Genre]; !exists {
			seenGenre[t.Genre] = struct{}{}
			c.genres = append(c.genres, t.Genre)
		}
	}
	sort.Strings(c.genres)
	return c
}

// foldName lowercases a track name for case-insensitive exact matching.
// Lowercasing, not full case folding, so "STRASSE" does not match "Straße".
// A Caser is stateful, so one is created per call.
func foldName(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Len returns the number of tracks.
func (c *Catalogue) Len() int { return len(c.tracks) }

// Track returns the track at index i.
func (c *Catalogue) Track(i int) model.Track { return c.tracks[i] }

// Tracks returns a copy of all tracks in catalogue order.
func (c *Catalogue) Tracks() []model.Track {
	out := make([]model.Track, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// IndexOf returns the first row whose track name matches name case-insensitively.
func (c *Catalogue) IndexOf(name string) (int, bool) {
	i, ok := c.byName[foldName(name)]
	return i, ok
}

// Genres returns the distinct genres sorted ascending.
func (c *Catalogue) Genres() []string {
	out := make([]string, len(c.genres))
	copy(out, c.genres)
	return out
}

// Each calls fn for every track in catalogue order.
func (c *Catalogue) Each(fn func(i int, t model.Track)) {
	for i := range c.tracks {
		fn(i, c.tracks[i])
	}
}

// FromRecords builds a Catalogue from a header and data rows. Column order is
// free and unknown columns are ignored. Any missing column, unmapped key/mode
// or unparsable number fails the whole load with a *DataError.
func FromRecords(header []string, rows [][]string) (*Catalogue, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, name := range RequiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &DataError{Column: name, Err: ErrMissingColumn}
		}
	}

	tracks := make([]model.Track, 0, len(rows))
	for r, rec := range rows {
		t, err := parseRow(cols, rec, r+1)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return New(tracks), nil
}

func parseRow(cols map[string]int, rec []string, row int) (model.Track, error) {
	field := func(name string) (string, error) {
		i := cols[name]
		if i >= len(rec) {
			return "", &DataError{Row: row, Column: name, Err: ErrShortRow}
		}
		return rec[i], nil
	}
	number := func(name string) (float64, error) {
		raw, err := field(name)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &DataError{Row: row, Column: name, Value: raw, Err: ErrBadNumber}
		}
		return v, nil
	}

	var (
		t   model.Track
		err error
	)
	if t.TrackName, err = field(ColTrackName); err != nil {
		return t, err
	}
	if t.ArtistName, err = field(ColArtistName); err != nil {
		return t, err
	}
	if t.Genre, err = field(ColGenre); err != nil {
		return t, err
	}

	rawKey, err := field(ColKey)
	if err != nil {
		return t, err
	}
	key, ok := KeyCode(rawKey)
	if !ok {
		return t, &DataError{Row: row, Column: ColKey, Value: rawKey, Err: ErrUnknownKey}
	}
	t.Key = key

	rawMode, err := field(ColMode)
	if err != nil {
		return t, err
	}
	mode, ok := ModeCode(rawMode)
	if !ok {
		return t, &DataError{Row: row, Column: ColMode, Value: rawMode, Err: ErrUnknownMode}
	}
	t.Mode = mode

	numeric := []struct {
		name string
		dst  *float64
	}{
		{ColPopularity, &t.Popularity},
		{ColDanceability, &t.Danceability},
		{ColEnergy, &t.Energy},
		{ColLoudness, &t.Loudness},
		{ColSpeechiness, &t.Speechiness},
		{ColAcousticness, &t.Acousticness},
		{ColInstrumentalness, &t.Instrumentalness},
		{ColLiveness, &t.Liveness},
		{ColValence, &t.Valence},
		{ColTempo, &t.Tempo},
	}
	for _, n := range numeric {
		v, err := number(n.name)
		if err != nil {
			return t, err
		}
		*n.dst = v
	}
	return t, nil
}
