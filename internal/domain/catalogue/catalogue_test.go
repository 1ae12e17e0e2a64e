package catalogue_test

import (
	"errors"
	"testing"

	"github.com/okian/tunify/internal/domain/catalogue"
	"github.com/okian/tunify/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var header = []string{
	"genre", "artist_name", "track_name", "track_id", "popularity",
	"acousticness", "danceability", "duration_ms", "energy", "instrumentalness",
	"key", "liveness", "loudness", "mode", "speechiness", "tempo", "time_signature", "valence",
}

func row(genre, artist, name, key, mode string) []string {
	return []string{
		genre, artist, name, "id", "61",
		"0.58", "0.69", "200000", "0.52", "0",
		key, "0.09", "-5.9", mode, "0.05", "118.0", "4/4", "0.81",
	}
}

func TestFromRecords(t *testing.T) {
	Convey("Given a well-formed dataset", t, func() {
		rows := [][]string{
			row("Pop", "Ed Sheeran", "Shape of You", "C#", "Minor"),
			row("Rock", "Queen", "Bohemian Rhapsody", "A#", "Major"),
			row("Pop", "Somebody Else", "SHAPE OF YOU", "B", "Major"),
		}

		cat, err := catalogue.FromRecords(header, rows)

		Convey("Then it should load every row in order", func() {
			So(err, ShouldBeNil)
			So(cat.Len(), ShouldEqual, 3)
			So(cat.Track(1).ArtistName, ShouldEqual, "Queen")
		})

		Convey("And key and mode should be mapped to codes", func() {
			So(cat.Track(0).Key, ShouldEqual, 1)
			So(cat.Track(0).Mode, ShouldEqual, 0)
			So(cat.Track(1).Key, ShouldEqual, 10)
			So(cat.Track(1).Mode, ShouldEqual, 1)
			So(cat.Track(2).Key, ShouldEqual, 11)
		})

		Convey("And numeric columns should be parsed by name, not position", func() {
			tr := cat.Track(0)
			So(tr.Popularity, ShouldEqual, 61)
			So(tr.Danceability, ShouldEqual, 0.69)
			So(tr.Valence, ShouldEqual, 0.81)
			So(tr.Tempo, ShouldEqual, 118.0)
			So(tr.Loudness, ShouldEqual, -5.9)
		})

		Convey("And lookups should be case-insensitive with first match winning", func() {
			i, ok := cat.IndexOf("shape of you")
			So(ok, ShouldBeTrue)
			So(i, ShouldEqual, 0)

			i, ok = cat.IndexOf("BOHEMIAN rhapsody")
			So(ok, ShouldBeTrue)
			So(i, ShouldEqual, 1)

			_, ok = cat.IndexOf("Nonexistent Song Title XYZ")
			So(ok, ShouldBeFalse)
		})

		Convey("And non-ASCII names should match by lowercasing only", func() {
			german := catalogue.New([]model.Track{{TrackName: "Straße"}, {TrackName: "ÉTÉ"}})

			i, ok := german.IndexOf("STRASSE")
			So(ok, ShouldBeFalse)

			i, ok = german.IndexOf("straße")
			So(ok, ShouldBeTrue)
			So(i, ShouldEqual, 0)

			i, ok = german.IndexOf("été")
			So(ok, ShouldBeTrue)
			So(i, ShouldEqual, 1)
		})

		Convey("And genres should be distinct and sorted", func() {
			So(cat.Genres(), ShouldResemble, []string{"Pop", "Rock"})
		})
	})

	Convey("Given a header missing a required column", t, func() {
		_, err := catalogue.FromRecords([]string{"track_name", "artist_name"}, nil)

		Convey("Then a DataError for the column should be returned", func() {
			var de *catalogue.DataError
			So(errors.As(err, &de), ShouldBeTrue)
			So(errors.Is(err, catalogue.ErrMissingColumn), ShouldBeTrue)
			So(de.Column, ShouldEqual, "genre")
		})
	})

	Convey("Given a row with an unknown key", t, func() {
		rows := [][]string{
			row("Pop", "A", "One", "C", "Major"),
			row("Pop", "B", "Two", "Db", "Major"),
		}
		cat, err := catalogue.FromRecords(header, rows)

		Convey("Then the whole load should be rejected", func() {
			So(cat, ShouldBeNil)
			So(errors.Is(err, catalogue.ErrUnknownKey), ShouldBeTrue)
			var de *catalogue.DataError
			So(errors.As(err, &de), ShouldBeTrue)
			So(de.Row, ShouldEqual, 2)
			So(de.Value, ShouldEqual, "Db")
			So(err.Error(), ShouldContainSubstring, "row 2 column key")
		})
	})

	Convey("Given a row with an unknown mode", t, func() {
		_, err := catalogue.FromRecords(header, [][]string{row("Pop", "A", "One", "C", "minor")})

		Convey("Then ErrUnknownMode should be returned", func() {
			So(errors.Is(err, catalogue.ErrUnknownMode), ShouldBeTrue)
		})
	})

	Convey("Given a row with a non-numeric feature", t, func() {
		bad := row("Pop", "A", "One", "C", "Major")
		bad[17] = "high"
		_, err := catalogue.FromRecords(header, [][]string{bad})

		Convey("Then ErrBadNumber should be returned", func() {
			So(errors.Is(err, catalogue.ErrBadNumber), ShouldBeTrue)
		})
	})

	Convey("Given a row with NaN", t, func() {
		bad := row("Pop", "A", "One", "C", "Major")
		bad[15] = "NaN"
		_, err := catalogue.FromRecords(header, [][]string{bad})

		Convey("Then it should be rejected as a bad number", func() {
			So(errors.Is(err, catalogue.ErrBadNumber), ShouldBeTrue)
		})
	})

	Convey("Given a truncated row", t, func() {
		_, err := catalogue.FromRecords(header, [][]string{{"Pop", "A"}})

		Convey("Then ErrShortRow should be returned", func() {
			So(errors.Is(err, catalogue.ErrShortRow), ShouldBeTrue)
		})
	})

	Convey("Given a header-only dataset", t, func() {
		cat, err := catalogue.FromRecords(header, nil)

		Convey("Then an empty catalogue should be returned", func() {
			So(err, ShouldBeNil)
			So(cat.Len(), ShouldEqual, 0)
			So(cat.Genres(), ShouldBeEmpty)
		})
	})
}

func TestCatalogueImmutability(t *testing.T) {
	Convey("Given a catalogue built from a slice", t, func() {
		src := []model.Track{{TrackName: "A", Genre: "pop"}, {TrackName: "B", Genre: "rock"}}
		cat := catalogue.New(src)

		Convey("When the source slice and returned copies are mutated", func() {
			src[0].TrackName = "changed"
			tracks := cat.Tracks()
			tracks[1].TrackName = "changed"
			genres := cat.Genres()
			genres[0] = "changed"

			Convey("Then the catalogue should be unaffected", func() {
				So(cat.Track(0).TrackName, ShouldEqual, "A")
				So(cat.Track(1).TrackName, ShouldEqual, "B")
				So(cat.Genres(), ShouldResemble, []string{"pop", "rock"})
			})
		})

		Convey("When iterating", func() {
			var names []string
			cat.Each(func(_ int, t model.Track) { names = append(names, t.TrackName) })

			Convey("Then catalogue order should be preserved", func() {
				So(names, ShouldResemble, []string{"A", "B"})
			})
		})
	})
}

func TestVocabulary(t *testing.T) {
	Convey("Given the key and mode vocabularies", t, func() {
		notes := []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

		Convey("Then every note should map to its position", func() {
			for i, n := range notes {
				code, ok := catalogue.KeyCode(n)
				So(ok, ShouldBeTrue)
				So(code, ShouldEqual, float64(i))
			}
		})

		Convey("And flats should not be recognized", func() {
			_, ok := catalogue.KeyCode("Bb")
			So(ok, ShouldBeFalse)
		})

		Convey("And modes should map to 0 and 1", func() {
			minor, ok := catalogue.ModeCode(" Minor ")
			So(ok, ShouldBeTrue)
			So(minor, ShouldEqual, 0)
			major, _ := catalogue.ModeCode("Major")
			So(major, ShouldEqual, 1)
		})
	})
}
