package types_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/okian/tunify/internal/domain/model"
	types "github.com/okian/tunify/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestProject(t *testing.T) {
	Convey("Given a full track", t, func() {
		track := model.Track{
			TrackName:  "Shape of You",
			ArtistName: "Ed Sheeran",
			Genre:      "Pop",
			Popularity: 61,
			Energy:     0.52,
			Valence:    0.81,
		}

		Convey("When projecting it", func() {
			entry := types.Project(track)

			Convey("Then only the caller-visible fields should remain", func() {
				So(entry, ShouldResemble, types.Entry{
					TrackName:  "Shape of You",
					ArtistName: "Ed Sheeran",
					Genre:      "Pop",
					Popularity: 61,
				})
			})
		})

		Convey("When projecting a list", func() {
			second := track
			second.TrackName = "Perfect"
			entries := types.ProjectAll([]model.Track{track, second})

			Convey("Then order should be preserved", func() {
				So(len(entries), ShouldEqual, 2)
				So(entries[0].TrackName, ShouldEqual, "Shape of You")
				So(entries[1].TrackName, ShouldEqual, "Perfect")
			})
		})

		Convey("When projecting an empty list", func() {
			Convey("Then a non-nil empty slice should be returned", func() {
				entries := types.ProjectAll(nil)
				So(entries, ShouldNotBeNil)
				So(entries, ShouldBeEmpty)
			})
		})
	})
}

func TestJSONShape(t *testing.T) {
	Convey("Given result values", t, func() {
		entry := types.Entry{TrackName: "a", ArtistName: "b", Genre: "Pop", Popularity: 50}

		Convey("Then a recommendation should flatten the entry fields", func() {
			raw, err := json.Marshal(types.Recommendation{Entry: entry, Similarity: 0.5})
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, `{"track_name":"a","artist_name":"b","genre":"Pop","popularity":50,"similarity":0.5}`)
		})

		Convey("And an enriched entry without metadata should omit it", func() {
			raw, err := json.Marshal(types.Enriched{Entry: entry})
			So(err, ShouldBeNil)
			So(string(raw), ShouldNotContainSubstring, "metadata")
			So(string(raw), ShouldNotContainSubstring, "similarity")
		})

		Convey("And absent metadata links should be omitted", func() {
			meta := &types.Metadata{PreviewURL: "https://p"}
			raw, err := json.Marshal(types.Enriched{Entry: entry, Metadata: meta})
			So(err, ShouldBeNil)
			So(string(raw), ShouldContainSubstring, `"metadata":{"preview_url":"https://p"}`)
			So(meta.Empty(), ShouldBeFalse)
			So(types.Metadata{}.Empty(), ShouldBeTrue)
		})
	})
}
