package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/tunify/internal/domain/catalogue"
	"github.com/okian/tunify/internal/domain/similarity"
	. "github.com/smartystreets/goconvey/convey"
)

const fixtureCSV = `track_name,artist_name,genre,popularity,danceability,energy,key,loudness,mode,speechiness,acousticness,instrumentalness,liveness,valence,tempo
A,Artist A,Pop,50,0.5,0.9,C,-5,Major,0.05,0.1,0,0.1,0.9,120
B,Artist B,Pop,60,0.5,0.1,D,-9,Minor,0.05,0.8,0,0.1,0.1,80
C,Artist C,Pop,70,0.5,0.5,E,-7,Major,0.05,0.4,0,0.1,0.5,100
D,Artist D,Jazz,40,0.3,0.3,F,-12,Minor,0.04,0.9,0.5,0.2,0.3,90
`

func writeCatalogue(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracks.csv")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, catalogue string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--catalogue", catalogue, "--source", "csv"}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRecommendCommand(t *testing.T) {
	Convey("Given a catalogue file", t, func() {
		path := writeCatalogue(t, fixtureCSV)

		Convey("When recommending for a known song", func() {
			out, _, err := runCLI(t, path, "recommend", "a", "-n", "2")

			Convey("Then a ranked table should be printed without the query", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Similarity")
				So(out, ShouldNotContainSubstring, "Artist A")
				So(strings.Count(out, "Pop")+strings.Count(out, "Jazz"), ShouldEqual, 2)
			})
		})

		Convey("When the song is unknown", func() {
			_, _, err := runCLI(t, path, "recommend", "Nonexistent Song Title XYZ")

			Convey("Then the command should fail with not found", func() {
				So(errors.Is(err, similarity.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestPlaylistCommand(t *testing.T) {
	Convey("Given a catalogue file", t, func() {
		path := writeCatalogue(t, fixtureCSV)

		Convey("When building an energetic playlist", func() {
			out, _, err := runCLI(t, path, "playlist", "Pop", "--mood", "energetic", "--limit", "3")

			Convey("Then tracks should be ordered by valence descending", func() {
				So(err, ShouldBeNil)
				a := strings.Index(out, "Artist A")
				c := strings.Index(out, "Artist C")
				b := strings.Index(out, "Artist B")
				So(a, ShouldBeGreaterThan, -1)
				So(a, ShouldBeLessThan, c)
				So(c, ShouldBeLessThan, b)
			})
		})

		Convey("When exporting to CSV", func() {
			dest := filepath.Join(t.TempDir(), "out.csv")
			_, _, err := runCLI(t, path, "playlist", "Pop", "--mood", "calm", "--csv", dest)

			Convey("Then the file should hold the header and rows in calm order", func() {
				So(err, ShouldBeNil)
				data, err := os.ReadFile(dest)
				So(err, ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(string(data)), "\n")
				So(lines[0], ShouldEqual, "track_name,artist_name,genre,popularity")
				So(lines[1], ShouldStartWith, "B,")
				So(lines[3], ShouldStartWith, "A,")
			})
		})

		Convey("When the genre is unknown", func() {
			out, _, err := runCLI(t, path, "playlist", "Polka", "--mood", "calm")

			Convey("Then an empty result should be reported", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "No tracks found")
			})
		})

		Convey("When the mood is unknown", func() {
			_, _, err := runCLI(t, path, "playlist", "Pop", "--mood", "sleepy")

			Convey("Then the command should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestCatalogueCommands(t *testing.T) {
	Convey("Given a catalogue file", t, func() {
		path := writeCatalogue(t, fixtureCSV)

		Convey("Then genres should be listed in sorted order", func() {
			out, _, err := runCLI(t, path, "genres")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "Jazz\nPop\n")
		})

		Convey("Then insights should show the largest genre", func() {
			out, _, err := runCLI(t, path, "insights", "--top", "1")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Pop")
			So(out, ShouldNotContainSubstring, "Jazz")
		})
	})

	Convey("Given a catalogue with a bad row", t, func() {
		path := writeCatalogue(t, fixtureCSV+"E,Artist E,Pop,10,0.5,0.5,H,-5,Major,0,0,0,0,0.5,100\n")

		Convey("Then every command should fail with a data error", func() {
			_, _, err := runCLI(t, path, "genres")
			var de *catalogue.DataError
			So(errors.As(err, &de), ShouldBeTrue)
		})
	})
}
