package metadata_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/tunify/internal/adapters/metadata"
	"github.com/okian/tunify/internal/domain/types"
	"github.com/okian/tunify/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const searchHit = `{"tracks":{"items":[{
	"preview_url":"https://p.scdn.co/mp3-preview/abc",
	"external_urls":{"spotify":"https://open.spotify.com/track/abc"},
	"album":{"images":[{"url":"https://i.scdn.co/image/large"},{"url":"https://i.scdn.co/image/small"}]}
}]}}`

type fakeSpotify struct {
	server   *httptest.Server
	searches atomic.Int32
	tokens   atomic.Int32
	mu       sync.Mutex
	status   int
	body     string
	lastAuth string
	lastQ    string
	lastLim  string
}

func newFakeSpotify() *fakeSpotify {
	f := &fakeSpotify{status: http.StatusOK, body: searchHit}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokens.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		f.searches.Add(1)
		f.mu.Lock()
		f.lastAuth = r.Header.Get("Authorization")
		f.lastQ = r.URL.Query().Get("q")
		f.lastLim = r.URL.Query().Get("limit")
		status, body := f.status, f.body
		f.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	f.server = httptest.NewServer(mux)
	return f
}

func (f *fakeSpotify) set(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status, f.body = status, body
}

func (f *fakeSpotify) client() *metadata.Spotify {
	return metadata.NewSpotify(context.Background(), metadata.SpotifyConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     f.server.URL + "/api/token",
		APIURL:       f.server.URL + "/v1/",
	}, metadata.WithRateLimit(1000, 100), metadata.WithRequestTimeout(2*time.Second))
}

func TestSpotifyFetch(t *testing.T) {
	Convey("Given a Spotify API that knows the track", t, func() {
		fake := newFakeSpotify()
		defer fake.server.Close()
		client := fake.client()

		Convey("When fetching metadata", func() {
			meta, err := client.Fetch(context.Background(), "Shape of You", "Ed Sheeran")

			Convey("Then links from the first item should be mapped", func() {
				So(err, ShouldBeNil)
				So(meta, ShouldResemble, types.Metadata{
					AlbumArtURL: "https://i.scdn.co/image/large",
					PreviewURL:  "https://p.scdn.co/mp3-preview/abc",
					ExternalURL: "https://open.spotify.com/track/abc",
				})
			})

			Convey("And the request should be authenticated and scoped", func() {
				So(fake.tokens.Load(), ShouldEqual, 1)
				So(fake.lastAuth, ShouldEqual, "Bearer tok-1")
				So(fake.lastQ, ShouldEqual, "track:Shape of You artist:Ed Sheeran")
				So(fake.lastLim, ShouldEqual, "1")
			})
		})

		Convey("When the search has no items", func() {
			fake.set(http.StatusOK, `{"tracks":{"items":[]}}`)
			_, err := client.Fetch(context.Background(), "x", "y")

			Convey("Then ErrNoMatch should be returned", func() {
				So(errors.Is(err, metadata.ErrNoMatch), ShouldBeTrue)
			})
		})

		Convey("When the API fails", func() {
			fake.set(http.StatusBadGateway, `oops`)
			_, err := client.Fetch(context.Background(), "x", "y")

			Convey("Then a StatusError wrapping ErrUpstream should be returned", func() {
				var se *metadata.StatusError
				So(errors.As(err, &se), ShouldBeTrue)
				So(se.Code, ShouldEqual, http.StatusBadGateway)
				So(errors.Is(err, metadata.ErrUpstream), ShouldBeTrue)
			})
		})

		Convey("When the body is malformed", func() {
			fake.set(http.StatusOK, `{"tracks":`)
			_, err := client.Fetch(context.Background(), "x", "y")

			Convey("Then ErrUpstream should be returned", func() {
				So(errors.Is(err, metadata.ErrUpstream), ShouldBeTrue)
			})
		})
	})
}

type stubFetcher struct {
	calls atomic.Int32
	meta  types.Metadata
	err   error
}

func (s *stubFetcher) Fetch(ctx context.Context, _, _ string) (types.Metadata, error) {
	s.calls.Add(1)
	return s.meta, s.err
}

func TestResolver(t *testing.T) {
	_ = logger.Init()

	Convey("Given a resolver over a successful fetcher", t, func() {
		stub := &stubFetcher{meta: types.Metadata{PreviewURL: "https://p"}}
		r := metadata.NewResolver(stub, metadata.WithCacheSize(10), metadata.WithTimeout(time.Second))

		Convey("Then repeated lookups should be served from the cache", func() {
			meta, ok := r.Lookup(context.Background(), "a", "b")
			So(ok, ShouldBeTrue)
			So(meta.PreviewURL, ShouldEqual, "https://p")
			_, ok = r.Lookup(context.Background(), "a", "b")
			So(ok, ShouldBeTrue)
			So(stub.calls.Load(), ShouldEqual, 1)
		})
	})

	Convey("Given a fetcher that finds nothing", t, func() {
		stub := &stubFetcher{err: metadata.ErrNoMatch}
		r := metadata.NewResolver(stub)

		Convey("Then the miss should be cached", func() {
			_, ok := r.Lookup(context.Background(), "a", "b")
			So(ok, ShouldBeFalse)
			_, ok = r.Lookup(context.Background(), "a", "b")
			So(ok, ShouldBeFalse)
			So(stub.calls.Load(), ShouldEqual, 1)
		})
	})

	Convey("Given a failing fetcher", t, func() {
		stub := &stubFetcher{err: errors.New("boom")}
		r := metadata.NewResolver(stub)

		Convey("Then failures should be swallowed and retried later", func() {
			_, ok := r.Lookup(context.Background(), "a", "b")
			So(ok, ShouldBeFalse)
			_, ok = r.Lookup(context.Background(), "a", "b")
			So(ok, ShouldBeFalse)
			So(stub.calls.Load(), ShouldEqual, 2)
		})
	})

	Convey("Given the noop provider", t, func() {
		_, ok := metadata.Noop{}.Lookup(context.Background(), "a", "b")

		Convey("Then nothing should be found", func() {
			So(ok, ShouldBeFalse)
		})
	})
}

func TestBreaker(t *testing.T) {
	Convey("Given a breaker over a failing upstream", t, func() {
		stub := &stubFetcher{err: metadata.ErrUpstream}
		b := metadata.NewBreaker("spotify-test", stub,
			metadata.WithFailureThreshold(2),
			metadata.WithOpenTimeout(time.Hour),
		)

		Convey("When failures reach the threshold", func() {
			_, _ = b.Fetch(context.Background(), "a", "b")
			_, _ = b.Fetch(context.Background(), "a", "b")
			_, err := b.Fetch(context.Background(), "a", "b")

			Convey("Then further calls should be rejected without reaching upstream", func() {
				So(errors.Is(err, metadata.ErrCircuitOpen), ShouldBeTrue)
				So(stub.calls.Load(), ShouldEqual, 2)
				So(b.State(), ShouldEqual, "open")
			})
		})
	})

	Convey("Given a breaker over an upstream with no matches", t, func() {
		stub := &stubFetcher{err: metadata.ErrNoMatch}
		b := metadata.NewBreaker("spotify-miss", stub, metadata.WithFailureThreshold(1))

		Convey("Then misses should not trip it", func() {
			for i := 0; i < 5; i++ {
				_, err := b.Fetch(context.Background(), "a", "b")
				So(errors.Is(err, metadata.ErrNoMatch), ShouldBeTrue)
			}
			So(b.State(), ShouldEqual, "closed")
		})
	})
}

func TestBreakerUnderRateLimit(t *testing.T) {
	_ = logger.Init()

	Convey("Given a healthy upstream behind a tight rate limit", t, func() {
		fake := newFakeSpotify()
		defer fake.server.Close()
		spotify := metadata.NewSpotify(context.Background(), metadata.SpotifyConfig{
			ClientID:     "id",
			ClientSecret: "secret",
			TokenURL:     fake.server.URL + "/api/token",
			APIURL:       fake.server.URL + "/v1/",
		}, metadata.WithRateLimit(1, 1), metadata.WithRequestTimeout(2*time.Second))
		b := metadata.NewBreaker("spotify-throttled", spotify,
			metadata.WithFailureThreshold(2),
			metadata.WithOpenTimeout(time.Hour),
		)
		r := metadata.NewResolver(b, metadata.WithTimeout(200*time.Millisecond))

		Convey("When a burst of lookups exceeds the limiter", func() {
			found := 0
			for i := 0; i < 7; i++ {
				if _, ok := r.Lookup(context.Background(), fmt.Sprintf("track-%d", i), "artist"); ok {
					found++
				}
			}

			Convey("Then throttled lookups should miss without opening the breaker", func() {
				So(found, ShouldBeLessThan, 7)
				So(b.State(), ShouldEqual, "closed")
			})

			Convey("And lookups should succeed again once the limiter refills", func() {
				time.Sleep(1100 * time.Millisecond)
				_, ok := r.Lookup(context.Background(), "track-late", "artist")
				So(ok, ShouldBeTrue)
				So(b.State(), ShouldEqual, "closed")
			})
		})
	})

	Convey("Given a breaker over a fetcher that only reports rate-limit waits", t, func() {
		stub := &stubFetcher{err: fmt.Errorf("%w: %w", metadata.ErrRateLimited, context.DeadlineExceeded)}
		b := metadata.NewBreaker("spotify-wait", stub, metadata.WithFailureThreshold(1))

		Convey("Then the breaker should stay closed", func() {
			for i := 0; i < 5; i++ {
				_, err := b.Fetch(context.Background(), "a", "b")
				So(errors.Is(err, metadata.ErrRateLimited), ShouldBeTrue)
			}
			So(stub.calls.Load(), ShouldEqual, 5)
			So(b.State(), ShouldEqual, "closed")
		})
	})
}

func TestCache(t *testing.T) {
	Convey("Given a cache bounded to two entries", t, func() {
		c := metadata.NewCache(2)
		c.Put("a", types.Metadata{PreviewURL: "1"}, true)
		c.Put("b", types.Metadata{}, false)

		Convey("When a third entry is added", func() {
			c.Put("c", types.Metadata{PreviewURL: "3"}, true)

			Convey("Then the oldest entry should be evicted", func() {
				_, _, ok := c.Get("a")
				So(ok, ShouldBeFalse)
				_, found, ok := c.Get("b")
				So(ok, ShouldBeTrue)
				So(found, ShouldBeFalse)
				So(c.Len(), ShouldEqual, 2)
			})
		})

		Convey("When an existing key is replaced", func() {
			c.Put("a", types.Metadata{PreviewURL: "updated"}, true)

			Convey("Then nothing should be evicted", func() {
				meta, found, ok := c.Get("a")
				So(ok, ShouldBeTrue)
				So(found, ShouldBeTrue)
				So(meta.PreviewURL, ShouldEqual, "updated")
				So(c.Len(), ShouldEqual, 2)
			})
		})
	})

	Convey("Given an unbounded cache", t, func() {
		c := metadata.NewCache(0)
		for _, k := range []string{"a", "b", "c", "d"} {
			c.Put(k, types.Metadata{}, true)
		}

		Convey("Then every entry should be kept", func() {
			So(c.Len(), ShouldEqual, 4)
		})
	})
}
