package metadata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/okian/tunify/internal/domain/types"
)

// SpotifyConfig holds the client-credentials settings for the Web API.
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	APIURL       string
}

// Spotify searches the Spotify Web API for a track's links.
type Spotify struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

var _ Fetcher = (*Spotify)(nil)

// NewSpotify builds a client that fetches and refreshes its bearer token with
// the client-credentials grant. ctx scopes token requests.
func NewSpotify(ctx context.Context, cfg SpotifyConfig, opts ...SpotifyOption) *Spotify {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	s := &Spotify{
		httpClient: cc.Client(ctx),
		baseURL:    strings.TrimRight(cfg.APIURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(defaultRatePerSec), defaultBurst),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type searchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}

type spotifyTrack struct {
	PreviewURL   string `json:"preview_url"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	Album struct {
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
}

// Fetch searches for the best match of track by artist and maps its links.
func (s *Spotify) Fetch(ctx context.Context, trackName, artistName string) (types.Metadata, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return types.Metadata{}, fmt.Errorf("%w: %w", ErrRateLimited, err)
	}

	q := url.Values{}
	q.Set("q", fmt.Sprintf("track:%s artist:%s", trackName, artistName))
	q.Set("type", "track")
	q.Set("limit", "1")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return types.Metadata{}, fmt.Errorf("spotify search request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return types.Metadata{}, fmt.Errorf("%w: spotify search: %w", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return types.Metadata{}, &StatusError{Code: resp.StatusCode}
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return types.Metadata{}, fmt.Errorf("%w: decode search: %w", ErrUpstream, err)
	}
	if len(body.Tracks.Items) == 0 {
		return types.Metadata{}, ErrNoMatch
	}

	item := body.Tracks.Items[0]
	meta := types.Metadata{
		PreviewURL:  item.PreviewURL,
		ExternalURL: item.ExternalURLs.Spotify,
	}
	if len(item.Album.Images) > 0 {
		meta.AlbumArtURL = item.Album.Images[0].URL
	}
	return meta, nil
}
