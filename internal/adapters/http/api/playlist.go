package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/tunify/internal/domain/types"
)

// PlaylistDependencies defines the interface for playlist operations.
type PlaylistDependencies interface {
	Playlist(ctx context.Context, genre, mood string, limit int) ([]types.Entry, error)
	PlaylistEnriched(ctx context.Context, genre, mood string, limit int) ([]types.Enriched, error)
	PlaylistCSV(ctx context.Context, genre, mood string, limit int) ([]byte, error)
}

// PlaylistHandler handles playlist requests.
type PlaylistHandler struct {
	deps         PlaylistDependencies
	defaultLimit int
	maxLimit     int
}

// NewPlaylistHandler creates a new playlist handler.
func NewPlaylistHandler(deps PlaylistDependencies, defaultLimit, maxLimit int) *PlaylistHandler {
	return &PlaylistHandler{deps: deps, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

type playlistQuery struct {
	genre string
	mood  string
	limit int
}

func (h *PlaylistHandler) parse(w http.ResponseWriter, r *http.Request, op string) (playlistQuery, bool) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return playlistQuery{}, false
	}
	q := r.URL.Query()
	pq := playlistQuery{
		genre: strings.TrimSpace(q.Get("genre")),
		mood:  q.Get("mood"),
	}
	if pq.genre == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errMissing("genre")))
		return pq, false
	}
	limit, code, ok := parseLimit(r, "limit", h.defaultLimit, h.maxLimit)
	if !ok {
		writeError(w, http.StatusBadRequest, code, NewKind(op, kindFor(code)))
		return pq, false
	}
	pq.limit = limit
	return pq, true
}

// HandlePlaylist handles GET /playlist?genre=G&mood=M&limit=N&enrich=BOOL requests.
func (h *PlaylistHandler) HandlePlaylist(w http.ResponseWriter, r *http.Request) {
	const op = "api.playlist"
	pq, ok := h.parse(w, r, op)
	if !ok {
		return
	}
	enrich, err := parseFlag(r, "enrich")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if enrich {
		entries, err := h.deps.PlaylistEnriched(r.Context(), pq.genre, pq.mood, pq.limit)
		if err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
		return
	}
	entries, err := h.deps.Playlist(r.Context(), pq.genre, pq.mood, pq.limit)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandlePlaylistCSV handles GET /playlist.csv?genre=G&mood=M&limit=N requests.
func (h *PlaylistHandler) HandlePlaylistCSV(w http.ResponseWriter, r *http.Request) {
	const op = "api.playlist_csv"
	pq, ok := h.parse(w, r, op)
	if !ok {
		return
	}
	body, err := h.deps.PlaylistCSV(r.Context(), pq.genre, pq.mood, pq.limit)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="playlist.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func errMissing(param string) error {
	return errors.New("missing " + param)
}

func kindFor(code string) error {
	if code == "limit_exceeded" {
		return ErrLimit
	}
	return ErrBadRequest
}
