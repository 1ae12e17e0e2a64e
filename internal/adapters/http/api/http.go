// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"

	service "github.com/okian/tunify/internal/app"
	"github.com/okian/tunify/internal/domain/model"
	"github.com/okian/tunify/internal/domain/playlist"
	"github.com/okian/tunify/internal/domain/similarity"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RecommendDependencies
	PlaylistDependencies
	CatalogueDependencies
}

// Limits bounds the sizes clients may request.
type Limits struct {
	DefaultRecommendN    int
	MaxRecommendN        int
	DefaultPlaylistLimit int
	MaxPlaylistLimit     int
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	recommendHandler *RecommendHandler
	playlistHandler  *PlaylistHandler
	catalogueHandler *CatalogueHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, limits Limits) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		recommendHandler: NewRecommendHandler(deps, limits.DefaultRecommendN, limits.MaxRecommendN),
		playlistHandler:  NewPlaylistHandler(deps, limits.DefaultPlaylistLimit, limits.MaxPlaylistLimit),
		catalogueHandler: NewCatalogueHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(path, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(path, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}
	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("/stats", "stats", s.statsHandler.HandleStats)
	route("/recommend", "recommend", s.recommendHandler.HandleRecommend)
	route("/playlist", "playlist", s.playlistHandler.HandlePlaylist)
	route("/playlist.csv", "playlist_csv", s.playlistHandler.HandlePlaylistCSV)
	route("/genres", "genres", s.catalogueHandler.HandleGenres)
	route("/insights", "insights", s.catalogueHandler.HandleInsights)
	route("/insights/scatter", "insights_scatter", s.catalogueHandler.HandleScatter)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service and domain errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, similarity.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, similarity.ErrInvalidLimit),
		errors.Is(err, playlist.ErrInvalidLimit),
		errors.Is(err, model.ErrUnknownMood):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// parseLimit reads an integer query parameter. A missing value yields def;
// values below one or above max are rejected.
func parseLimit(r *http.Request, name string, def, maxValue int) (int, string, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, "", true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, "bad_request", false
	}
	if maxValue > 0 && n > maxValue {
		return 0, "limit_exceeded", false
	}
	return n, "", true
}

// parseFlag reads an optional boolean query parameter.
func parseFlag(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, err
	}
	return v, nil
}
