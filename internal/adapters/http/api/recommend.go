package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/tunify/internal/domain/types"
)

// RecommendDependencies defines the interface for recommendation queries.
type RecommendDependencies interface {
	Recommend(ctx context.Context, songName string, n int) ([]types.Recommendation, error)
	RecommendEnriched(ctx context.Context, songName string, n int) ([]types.Enriched, error)
}

// RecommendHandler handles recommendation requests.
type RecommendHandler struct {
	deps     RecommendDependencies
	defaultN int
	maxN     int
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps RecommendDependencies, defaultN, maxN int) *RecommendHandler {
	return &RecommendHandler{deps: deps, defaultN: defaultN, maxN: maxN}
}

// HandleRecommend handles GET /recommend?song=NAME&n=N&enrich=BOOL requests.
func (h *RecommendHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	const op = "api.recommend"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	song := strings.TrimSpace(r.URL.Query().Get("song"))
	if song == "" {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errMissing("song")))
		return
	}
	n, code, ok := parseLimit(r, "n", h.defaultN, h.maxN)
	if !ok {
		writeError(w, http.StatusBadRequest, code, NewKind(op, kindFor(code)))
		return
	}
	enrich, err := parseFlag(r, "enrich")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if enrich {
		recs, err := h.deps.RecommendEnriched(r.Context(), song, n)
		if err != nil {
			writeServiceError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, recs)
		return
	}
	recs, err := h.deps.Recommend(r.Context(), song, n)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}
