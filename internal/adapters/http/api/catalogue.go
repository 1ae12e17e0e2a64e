package api

import (
	"context"
	"net/http"

	"github.com/okian/tunify/internal/domain/insights"
)

const (
	defaultInsightsTop  = 10
	defaultScatterLimit = 1000
)

// CatalogueDependencies defines the interface for catalogue-wide queries.
type CatalogueDependencies interface {
	Genres(ctx context.Context) ([]string, error)
	Insights(ctx context.Context, top int) (insights.Summary, error)
	Scatter(ctx context.Context, limit int) ([]insights.Point, error)
}

// CatalogueHandler handles genre and insight requests.
type CatalogueHandler struct {
	deps CatalogueDependencies
}

// NewCatalogueHandler creates a new catalogue handler.
func NewCatalogueHandler(deps CatalogueDependencies) *CatalogueHandler {
	return &CatalogueHandler{deps: deps}
}

// HandleGenres handles GET /genres requests.
func (h *CatalogueHandler) HandleGenres(w http.ResponseWriter, r *http.Request) {
	const op = "api.genres"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	genres, err := h.deps.Genres(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

// HandleInsights handles GET /insights?top=N requests.
func (h *CatalogueHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	const op = "api.insights"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	top, code, ok := parseLimit(r, "top", defaultInsightsTop, 0)
	if !ok {
		writeError(w, http.StatusBadRequest, code, NewKind(op, kindFor(code)))
		return
	}
	summary, err := h.deps.Insights(r.Context(), top)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleScatter handles GET /insights/scatter?limit=N requests.
func (h *CatalogueHandler) HandleScatter(w http.ResponseWriter, r *http.Request) {
	const op = "api.scatter"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit, code, ok := parseLimit(r, "limit", defaultScatterLimit, 0)
	if !ok {
		writeError(w, http.StatusBadRequest, code, NewKind(op, kindFor(code)))
		return
	}
	points, err := h.deps.Scatter(r.Context(), limit)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}
