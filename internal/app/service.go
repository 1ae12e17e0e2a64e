// Package service loads the catalogue once and answers recommendation,
// playlist and insight queries over it.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/tunify/internal/adapters/enrich"
	"github.com/okian/tunify/internal/adapters/export"
	"github.com/okian/tunify/internal/adapters/metadata"
	"github.com/okian/tunify/internal/adapters/repository"
	"github.com/okian/tunify/internal/domain/catalogue"
	"github.com/okian/tunify/internal/domain/features"
	"github.com/okian/tunify/internal/domain/insights"
	"github.com/okian/tunify/internal/domain/model"
	"github.com/okian/tunify/internal/domain/playlist"
	"github.com/okian/tunify/internal/domain/similarity"
	"github.com/okian/tunify/internal/domain/types"
	"github.com/okian/tunify/pkg/logger"
	"github.com/okian/tunify/pkg/metrics"
)

// Service implements the API dependencies for the recommender.
type Service struct {
	mu sync.RWMutex

	// Collaborators
	source   repository.Source
	provider metadata.Provider
	pool     *enrich.Pool

	// Built once by Start, read-only afterwards
	cat    *catalogue.Catalogue
	matrix *features.Matrix
	engine *similarity.Engine

	enrichWorkers int
	loadDuration  time.Duration
	startedAt     time.Time

	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// New constructs a Service. Without WithSource it serves an empty catalogue.
func New(opts ...Option) *Service {
	s := &Service{
		source:        repository.NewStatic(nil),
		provider:      metadata.Noop{},
		enrichWorkers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the catalogue, builds the feature matrix and similarity engine
// and starts the enrichment workers. A load failure leaves the service
// stopped.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger.Info(ctx, "starting recommender service...")

	start := time.Now()
	cat, err := s.source.Load(ctx)
	if err != nil {
		metrics.RecordCatalogueLoadError()
		return fmt.Errorf("load catalogue: %w", err)
	}
	s.cat = cat
	s.matrix = features.Normalize(cat)
	s.engine = similarity.NewEngine(cat, s.matrix)
	s.loadDuration = time.Since(start)
	metrics.UpdateCatalogue(cat.Len(), len(cat.Genres()), float64(s.loadDuration.Milliseconds()))

	poolCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.pool = enrich.New(s.provider, enrich.WithWorkers(s.enrichWorkers), enrich.WithLogger(s.logger.Named("enrich")))
	s.pool.Start(poolCtx)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "recommender service started",
		logger.Int("tracks", cat.Len()),
		logger.Int("genres", len(cat.Genres())),
		logger.Duration("load", s.loadDuration),
		logger.Int("enrichWorkers", s.enrichWorkers),
	)
	return nil
}

// Stop shuts down the enrichment workers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping recommender service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "enrich pool shutdown", logger.Error(err))
	}
	s.cancel()
	s.started = false
	s.logger.Info(ctx, "recommender service stopped")
}

type snapshot struct {
	cat    *catalogue.Catalogue
	engine *similarity.Engine
	pool   *enrich.Pool
}

func (s *Service) snapshot() (snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return snapshot{}, ErrNotStarted
	}
	return snapshot{cat: s.cat, engine: s.engine, pool: s.pool}, nil
}

// Recommend returns up to n tracks most similar to songName.
func (s *Service) Recommend(ctx context.Context, songName string, n int) ([]types.Recommendation, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	matches, err := snap.engine.Recommend(songName, n)
	metrics.RecordRecommend(float64(time.Since(start).Milliseconds()), len(matches), !errors.Is(err, similarity.ErrNotFound))
	if err != nil {
		return nil, err
	}

	out := make([]types.Recommendation, len(matches))
	for i, m := range matches {
		out[i] = types.Recommendation{Entry: types.Project(m.Track), Similarity: m.Score}
	}
	s.logger.Debug(ctx, "recommended",
		logger.String("song", songName),
		logger.Int("n", n),
		logger.Int("results", len(out)),
	)
	return out, nil
}

// RecommendEnriched is Recommend with metadata attached where available.
func (s *Service) RecommendEnriched(ctx context.Context, songName string, n int) ([]types.Enriched, error) {
	recs, err := s.Recommend(ctx, songName, n)
	if err != nil {
		return nil, err
	}
	entries := make([]types.Entry, len(recs))
	for i, r := range recs {
		entries[i] = r.Entry
	}
	out, err := s.decorate(ctx, entries)
	if err != nil {
		return nil, err
	}
	for i := range out {
		score := recs[i].Similarity
		out[i].Similarity = &score
	}
	return out, nil
}

// Playlist returns up to limit tracks of genre ordered for mood.
func (s *Service) Playlist(ctx context.Context, genre, mood string, limit int) ([]types.Entry, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	m, err := model.ParseMood(mood)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tracks, err := playlist.Generate(snap.cat, genre, m, limit)
	if err != nil {
		return nil, err
	}
	metrics.RecordPlaylist(m.String(), float64(time.Since(start).Milliseconds()))
	s.logger.Debug(ctx, "generated playlist",
		logger.String("genre", genre),
		logger.String("mood", m.String()),
		logger.Int("results", len(tracks)),
	)
	return types.ProjectAll(tracks), nil
}

// PlaylistEnriched is Playlist with metadata attached where available.
func (s *Service) PlaylistEnriched(ctx context.Context, genre, mood string, limit int) ([]types.Enriched, error) {
	entries, err := s.Playlist(ctx, genre, mood, limit)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, entries)
}

// PlaylistCSV renders Playlist as CSV bytes.
func (s *Service) PlaylistCSV(ctx context.Context, genre, mood string, limit int) ([]byte, error) {
	entries, err := s.Playlist(ctx, genre, mood, limit)
	if err != nil {
		return nil, err
	}
	return export.CSV(entries)
}

func (s *Service) decorate(ctx context.Context, entries []types.Entry) ([]types.Enriched, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	metas := snap.pool.Enrich(ctx, entries)
	out := make([]types.Enriched, len(entries))
	for i, e := range entries {
		out[i] = types.Enriched{Entry: e, Metadata: metas[i]}
	}
	return out, nil
}

// Genres returns the distinct genres in the catalogue, sorted.
func (s *Service) Genres(_ context.Context) ([]string, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.cat.Genres(), nil
}

// Insights summarizes the catalogue with the top genres and mood split.
func (s *Service) Insights(_ context.Context, top int) (insights.Summary, error) {
	snap, err := s.snapshot()
	if err != nil {
		return insights.Summary{}, err
	}
	return insights.Summarize(snap.cat, top), nil
}

// Scatter returns popularity and danceability points for up to limit tracks.
func (s *Service) Scatter(_ context.Context, limit int) ([]insights.Point, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return insights.Scatter(snap.cat, limit), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"enrichWorkers": s.enrichWorkers,
	}
	if s.started {
		stats["tracks"] = s.cat.Len()
		stats["genres"] = len(s.cat.Genres())
		stats["features"] = s.matrix.Cols()
		stats["loadMs"] = s.loadDuration.Milliseconds()
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	return stats
}
