package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ozzus/skip-hire/internal/domain/catalog"
	derr "github.com/ozzus/skip-hire/internal/domain/errors"
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/ozzus/skip-hire/internal/domain/ports"
	"github.com/ozzus/skip-hire/internal/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// CatalogService holds the skip list for one location. The list is loaded
// once and never refreshed while the process runs.
type CatalogService struct {
	log      *zap.Logger
	source   ports.SkipSource
	cache    ports.SkipCache
	location models.Location
	cacheTTL time.Duration

	loadMu sync.Mutex
	mu     sync.RWMutex
	skips  []models.Skip
	loaded bool
	ready  chan struct{}
}

func NewCatalogService(log *zap.Logger, source ports.SkipSource, cache ports.SkipCache, location models.Location, cacheTTL time.Duration) *CatalogService {
	if log == nil {
		log = zap.NewNop()
	}

	return &CatalogService{
		log:      log,
		source:   source,
		cache:    cache,
		location: location,
		cacheTTL: cacheTTL,
		ready:    make(chan struct{}),
	}
}

// Load fills the catalog from the cache or the source. Calls after a
// successful load are no-ops; a failed load may be retried.
func (s *CatalogService) Load(ctx context.Context) error {
	const op = "service.CatalogLoad"
	tracer := otel.Tracer("skip-hire/service")
	ctx, span := tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(attribute.String("catalog.location", s.location.String()))

	logger := s.log.With(zap.String("op", op), zap.Stringer("location", s.location))

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.Loaded() {
		return nil
	}

	if s.cache != nil {
		cached, err := s.cache.GetSkips(ctx, s.location)
		if err == nil {
			logger.Info("skip cache hit", zap.Int("skips_count", len(cached)))
			span.AddEvent("catalog.cache.hit")
			metrics.CatalogFetchTotal.WithLabelValues(metrics.OriginCache).Inc()
			s.publish(cached)
			span.SetStatus(otelcodes.Ok, "ok")
			return nil
		}
		if errors.Is(err, derr.ErrCacheMiss) {
			logger.Info("skip cache miss")
			span.AddEvent("catalog.cache.miss")
		} else {
			logger.Warn("redis cache read failed", zap.Error(err))
			span.RecordError(err)
		}
	}

	skips, origin, err := s.fetch(ctx)
	if err != nil {
		logger.Error("failed to load skips", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "failed to load skips")
		return fmt.Errorf("%s: %w", op, err)
	}

	switch {
	case s.cache == nil:
	case origin == models.OriginFallback:
		logger.Info("static skip list not cached")
		span.AddEvent("catalog.cache.skip")
	default:
		if err := s.cache.SetSkips(ctx, s.location, skips, s.cacheTTL); err != nil {
			logger.Warn("redis cache write failed", zap.Error(err))
			span.RecordError(err)
		}
	}

	s.publish(skips)
	span.SetAttributes(
		attribute.Int("catalog.skips_count", len(skips)),
		attribute.String("catalog.origin", string(origin)),
	)
	span.SetStatus(otelcodes.Ok, "ok")
	logger.Info("skip catalog loaded", zap.Int("skips_count", len(skips)), zap.String("origin", string(origin)))
	return nil
}

func (s *CatalogService) fetch(ctx context.Context) ([]models.Skip, models.SkipOrigin, error) {
	if src, ok := s.source.(ports.OriginSkipSource); ok {
		return src.FetchSkipsWithOrigin(ctx)
	}
	skips, err := s.source.FetchSkips(ctx)
	return skips, models.OriginUpstream, err
}

func (s *CatalogService) publish(skips []models.Skip) {
	s.mu.Lock()
	s.skips = append([]models.Skip(nil), skips...)
	s.loaded = true
	s.mu.Unlock()
	close(s.ready)
}

func (s *CatalogService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Ready is closed once the catalog has been loaded.
func (s *CatalogService) Ready() <-chan struct{} {
	return s.ready
}

// Skips returns a copy of the full list.
func (s *CatalogService) Skips() ([]models.Skip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, derr.ErrCatalogNotLoaded
	}
	return append([]models.Skip(nil), s.skips...), nil
}

func (s *CatalogService) List(ctx context.Context, criteria models.FilterCriteria) (models.Listing, error) {
	const op = "service.CatalogList"
	_, span := otel.Tracer("skip-hire/service").Start(ctx, op)
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		span.SetStatus(otelcodes.Error, "catalog not loaded")
		return models.Listing{}, derr.ErrCatalogNotLoaded
	}

	listing := catalog.BuildListing(s.skips, criteria)
	span.SetAttributes(
		attribute.String("catalog.search", criteria.SearchText),
		attribute.Int64("catalog.max_price", criteria.MaxPrice),
		attribute.Int("catalog.matches", listing.Stats.Count),
	)
	return listing, nil
}

func (s *CatalogService) Get(ctx context.Context, id models.SkipID) (models.Skip, error) {
	const op = "service.CatalogGet"
	_, span := otel.Tracer("skip-hire/service").Start(ctx, op)
	defer span.End()
	span.SetAttributes(attribute.Int64("catalog.skip_id", int64(id)))

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		span.SetStatus(otelcodes.Error, "catalog not loaded")
		return models.Skip{}, derr.ErrCatalogNotLoaded
	}
	for _, skip := range s.skips {
		if skip.ID == id {
			return skip, nil
		}
	}
	span.SetStatus(otelcodes.Error, "skip not found")
	return models.Skip{}, derr.ErrSkipNotFound
}
