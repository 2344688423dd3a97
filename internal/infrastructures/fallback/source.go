package fallback

import (
	"context"
	"errors"

	derr "github.com/ozzus/skip-hire/internal/domain/errors"
	"github.com/ozzus/skip-hire/internal/domain/models"
	"github.com/ozzus/skip-hire/internal/domain/ports"
	"github.com/ozzus/skip-hire/internal/metrics"
	"go.uber.org/zap"
)

// Source wraps an upstream source and substitutes the static list when the
// upstream fails. The failure is logged and counted but never returned.
type Source struct {
	log      *zap.Logger
	upstream ports.SkipSource
}

func NewSource(log *zap.Logger, upstream ports.SkipSource) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &Source{log: log, upstream: upstream}
}

func (s *Source) FetchSkips(ctx context.Context) ([]models.Skip, error) {
	skips, _, err := s.FetchSkipsWithOrigin(ctx)
	return skips, err
}

// FetchSkipsWithOrigin reports models.OriginFallback when the static list
// was substituted. Callers must not cache that list.
func (s *Source) FetchSkipsWithOrigin(ctx context.Context) ([]models.Skip, models.SkipOrigin, error) {
	const op = "fallback.FetchSkips"

	skips, err := s.upstream.FetchSkips(ctx)
	if err == nil {
		metrics.CatalogFetchTotal.WithLabelValues(metrics.OriginUpstream).Inc()
		return skips, models.OriginUpstream, nil
	}
	if !errors.Is(err, derr.ErrDataFetchFailure) {
		return nil, "", err
	}

	static := Skips()
	s.log.Warn("upstream skip fetch failed, serving static list",
		zap.String("op", op),
		zap.Int("skips_count", len(static)),
		zap.Error(err),
	)
	metrics.CatalogFetchTotal.WithLabelValues(metrics.OriginFallback).Inc()
	return static, models.OriginFallback, nil
}
