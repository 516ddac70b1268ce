package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
	"github.com/indocrm/inquiry-desk/internal/core/ports"
	"github.com/indocrm/inquiry-desk/internal/pkg/metrics"
)

// summaryMonths is how many calendar months the inquiries-per-month series covers.
const summaryMonths = 6

type AnalyticsService struct {
	repo  ports.AnalyticsRepository
	cache ports.SummaryCache
	ttl   time.Duration
	log   zerolog.Logger
	now   func() time.Time
}

// NewAnalyticsService returns a service that caches summaries for ttl.
// A nil cache disables caching.
func NewAnalyticsService(repo ports.AnalyticsRepository, cache ports.SummaryCache, ttl time.Duration, log zerolog.Logger) *AnalyticsService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &AnalyticsService{repo: repo, cache: cache, ttl: ttl, log: log, now: utcNow}
}

func (s *AnalyticsService) Summary(ctx context.Context) (*domain.AnalyticsSummary, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("analytics cache read failed")
		case ok:
			metrics.AnalyticsCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.AnalyticsCacheTotal.WithLabelValues("miss").Inc()
	}

	summary, err := s.repo.Summary(ctx, s.now(), summaryMonths)
	if err != nil {
		return nil, fmt.Errorf("analytics summary: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, summary, s.ttl); err != nil {
			s.log.Warn().Err(err).Msg("analytics cache write failed")
		}
	}
	return summary, nil
}
