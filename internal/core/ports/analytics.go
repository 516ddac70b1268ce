package ports

import (
	"context"
	"time"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

type AnalyticsRepository interface {
	Summary(ctx context.Context, now time.Time, months int) (*domain.AnalyticsSummary, error)
}

// SummaryCache stores the last computed summary. Get reports false on a miss.
type SummaryCache interface {
	Get(ctx context.Context) (*domain.AnalyticsSummary, bool, error)
	Set(ctx context.Context, s *domain.AnalyticsSummary, ttl time.Duration) error
}

type AnalyticsService interface {
	Summary(ctx context.Context) (*domain.AnalyticsSummary, error)
}
