package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/indocrm/inquiry-desk/internal/core/domain"
)

const summaryKey = "analytics:summary"

// SummaryCache stores the analytics summary as JSON under a single key.
type SummaryCache struct {
	client *redis.Client
}

func NewSummaryCache(client *redis.Client) *SummaryCache {
	return &SummaryCache{client: client}
}

func (c *SummaryCache) Get(ctx context.Context) (*domain.AnalyticsSummary, bool, error) {
	raw, err := c.client.Get(ctx, summaryKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get summary: %w", err)
	}

	var s domain.AnalyticsSummary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("decode summary: %w", err)
	}
	return &s, true, nil
}

func (c *SummaryCache) Set(ctx context.Context, s *domain.AnalyticsSummary, ttl time.Duration) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey, raw, ttl).Err(); err != nil {
		return fmt.Errorf("set summary: %w", err)
	}
	return nil
}
