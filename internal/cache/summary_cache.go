// Package cache holds the Redis-backed cache for the financial summary.
// The summary is recomputed from scratch on every request; caching it for a
// few seconds keeps dashboard polling cheap. The cache is strictly optional:
// a nil *SummaryCache (no REDIS_URL configured) disables it and every method
// becomes a no-op.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/emerpc1992/horale/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	summaryKey = "reports:financial-summary"
	summaryTTL = 30 * time.Second
)

type SummaryCache struct {
	rdb *redis.Client
}

func NewSummaryCache(rdb *redis.Client) *SummaryCache {
	if rdb == nil {
		return nil
	}
	return &SummaryCache{rdb: rdb}
}

// Get returns the cached summary, or ok=false on miss, disabled cache, or
// any Redis error — a cache failure must never fail the report.
func (c *SummaryCache) Get(ctx context.Context) (*dto.FinancialSummary, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, summaryKey).Bytes()
	if err != nil {
		return nil, false
	}
	var summary dto.FinancialSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		log.Warn().Err(err).Msg("cache: stale financial summary payload, dropping")
		_ = c.rdb.Del(ctx, summaryKey).Err()
		return nil, false
	}
	return &summary, true
}

func (c *SummaryCache) Set(ctx context.Context, summary *dto.FinancialSummary) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, summaryKey, raw, summaryTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("cache: failed to store financial summary")
	}
}

// Invalidate drops the cached summary after any mutation that feeds it
// (sales, expenses, commission clearing).
func (c *SummaryCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, summaryKey).Err(); err != nil {
		log.Warn().Err(err).Msg("cache: failed to invalidate financial summary")
	}
}
