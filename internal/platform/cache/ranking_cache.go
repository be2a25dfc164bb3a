package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"vestiaire/contexts/contest/voting-engine/domain/entities"
)

const rankingKey = "contest:ranking"

// RankingCache keeps the derived contest ranking in redis. It is a cache in
// the strict sense: rankings recompute from vote rows on every miss, so a
// flushed or corrupted key never loses data.
type RankingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRankingCache(addr string, ttl time.Duration, logger *slog.Logger) *RankingCache {
	return &RankingCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RankingCache) GetRanking(ctx context.Context) ([]entities.PhotoScore, bool, error) {
	raw, err := c.client.Get(ctx, rankingKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		// A cache read failure degrades to recompute, never to an outage.
		c.logWarn("ranking cache read failed", err)
		return nil, false, nil
	}
	var scores []entities.PhotoScore
	if err := json.Unmarshal(raw, &scores); err != nil {
		c.logWarn("ranking cache decode failed", err)
		return nil, false, nil
	}
	return scores, true, nil
}

func (c *RankingCache) SetRanking(ctx context.Context, scores []entities.PhotoScore) error {
	raw, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, rankingKey, raw, c.ttl).Err(); err != nil {
		c.logWarn("ranking cache write failed", err)
	}
	return nil
}

func (c *RankingCache) InvalidateRanking(ctx context.Context) error {
	if err := c.client.Del(ctx, rankingKey).Err(); err != nil {
		c.logWarn("ranking cache invalidate failed", err)
	}
	return nil
}

func (c *RankingCache) Close() error {
	return c.client.Close()
}

func (c *RankingCache) logWarn(msg string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Warn(msg,
		"event", "ranking_cache_degraded",
		"module", "internal/platform/cache",
		"layer", "platform",
		"error", err.Error(),
	)
}
