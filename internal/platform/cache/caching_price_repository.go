// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"gamedeals_backend/internal/feature/prices/domain/entity"
	"gamedeals_backend/internal/feature/prices/usecase"
)

// CachingPriceRepository decorates a PriceRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingPriceRepository struct {
	inner     usecase.PriceRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PriceRepository = (*CachingPriceRepository)(nil)

// NewCachingPriceRepository decorates a PriceRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "prices".
func NewCachingPriceRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PriceRepository, namespace string) *CachingPriceRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingPriceRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Insert appends an observation and invalidates cache entries for the pair.
func (c *CachingPriceRepository) Insert(ctx context.Context, rec entity.PriceRecord) error {
	if err := c.inner.Insert(ctx, rec); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}

	// 該当ゲームのキャッシュとdealsキャッシュを無効化する。
	// キャッシュ削除の失敗で挿入自体を失敗させない（ベストエフォート）。
	_ = c.deleteByPattern(ctx, fmt.Sprintf("%s:game:%s:*", c.namespace, safe(rec.GameID)))
	_ = c.deleteByPattern(ctx, c.namespace+":deals:*")
	return nil
}

// Latest retrieves the newest observation for a pair, checking cache first.
func (c *CachingPriceRepository) Latest(ctx context.Context, gameID, storeID string) (*entity.PriceRecord, error) {
	if c.rdb == nil {
		return c.inner.Latest(ctx, gameID, storeID)
	}

	key := fmt.Sprintf("%s:game:%s:latest:%s", c.namespace, safe(gameID), safe(storeID))

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.PriceRecord
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.Latest(ctx, gameID, storeID)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// LatestForGame retrieves per-store latest observations, checking cache first.
func (c *CachingPriceRepository) LatestForGame(ctx context.Context, gameID string) ([]entity.PriceRecord, error) {
	key := fmt.Sprintf("%s:game:%s:latest", c.namespace, safe(gameID))
	return c.cachedList(ctx, key, func() ([]entity.PriceRecord, error) {
		return c.inner.LatestForGame(ctx, gameID)
	})
}

// History retrieves a game's observation history, checking cache first.
func (c *CachingPriceRepository) History(ctx context.Context, gameID string, limit int) ([]entity.PriceRecord, error) {
	key := fmt.Sprintf("%s:game:%s:history:%d", c.namespace, safe(gameID), limit)
	return c.cachedList(ctx, key, func() ([]entity.PriceRecord, error) {
		return c.inner.History(ctx, gameID, limit)
	})
}

// TopDeals retrieves the top deals listing, checking cache first.
func (c *CachingPriceRepository) TopDeals(ctx context.Context, minDiscount float64, limit int, sort string) ([]entity.PriceRecord, error) {
	key := fmt.Sprintf("%s:deals:%g:%d:%s", c.namespace, minDiscount, limit, safe(sort))
	return c.cachedList(ctx, key, func() ([]entity.PriceRecord, error) {
		return c.inner.TopDeals(ctx, minDiscount, limit, sort)
	})
}

// cachedList is the shared cache-then-fallback path for list queries.
func (c *CachingPriceRepository) cachedList(ctx context.Context, key string, load func() ([]entity.PriceRecord, error)) ([]entity.PriceRecord, error) {
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PriceRecord
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPriceRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
