// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	pricesadapters "gamedeals_backend/internal/feature/prices/adapters"
	pricesusecase "gamedeals_backend/internal/feature/prices/usecase"
	"gamedeals_backend/internal/platform/cache"
)

// NewPriceRepository creates a PriceRepository implementation.
// If Redis is available, reads are served through a caching decorator.
// Otherwise, queries go straight to PostgreSQL.
func NewPriceRepository(rdb *redis.Client, db *gorm.DB) pricesusecase.PriceRepository {
	inner := pricesadapters.NewPriceRepository(db)
	if rdb != nil {
		return cache.NewCachingPriceRepository(rdb, 0, inner, "prices")
	}
	return inner
}
