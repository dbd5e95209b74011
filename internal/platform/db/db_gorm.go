// Package db はPostgreSQLへのGORM接続とマイグレーションを提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "gamedeals_backend/internal/feature/auth/domain/entity"
	catalogadapters "gamedeals_backend/internal/feature/catalog/adapters"
	etladapters "gamedeals_backend/internal/feature/etl/adapters"
	pricesadapters "gamedeals_backend/internal/feature/prices/adapters"
	purchasesadapters "gamedeals_backend/internal/feature/purchases/adapters"
	reviewsadapters "gamedeals_backend/internal/feature/reviews/adapters"
	wishlistadapters "gamedeals_backend/internal/feature/wishlist/adapters"
)

// OpenDB は環境変数の接続情報でPostgreSQLに接続します。
// DBコンテナの起動待ちを考慮し、60秒を上限に接続をリトライします。
func OpenDB() *gorm.DB {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		host, port, user, pass, name, sslmode)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&authentity.User{},
			&catalogadapters.GameModel{},
			&catalogadapters.StoreModel{},
			&pricesadapters.PriceModel{},
			&etladapters.RunModel{},
			&etladapters.OutcomeModel{},
			&reviewsadapters.ReviewModel{},
			&purchasesadapters.PurchaseModel{},
			&wishlistadapters.WishlistItemModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}

		// ストア参照データの投入（既存行は維持）
		if err := catalogadapters.SeedStores(db); err != nil {
			log.Fatalf("failed to seed stores: %v", err)
		}
	}

	return db
}
