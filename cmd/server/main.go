package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"gamedeals_backend/internal/app/di"
	"gamedeals_backend/internal/app/router"
	authadapters "gamedeals_backend/internal/feature/auth/adapters"
	authhandler "gamedeals_backend/internal/feature/auth/transport/handler"
	authusecase "gamedeals_backend/internal/feature/auth/usecase"
	catalogadapters "gamedeals_backend/internal/feature/catalog/adapters"
	cataloghandler "gamedeals_backend/internal/feature/catalog/transport/handler"
	catalogusecase "gamedeals_backend/internal/feature/catalog/usecase"
	"gamedeals_backend/internal/feature/etl/scheduler"
	etlhandler "gamedeals_backend/internal/feature/etl/transport/handler"
	priceshandler "gamedeals_backend/internal/feature/prices/transport/handler"
	pricesusecase "gamedeals_backend/internal/feature/prices/usecase"
	profilehandler "gamedeals_backend/internal/feature/profile/transport/handler"
	profileusecase "gamedeals_backend/internal/feature/profile/usecase"
	purchasesadapters "gamedeals_backend/internal/feature/purchases/adapters"
	purchaseshandler "gamedeals_backend/internal/feature/purchases/transport/handler"
	purchasesusecase "gamedeals_backend/internal/feature/purchases/usecase"
	reviewsadapters "gamedeals_backend/internal/feature/reviews/adapters"
	reviewshandler "gamedeals_backend/internal/feature/reviews/transport/handler"
	reviewsusecase "gamedeals_backend/internal/feature/reviews/usecase"
	wishlistadapters "gamedeals_backend/internal/feature/wishlist/adapters"
	wishlisthandler "gamedeals_backend/internal/feature/wishlist/transport/handler"
	wishlistusecase "gamedeals_backend/internal/feature/wishlist/usecase"
	infradb "gamedeals_backend/internal/platform/db"
	jwtmw "gamedeals_backend/internal/platform/jwt"
	infraredis "gamedeals_backend/internal/platform/redis"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	gameRepo := catalogadapters.NewGameRepository(db)
	storeRepo := catalogadapters.NewStoreRepository(db)
	reviewRepo := reviewsadapters.NewReviewRepository(db)
	purchaseRepo := purchasesadapters.NewPurchaseRepository(db)
	wishlistRepo := wishlistadapters.NewWishlistRepository(db)
	priceRepo := di.NewPriceRepository(rdb, db)

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	catalogUC := catalogusecase.NewCatalogUsecase(gameRepo, storeRepo)
	pricesUC := pricesusecase.NewPricesUsecase(priceRepo)
	reviewsUC := reviewsusecase.NewReviewsUsecase(reviewRepo)
	purchasesUC := purchasesusecase.NewPurchasesUsecase(purchaseRepo)
	wishlistUC := wishlistusecase.NewWishlistUsecase(wishlistRepo)
	profileUC := profileusecase.NewProfileUsecase(userRepo, purchasesUC, wishlistUC, reviewsUC)

	// ETLパイプライン（価格の書き込みもキャッシュ無効化を通す）
	orchestrator := di.NewOrchestrator(db, priceRepo)

	// Handler
	handlers := router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC),
		Games:     cataloghandler.NewGameHandler(catalogUC, pricesUC),
		AdminGame: cataloghandler.NewAdminGameHandler(catalogUC),
		Prices:    priceshandler.NewPriceHandler(pricesUC),
		Reviews:   reviewshandler.NewReviewHandler(reviewsUC),
		Purchases: purchaseshandler.NewPurchaseHandler(purchasesUC),
		Wishlist:  wishlisthandler.NewWishlistHandler(wishlistUC),
		Profile:   profilehandler.NewProfileHandler(profileUC),
		ETL:       etlhandler.NewETLHandler(orchestrator),
	}

	// ルータ生成
	r := router.NewRouter(handlers)

	// 定期ETLをバックグラウンドで開始
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sched := scheduler.NewScheduler(orchestrator, scheduler.IntervalFromEnv())
	go sched.Run(ctx)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
