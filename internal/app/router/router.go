// Package router assembles the HTTP route table for the API server.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "gamedeals_backend/internal/feature/auth/transport/handler"
	cataloghandler "gamedeals_backend/internal/feature/catalog/transport/handler"
	etlhandler "gamedeals_backend/internal/feature/etl/transport/handler"
	priceshandler "gamedeals_backend/internal/feature/prices/transport/handler"
	profilehandler "gamedeals_backend/internal/feature/profile/transport/handler"
	purchaseshandler "gamedeals_backend/internal/feature/purchases/transport/handler"
	reviewshandler "gamedeals_backend/internal/feature/reviews/transport/handler"
	wishlisthandler "gamedeals_backend/internal/feature/wishlist/transport/handler"
	jwtmw "gamedeals_backend/internal/platform/jwt"
)

// Handlers holds every transport handler the route table needs.
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Games     *cataloghandler.GameHandler
	AdminGame *cataloghandler.AdminGameHandler
	Prices    *priceshandler.PriceHandler
	Reviews   *reviewshandler.ReviewHandler
	Purchases *purchaseshandler.PurchaseHandler
	Wishlist  *wishlisthandler.WishlistHandler
	Profile   *profilehandler.ProfileHandler
	ETL       *etlhandler.ETLHandler
}

// health は導通確認用エンドポイントです。
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", health)
	// 新規ユーザー登録
	r.POST("/signup", h.Auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", h.Auth.Login)

	// カタログと価格の参照は誰でもできる
	r.GET("/games", h.Games.List)
	r.GET("/games/:id", h.Games.Get)
	r.GET("/games/:id/prices", h.Prices.Latest)
	r.GET("/games/:id/prices/history", h.Prices.History)
	r.GET("/deals/top", h.Prices.TopDeals)

	// レビューの参照も誰でもできる
	r.GET("/reviews", h.Reviews.List)
	r.GET("/reviews/game/:game", h.Reviews.ListByGame)
	r.GET("/reviews/user/:user_id", h.Reviews.ListByUser)

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/reviews", h.Reviews.Create)
		auth.DELETE("/reviews/:id", h.Reviews.Delete)

		auth.GET("/purchases/me", h.Purchases.ListMine)
		auth.POST("/purchases", h.Purchases.Create)

		auth.GET("/wishlist", h.Wishlist.List)
		auth.GET("/wishlist/ids", h.Wishlist.ListIDs)
		auth.POST("/wishlist", h.Wishlist.Add)
		auth.DELETE("/wishlist/:game_id", h.Wishlist.Remove)

		auth.GET("/profile", h.Profile.Get)
		auth.PUT("/profile", h.Profile.UpdateEmail)
		auth.PUT("/profile/preferences", h.Profile.UpdatePreferences)
	}

	// 管理者限定のルート
	admin := r.Group("/admin")
	admin.Use(jwtmw.AuthRequired(), jwtmw.AdminRequired())
	{
		admin.GET("/games", h.Games.List)
		admin.POST("/games", h.AdminGame.Create)
		admin.PUT("/games/:id", h.AdminGame.Update)
		admin.DELETE("/games/:id", h.AdminGame.Delete)
		admin.GET("/genres", h.AdminGame.GenreStats)

		admin.POST("/etl/trigger", h.ETL.Trigger)
		admin.POST("/etl/stop", h.ETL.Stop)
		admin.GET("/etl/status", h.ETL.Status)
	}

	return r
}
