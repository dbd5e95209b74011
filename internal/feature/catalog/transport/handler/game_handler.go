// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gamedeals_backend/internal/api"
	"gamedeals_backend/internal/feature/catalog/domain/entity"
	"gamedeals_backend/internal/feature/catalog/usecase"
	pricesentity "gamedeals_backend/internal/feature/prices/domain/entity"
)

// CatalogUsecase はゲームカタログ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CatalogUsecase interface {
	ListGames(ctx context.Context, search string) ([]entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	CreateGame(ctx context.Context, game *entity.Game) error
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, id string) error
	GenreStats(ctx context.Context) (map[string]int, error)
}

// PriceReader はゲームのストア別最新価格を読み出す操作を抽象化します。
type PriceReader interface {
	GetLatestForGame(ctx context.Context, gameID string) ([]pricesentity.PriceRecord, error)
}

// GameHandler はゲームカタログのHTTPリクエストを処理します。
type GameHandler struct {
	uc     CatalogUsecase
	prices PriceReader
}

// NewGameHandler は指定されたusecaseと価格リーダーでGameHandlerの新しいインスタンスを生成します。
func NewGameHandler(uc CatalogUsecase, prices PriceReader) *GameHandler {
	return &GameHandler{uc: uc, prices: prices}
}

func toGameResponse(g entity.Game, prices []pricesentity.PriceRecord) api.GameResponse {
	priceOut := make([]api.PriceResponse, 0, len(prices))
	for _, p := range prices {
		priceOut = append(priceOut, api.PriceResponse{
			GameID:          p.GameID,
			StoreID:         p.StoreID,
			Price:           p.Price,
			NormalPrice:     p.NormalPrice,
			Currency:        p.Currency,
			DiscountPercent: p.DiscountPercent,
			URL:             p.URL,
			ObservedAt:      p.ObservedAt.UTC().Format(time.RFC3339),
		})
	}
	return api.GameResponse{
		ID:          g.ID,
		Title:       g.Title,
		Genres:      g.Genres(),
		ImageURL:    g.ImageURL,
		Rating:      g.Rating,
		ReleaseDate: g.ReleaseDate,
		Prices:      priceOut,
	}
}

// latestPrices はゲームのストア別最新価格を取得します。
// 価格はカタログ表示の付加情報なので、取得失敗は一覧自体を失敗させません。
func (h *GameHandler) latestPrices(ctx context.Context, gameID string) []pricesentity.PriceRecord {
	prices, err := h.prices.GetLatestForGame(ctx, gameID)
	if err != nil {
		slog.Warn("failed to load latest prices for game", "game_id", gameID, "error", err)
		return nil
	}
	return prices
}

// List はゲーム一覧をストア別最新価格付きで返します。
//
// エンドポイント例:
// GET /games?search=portal
func (h *GameHandler) List(c *gin.Context) {
	search := c.Query("search")

	games, err := h.uc.ListGames(c.Request.Context(), search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list games"})
		return
	}

	out := make([]api.GameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, toGameResponse(g, h.latestPrices(c.Request.Context(), g.ID)))
	}
	c.JSON(http.StatusOK, out)
}

// Get はIDでゲームを返します。
//
// GET /games/:id
func (h *GameHandler) Get(c *gin.Context) {
	game, err := h.uc.GetGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get game"})
		return
	}
	c.JSON(http.StatusOK, toGameResponse(*game, h.latestPrices(c.Request.Context(), game.ID)))
}
