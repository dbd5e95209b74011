// Package handler はpricesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gamedeals_backend/internal/api"
	"gamedeals_backend/internal/feature/prices/domain/entity"
)

// PricesUsecase は価格参照操作のユースケースインターフェースを定義します。
type PricesUsecase interface {
	GetHistory(ctx context.Context, gameID string, limit int) ([]entity.PriceRecord, error)
	GetLatestForGame(ctx context.Context, gameID string) ([]entity.PriceRecord, error)
	GetTopDeals(ctx context.Context, minDiscount float64, limit int, sort string) ([]entity.PriceRecord, error)
}

// PriceHandler は価格参照のHTTPリクエストを処理します。
type PriceHandler struct {
	uc PricesUsecase
}

// NewPriceHandler は指定されたusecaseでPriceHandlerの新しいインスタンスを生成します。
func NewPriceHandler(uc PricesUsecase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

func toPriceResponse(p entity.PriceRecord) api.PriceResponse {
	return api.PriceResponse{
		GameID:          p.GameID,
		StoreID:         p.StoreID,
		Price:           p.Price,
		NormalPrice:     p.NormalPrice,
		Currency:        p.Currency,
		DiscountPercent: p.DiscountPercent,
		URL:             p.URL,
		ObservedAt:      p.ObservedAt.UTC().Format(time.RFC3339),
	}
}

func toPriceResponses(records []entity.PriceRecord) []api.PriceResponse {
	out := make([]api.PriceResponse, 0, len(records))
	for _, p := range records {
		out = append(out, toPriceResponse(p))
	}
	return out
}

// Latest はゲームのストア別最新価格を返します。
//
// GET /games/:id/prices
func (h *PriceHandler) Latest(c *gin.Context) {
	prices, err := h.uc.GetLatestForGame(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get prices"})
		return
	}
	c.JSON(http.StatusOK, toPriceResponses(prices))
}

// History はゲームの価格履歴を新しい順に返します。
//
// エンドポイント例:
// GET /games/:id/prices/history?limit=30
func (h *PriceHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	prices, err := h.uc.GetHistory(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get price history"})
		return
	}
	c.JSON(http.StatusOK, toPriceResponses(prices))
}

// TopDeals は割引率でフィルタしたお得な最新価格の一覧を返します。
//
// エンドポイント例:
// GET /deals/top?min_discount=25&limit=20&sort=discount
func (h *PriceHandler) TopDeals(c *gin.Context) {
	minDiscount, err := strconv.ParseFloat(c.DefaultQuery("min_discount", "60"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid min_discount"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid limit"})
		return
	}
	sort := c.DefaultQuery("sort", "discount")

	deals, err := h.uc.GetTopDeals(c.Request.Context(), minDiscount, limit, sort)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get deals"})
		return
	}
	c.JSON(http.StatusOK, toPriceResponses(deals))
}
