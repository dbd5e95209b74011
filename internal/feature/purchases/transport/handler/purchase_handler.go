// Package handler はpurchasesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gamedeals_backend/internal/api"
	"gamedeals_backend/internal/feature/purchases/domain/entity"
	"gamedeals_backend/internal/feature/purchases/usecase"
	jwtmw "gamedeals_backend/internal/platform/jwt"
)

// PurchasesUsecase は購入操作のユースケースインターフェースを定義します。
type PurchasesUsecase interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	ListByUser(ctx context.Context, userID uint) ([]entity.Purchase, error)
}

// purchaseRequest は購入登録のリクエストボディです。
// ゲーム情報は購入時点のスナップショットとしてそのまま保存されます。
type purchaseRequest struct {
	GameID       string  `json:"game_id" binding:"required"`
	GameTitle    string  `json:"game_title" binding:"required"`
	GameImageURL string  `json:"game_image_url"`
	GameGenre    string  `json:"game_genre"`
	Price        float64 `json:"price"`
	StoreID      string  `json:"store_id"`
}

// purchaseResponse は購入1件のレスポンスDTOです。
type purchaseResponse struct {
	ID           uint    `json:"id"`
	GameID       string  `json:"game_id"`
	GameTitle    string  `json:"game_title"`
	GameImageURL string  `json:"game_image_url"`
	GameGenre    string  `json:"game_genre"`
	Price        float64 `json:"price"`
	StoreID      string  `json:"store_id"`
	PurchaseDate string  `json:"purchase_date"`
}

// PurchaseHandler は購入のHTTPリクエストを処理します。
type PurchaseHandler struct {
	uc PurchasesUsecase
}

// NewPurchaseHandler は指定されたusecaseでPurchaseHandlerの新しいインスタンスを生成します。
func NewPurchaseHandler(uc PurchasesUsecase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

func toPurchaseResponse(p entity.Purchase) purchaseResponse {
	return purchaseResponse{
		ID:           p.ID,
		GameID:       p.GameID,
		GameTitle:    p.GameTitle,
		GameImageURL: p.GameImageURL,
		GameGenre:    p.GameGenre,
		Price:        p.Price,
		StoreID:      p.StoreID,
		PurchaseDate: p.PurchaseDate.UTC().Format(time.RFC3339),
	}
}

// Create は購入を登録します。
//
// POST /purchases
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	purchase := &entity.Purchase{
		UserID:       c.GetUint(jwtmw.ContextUserID),
		GameID:       req.GameID,
		GameTitle:    req.GameTitle,
		GameImageURL: req.GameImageURL,
		GameGenre:    req.GameGenre,
		Price:        req.Price,
		StoreID:      req.StoreID,
	}
	if err := h.uc.Create(c.Request.Context(), purchase); err != nil {
		if errors.Is(err, usecase.ErrInvalidPurchase) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid purchase"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create purchase"})
		return
	}
	c.JSON(http.StatusCreated, toPurchaseResponse(*purchase))
}

// ListMine はログイン中ユーザーの購入履歴を返します。
//
// GET /purchases/me
func (h *PurchaseHandler) ListMine(c *gin.Context) {
	purchases, err := h.uc.ListByUser(c.Request.Context(), c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list purchases"})
		return
	}

	out := make([]purchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, toPurchaseResponse(p))
	}
	c.JSON(http.StatusOK, out)
}
