// Package handler はwishlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gamedeals_backend/internal/api"
	"gamedeals_backend/internal/feature/wishlist/domain/entity"
	"gamedeals_backend/internal/feature/wishlist/usecase"
	jwtmw "gamedeals_backend/internal/platform/jwt"
)

// WishlistUsecase はウィッシュリスト操作のユースケースインターフェースを定義します。
type WishlistUsecase interface {
	Add(ctx context.Context, item *entity.WishlistItem) error
	List(ctx context.Context, userID uint) ([]entity.WishlistItem, error)
	ListIDs(ctx context.Context, userID uint) ([]string, error)
	Remove(ctx context.Context, userID uint, gameID string) error
}

// wishlistRequest はウィッシュリスト追加のリクエストボディです。
type wishlistRequest struct {
	GameID          string  `json:"game_id" binding:"required"`
	GameTitle       string  `json:"game_title" binding:"required"`
	GameImageURL    string  `json:"game_image_url"`
	Price           float64 `json:"price"`
	OriginalPrice   float64 `json:"original_price"`
	DiscountPercent float64 `json:"discount_percent"`
	StoreID         string  `json:"store_id"`
	DealID          string  `json:"deal_id"`
}

// wishlistResponse はウィッシュリスト1件のレスポンスDTOです。
type wishlistResponse struct {
	ID              uint    `json:"id"`
	GameID          string  `json:"game_id"`
	GameTitle       string  `json:"game_title"`
	GameImageURL    string  `json:"game_image_url"`
	Price           float64 `json:"price"`
	OriginalPrice   float64 `json:"original_price"`
	DiscountPercent float64 `json:"discount_percent"`
	StoreID         string  `json:"store_id"`
	DealID          string  `json:"deal_id"`
	AddedAt         string  `json:"added_at"`
}

// WishlistHandler はウィッシュリストのHTTPリクエストを処理します。
type WishlistHandler struct {
	uc WishlistUsecase
}

// NewWishlistHandler は指定されたusecaseでWishlistHandlerの新しいインスタンスを生成します。
func NewWishlistHandler(uc WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{uc: uc}
}

func toWishlistResponse(item entity.WishlistItem) wishlistResponse {
	return wishlistResponse{
		ID:              item.ID,
		GameID:          item.GameID,
		GameTitle:       item.GameTitle,
		GameImageURL:    item.GameImageURL,
		Price:           item.Price,
		OriginalPrice:   item.OriginalPrice,
		DiscountPercent: item.DiscountPercent,
		StoreID:         item.StoreID,
		DealID:          item.DealID,
		AddedAt:         item.AddedAt.UTC().Format(time.RFC3339),
	}
}

// Add はゲームをウィッシュリストに追加します。
//
// POST /wishlist
func (h *WishlistHandler) Add(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	item := &entity.WishlistItem{
		UserID:          c.GetUint(jwtmw.ContextUserID),
		GameID:          req.GameID,
		GameTitle:       req.GameTitle,
		GameImageURL:    req.GameImageURL,
		Price:           req.Price,
		OriginalPrice:   req.OriginalPrice,
		DiscountPercent: req.DiscountPercent,
		StoreID:         req.StoreID,
		DealID:          req.DealID,
	}
	if err := h.uc.Add(c.Request.Context(), item); err != nil {
		switch {
		case errors.Is(err, usecase.ErrAlreadyInWishlist):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "game already in wishlist"})
		case errors.Is(err, usecase.ErrInvalidWishlistItem):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid wishlist item"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to add to wishlist"})
		}
		return
	}
	c.JSON(http.StatusCreated, toWishlistResponse(*item))
}

// List はログイン中ユーザーのウィッシュリストを返します。
//
// GET /wishlist
func (h *WishlistHandler) List(c *gin.Context) {
	items, err := h.uc.List(c.Request.Context(), c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list wishlist"})
		return
	}

	out := make([]wishlistResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toWishlistResponse(item))
	}
	c.JSON(http.StatusOK, out)
}

// ListIDs は登録済みゲームIDの一覧だけを返します。
//
// GET /wishlist/ids
func (h *WishlistHandler) ListIDs(c *gin.Context) {
	ids, err := h.uc.ListIDs(c.Request.Context(), c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"game_ids": ids})
}

// Remove はゲームをウィッシュリストから外します。
//
// DELETE /wishlist/:game_id
func (h *WishlistHandler) Remove(c *gin.Context) {
	err := h.uc.Remove(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), c.Param("game_id"))
	if err != nil {
		if errors.Is(err, usecase.ErrNotInWishlist) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "game not in wishlist"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to remove from wishlist"})
		return
	}
	c.Status(http.StatusNoContent)
}
