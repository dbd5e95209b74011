// Package handler はreviewsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gamedeals_backend/internal/api"
	"gamedeals_backend/internal/feature/reviews/domain/entity"
	"gamedeals_backend/internal/feature/reviews/usecase"
	jwtmw "gamedeals_backend/internal/platform/jwt"
)

// ReviewsUsecase はレビュー操作のユースケースインターフェースを定義します。
type ReviewsUsecase interface {
	Create(ctx context.Context, review *entity.Review) error
	List(ctx context.Context) ([]entity.Review, error)
	ListByGame(ctx context.Context, gameID string) ([]entity.Review, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.Review, error)
	Delete(ctx context.Context, id, requesterID uint, isAdmin bool) error
}

// reviewRequest はレビュー投稿のリクエストボディです。
type reviewRequest struct {
	GameID  string `json:"game_id" binding:"required"`
	Comment string `json:"comment" binding:"required,max=200"`
	Star    int    `json:"star" binding:"required,min=1,max=5"`
}

// reviewResponse はレビュー1件のレスポンスDTOです。
type reviewResponse struct {
	ID        uint   `json:"id"`
	GameID    string `json:"game_id"`
	UserID    uint   `json:"user_id"`
	Comment   string `json:"comment"`
	Star      int    `json:"star"`
	CreatedAt string `json:"created_at"`
}

// ReviewHandler はレビューのHTTPリクエストを処理します。
type ReviewHandler struct {
	uc ReviewsUsecase
}

// NewReviewHandler は指定されたusecaseでReviewHandlerの新しいインスタンスを生成します。
func NewReviewHandler(uc ReviewsUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

func toReviewResponse(r entity.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		GameID:    r.GameID,
		UserID:    r.UserID,
		Comment:   r.Comment,
		Star:      r.Star,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toReviewResponses(reviews []entity.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewResponse(r))
	}
	return out
}

// Create はレビューを投稿します。
//
// POST /reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	review := &entity.Review{
		GameID:  req.GameID,
		UserID:  c.GetUint(jwtmw.ContextUserID),
		Comment: req.Comment,
		Star:    req.Star,
	}
	if err := h.uc.Create(c.Request.Context(), review); err != nil {
		if errors.Is(err, usecase.ErrInvalidReview) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid review"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create review"})
		return
	}
	c.JSON(http.StatusCreated, toReviewResponse(*review))
}

// List は全レビューを返します。
//
// GET /reviews
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.uc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, toReviewResponses(reviews))
}

// ListByGame はゲームに紐づくレビューを返します。
//
// GET /reviews/game/:game
func (h *ReviewHandler) ListByGame(c *gin.Context) {
	reviews, err := h.uc.ListByGame(c.Request.Context(), c.Param("game"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, toReviewResponses(reviews))
}

// ListByUser はユーザーが投稿したレビューを返します。
//
// GET /reviews/user/:user_id
func (h *ReviewHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid user id"})
		return
	}

	reviews, err := h.uc.ListByUser(c.Request.Context(), uint(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, toReviewResponses(reviews))
}

// Delete はレビューを削除します。投稿者本人か管理者だけが削除できます。
//
// DELETE /reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid review id"})
		return
	}

	requesterID := c.GetUint(jwtmw.ContextUserID)
	isAdmin := c.GetBool(jwtmw.ContextIsAdmin)
	if err := h.uc.Delete(c.Request.Context(), uint(id), requesterID, isAdmin); err != nil {
		switch {
		case errors.Is(err, usecase.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "review not found"})
		case errors.Is(err, usecase.ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "not allowed"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete review"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
