// Package handler はprofileフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gamedeals_backend/internal/api"
	authusecase "gamedeals_backend/internal/feature/auth/usecase"
	"gamedeals_backend/internal/feature/profile/usecase"
	jwtmw "gamedeals_backend/internal/platform/jwt"
)

// ProfileUsecase はプロフィール操作のユースケースインターフェースを定義します。
type ProfileUsecase interface {
	Get(ctx context.Context, userID uint) (*usecase.Profile, error)
	UpdateEmail(ctx context.Context, userID uint, email string) error
	UpdatePreferredCurrency(ctx context.Context, userID uint, currency string) error
}

// profileResponse はプロフィール画面用のレスポンスDTOです。
type profileResponse struct {
	Email             string `json:"email"`
	IsAdmin           bool   `json:"is_admin"`
	PreferredCurrency string `json:"preferred_currency"`
	CreatedAt         string `json:"created_at"`
	PurchaseCount     int    `json:"purchase_count"`
	WishlistCount     int    `json:"wishlist_count"`
	ReviewCount       int    `json:"review_count"`
}

// updateEmailRequest はメールアドレス変更のリクエストボディです。
type updateEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// updatePreferencesRequest は表示設定変更のリクエストボディです。
type updatePreferencesRequest struct {
	Currency string `json:"currency" binding:"required"`
}

// ProfileHandler はプロフィールのHTTPリクエストを処理します。
type ProfileHandler struct {
	uc ProfileUsecase
}

// NewProfileHandler は指定されたusecaseでProfileHandlerの新しいインスタンスを生成します。
func NewProfileHandler(uc ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// Get はログイン中ユーザーのプロフィールを返します。
//
// GET /profile
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.uc.Get(c.Request.Context(), c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, profileResponse{
		Email:             profile.Email,
		IsAdmin:           profile.IsAdmin,
		PreferredCurrency: profile.PreferredCurrency,
		CreatedAt:         profile.CreatedAt.UTC().Format(time.RFC3339),
		PurchaseCount:     profile.PurchaseCount,
		WishlistCount:     profile.WishlistCount,
		ReviewCount:       profile.ReviewCount,
	})
}

// UpdateEmail はメールアドレスを変更します。
//
// PUT /profile
func (h *ProfileHandler) UpdateEmail(c *gin.Context) {
	var req updateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	err := h.uc.UpdateEmail(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid email address"})
		case errors.Is(err, authusecase.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "email already in use"})
		case errors.Is(err, authusecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update profile"})
		}
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// UpdatePreferences は表示通貨の設定を変更します。
//
// PUT /profile/preferences
func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	err := h.uc.UpdatePreferredCurrency(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), req.Currency)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCurrency):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid currency code"})
		case errors.Is(err, authusecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update preferences"})
		}
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}
