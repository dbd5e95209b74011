package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamedeals_backend/internal/api"
	"gamedeals_backend/internal/feature/catalog/domain/entity"
	"gamedeals_backend/internal/feature/catalog/usecase"
)

// gameRequest は管理者向けゲーム作成のリクエストボディです。
type gameRequest struct {
	ID          string   `json:"id" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Genre       string   `json:"genre"`
	ImageURL    string   `json:"image_url"`
	Rating      *float64 `json:"rating"`
	ReleaseDate string   `json:"release_date"`
}

// gameUpdateRequest は管理者向けゲーム更新のリクエストボディです。
// IDはパスパラメータから取得するためボディには含めません。
type gameUpdateRequest struct {
	Title       string   `json:"title" binding:"required"`
	Genre       string   `json:"genre"`
	ImageURL    string   `json:"image_url"`
	Rating      *float64 `json:"rating"`
	ReleaseDate string   `json:"release_date"`
}

// AdminGameHandler は管理者向けゲームCRUDのHTTPリクエストを処理します。
type AdminGameHandler struct {
	uc CatalogUsecase
}

// NewAdminGameHandler は指定されたusecaseでAdminGameHandlerの新しいインスタンスを生成します。
func NewAdminGameHandler(uc CatalogUsecase) *AdminGameHandler {
	return &AdminGameHandler{uc: uc}
}

// Create はゲームを新規登録します。
//
// POST /admin/games
func (h *AdminGameHandler) Create(c *gin.Context) {
	var req gameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	game := &entity.Game{
		ID:          req.ID,
		Title:       req.Title,
		Genre:       req.Genre,
		ImageURL:    req.ImageURL,
		Rating:      req.Rating,
		ReleaseDate: req.ReleaseDate,
	}
	if err := h.uc.CreateGame(c.Request.Context(), game); err != nil {
		if errors.Is(err, usecase.ErrGameAlreadyExists) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "game already exists"})
			return
		}
		slog.Warn("admin game create failed", "game_id", req.ID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create game"})
		return
	}
	c.JSON(http.StatusCreated, toGameResponse(*game, nil))
}

// Update はゲーム情報を更新します。
//
// PUT /admin/games/:id
func (h *AdminGameHandler) Update(c *gin.Context) {
	var req gameUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	game := &entity.Game{
		ID:          c.Param("id"),
		Title:       req.Title,
		Genre:       req.Genre,
		ImageURL:    req.ImageURL,
		Rating:      req.Rating,
		ReleaseDate: req.ReleaseDate,
	}
	if err := h.uc.UpdateGame(c.Request.Context(), game); err != nil {
		if errors.Is(err, usecase.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "game not found"})
			return
		}
		slog.Warn("admin game update failed", "game_id", game.ID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update game"})
		return
	}
	c.JSON(http.StatusOK, toGameResponse(*game, nil))
}

// Delete はゲームを削除します。
//
// DELETE /admin/games/:id
func (h *AdminGameHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteGame(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, usecase.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete game"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GenreStats はジャンル別ゲーム数の統計を返します。
//
// GET /admin/genres
func (h *AdminGameHandler) GenreStats(c *gin.Context) {
	stats, err := h.uc.GenreStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to build genre stats"})
		return
	}

	total := 0
	for _, n := range stats {
		total += n
	}
	c.JSON(http.StatusOK, gin.H{"count": total, "genre_stats": stats})
}
