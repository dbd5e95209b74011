// Package handler はetlフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gamedeals_backend/internal/api"
	"gamedeals_backend/internal/feature/etl/domain/entity"
	"gamedeals_backend/internal/feature/etl/usecase"
)

// ETLUsecase はETL実行操作のユースケースインターフェースを定義します。
type ETLUsecase interface {
	Trigger(ctx context.Context) (string, error)
	Stop(ctx context.Context) error
	Status(ctx context.Context) (*entity.Run, error)
}

// ETLHandler は管理者向けETL操作のHTTPリクエストを処理します。
type ETLHandler struct {
	uc ETLUsecase
}

// NewETLHandler は指定されたusecaseでETLHandlerの新しいインスタンスを生成します。
func NewETLHandler(uc ETLUsecase) *ETLHandler {
	return &ETLHandler{uc: uc}
}

// Trigger は新しいETL実行を開始します。
// 実行はバックグラウンドで進み、受理された実行IDだけを返します。
//
// POST /admin/etl/trigger
func (h *ETLHandler) Trigger(c *gin.Context) {
	runID, err := h.uc.Trigger(c.Request.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrAlreadyRunning) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "etl run already in progress"})
			return
		}
		slog.Error("failed to trigger etl run", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to trigger etl run"})
		return
	}
	c.JSON(http.StatusAccepted, api.RunAcceptedResponse{RunID: runID})
}

// Stop は進行中のETL実行に停止シグナルを送ります。
//
// POST /admin/etl/stop
func (h *ETLHandler) Stop(c *gin.Context) {
	if err := h.uc.Stop(c.Request.Context()); err != nil {
		if errors.Is(err, usecase.ErrNoActiveRun) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "no etl run in progress"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to stop etl run"})
		return
	}
	c.JSON(http.StatusAccepted, api.MessageResponse{Message: "stop requested"})
}

// Status は進行中または直近のETL実行の状態を返します。
//
// GET /admin/etl/status
func (h *ETLHandler) Status(c *gin.Context) {
	run, err := h.uc.Status(c.Request.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrNoActiveRun) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "no etl run recorded"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get etl status"})
		return
	}
	c.JSON(http.StatusOK, toRunStatusResponse(run))
}

func toRunStatusResponse(run *entity.Run) api.RunStatusResponse {
	resp := api.RunStatusResponse{
		RunID:        run.ID,
		Status:       string(run.Status),
		StartedAt:    run.StartedAt.UTC().Format(time.RFC3339),
		ErrorSummary: run.ErrorSummary,
		Outcomes:     make([]api.OutcomeResponse, 0, len(run.Outcomes)),
	}
	if run.FinishedAt != nil {
		resp.FinishedAt = run.FinishedAt.UTC().Format(time.RFC3339)
	}
	for _, o := range run.Outcomes {
		resp.Outcomes = append(resp.Outcomes, api.OutcomeResponse{
			GameID:  o.GameID,
			StoreID: o.StoreID,
			Status:  string(o.Status),
			Reason:  o.Reason,
		})
	}
	return resp
}
