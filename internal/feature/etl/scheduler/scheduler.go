// Package scheduler はETL実行の定期トリガーを提供します。
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gamedeals_backend/internal/feature/etl/usecase"
)

// defaultInterval はETL_INTERVAL_MINUTES未設定時の実行間隔です。
const defaultInterval = 6 * time.Hour

// Trigger はETL実行を開始する操作を抽象化します。
type Trigger interface {
	Trigger(ctx context.Context) (string, error)
}

// Scheduler は一定間隔でETL実行をトリガーします。
// 前回の実行が終わっていなければそのtickはスキップされます。
type Scheduler struct {
	trigger  Trigger
	interval time.Duration
}

// NewScheduler は指定されたトリガーと間隔でSchedulerの新しいインスタンスを生成します。
// intervalが0以下の場合はデフォルト間隔が使われます。
func NewScheduler(trigger Trigger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{trigger: trigger, interval: interval}
}

// IntervalFromEnv はETL_INTERVAL_MINUTESから実行間隔を読み込みます。
func IntervalFromEnv() time.Duration {
	raw := os.Getenv("ETL_INTERVAL_MINUTES")
	if raw == "" {
		return defaultInterval
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		slog.Warn("invalid ETL_INTERVAL_MINUTES, using default", "value", raw)
		return defaultInterval
	}
	return time.Duration(minutes) * time.Minute
}

// Run はコンテキストがキャンセルされるまでトリガーループを回します。
// ゴルーチンとして起動されることを想定しています。
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("etl scheduler started", "interval", s.interval.String())
	for {
		select {
		case <-ctx.Done():
			slog.Info("etl scheduler stopped")
			return
		case <-ticker.C:
			runID, err := s.trigger.Trigger(ctx)
			switch {
			case errors.Is(err, usecase.ErrAlreadyRunning):
				// 前回の実行が長引いている。キューイングはしない。
				slog.Info("etl tick skipped: run already in progress")
			case err != nil:
				slog.Error("scheduled etl trigger failed", "error", err)
			default:
				slog.Info("scheduled etl run triggered", "run_id", runID)
			}
		}
	}
}
