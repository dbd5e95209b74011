// Package adapters はetlフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"gamedeals_backend/internal/feature/etl/domain/entity"
	"gamedeals_backend/internal/feature/etl/usecase"
)

// runPostgres はRunRepositoryインターフェースのPostgreSQL実装です。
type runPostgres struct {
	db *gorm.DB
}

var _ usecase.RunRepository = (*runPostgres)(nil)

// NewRunRepository は指定されたDB接続でrunPostgresの新しいインスタンスを生成します。
func NewRunRepository(db *gorm.DB) *runPostgres {
	return &runPostgres{db: db}
}

// RunModel はetl_runsテーブルのGORMモデルです。
type RunModel struct {
	ID           string     `gorm:"primaryKey;size:36"`
	Status       string     `gorm:"size:32;not null"`
	StartedAt    time.Time  `gorm:"not null;index"`
	FinishedAt   *time.Time `gorm:""`
	ErrorSummary string     `gorm:"size:512"`
}

func (RunModel) TableName() string {
	return "etl_runs"
}

// OutcomeModel はetl_outcomesテーブルのGORMモデルです。
// 実行確定時にまとめて挿入され、以後変更されません。
type OutcomeModel struct {
	ID      uint   `gorm:"primaryKey"`
	RunID   string `gorm:"size:36;not null;index"`
	GameID  string `gorm:"size:64;not null"`
	StoreID string `gorm:"size:32;not null"`
	Status  string `gorm:"size:16;not null"`
	Reason  string `gorm:"size:64"`
}

func (OutcomeModel) TableName() string {
	return "etl_outcomes"
}

func toRunModel(r *entity.Run) RunModel {
	return RunModel{
		ID:           r.ID,
		Status:       string(r.Status),
		StartedAt:    r.StartedAt,
		FinishedAt:   r.FinishedAt,
		ErrorSummary: r.ErrorSummary,
	}
}

func toRunEntity(m RunModel, outcomes []OutcomeModel) *entity.Run {
	run := &entity.Run{
		ID:           m.ID,
		Status:       entity.RunStatus(m.Status),
		StartedAt:    m.StartedAt,
		FinishedAt:   m.FinishedAt,
		ErrorSummary: m.ErrorSummary,
		Outcomes:     make([]entity.Outcome, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		run.Outcomes = append(run.Outcomes, entity.Outcome{
			GameID:  o.GameID,
			StoreID: o.StoreID,
			Status:  entity.OutcomeStatus(o.Status),
			Reason:  o.Reason,
		})
	}
	return run
}

// Save は実行開始時のレコードを作成します。
func (r *runPostgres) Save(ctx context.Context, run *entity.Run) error {
	m := toRunModel(run)
	return r.db.WithContext(ctx).Create(&m).Error
}

// Finalize は終端状態と結果一覧を1トランザクションで書き込みます。
func (r *runPostgres) Finalize(ctx context.Context, run *entity.Run) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toRunModel(run)
		if err := tx.Model(&RunModel{}).Where("id = ?", run.ID).
			Updates(map[string]interface{}{
				"status":        m.Status,
				"finished_at":   m.FinishedAt,
				"error_summary": m.ErrorSummary,
			}).Error; err != nil {
			return err
		}

		if len(run.Outcomes) == 0 {
			return nil
		}
		rows := make([]OutcomeModel, 0, len(run.Outcomes))
		for _, o := range run.Outcomes {
			rows = append(rows, OutcomeModel{
				RunID:   run.ID,
				GameID:  o.GameID,
				StoreID: o.StoreID,
				Status:  string(o.Status),
				Reason:  o.Reason,
			})
		}
		return tx.Create(&rows).Error
	})
}

// LastRun は直近に開始された実行を結果一覧つきで返します。
func (r *runPostgres) LastRun(ctx context.Context) (*entity.Run, error) {
	var m RunModel
	err := r.db.WithContext(ctx).Order("started_at DESC").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNoActiveRun
		}
		return nil, err
	}

	var outcomes []OutcomeModel
	if err := r.db.WithContext(ctx).Where("run_id = ?", m.ID).Order("id ASC").Find(&outcomes).Error; err != nil {
		return nil, err
	}
	return toRunEntity(m, outcomes), nil
}
