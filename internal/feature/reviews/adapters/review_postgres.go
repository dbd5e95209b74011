// Package adapters はreviewsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"gamedeals_backend/internal/feature/reviews/domain/entity"
	"gamedeals_backend/internal/feature/reviews/usecase"
)

// reviewPostgres はReviewRepositoryインターフェースのPostgreSQL実装です。
type reviewPostgres struct {
	db *gorm.DB
}

var _ usecase.ReviewRepository = (*reviewPostgres)(nil)

// NewReviewRepository は指定されたDB接続でreviewPostgresの新しいインスタンスを生成します。
func NewReviewRepository(db *gorm.DB) *reviewPostgres {
	return &reviewPostgres{db: db}
}

// ReviewModel はreviewsテーブルのGORMモデルです。
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey"`
	GameID    string    `gorm:"size:64;not null;index"`
	UserID    uint      `gorm:"not null;index"`
	Comment   string    `gorm:"size:200;not null"`
	Star      int       `gorm:"not null"`
	CreatedAt time.Time
}

func (ReviewModel) TableName() string {
	return "reviews"
}

func toModel(e *entity.Review) ReviewModel {
	return ReviewModel{
		ID:        e.ID,
		GameID:    e.GameID,
		UserID:    e.UserID,
		Comment:   e.Comment,
		Star:      e.Star,
		CreatedAt: e.CreatedAt,
	}
}

func toEntity(m ReviewModel) entity.Review {
	return entity.Review{
		ID:        m.ID,
		GameID:    m.GameID,
		UserID:    m.UserID,
		Comment:   m.Comment,
		Star:      m.Star,
		CreatedAt: m.CreatedAt,
	}
}

// Create はレビューを保存し、採番されたIDをエンティティに書き戻します。
func (r *reviewPostgres) Create(ctx context.Context, review *entity.Review) error {
	m := toModel(review)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	review.ID = m.ID
	review.CreatedAt = m.CreatedAt
	return nil
}

// FindByID はIDでレビューを検索します。
func (r *reviewPostgres) FindByID(ctx context.Context, id uint) (*entity.Review, error) {
	var m ReviewModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrReviewNotFound
		}
		return nil, err
	}
	e := toEntity(m)
	return &e, nil
}

// List は全レビューを新しい順に返します。
func (r *reviewPostgres) List(ctx context.Context) ([]entity.Review, error) {
	return r.list(r.db.WithContext(ctx))
}

// ListByGame はゲームに紐づくレビューを新しい順に返します。
func (r *reviewPostgres) ListByGame(ctx context.Context, gameID string) ([]entity.Review, error) {
	return r.list(r.db.WithContext(ctx).Where("game_id = ?", gameID))
}

// ListByUser はユーザーが投稿したレビューを新しい順に返します。
func (r *reviewPostgres) ListByUser(ctx context.Context, userID uint) ([]entity.Review, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *reviewPostgres) list(q *gorm.DB) ([]entity.Review, error) {
	var rows []ReviewModel
	if err := q.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// Delete はレビューを削除します。存在しなければErrReviewNotFoundです。
func (r *reviewPostgres) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&ReviewModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrReviewNotFound
	}
	return nil
}
