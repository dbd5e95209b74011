// Package adapters はpurchasesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gamedeals_backend/internal/feature/purchases/domain/entity"
	"gamedeals_backend/internal/feature/purchases/usecase"
)

// purchasePostgres はPurchaseRepositoryインターフェースのPostgreSQL実装です。
type purchasePostgres struct {
	db *gorm.DB
}

var _ usecase.PurchaseRepository = (*purchasePostgres)(nil)

// NewPurchaseRepository は指定されたDB接続でpurchasePostgresの新しいインスタンスを生成します。
func NewPurchaseRepository(db *gorm.DB) *purchasePostgres {
	return &purchasePostgres{db: db}
}

// PurchaseModel はpurchasesテーブルのGORMモデルです。
type PurchaseModel struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"not null;index"`
	GameID       string `gorm:"size:64;not null"`
	GameTitle    string `gorm:"size:255;not null"`
	GameImageURL string `gorm:"size:512"`
	GameGenre    string `gorm:"size:255"`
	Price        float64
	StoreID      string    `gorm:"size:32"`
	PurchaseDate time.Time `gorm:"not null;index"`
}

func (PurchaseModel) TableName() string {
	return "purchases"
}

func toModel(e *entity.Purchase) PurchaseModel {
	return PurchaseModel{
		ID:           e.ID,
		UserID:       e.UserID,
		GameID:       e.GameID,
		GameTitle:    e.GameTitle,
		GameImageURL: e.GameImageURL,
		GameGenre:    e.GameGenre,
		Price:        e.Price,
		StoreID:      e.StoreID,
		PurchaseDate: e.PurchaseDate,
	}
}

func toEntity(m PurchaseModel) entity.Purchase {
	return entity.Purchase{
		ID:           m.ID,
		UserID:       m.UserID,
		GameID:       m.GameID,
		GameTitle:    m.GameTitle,
		GameImageURL: m.GameImageURL,
		GameGenre:    m.GameGenre,
		Price:        m.Price,
		StoreID:      m.StoreID,
		PurchaseDate: m.PurchaseDate,
	}
}

// Create は購入を保存し、採番されたIDをエンティティに書き戻します。
func (r *purchasePostgres) Create(ctx context.Context, purchase *entity.Purchase) error {
	m := toModel(purchase)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	purchase.ID = m.ID
	return nil
}

// ListByUser はユーザーの購入履歴を新しい順に返します。
func (r *purchasePostgres) ListByUser(ctx context.Context, userID uint) ([]entity.Purchase, error) {
	var rows []PurchaseModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchase_date DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Purchase, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
