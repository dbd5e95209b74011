// Package adapters はpricesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"gamedeals_backend/internal/feature/prices/domain/entity"
	"gamedeals_backend/internal/feature/prices/usecase"
)

// pricePostgres はPriceRepositoryインターフェースのPostgreSQL実装です。
// 履歴テーブルは追記専用で、UPDATE/DELETEは発行しません。
type pricePostgres struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*pricePostgres)(nil)

// NewPriceRepository は指定されたDB接続でpricePostgresの新しいインスタンスを生成します。
func NewPriceRepository(db *gorm.DB) *pricePostgres {
	return &pricePostgres{db: db}
}

// PriceModel はprice_historyテーブルのGORMモデルです。
// 自動採番IDが挿入順を保存し、observed_atが同時刻のときのタイブレークに使われます。
type PriceModel struct {
	ID              uint      `gorm:"primaryKey"`
	GameID          string    `gorm:"size:64;not null;index:idx_price_game_store,priority:1"`
	StoreID         string    `gorm:"size:32;not null;index:idx_price_game_store,priority:2"`
	Price           float64   `gorm:"not null"`
	NormalPrice     float64   `gorm:"not null;default:0"`
	Currency        string    `gorm:"size:8;not null"`
	DiscountPercent float64   `gorm:"not null;default:0"`
	URL             string    `gorm:"size:512"`
	Available       bool      `gorm:"not null;default:true"`
	ObservedAt      time.Time `gorm:"not null;index"`
}

func (PriceModel) TableName() string {
	return "price_history"
}

func toModel(e entity.PriceRecord) PriceModel {
	return PriceModel{
		GameID:          e.GameID,
		StoreID:         e.StoreID,
		Price:           e.Price,
		NormalPrice:     e.NormalPrice,
		Currency:        e.Currency,
		DiscountPercent: e.DiscountPercent,
		URL:             e.URL,
		Available:       e.Available,
		ObservedAt:      e.ObservedAt,
	}
}

func toEntity(m PriceModel) entity.PriceRecord {
	return entity.PriceRecord{
		GameID:          m.GameID,
		StoreID:         m.StoreID,
		Price:           m.Price,
		NormalPrice:     m.NormalPrice,
		Currency:        m.Currency,
		DiscountPercent: m.DiscountPercent,
		URL:             m.URL,
		Available:       m.Available,
		ObservedAt:      m.ObservedAt,
	}
}

// Insert は観測を履歴に追記します。
func (r *pricePostgres) Insert(ctx context.Context, rec entity.PriceRecord) error {
	m := toModel(rec)
	return r.db.WithContext(ctx).Create(&m).Error
}

// Latest は(game, store)ペアの最新観測を返します。
// observed_atの降順、同時刻はIDの降順（後から挿入された行が勝つ）。
func (r *pricePostgres) Latest(ctx context.Context, gameID, storeID string) (*entity.PriceRecord, error) {
	var m PriceModel
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND store_id = ?", gameID, storeID).
		Order("observed_at DESC, id DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPriceNotFound
		}
		return nil, err
	}
	e := toEntity(m)
	return &e, nil
}

// latestRowsQuery は各(game, store)ペアの最新観測行(ID)を選ぶサブクエリです。
// 挿入順が観測順であるため、ペア内の最大IDが最新観測を指します。
func (r *pricePostgres) latestRowsQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&PriceModel{}).
		Select("MAX(id)").
		Group("game_id, store_id")
}

// LatestForGame はゲームの各ストアにおける最新観測を返します。
func (r *pricePostgres) LatestForGame(ctx context.Context, gameID string) ([]entity.PriceRecord, error) {
	var rows []PriceModel
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND id IN (?)", gameID, r.latestRowsQuery(ctx)).
		Order("store_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.PriceRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// History はゲームの観測履歴を新しい順に返します。
func (r *pricePostgres) History(ctx context.Context, gameID string, limit int) ([]entity.PriceRecord, error) {
	q := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("observed_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []PriceModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.PriceRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// TopDeals は各ペアの最新観測のうち割引率がminDiscount以上のものを返します。
func (r *pricePostgres) TopDeals(ctx context.Context, minDiscount float64, limit int, sort string) ([]entity.PriceRecord, error) {
	q := r.db.WithContext(ctx).
		Where("id IN (?)", r.latestRowsQuery(ctx)).
		Where("discount_percent >= ? AND available = ?", minDiscount, true)

	switch sort {
	case usecase.SortBySavings:
		q = q.Order("(normal_price - price) DESC")
	case usecase.SortByPrice:
		q = q.Order("price ASC")
	default:
		q = q.Order("discount_percent DESC")
	}

	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []PriceModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.PriceRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
