// Package adapters はwishlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"gamedeals_backend/internal/feature/wishlist/domain/entity"
	"gamedeals_backend/internal/feature/wishlist/usecase"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEコードです。
const pgUniqueViolation = "23505"

// wishlistPostgres はWishlistRepositoryインターフェースのPostgreSQL実装です。
type wishlistPostgres struct {
	db *gorm.DB
}

var _ usecase.WishlistRepository = (*wishlistPostgres)(nil)

// NewWishlistRepository は指定されたDB接続でwishlistPostgresの新しいインスタンスを生成します。
func NewWishlistRepository(db *gorm.DB) *wishlistPostgres {
	return &wishlistPostgres{db: db}
}

// WishlistItemModel はwishlist_itemsテーブルのGORMモデルです。
// (user_id, game_id) の複合一意制約で二重登録を防ぎます。
type WishlistItemModel struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"not null;uniqueIndex:idx_wishlist_user_game"`
	GameID          string `gorm:"size:64;not null;uniqueIndex:idx_wishlist_user_game"`
	GameTitle       string `gorm:"size:255;not null"`
	GameImageURL    string `gorm:"size:512"`
	Price           float64
	OriginalPrice   float64
	DiscountPercent float64
	StoreID         string    `gorm:"size:32"`
	DealID          string    `gorm:"size:128"`
	AddedAt         time.Time `gorm:"not null"`
}

func (WishlistItemModel) TableName() string {
	return "wishlist_items"
}

func toModel(e *entity.WishlistItem) WishlistItemModel {
	return WishlistItemModel{
		ID:              e.ID,
		UserID:          e.UserID,
		GameID:          e.GameID,
		GameTitle:       e.GameTitle,
		GameImageURL:    e.GameImageURL,
		Price:           e.Price,
		OriginalPrice:   e.OriginalPrice,
		DiscountPercent: e.DiscountPercent,
		StoreID:         e.StoreID,
		DealID:          e.DealID,
		AddedAt:         e.AddedAt,
	}
}

func toEntity(m WishlistItemModel) entity.WishlistItem {
	return entity.WishlistItem{
		ID:              m.ID,
		UserID:          m.UserID,
		GameID:          m.GameID,
		GameTitle:       m.GameTitle,
		GameImageURL:    m.GameImageURL,
		Price:           m.Price,
		OriginalPrice:   m.OriginalPrice,
		DiscountPercent: m.DiscountPercent,
		StoreID:         m.StoreID,
		DealID:          m.DealID,
		AddedAt:         m.AddedAt,
	}
}

// Add はエントリを保存します。同じ(user_id, game_id)が既に存在する場合は
// usecase.ErrAlreadyInWishlistを返します。
func (r *wishlistPostgres) Add(ctx context.Context, item *entity.WishlistItem) error {
	m := toModel(item)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return usecase.ErrAlreadyInWishlist
		}
		// テスト用SQLiteドライバはgorm.ErrDuplicatedKeyに変換する
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrAlreadyInWishlist
		}
		return err
	}
	item.ID = m.ID
	return nil
}

// ListByUser はユーザーのウィッシュリストを追加の新しい順に返します。
func (r *wishlistPostgres) ListByUser(ctx context.Context, userID uint) ([]entity.WishlistItem, error) {
	var rows []WishlistItemModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.WishlistItem, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// Remove はエントリを削除します。存在しなければusecase.ErrNotInWishlistです。
func (r *wishlistPostgres) Remove(ctx context.Context, userID uint, gameID string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&WishlistItemModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNotInWishlist
	}
	return nil
}
