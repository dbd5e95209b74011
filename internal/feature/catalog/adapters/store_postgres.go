package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gamedeals_backend/internal/feature/catalog/domain/entity"
	"gamedeals_backend/internal/feature/catalog/usecase"
)

// storePostgres はStoreRepositoryインターフェースのPostgreSQL実装です。
type storePostgres struct {
	db *gorm.DB
}

var _ usecase.StoreRepository = (*storePostgres)(nil)

// NewStoreRepository は指定されたDB接続でstorePostgresの新しいインスタンスを生成します。
func NewStoreRepository(db *gorm.DB) *storePostgres {
	return &storePostgres{db: db}
}

// StoreModel はstoresテーブルのGORMモデルです。
type StoreModel struct {
	ID      string `gorm:"primaryKey;size:32"`
	Name    string `gorm:"size:64;not null"`
	BaseURL string `gorm:"size:255"`
}

func (StoreModel) TableName() string {
	return "stores"
}

// List はストア参照データをID順で返します。
func (r *storePostgres) List(ctx context.Context) ([]entity.Store, error) {
	var rows []StoreModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Store, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.Store{ID: m.ID, Name: m.Name, BaseURL: m.BaseURL})
	}
	return out, nil
}

// ListIDs はストアIDのみをID順で返します。
func (r *storePostgres) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&StoreModel{}).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// SeedStores は既定のストア参照データを投入します。既存行は変更しません。
func SeedStores(db *gorm.DB) error {
	seeds := []StoreModel{
		{ID: "cheapshark", Name: "CheapShark", BaseURL: "https://www.cheapshark.com/api/1.0"},
		{ID: "gog", Name: "GOG.com", BaseURL: "https://embed.gog.com"},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seeds).Error
}
