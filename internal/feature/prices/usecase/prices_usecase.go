// Package usecase はpricesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	"gamedeals_backend/internal/feature/prices/domain/entity"
)

// ErrPriceNotFound は指定された(game, store)ペアの観測が存在しない場合に返されます。
var ErrPriceNotFound = errors.New("price record not found")

// TopDealsソート順の有効値です。
const (
	SortByDiscount = "discount"
	SortBySavings  = "savings"
	SortByPrice    = "price"
)

// PriceRepository は価格履歴の永続化層を抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type PriceRepository interface {
	// Insert は観測を履歴に追記します。既存行は決して上書きしません。
	Insert(ctx context.Context, rec entity.PriceRecord) error

	// Latest は(game, store)ペアの最新観測を返します。
	// 最新はobserved_atの降順、同時刻の場合は挿入順（後勝ち）で決まります。
	Latest(ctx context.Context, gameID, storeID string) (*entity.PriceRecord, error)

	// LatestForGame はゲームの各ストアにおける最新観測を返します。
	LatestForGame(ctx context.Context, gameID string) ([]entity.PriceRecord, error)

	// History は(game)の観測履歴を新しい順に返します。limit<=0は全件です。
	History(ctx context.Context, gameID string, limit int) ([]entity.PriceRecord, error)

	// TopDeals は各(game, store)ペアの最新観測のうち、割引率がminDiscount以上の
	// ものをソートして返します。
	TopDeals(ctx context.Context, minDiscount float64, limit int, sort string) ([]entity.PriceRecord, error)
}

// PricesUsecase は価格参照の業務操作を提供します。
type PricesUsecase struct {
	repo PriceRepository
}

// NewPricesUsecase はPricesUsecaseの新しいインスタンスを生成します。
func NewPricesUsecase(repo PriceRepository) *PricesUsecase {
	return &PricesUsecase{repo: repo}
}

// GetHistory はゲームの価格履歴を新しい順に返します。
func (u *PricesUsecase) GetHistory(ctx context.Context, gameID string, limit int) ([]entity.PriceRecord, error) {
	return u.repo.History(ctx, gameID, limit)
}

// GetLatestForGame はゲームのストア別最新価格を返します。
func (u *PricesUsecase) GetLatestForGame(ctx context.Context, gameID string) ([]entity.PriceRecord, error) {
	return u.repo.LatestForGame(ctx, gameID)
}

// GetTopDeals は割引率でフィルタしたお得な最新価格の一覧を返します。
// パラメータは有効範囲にクランプされます（元システムの挙動を踏襲）。
func (u *PricesUsecase) GetTopDeals(ctx context.Context, minDiscount float64, limit int, sort string) ([]entity.PriceRecord, error) {
	if minDiscount < 0 {
		minDiscount = 0
	}
	if minDiscount > 100 {
		minDiscount = 100
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}
	switch sort {
	case SortByDiscount, SortBySavings, SortByPrice:
	default:
		sort = SortByDiscount
	}
	return u.repo.TopDeals(ctx, minDiscount, limit, sort)
}
