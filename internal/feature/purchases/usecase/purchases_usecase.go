// Package usecase はpurchasesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"gamedeals_backend/internal/feature/purchases/domain/entity"
)

// ErrInvalidPurchase は購入内容がバリデーションに通らない場合に返されます。
var ErrInvalidPurchase = errors.New("invalid purchase")

// PurchaseRepository は購入履歴の永続化層を抽象化します。
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	ListByUser(ctx context.Context, userID uint) ([]entity.Purchase, error)
}

// PurchasesUsecase は購入履歴の業務操作を提供します。
type PurchasesUsecase struct {
	repo PurchaseRepository
	now  func() time.Time
}

// NewPurchasesUsecase はPurchasesUsecaseの新しいインスタンスを生成します。
func NewPurchasesUsecase(repo PurchaseRepository) *PurchasesUsecase {
	return &PurchasesUsecase{repo: repo, now: time.Now}
}

// Create は購入を検証して保存します。
// PurchaseDateが未設定ならサーバー時刻を記録します。
func (u *PurchasesUsecase) Create(ctx context.Context, purchase *entity.Purchase) error {
	if strings.TrimSpace(purchase.GameID) == "" || strings.TrimSpace(purchase.GameTitle) == "" {
		return ErrInvalidPurchase
	}
	if purchase.Price < 0 {
		return ErrInvalidPurchase
	}
	if purchase.PurchaseDate.IsZero() {
		purchase.PurchaseDate = u.now().UTC()
	}
	return u.repo.Create(ctx, purchase)
}

// ListByUser はユーザーの購入履歴を返します。
func (u *PurchasesUsecase) ListByUser(ctx context.Context, userID uint) ([]entity.Purchase, error) {
	return u.repo.ListByUser(ctx, userID)
}

// CountByUser はユーザーの購入件数を返します。
func (u *PurchasesUsecase) CountByUser(ctx context.Context, userID uint) (int, error) {
	purchases, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(purchases), nil
}
