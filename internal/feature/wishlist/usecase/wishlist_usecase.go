// Package usecase はwishlistフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"gamedeals_backend/internal/feature/wishlist/domain/entity"
)

var (
	// ErrAlreadyInWishlist は同じゲームが既に登録されている場合に返されます。
	ErrAlreadyInWishlist = errors.New("game already in wishlist")

	// ErrNotInWishlist は指定されたゲームが登録されていない場合に返されます。
	ErrNotInWishlist = errors.New("game not in wishlist")

	// ErrInvalidWishlistItem は登録内容がバリデーションに通らない場合に返されます。
	ErrInvalidWishlistItem = errors.New("invalid wishlist item")
)

// WishlistRepository はウィッシュリストの永続化層を抽象化します。
type WishlistRepository interface {
	Add(ctx context.Context, item *entity.WishlistItem) error
	ListByUser(ctx context.Context, userID uint) ([]entity.WishlistItem, error)
	Remove(ctx context.Context, userID uint, gameID string) error
}

// WishlistUsecase はウィッシュリストの業務操作を提供します。
type WishlistUsecase struct {
	repo WishlistRepository
	now  func() time.Time
}

// NewWishlistUsecase はWishlistUsecaseの新しいインスタンスを生成します。
func NewWishlistUsecase(repo WishlistRepository) *WishlistUsecase {
	return &WishlistUsecase{repo: repo, now: time.Now}
}

// Add はゲームをウィッシュリストに追加します。
// 同じゲームが既に登録されている場合はErrAlreadyInWishlistを返します。
func (u *WishlistUsecase) Add(ctx context.Context, item *entity.WishlistItem) error {
	if strings.TrimSpace(item.GameID) == "" || strings.TrimSpace(item.GameTitle) == "" {
		return ErrInvalidWishlistItem
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = u.now().UTC()
	}
	return u.repo.Add(ctx, item)
}

// List はユーザーのウィッシュリストを返します。
func (u *WishlistUsecase) List(ctx context.Context, userID uint) ([]entity.WishlistItem, error) {
	return u.repo.ListByUser(ctx, userID)
}

// ListIDs はユーザーが登録しているゲームIDだけを返します。
// フロントエンドの「登録済み」表示用の軽量エンドポイントに使います。
func (u *WishlistUsecase) ListIDs(ctx context.Context, userID uint) ([]string, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.GameID)
	}
	return ids, nil
}

// Remove はゲームをウィッシュリストから外します。
func (u *WishlistUsecase) Remove(ctx context.Context, userID uint, gameID string) error {
	return u.repo.Remove(ctx, userID, gameID)
}

// CountByUser はユーザーのウィッシュリスト件数を返します。
func (u *WishlistUsecase) CountByUser(ctx context.Context, userID uint) (int, error) {
	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
