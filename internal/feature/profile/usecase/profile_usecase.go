// Package usecase はprofileフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode"

	authentity "gamedeals_backend/internal/feature/auth/domain/entity"
)

var (
	// ErrInvalidEmail はメールアドレスの形式が不正な場合に返されます。
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidCurrency は通貨コードがISO 4217形式でない場合に返されます。
	ErrInvalidCurrency = errors.New("invalid currency code")
)

// UserRepository はプロフィールが参照・更新するユーザー永続化層を抽象化します。
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
	UpdateEmail(ctx context.Context, id uint, email string) error
	UpdatePreferredCurrency(ctx context.Context, id uint, currency string) error
}

// ActivityCounter はユーザーの活動件数を数えるフィーチャーを抽象化します。
// purchases/wishlist/reviewsの各usecaseがこれを満たします。
type ActivityCounter interface {
	CountByUser(ctx context.Context, userID uint) (int, error)
}

// Profile はプロフィール画面に表示する集約ビューです。
type Profile struct {
	Email             string
	IsAdmin           bool
	PreferredCurrency string
	CreatedAt         time.Time
	PurchaseCount     int
	WishlistCount     int
	ReviewCount       int
}

// ProfileUsecase はプロフィールの業務操作を提供します。
type ProfileUsecase struct {
	users     UserRepository
	purchases ActivityCounter
	wishlist  ActivityCounter
	reviews   ActivityCounter
}

// NewProfileUsecase はProfileUsecaseの新しいインスタンスを生成します。
func NewProfileUsecase(users UserRepository, purchases, wishlist, reviews ActivityCounter) *ProfileUsecase {
	return &ProfileUsecase{
		users:     users,
		purchases: purchases,
		wishlist:  wishlist,
		reviews:   reviews,
	}
}

// Get はユーザー情報と活動件数をまとめて返します。
func (u *ProfileUsecase) Get(ctx context.Context, userID uint) (*Profile, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	purchaseCount, err := u.purchases.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	wishlistCount, err := u.wishlist.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	reviewCount, err := u.reviews.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Email:             user.Email,
		IsAdmin:           user.IsAdmin,
		PreferredCurrency: user.PreferredCurrency,
		CreatedAt:         user.CreatedAt,
		PurchaseCount:     purchaseCount,
		WishlistCount:     wishlistCount,
		ReviewCount:       reviewCount,
	}, nil
}

// UpdateEmail はメールアドレスを変更します。
func (u *ProfileUsecase) UpdateEmail(ctx context.Context, userID uint, email string) error {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	return u.users.UpdateEmail(ctx, userID, email)
}

// UpdatePreferredCurrency は表示通貨の設定を変更します。
// 通貨コードはISO 4217の3文字アルファベットとして扱い、大文字に正規化します。
func (u *ProfileUsecase) UpdatePreferredCurrency(ctx context.Context, userID uint, currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return ErrInvalidCurrency
	}
	for _, r := range currency {
		if !unicode.IsUpper(r) {
			return ErrInvalidCurrency
		}
	}
	return u.users.UpdatePreferredCurrency(ctx, userID, currency)
}
