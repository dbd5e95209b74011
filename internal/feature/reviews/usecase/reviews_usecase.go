// Package usecase はreviewsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gamedeals_backend/internal/feature/reviews/domain/entity"
)

var (
	// ErrReviewNotFound は指定されたレビューが存在しない場合に返されます。
	ErrReviewNotFound = errors.New("review not found")

	// ErrInvalidReview はコメント長や星数がバリデーションに通らない場合に返されます。
	ErrInvalidReview = errors.New("invalid review")

	// ErrForbidden は他人のレビューを削除しようとした場合に返されます。
	ErrForbidden = errors.New("not allowed to modify this review")
)

const (
	minStar        = 1
	maxStar        = 5
	maxCommentRune = 200
)

// ReviewRepository はレビューの永続化層を抽象化します。
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uint) (*entity.Review, error)
	List(ctx context.Context) ([]entity.Review, error)
	ListByGame(ctx context.Context, gameID string) ([]entity.Review, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.Review, error)
	Delete(ctx context.Context, id uint) error
}

// ReviewsUsecase はレビューの業務操作を提供します。
type ReviewsUsecase struct {
	repo ReviewRepository
}

// NewReviewsUsecase はReviewsUsecaseの新しいインスタンスを生成します。
func NewReviewsUsecase(repo ReviewRepository) *ReviewsUsecase {
	return &ReviewsUsecase{repo: repo}
}

// Create はレビューを検証して保存します。
func (u *ReviewsUsecase) Create(ctx context.Context, review *entity.Review) error {
	comment := strings.TrimSpace(review.Comment)
	if comment == "" || utf8.RuneCountInString(comment) > maxCommentRune {
		return ErrInvalidReview
	}
	if review.Star < minStar || review.Star > maxStar {
		return ErrInvalidReview
	}
	review.Comment = comment
	return u.repo.Create(ctx, review)
}

// List は全レビューを返します。
func (u *ReviewsUsecase) List(ctx context.Context) ([]entity.Review, error) {
	return u.repo.List(ctx)
}

// ListByGame はゲームに紐づくレビューを返します。
func (u *ReviewsUsecase) ListByGame(ctx context.Context, gameID string) ([]entity.Review, error) {
	return u.repo.ListByGame(ctx, gameID)
}

// ListByUser はユーザーが投稿したレビューを返します。
func (u *ReviewsUsecase) ListByUser(ctx context.Context, userID uint) ([]entity.Review, error) {
	return u.repo.ListByUser(ctx, userID)
}

// Delete はレビューを削除します。
// 削除できるのは投稿者本人か管理者だけです。
func (u *ReviewsUsecase) Delete(ctx context.Context, id, requesterID uint, isAdmin bool) error {
	review, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != requesterID && !isAdmin {
		return ErrForbidden
	}
	return u.repo.Delete(ctx, id)
}

// CountByUser はユーザーのレビュー数を返します。
func (u *ReviewsUsecase) CountByUser(ctx context.Context, userID uint) (int, error) {
	reviews, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(reviews), nil
}
