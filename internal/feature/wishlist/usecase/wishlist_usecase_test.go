package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"gamedeals_backend/internal/feature/wishlist/domain/entity"
)

// mockWishlistRepository はテスト用のWishlistRepositoryモック実装です。
type mockWishlistRepository struct {
	addFn        func(ctx context.Context, item *entity.WishlistItem) error
	listByUserFn func(ctx context.Context, userID uint) ([]entity.WishlistItem, error)
	removeFn     func(ctx context.Context, userID uint, gameID string) error
}

func (m *mockWishlistRepository) Add(ctx context.Context, item *entity.WishlistItem) error {
	if m.addFn != nil {
		return m.addFn(ctx, item)
	}
	return nil
}

func (m *mockWishlistRepository) ListByUser(ctx context.Context, userID uint) ([]entity.WishlistItem, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockWishlistRepository) Remove(ctx context.Context, userID uint, gameID string) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, userID, gameID)
	}
	return nil
}

func TestWishlistUsecase_Add_Validation(t *testing.T) {
	tests := []struct {
		name    string
		item    entity.WishlistItem
		wantErr error
	}{
		{name: "valid item", item: entity.WishlistItem{GameID: "cs_1", GameTitle: "Portal 2"}},
		{name: "missing game id", item: entity.WishlistItem{GameTitle: "Portal 2"}, wantErr: ErrInvalidWishlistItem},
		{name: "missing title", item: entity.WishlistItem{GameID: "cs_1"}, wantErr: ErrInvalidWishlistItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewWishlistUsecase(&mockWishlistRepository{})
			it := tt.item
			it.UserID = 1
			err := uc.Add(context.Background(), &it)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWishlistUsecase_Add_StampsAddedAt(t *testing.T) {
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	var saved *entity.WishlistItem
	uc := NewWishlistUsecase(&mockWishlistRepository{
		addFn: func(ctx context.Context, item *entity.WishlistItem) error {
			saved = item
			return nil
		},
	})
	uc.now = func() time.Time { return fixed }

	it := &entity.WishlistItem{UserID: 1, GameID: "cs_1", GameTitle: "Portal 2"}
	if err := uc.Add(context.Background(), it); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !saved.AddedAt.Equal(fixed) {
		t.Errorf("added at = %v, want %v", saved.AddedAt, fixed)
	}
}

func TestWishlistUsecase_Add_PropagatesDuplicate(t *testing.T) {
	uc := NewWishlistUsecase(&mockWishlistRepository{
		addFn: func(ctx context.Context, item *entity.WishlistItem) error {
			return ErrAlreadyInWishlist
		},
	})

	it := &entity.WishlistItem{UserID: 1, GameID: "cs_1", GameTitle: "Portal 2"}
	if err := uc.Add(context.Background(), it); !errors.Is(err, ErrAlreadyInWishlist) {
		t.Errorf("err = %v, want ErrAlreadyInWishlist", err)
	}
}

func TestWishlistUsecase_ListIDs(t *testing.T) {
	uc := NewWishlistUsecase(&mockWishlistRepository{
		listByUserFn: func(ctx context.Context, userID uint) ([]entity.WishlistItem, error) {
			return []entity.WishlistItem{
				{GameID: "cs_2"},
				{GameID: "cs_1"},
			}, nil
		},
	})

	ids, err := uc.ListIDs(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"cs_2", "cs_1"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestWishlistUsecase_ListIDs_Empty(t *testing.T) {
	uc := NewWishlistUsecase(&mockWishlistRepository{})

	ids, err := uc.ListIDs(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want empty", ids)
	}
}
