package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"gamedeals_backend/internal/feature/purchases/domain/entity"
)

// mockPurchaseRepository はテスト用のPurchaseRepositoryモック実装です。
type mockPurchaseRepository struct {
	createFn     func(ctx context.Context, purchase *entity.Purchase) error
	listByUserFn func(ctx context.Context, userID uint) ([]entity.Purchase, error)
}

func (m *mockPurchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	if m.createFn != nil {
		return m.createFn(ctx, purchase)
	}
	return nil
}

func (m *mockPurchaseRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Purchase, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func TestPurchasesUsecase_Create_Validation(t *testing.T) {
	tests := []struct {
		name     string
		purchase entity.Purchase
		wantErr  error
	}{
		{
			name:     "valid purchase",
			purchase: entity.Purchase{GameID: "cs_1", GameTitle: "Portal 2", Price: 4.99},
		},
		{
			name:     "missing game id",
			purchase: entity.Purchase{GameTitle: "Portal 2", Price: 4.99},
			wantErr:  ErrInvalidPurchase,
		},
		{
			name:     "missing title",
			purchase: entity.Purchase{GameID: "cs_1", Price: 4.99},
			wantErr:  ErrInvalidPurchase,
		},
		{
			name:     "negative price",
			purchase: entity.Purchase{GameID: "cs_1", GameTitle: "Portal 2", Price: -1},
			wantErr:  ErrInvalidPurchase,
		},
		{
			name:     "free game is fine",
			purchase: entity.Purchase{GameID: "cs_1", GameTitle: "Portal 2", Price: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewPurchasesUsecase(&mockPurchaseRepository{})
			p := tt.purchase
			p.UserID = 1
			err := uc.Create(context.Background(), &p)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPurchasesUsecase_Create_StampsPurchaseDate(t *testing.T) {
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	var saved *entity.Purchase
	uc := NewPurchasesUsecase(&mockPurchaseRepository{
		createFn: func(ctx context.Context, purchase *entity.Purchase) error {
			saved = purchase
			return nil
		},
	})
	uc.now = func() time.Time { return fixed }

	p := &entity.Purchase{UserID: 1, GameID: "cs_1", GameTitle: "Portal 2", Price: 4.99}
	if err := uc.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !saved.PurchaseDate.Equal(fixed) {
		t.Errorf("purchase date = %v, want %v", saved.PurchaseDate, fixed)
	}

	// 明示的な日付は上書きしない
	explicit := fixed.Add(-48 * time.Hour)
	p2 := &entity.Purchase{UserID: 1, GameID: "cs_1", GameTitle: "Portal 2", Price: 4.99, PurchaseDate: explicit}
	if err := uc.Create(context.Background(), p2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !saved.PurchaseDate.Equal(explicit) {
		t.Errorf("purchase date = %v, want %v", saved.PurchaseDate, explicit)
	}
}

func TestPurchasesUsecase_CountByUser(t *testing.T) {
	uc := NewPurchasesUsecase(&mockPurchaseRepository{
		listByUserFn: func(ctx context.Context, userID uint) ([]entity.Purchase, error) {
			return []entity.Purchase{{ID: 1}, {ID: 2}}, nil
		},
	})

	count, err := uc.CountByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
