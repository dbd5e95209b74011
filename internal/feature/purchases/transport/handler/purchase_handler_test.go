package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"gamedeals_backend/internal/feature/purchases/domain/entity"
	"gamedeals_backend/internal/feature/purchases/usecase"
	jwtmw "gamedeals_backend/internal/platform/jwt"
)

// mockPurchasesUsecase is a mock implementation of the PurchasesUsecase interface.
type mockPurchasesUsecase struct {
	CreateFunc     func(ctx context.Context, purchase *entity.Purchase) error
	ListByUserFunc func(ctx context.Context, userID uint) ([]entity.Purchase, error)
}

func (m *mockPurchasesUsecase) Create(ctx context.Context, purchase *entity.Purchase) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, purchase)
	}
	return nil
}

func (m *mockPurchasesUsecase) ListByUser(ctx context.Context, userID uint) ([]entity.Purchase, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

// withAuth は認証ミドルウェアが設定するコンテキスト値をテスト用に注入します。
func withAuth(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Next()
	}
}

func TestPurchaseHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		mockFunc       func(ctx context.Context, purchase *entity.Purchase) error
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"game_id":"cs_1","game_title":"Portal 2","price":4.99,"store_id":"cheapshark"}`,
			mockFunc: func(ctx context.Context, purchase *entity.Purchase) error {
				purchase.ID = 1
				purchase.PurchaseDate = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
				return nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "failure: missing game_title",
			body:           `{"game_id":"cs_1","price":4.99}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "failure: usecase validation",
			body: `{"game_id":"cs_1","game_title":"Portal 2","price":-1}`,
			mockFunc: func(ctx context.Context, purchase *entity.Purchase) error {
				return usecase.ErrInvalidPurchase
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "failure: repository error",
			body: `{"game_id":"cs_1","game_title":"Portal 2","price":4.99}`,
			mockFunc: func(ctx context.Context, purchase *entity.Purchase) error {
				return errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID uint
			mockUC := &mockPurchasesUsecase{}
			if tt.mockFunc != nil {
				mockUC.CreateFunc = func(ctx context.Context, purchase *entity.Purchase) error {
					gotUserID = purchase.UserID
					return tt.mockFunc(ctx, purchase)
				}
			}
			handler := NewPurchaseHandler(mockUC)

			router := gin.New()
			router.POST("/purchases", withAuth(7), handler.Create)

			req, _ := http.NewRequest(http.MethodPost, "/purchases", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, uint(7), gotUserID, "user id comes from the token, not the body")

				var resp purchaseResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, uint(1), resp.ID)
				assert.Equal(t, "2026-08-01T12:00:00Z", resp.PurchaseDate)
			}
		})
	}
}

func TestPurchaseHandler_ListMine(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		mockFunc       func(ctx context.Context, userID uint) ([]entity.Purchase, error)
		expectedStatus int
		expectedLen    int
	}{
		{
			name: "success",
			mockFunc: func(ctx context.Context, userID uint) ([]entity.Purchase, error) {
				return []entity.Purchase{
					{ID: 1, UserID: userID, GameID: "cs_1", GameTitle: "Portal 2", Price: 4.99},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedLen:    1,
		},
		{
			name: "success: no purchases yet",
			mockFunc: func(ctx context.Context, userID uint) ([]entity.Purchase, error) {
				return nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name: "failure: repository error",
			mockFunc: func(ctx context.Context, userID uint) ([]entity.Purchase, error) {
				return nil, errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID uint
			handler := NewPurchaseHandler(&mockPurchasesUsecase{
				ListByUserFunc: func(ctx context.Context, userID uint) ([]entity.Purchase, error) {
					gotUserID = userID
					return tt.mockFunc(ctx, userID)
				},
			})

			router := gin.New()
			router.GET("/purchases/me", withAuth(7), handler.ListMine)

			req, _ := http.NewRequest(http.MethodGet, "/purchases/me", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, uint(7), gotUserID)

				var resp []purchaseResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Len(t, resp, tt.expectedLen)
			}
		})
	}
}
