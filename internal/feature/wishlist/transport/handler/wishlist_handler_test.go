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

	"gamedeals_backend/internal/feature/wishlist/domain/entity"
	"gamedeals_backend/internal/feature/wishlist/usecase"
	jwtmw "gamedeals_backend/internal/platform/jwt"
)

// mockWishlistUsecase is a mock implementation of the WishlistUsecase interface.
type mockWishlistUsecase struct {
	AddFunc     func(ctx context.Context, item *entity.WishlistItem) error
	ListFunc    func(ctx context.Context, userID uint) ([]entity.WishlistItem, error)
	ListIDsFunc func(ctx context.Context, userID uint) ([]string, error)
	RemoveFunc  func(ctx context.Context, userID uint, gameID string) error
}

func (m *mockWishlistUsecase) Add(ctx context.Context, item *entity.WishlistItem) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, item)
	}
	return nil
}

func (m *mockWishlistUsecase) List(ctx context.Context, userID uint) ([]entity.WishlistItem, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockWishlistUsecase) ListIDs(ctx context.Context, userID uint) ([]string, error) {
	if m.ListIDsFunc != nil {
		return m.ListIDsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockWishlistUsecase) Remove(ctx context.Context, userID uint, gameID string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, userID, gameID)
	}
	return nil
}

// withAuth は認証ミドルウェアが設定するコンテキスト値をテスト用に注入します。
func withAuth(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, userID)
		c.Next()
	}
}

func TestWishlistHandler_Add(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		mockFunc       func(ctx context.Context, item *entity.WishlistItem) error
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"game_id":"cs_1","game_title":"Portal 2","price":4.99,"original_price":19.99,"discount_percent":75}`,
			mockFunc: func(ctx context.Context, item *entity.WishlistItem) error {
				item.ID = 1
				item.AddedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
				return nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "failure: missing game_id",
			body:           `{"game_title":"Portal 2"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "failure: duplicate",
			body: `{"game_id":"cs_1","game_title":"Portal 2"}`,
			mockFunc: func(ctx context.Context, item *entity.WishlistItem) error {
				return usecase.ErrAlreadyInWishlist
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "failure: repository error",
			body: `{"game_id":"cs_1","game_title":"Portal 2"}`,
			mockFunc: func(ctx context.Context, item *entity.WishlistItem) error {
				return errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID uint
			mockUC := &mockWishlistUsecase{}
			if tt.mockFunc != nil {
				mockUC.AddFunc = func(ctx context.Context, item *entity.WishlistItem) error {
					gotUserID = item.UserID
					return tt.mockFunc(ctx, item)
				}
			}
			handler := NewWishlistHandler(mockUC)

			router := gin.New()
			router.POST("/wishlist", withAuth(7), handler.Add)

			req, _ := http.NewRequest(http.MethodPost, "/wishlist", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, uint(7), gotUserID, "user id comes from the token, not the body")

				var resp wishlistResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, uint(1), resp.ID)
				assert.Equal(t, "2026-08-01T12:00:00Z", resp.AddedAt)
			}
		})
	}
}

func TestWishlistHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewWishlistHandler(&mockWishlistUsecase{
		ListFunc: func(ctx context.Context, userID uint) ([]entity.WishlistItem, error) {
			return []entity.WishlistItem{
				{ID: 1, UserID: userID, GameID: "cs_1", GameTitle: "Portal 2"},
			}, nil
		},
	})

	router := gin.New()
	router.GET("/wishlist", withAuth(7), handler.List)

	req, _ := http.NewRequest(http.MethodGet, "/wishlist", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []wishlistResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "cs_1", resp[0].GameID)
}

func TestWishlistHandler_ListIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewWishlistHandler(&mockWishlistUsecase{
		ListIDsFunc: func(ctx context.Context, userID uint) ([]string, error) {
			return []string{"cs_1", "cs_2"}, nil
		},
	})

	router := gin.New()
	router.GET("/wishlist/ids", withAuth(7), handler.ListIDs)

	req, _ := http.NewRequest(http.MethodGet, "/wishlist/ids", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		GameIDs []string `json:"game_ids"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"cs_1", "cs_2"}, resp.GameIDs)
}

func TestWishlistHandler_Remove(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		mockFunc       func(ctx context.Context, userID uint, gameID string) error
		expectedStatus int
	}{
		{
			name:           "success",
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "failure: not in wishlist",
			mockFunc: func(ctx context.Context, userID uint, gameID string) error {
				return usecase.ErrNotInWishlist
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "failure: repository error",
			mockFunc: func(ctx context.Context, userID uint, gameID string) error {
				return errors.New("db down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID uint
			var gotGameID string
			handler := NewWishlistHandler(&mockWishlistUsecase{
				RemoveFunc: func(ctx context.Context, userID uint, gameID string) error {
					gotUserID, gotGameID = userID, gameID
					if tt.mockFunc != nil {
						return tt.mockFunc(ctx, userID, gameID)
					}
					return nil
				},
			})

			router := gin.New()
			router.DELETE("/wishlist/:game_id", withAuth(7), handler.Remove)

			req, _ := http.NewRequest(http.MethodDelete, "/wishlist/cs_1", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, uint(7), gotUserID)
			assert.Equal(t, "cs_1", gotGameID)
		})
	}
}
