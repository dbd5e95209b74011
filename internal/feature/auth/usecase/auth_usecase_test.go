package usecase

import (
	"context"
	"errors"
	"testing"

	"gamedeals_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

// mockJWTGenerator is a mock implementation of the JWTGenerator interface.
type mockJWTGenerator struct {
	GenerateTokenFunc func(userID uint, email string, admin bool) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID uint, email string, admin bool) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email, admin)
	}
	return "test-token", nil
}

func TestAuthUsecase_Signup(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		email      string
		password   string
		createFunc func(ctx context.Context, user *entity.User) error
		wantErr    error
	}{
		{
			name:     "success: user is created with hashed password",
			email:    "test@example.com",
			password: "password123",
			createFunc: func(ctx context.Context, user *entity.User) error {
				if user.Email != "test@example.com" {
					t.Errorf("unexpected email: %s", user.Email)
				}
				if user.Password == "password123" {
					t.Error("password was stored in plaintext")
				}
				if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
					t.Errorf("stored hash does not match password: %v", err)
				}
				return nil
			},
		},
		{
			name:     "failure: password too short",
			email:    "test@example.com",
			password: "short",
			createFunc: func(ctx context.Context, user *entity.User) error {
				t.Error("Create should not be called")
				return nil
			},
			wantErr: nil, // バリデーションエラーはsentinelではない
		},
		{
			name:     "failure: duplicate email",
			email:    "dup@example.com",
			password: "password123",
			createFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
			wantErr: ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewAuthUsecase(&mockUserRepository{CreateFunc: tt.createFunc}, &mockJWTGenerator{})

			err := uc.Signup(ctx, tt.email, tt.password)

			switch {
			case tt.name == "failure: password too short":
				if err == nil {
					t.Fatal("expected validation error")
				}
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	storedUser := &entity.User{ID: 7, Email: "test@example.com", Password: string(hashed), IsAdmin: true}

	tests := []struct {
		name      string
		email     string
		password  string
		findFunc  func(ctx context.Context, email string) (*entity.User, error)
		wantToken string
		wantErr   error
	}{
		{
			name:     "success: valid credentials return token with admin claim",
			email:    "test@example.com",
			password: "password123",
			findFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return storedUser, nil
			},
			wantToken: "test-token",
		},
		{
			name:     "failure: wrong password",
			email:    "test@example.com",
			password: "wrongpassword",
			findFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return storedUser, nil
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "failure: unknown user",
			email:    "nobody@example.com",
			password: "password123",
			findFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, ErrUserNotFound
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAdmin bool
			gen := &mockJWTGenerator{
				GenerateTokenFunc: func(userID uint, email string, admin bool) (string, error) {
					gotAdmin = admin
					return "test-token", nil
				},
			}
			uc := NewAuthUsecase(&mockUserRepository{FindByEmailFunc: tt.findFunc}, gen)

			token, err := uc.Login(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if token != tt.wantToken {
				t.Errorf("token = %q, want %q", token, tt.wantToken)
			}
			if !gotAdmin {
				t.Error("admin claim was not propagated to the token generator")
			}
		})
	}
}
