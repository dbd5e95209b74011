package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gamedeals_backend/internal/feature/reviews/domain/entity"
	"gamedeals_backend/internal/feature/reviews/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&ReviewModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func TestReviewPostgres_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewRepository(setupTestDB(t))

	review := &entity.Review{GameID: "cs_1", UserID: 7, Comment: "great puzzle game", Star: 5}
	require.NoError(t, repo.Create(ctx, review))
	assert.NotZero(t, review.ID, "created review gets an ID")

	got, err := repo.FindByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, "great puzzle game", got.Comment)
	assert.Equal(t, 5, got.Star)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, usecase.ErrReviewNotFound)
}

func TestReviewPostgres_Listings(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewRepository(setupTestDB(t))

	seed := []entity.Review{
		{GameID: "cs_1", UserID: 1, Comment: "good", Star: 4},
		{GameID: "cs_1", UserID: 2, Comment: "meh", Star: 2},
		{GameID: "cs_2", UserID: 1, Comment: "classic", Star: 5},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byGame, err := repo.ListByGame(ctx, "cs_1")
	require.NoError(t, err)
	assert.Len(t, byGame, 2)

	byUser, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	empty, err := repo.ListByGame(ctx, "cs_none")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReviewPostgres_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewReviewRepository(setupTestDB(t))

	review := &entity.Review{GameID: "cs_1", UserID: 1, Comment: "short lived", Star: 3}
	require.NoError(t, repo.Create(ctx, review))

	require.NoError(t, repo.Delete(ctx, review.ID))
	_, err := repo.FindByID(ctx, review.ID)
	assert.ErrorIs(t, err, usecase.ErrReviewNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, review.ID), usecase.ErrReviewNotFound)
}
