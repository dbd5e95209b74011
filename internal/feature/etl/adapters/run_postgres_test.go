package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gamedeals_backend/internal/feature/etl/domain/entity"
	"gamedeals_backend/internal/feature/etl/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&RunModel{}, &OutcomeModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func TestRunPostgres_SaveAndFinalize(t *testing.T) {
	ctx := context.Background()
	repo := NewRunRepository(setupTestDB(t))

	started := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	run := &entity.Run{
		ID:        "run-1",
		Status:    entity.RunStatusRunning,
		StartedAt: started,
	}
	require.NoError(t, repo.Save(ctx, run))

	finished := started.Add(time.Minute)
	run.Status = entity.RunStatusPartialFailure
	run.FinishedAt = &finished
	run.ErrorSummary = "1/2 pairs failed"
	run.Outcomes = []entity.Outcome{
		{GameID: "cs_1", StoreID: "cheapshark", Status: entity.OutcomeSucceeded},
		{GameID: "cs_2", StoreID: "gog", Status: entity.OutcomeFailed, Reason: entity.ReasonSourceUnavailable},
	}
	require.NoError(t, repo.Finalize(ctx, run))

	got, err := repo.LastRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, entity.RunStatusPartialFailure, got.Status)
	assert.Equal(t, "1/2 pairs failed", got.ErrorSummary)
	require.NotNil(t, got.FinishedAt)
	require.Len(t, got.Outcomes, 2)
	assert.Equal(t, entity.OutcomeSucceeded, got.Outcomes[0].Status)
	assert.Equal(t, entity.ReasonSourceUnavailable, got.Outcomes[1].Reason)
}

func TestRunPostgres_LastRun(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewRunRepository(db)

	t.Run("empty table returns ErrNoActiveRun", func(t *testing.T) {
		_, err := repo.LastRun(ctx)
		assert.ErrorIs(t, err, usecase.ErrNoActiveRun)
	})

	t.Run("most recently started run wins", func(t *testing.T) {
		older := &entity.Run{ID: "run-old", Status: entity.RunStatusSucceeded, StartedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)}
		newer := &entity.Run{ID: "run-new", Status: entity.RunStatusRunning, StartedAt: time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC)}
		require.NoError(t, repo.Save(ctx, older))
		require.NoError(t, repo.Save(ctx, newer))

		got, err := repo.LastRun(ctx)
		require.NoError(t, err)
		assert.Equal(t, "run-new", got.ID)
		assert.Empty(t, got.Outcomes)
	})
}

func TestRunPostgres_FinalizeWithoutOutcomes(t *testing.T) {
	ctx := context.Background()
	repo := NewRunRepository(setupTestDB(t))

	started := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	finished := started
	run := &entity.Run{ID: "run-empty", Status: entity.RunStatusRunning, StartedAt: started}
	require.NoError(t, repo.Save(ctx, run))

	// ペアが構成されていない実行は結果なしで確定される
	run.Status = entity.RunStatusFailed
	run.FinishedAt = &finished
	run.ErrorSummary = entity.ReasonNoSourcesConfigured
	require.NoError(t, repo.Finalize(ctx, run))

	got, err := repo.LastRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.RunStatusFailed, got.Status)
	assert.Equal(t, entity.ReasonNoSourcesConfigured, got.ErrorSummary)
	assert.Empty(t, got.Outcomes)
}
