package setting

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dcfagents/internal/infrastructure/cache"
	"dcfagents/internal/infrastructure/persistence/models"
	"dcfagents/internal/infrastructure/repository"
	"dcfagents/internal/shared/constants"
	"dcfagents/internal/shared/db"
	"dcfagents/internal/shared/errors"
	"dcfagents/internal/shared/logger"
)

type settingServiceFixture struct {
	service *Service
	store   *cache.MemoryStore
	db      *gorm.DB
}

func setupSettingService(t *testing.T) *settingServiceFixture {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&models.AiSettingsModel{}))

	store := cache.NewMemoryStore()
	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))

	svc := NewService(
		repository.NewSettingsRepository(gormDB),
		store,
		db.NewTransactionManager(gormDB),
		log,
	)

	return &settingServiceFixture{service: svc, store: store, db: gormDB}
}

func (f *settingServiceFixture) seedRow(t *testing.T, name, key string) uint {
	model := models.AiSettingsModel{
		Name:         name,
		SettingKey:   key,
		PromptAgent1: "analyze the balance sheet",
	}
	require.NoError(t, f.db.Create(&model).Error)
	return model.ID
}

func TestSettingService_GetCurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the first stored row", func(t *testing.T) {
		f := setupSettingService(t)
		f.seedRow(t, "default", "dcf-agents")
		f.seedRow(t, "secondary", "dcf-agents-alt")

		resp, err := f.service.GetCurrent(ctx)
		require.NoError(t, err)
		assert.Equal(t, "default", resp.Name)
		assert.Equal(t, "dcf-agents", resp.Key)
	})

	t.Run("empty table returns not found", func(t *testing.T) {
		f := setupSettingService(t)

		_, err := f.service.GetCurrent(ctx)
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestSettingService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("patches only present prompt fields", func(t *testing.T) {
		f := setupSettingService(t)
		id := f.seedRow(t, "default", "dcf-agents")

		prompt2 := "project the free cash flows"
		resp, err := f.service.Update(ctx, id, UpdateSettingsRequest{PromptAgent2: &prompt2})
		require.NoError(t, err)
		assert.Equal(t, "analyze the balance sheet", resp.PromptAgent1)
		assert.Equal(t, "project the free cash flows", resp.PromptAgent2)
		assert.Equal(t, "dcf-agents", resp.Key)
	})

	t.Run("updates the key", func(t *testing.T) {
		f := setupSettingService(t)
		id := f.seedRow(t, "default", "dcf-agents")

		key := "dcf-agents-v2"
		resp, err := f.service.Update(ctx, id, UpdateSettingsRequest{Key: &key})
		require.NoError(t, err)
		assert.Equal(t, "dcf-agents-v2", resp.Key)
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		f := setupSettingService(t)

		key := "dcf-agents"
		_, err := f.service.Update(ctx, 42, UpdateSettingsRequest{Key: &key})
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("invalidates the settings collection cache", func(t *testing.T) {
		f := setupSettingService(t)
		id := f.seedRow(t, "default", "dcf-agents")

		_, err := f.service.ListAll(ctx)
		require.NoError(t, err)
		require.True(t, f.store.Contains(constants.CacheKeySettings))

		key := "dcf-agents-v2"
		_, err = f.service.Update(ctx, id, UpdateSettingsRequest{Key: &key})
		require.NoError(t, err)
		assert.False(t, f.store.Contains(constants.CacheKeySettings))
	})
}

func TestSettingService_ListAll(t *testing.T) {
	ctx := context.Background()
	f := setupSettingService(t)
	f.seedRow(t, "default", "dcf-agents")

	first, err := f.service.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, f.store.Contains(constants.CacheKeySettings))

	// Second read is served from the cache.
	second, err := f.service.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first[0].ID, second[0].ID)
}
