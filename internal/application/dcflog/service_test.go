package dcflog

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dcfagents/internal/infrastructure/persistence/models"
	"dcfagents/internal/infrastructure/repository"
	"dcfagents/internal/shared/logger"
)

func setupDcfLogService(t *testing.T) (*Service, *gorm.DB) {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&models.DcfLogModel{}))

	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewService(repository.NewDcfLogRepository(gormDB), log), gormDB
}

func TestDcfLogService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupDcfLogService(t)

	resp, err := svc.Create(ctx, CreateEntryRequest{
		Username:         "alice",
		CompanyName:      "Acme Corp",
		Description:      "baseline scenario",
		ValidationStatus: "Validated",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Acme Corp", resp.CompanyName)
	assert.WithinDuration(t, time.Now(), resp.CreatedAt, 5*time.Second)
}

func TestDcfLogService_List(t *testing.T) {
	ctx := context.Background()
	svc, gormDB := setupDcfLogService(t)

	// Insert rows with explicit timestamps so ordering is deterministic.
	base := time.Now().Add(-time.Hour)
	for i, company := range []string{"Acme Corp", "Globex", "Initech"} {
		model := models.DcfLogModel{
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
			Username:    "alice",
			CompanyName: company,
		}
		require.NoError(t, gormDB.Create(&model).Error)
	}

	t.Run("newest entries first", func(t *testing.T) {
		entries, total, err := svc.List(ctx, ListEntriesRequest{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, entries, 3)
		assert.Equal(t, "Initech", entries[0].CompanyName)
		assert.Equal(t, "Acme Corp", entries[2].CompanyName)
	})

	t.Run("paginates", func(t *testing.T) {
		entries, total, err := svc.List(ctx, ListEntriesRequest{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, entries, 1)
	})
}

func TestDcfLogService_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("empty log yields zeroes", func(t *testing.T) {
		svc, _ := setupDcfLogService(t)

		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.TotalAnalyses)
		assert.Zero(t, stats.ValidatedCount)
		assert.Zero(t, stats.UniqueCompanies)
	})

	t.Run("counts validated entries case-insensitively", func(t *testing.T) {
		svc, _ := setupDcfLogService(t)

		seed := []CreateEntryRequest{
			{Username: "alice", CompanyName: "Acme Corp", ValidationStatus: "Validated"},
			{Username: "alice", CompanyName: "Acme Corp", ValidationStatus: "validated by reviewer"},
			{Username: "bob", CompanyName: "Globex", ValidationStatus: "NOT VALIDATED"},
			{Username: "bob", CompanyName: "Initech", ValidationStatus: "pending"},
			{Username: "carol", CompanyName: "Globex", ValidationStatus: ""},
		}
		for _, req := range seed {
			_, err := svc.Create(ctx, req)
			require.NoError(t, err)
		}

		stats, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), stats.TotalAnalyses)
		// Substring match: "NOT VALIDATED" still contains the marker.
		assert.Equal(t, int64(3), stats.ValidatedCount)
		assert.Equal(t, int64(3), stats.UniqueCompanies)
	})
}
