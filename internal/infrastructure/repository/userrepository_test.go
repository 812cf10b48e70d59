package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domainUser "dcfagents/internal/domain/user"
	"dcfagents/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.RoleModel{},
		&models.PermissionModel{},
		&models.UserRoleModel{},
		&models.RolePermissionModel{},
		&models.AiSettingsModel{},
		&models.DcfLogModel{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, repo domainUser.Repository, username string) *domainUser.User {
	u, err := domainUser.NewUser(username, "hash-"+username, "First", "Last", "en")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_GetByUsernameIgnoreCase(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, repo, "Alice")

	t.Run("matches regardless of case", func(t *testing.T) {
		found, err := repo.GetByUsernameIgnoreCase(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Alice", found.Username())
	})

	t.Run("missing user yields nil without error", func(t *testing.T) {
		found, err := repo.GetByUsernameIgnoreCase(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestUserRepository_ExistsByUsernameIgnoreCase(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, repo, "bob")

	exists, err := repo.ExistsByUsernameIgnoreCase(ctx, "BOB")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameIgnoreCase(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, name := range []string{"alice", "bob", "carol"} {
		createTestUser(t, repo, name)
	}

	t.Run("search filters by username", func(t *testing.T) {
		users, total, err := repo.List(ctx, domainUser.Filter{Search: "ali", Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, "alice", users[0].Username())
	})

	t.Run("invalid paging falls back to defaults", func(t *testing.T) {
		users, total, err := repo.List(ctx, domainUser.Filter{Page: 0, PageSize: -5})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, users, 3)
	})

	t.Run("second page", func(t *testing.T) {
		users, total, err := repo.List(ctx, domainUser.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, users, 1)
	})
}

func TestUserRepository_ReplaceRoles(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := createTestUser(t, repo, "dave")

	roleA := models.RoleModel{Name: "ANALYST"}
	roleB := models.RoleModel{Name: "REVIEWER"}
	require.NoError(t, db.Create(&roleA).Error)
	require.NoError(t, db.Create(&roleB).Error)

	require.NoError(t, repo.ReplaceRoles(ctx, u.ID(), []uint{roleA.ID}))

	found, err := repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	require.Len(t, found.Roles(), 1)
	assert.Equal(t, "ANALYST", found.Roles()[0].Name())

	require.NoError(t, repo.ReplaceRoles(ctx, u.ID(), []uint{roleB.ID}))

	found, err = repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	require.Len(t, found.Roles(), 1)
	assert.Equal(t, "REVIEWER", found.Roles()[0].Name())

	// Clearing with an empty set leaves no join rows behind.
	require.NoError(t, repo.ReplaceRoles(ctx, u.ID(), nil))
	var links int64
	db.Model(&models.UserRoleModel{}).Where("user_id = ?", u.ID()).Count(&links)
	assert.Zero(t, links)
}

func TestUserRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := createTestUser(t, repo, "erin")
	role := models.RoleModel{Name: "ANALYST"}
	require.NoError(t, db.Create(&role).Error)
	require.NoError(t, repo.ReplaceRoles(ctx, u.ID(), []uint{role.ID}))

	require.NoError(t, repo.Delete(ctx, u.ID()))

	found, err := repo.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Nil(t, found)

	var links int64
	db.Model(&models.UserRoleModel{}).Count(&links)
	assert.Zero(t, links)
}
