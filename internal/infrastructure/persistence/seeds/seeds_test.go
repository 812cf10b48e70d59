package seeds

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dcfagents/internal/infrastructure/auth"
	"dcfagents/internal/infrastructure/persistence/models"
	"dcfagents/internal/shared/config"
	"dcfagents/internal/shared/constants"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.RoleModel{},
		&models.UserRoleModel{},
		&models.AiSettingsModel{},
	)
	require.NoError(t, err)

	return db
}

func testHasher() auth.PasswordHasher {
	return auth.NewBcryptPasswordHasher(&config.PasswordConfig{BcryptCost: bcrypt.MinCost})
}

func TestSeedAccessData(t *testing.T) {
	t.Run("creates the admin role, admin user and demo users", func(t *testing.T) {
		db := setupSeedDB(t)
		require.NoError(t, SeedAccessData(db, testHasher()))

		var role models.RoleModel
		require.NoError(t, db.Where("name = ?", constants.ProtectedAdminRoleName).First(&role).Error)

		var admin models.UserModel
		require.NoError(t, db.Where("username = ?", constants.ProtectedAdminUsername).First(&admin).Error)

		var users int64
		db.Model(&models.UserModel{}).Count(&users)
		assert.Equal(t, int64(constants.SeedDemoUserCount+1), users)

		// Every seeded account carries the admin role.
		var links int64
		db.Model(&models.UserRoleModel{}).Where("role_id = ?", role.ID).Count(&links)
		assert.Equal(t, int64(constants.SeedDemoUserCount+1), links)
	})

	t.Run("running twice changes nothing", func(t *testing.T) {
		db := setupSeedDB(t)
		require.NoError(t, SeedAccessData(db, testHasher()))

		var adminBefore models.UserModel
		require.NoError(t, db.Where("username = ?", constants.ProtectedAdminUsername).First(&adminBefore).Error)

		require.NoError(t, SeedAccessData(db, testHasher()))

		var users, roles, links int64
		db.Model(&models.UserModel{}).Count(&users)
		db.Model(&models.RoleModel{}).Count(&roles)
		db.Model(&models.UserRoleModel{}).Count(&links)
		assert.Equal(t, int64(constants.SeedDemoUserCount+1), users)
		assert.Equal(t, int64(1), roles)
		assert.Equal(t, int64(constants.SeedDemoUserCount+1), links)

		// The stored password hash is never overwritten.
		var adminAfter models.UserModel
		require.NoError(t, db.Where("username = ?", constants.ProtectedAdminUsername).First(&adminAfter).Error)
		assert.Equal(t, adminBefore.PasswordHash, adminAfter.PasswordHash)
	})

	t.Run("relinks an existing user that lost its role", func(t *testing.T) {
		db := setupSeedDB(t)
		require.NoError(t, SeedAccessData(db, testHasher()))

		var admin models.UserModel
		require.NoError(t, db.Where("username = ?", constants.ProtectedAdminUsername).First(&admin).Error)
		require.NoError(t, db.Where("user_id = ?", admin.ID).Delete(&models.UserRoleModel{}).Error)

		require.NoError(t, SeedAccessData(db, testHasher()))

		var links int64
		db.Model(&models.UserRoleModel{}).Where("user_id = ?", admin.ID).Count(&links)
		assert.Equal(t, int64(1), links)
	})

	t.Run("demo usernames are zero padded", func(t *testing.T) {
		db := setupSeedDB(t)
		require.NoError(t, SeedAccessData(db, testHasher()))

		var first models.UserModel
		require.NoError(t, db.Where("username = ?", "user01").First(&first).Error)
		var last models.UserModel
		require.NoError(t, db.Where("username = ?", fmt.Sprintf("user%02d", constants.SeedDemoUserCount)).First(&last).Error)
	})
}

func TestSeedDefaultSettings(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, SeedDefaultSettings(db))
	require.NoError(t, SeedDefaultSettings(db))

	var count int64
	db.Model(&models.AiSettingsModel{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var settings models.AiSettingsModel
	require.NoError(t, db.First(&settings).Error)
	assert.Equal(t, "default", settings.Name)
	assert.Equal(t, "dcf-agents", settings.SettingKey)
}
