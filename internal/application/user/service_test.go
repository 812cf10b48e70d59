package user

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"dcfagents/internal/infrastructure/auth"
	"dcfagents/internal/infrastructure/cache"
	"dcfagents/internal/infrastructure/persistence/models"
	"dcfagents/internal/infrastructure/repository"
	sharedConfig "dcfagents/internal/shared/config"
	"dcfagents/internal/shared/constants"
	"dcfagents/internal/shared/db"
	"dcfagents/internal/shared/errors"
	"dcfagents/internal/shared/logger"
)

type userServiceFixture struct {
	service *Service
	store   *cache.MemoryStore
	userDB  *gorm.DB
}

func setupUserService(t *testing.T) *userServiceFixture {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gormDB.AutoMigrate(
		&models.UserModel{},
		&models.RoleModel{},
		&models.PermissionModel{},
		&models.UserRoleModel{},
		&models.RolePermissionModel{},
	)
	require.NoError(t, err)

	store := cache.NewMemoryStore()
	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	hasher := auth.NewBcryptPasswordHasher(&sharedConfig.PasswordConfig{BcryptCost: 4})

	svc := NewService(
		repository.NewUserRepository(gormDB),
		repository.NewRoleRepository(gormDB),
		hasher,
		store,
		db.NewTransactionManager(gormDB),
		log,
	)

	return &userServiceFixture{service: svc, store: store, userDB: gormDB}
}

func (f *userServiceFixture) createRole(t *testing.T, name string) uint {
	role := models.RoleModel{Name: name}
	require.NoError(t, f.userDB.Create(&role).Error)
	return role.ID
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with role", func(t *testing.T) {
		f := setupUserService(t)
		roleID := f.createRole(t, "ANALYST")

		resp, err := f.service.Create(ctx, CreateUserRequest{
			Username:  "alice",
			Password:  "secret1",
			Firstname: "Alice",
			Lastname:  "Smith",
			RoleID:    &roleID,
		})
		require.NoError(t, err)
		assert.NotZero(t, resp.ID)
		assert.Equal(t, "alice", resp.Username)
		require.Len(t, resp.Roles, 1)
		assert.Equal(t, "ANALYST", resp.Roles[0].Name)
	})

	t.Run("defaults language when empty", func(t *testing.T) {
		f := setupUserService(t)

		resp, err := f.service.Create(ctx, CreateUserRequest{
			Username: "bob",
			Password: "secret1",
		})
		require.NoError(t, err)
		assert.Equal(t, constants.DefaultUserLanguage, resp.Language)
	})

	t.Run("rejects duplicate username case-insensitively", func(t *testing.T) {
		f := setupUserService(t)

		_, err := f.service.Create(ctx, CreateUserRequest{Username: "carol", Password: "secret1"})
		require.NoError(t, err)

		_, err = f.service.Create(ctx, CreateUserRequest{Username: "CAROL", Password: "secret1"})
		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
	})

	t.Run("unknown role id returns not found", func(t *testing.T) {
		f := setupUserService(t)
		missing := uint(999)

		_, err := f.service.Create(ctx, CreateUserRequest{
			Username: "dave",
			Password: "secret1",
			RoleID:   &missing,
		})
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))

		// The guard fails before the insert, so nothing is persisted.
		var count int64
		f.userDB.Model(&models.UserModel{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("stores a bcrypt hash instead of the raw password", func(t *testing.T) {
		f := setupUserService(t)

		resp, err := f.service.Create(ctx, CreateUserRequest{Username: "erin", Password: "secret1"})
		require.NoError(t, err)

		var model models.UserModel
		require.NoError(t, f.userDB.First(&model, resp.ID).Error)
		assert.NotEqual(t, "secret1", model.PasswordHash)
		hasher := auth.NewBcryptPasswordHasher(&sharedConfig.PasswordConfig{BcryptCost: 4})
		assert.True(t, hasher.Verify(model.PasswordHash, "secret1"))
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies only present fields", func(t *testing.T) {
		f := setupUserService(t)
		created, err := f.service.Create(ctx, CreateUserRequest{
			Username:  "frank",
			Password:  "secret1",
			Firstname: "Frank",
			Lastname:  "Jones",
		})
		require.NoError(t, err)

		newFirst := "Franklin"
		resp, err := f.service.Update(ctx, created.ID, UpdateUserRequest{Firstname: &newFirst})
		require.NoError(t, err)
		assert.Equal(t, "Franklin", resp.Firstname)
		assert.Equal(t, "Jones", resp.Lastname)
		assert.Equal(t, "frank", resp.Username)
	})

	t.Run("blank password keeps the stored hash", func(t *testing.T) {
		f := setupUserService(t)
		created, err := f.service.Create(ctx, CreateUserRequest{Username: "grace", Password: "secret1"})
		require.NoError(t, err)

		var before models.UserModel
		require.NoError(t, f.userDB.First(&before, created.ID).Error)

		blank := ""
		_, err = f.service.Update(ctx, created.ID, UpdateUserRequest{Password: &blank})
		require.NoError(t, err)

		var after models.UserModel
		require.NoError(t, f.userDB.First(&after, created.ID).Error)
		assert.Equal(t, before.PasswordHash, after.PasswordHash)
	})

	t.Run("non-blank password is rehashed", func(t *testing.T) {
		f := setupUserService(t)
		created, err := f.service.Create(ctx, CreateUserRequest{Username: "heidi", Password: "secret1"})
		require.NoError(t, err)

		next := "topsecret"
		_, err = f.service.Update(ctx, created.ID, UpdateUserRequest{Password: &next})
		require.NoError(t, err)

		var model models.UserModel
		require.NoError(t, f.userDB.First(&model, created.ID).Error)
		hasher := auth.NewBcryptPasswordHasher(&sharedConfig.PasswordConfig{BcryptCost: 4})
		assert.True(t, hasher.Verify(model.PasswordHash, "topsecret"))
	})

	t.Run("username conflict with another user", func(t *testing.T) {
		f := setupUserService(t)
		_, err := f.service.Create(ctx, CreateUserRequest{Username: "ivan", Password: "secret1"})
		require.NoError(t, err)
		second, err := f.service.Create(ctx, CreateUserRequest{Username: "judy", Password: "secret1"})
		require.NoError(t, err)

		taken := "IVAN"
		_, err = f.service.Update(ctx, second.ID, UpdateUserRequest{Username: &taken})
		require.Error(t, err)
		assert.True(t, errors.IsConflictError(err))
	})

	t.Run("renaming to own username is allowed", func(t *testing.T) {
		f := setupUserService(t)
		created, err := f.service.Create(ctx, CreateUserRequest{Username: "kate", Password: "secret1"})
		require.NoError(t, err)

		same := "Kate"
		resp, err := f.service.Update(ctx, created.ID, UpdateUserRequest{Username: &same})
		require.NoError(t, err)
		assert.Equal(t, "Kate", resp.Username)
	})

	t.Run("replaces the role assignment", func(t *testing.T) {
		f := setupUserService(t)
		firstRole := f.createRole(t, "ANALYST")
		secondRole := f.createRole(t, "REVIEWER")

		created, err := f.service.Create(ctx, CreateUserRequest{
			Username: "mallory",
			Password: "secret1",
			RoleID:   &firstRole,
		})
		require.NoError(t, err)

		resp, err := f.service.Update(ctx, created.ID, UpdateUserRequest{RoleID: &secondRole})
		require.NoError(t, err)
		require.Len(t, resp.Roles, 1)
		assert.Equal(t, "REVIEWER", resp.Roles[0].Name)

		var links int64
		f.userDB.Model(&models.UserRoleModel{}).Where("user_id = ?", created.ID).Count(&links)
		assert.Equal(t, int64(1), links)
	})

	t.Run("unknown role id returns not found", func(t *testing.T) {
		f := setupUserService(t)
		created, err := f.service.Create(ctx, CreateUserRequest{Username: "nina", Password: "secret1"})
		require.NoError(t, err)

		missing := uint(999)
		_, err = f.service.Update(ctx, created.ID, UpdateUserRequest{RoleID: &missing})
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("unknown user returns not found", func(t *testing.T) {
		f := setupUserService(t)

		name := "nobody"
		_, err := f.service.Update(ctx, 42, UpdateUserRequest{Username: &name})
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestUserService_AdminGuard(t *testing.T) {
	ctx := context.Background()

	seedAdmin := func(t *testing.T, f *userServiceFixture) uint {
		created, err := f.service.Create(ctx, CreateUserRequest{
			Username: constants.ProtectedAdminUsername,
			Password: "secret1",
		})
		require.NoError(t, err)
		return created.ID
	}

	t.Run("admin user cannot be updated", func(t *testing.T) {
		f := setupUserService(t)
		adminID := seedAdmin(t, f)

		name := "root"
		_, err := f.service.Update(ctx, adminID, UpdateUserRequest{Username: &name})
		require.Error(t, err)
		assert.True(t, errors.IsForbiddenError(err))

		// The row is untouched.
		var model models.UserModel
		require.NoError(t, f.userDB.First(&model, adminID).Error)
		assert.Equal(t, constants.ProtectedAdminUsername, model.Username)
	})

	t.Run("admin user cannot be deleted", func(t *testing.T) {
		f := setupUserService(t)
		adminID := seedAdmin(t, f)

		err := f.service.Delete(ctx, adminID)
		require.Error(t, err)
		assert.True(t, errors.IsForbiddenError(err))

		var count int64
		f.userDB.Model(&models.UserModel{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("guard matches the name case-insensitively", func(t *testing.T) {
		f := setupUserService(t)
		created, err := f.service.Create(ctx, CreateUserRequest{Username: "Admin", Password: "secret1"})
		require.NoError(t, err)

		err = f.service.Delete(ctx, created.ID)
		require.Error(t, err)
		assert.True(t, errors.IsForbiddenError(err))
	})

	t.Run("admin user can still be read", func(t *testing.T) {
		f := setupUserService(t)
		adminID := seedAdmin(t, f)

		resp, err := f.service.GetByID(ctx, adminID)
		require.NoError(t, err)
		assert.Equal(t, constants.ProtectedAdminUsername, resp.Username)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the user and its role links", func(t *testing.T) {
		f := setupUserService(t)
		roleID := f.createRole(t, "ANALYST")
		created, err := f.service.Create(ctx, CreateUserRequest{
			Username: "oscar",
			Password: "secret1",
			RoleID:   &roleID,
		})
		require.NoError(t, err)

		require.NoError(t, f.service.Delete(ctx, created.ID))

		var users, links int64
		f.userDB.Model(&models.UserModel{}).Count(&users)
		f.userDB.Model(&models.UserRoleModel{}).Count(&links)
		assert.Zero(t, users)
		assert.Zero(t, links)
	})

	t.Run("unknown user returns not found", func(t *testing.T) {
		f := setupUserService(t)

		err := f.service.Delete(ctx, 42)
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestUserService_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("ListAll populates the collection cache", func(t *testing.T) {
		f := setupUserService(t)
		_, err := f.service.Create(ctx, CreateUserRequest{Username: "peggy", Password: "secret1"})
		require.NoError(t, err)

		assert.False(t, f.store.Contains(constants.CacheKeyUsers))

		first, err := f.service.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, first, 1)
		assert.True(t, f.store.Contains(constants.CacheKeyUsers))
	})

	t.Run("writes invalidate the cached collection", func(t *testing.T) {
		f := setupUserService(t)
		created, err := f.service.Create(ctx, CreateUserRequest{Username: "quinn", Password: "secret1"})
		require.NoError(t, err)

		_, err = f.service.ListAll(ctx)
		require.NoError(t, err)
		require.True(t, f.store.Contains(constants.CacheKeyUsers))

		name := "quincy"
		_, err = f.service.Update(ctx, created.ID, UpdateUserRequest{Username: &name})
		require.NoError(t, err)
		assert.False(t, f.store.Contains(constants.CacheKeyUsers))

		// The next full read reflects the write.
		users, err := f.service.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "quincy", users[0].Username)
	})

	t.Run("failed guarded writes leave the cache warm", func(t *testing.T) {
		f := setupUserService(t)
		_, err := f.service.Create(ctx, CreateUserRequest{
			Username: constants.ProtectedAdminUsername,
			Password: "secret1",
		})
		require.NoError(t, err)

		all, err := f.service.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)

		err = f.service.Delete(ctx, all[0].ID)
		require.Error(t, err)
		assert.True(t, f.store.Contains(constants.CacheKeyUsers))
	})

	t.Run("paginated reads bypass the cache", func(t *testing.T) {
		f := setupUserService(t)
		_, err := f.service.Create(ctx, CreateUserRequest{Username: "rachel", Password: "secret1"})
		require.NoError(t, err)

		users, total, err := f.service.List(ctx, ListUsersRequest{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, users, 1)
		assert.False(t, f.store.Contains(constants.CacheKeyUsers))
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	f := setupUserService(t)

	seed := []CreateUserRequest{
		{Username: "sam", Password: "secret1", Firstname: "Sam", Lastname: "Porter"},
		{Username: "tina", Password: "secret1", Firstname: "Tina", Lastname: "Sampson"},
		{Username: "uma", Password: "secret1", Firstname: "Uma", Lastname: "Reed"},
	}
	for _, req := range seed {
		_, err := f.service.Create(ctx, req)
		require.NoError(t, err)
	}

	t.Run("search spans username and names", func(t *testing.T) {
		users, total, err := f.service.List(ctx, ListUsersRequest{Search: "sam", Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, users, 2)
	})

	t.Run("paginates", func(t *testing.T) {
		users, total, err := f.service.List(ctx, ListUsersRequest{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, users, 1)
	})
}
