package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainPermission "dcfagents/internal/domain/permission"
	"dcfagents/internal/infrastructure/persistence/models"
)

func createTestRole(t *testing.T, repo domainPermission.RoleRepository, name string) *domainPermission.Role {
	role, err := domainPermission.NewRole(name)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), role))
	return role
}

func TestRoleRepository_GetByNameIgnoreCase(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoleRepository(db)
	ctx := context.Background()

	createTestRole(t, repo, "Editor")

	found, err := repo.GetByNameIgnoreCase(ctx, "EDITOR")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Editor", found.Name())

	found, err = repo.GetByNameIgnoreCase(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRoleRepository_ReplacePermissions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoleRepository(db)
	ctx := context.Background()

	role := createTestRole(t, repo, "EDITOR")

	read := models.PermissionModel{Name: "users:read"}
	write := models.PermissionModel{Name: "users:write"}
	require.NoError(t, db.Create(&read).Error)
	require.NoError(t, db.Create(&write).Error)

	require.NoError(t, repo.ReplacePermissions(ctx, role.ID(), []uint{read.ID, write.ID}))

	found, err := repo.GetByID(ctx, role.ID())
	require.NoError(t, err)
	assert.Len(t, found.Permissions(), 2)

	require.NoError(t, repo.ReplacePermissions(ctx, role.ID(), []uint{write.ID}))

	found, err = repo.GetByID(ctx, role.ID())
	require.NoError(t, err)
	require.Len(t, found.Permissions(), 1)
	assert.Equal(t, "users:write", found.Permissions()[0].Name())
}

func TestRoleRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRoleRepository(db)
	ctx := context.Background()

	role := createTestRole(t, repo, "EDITOR")

	perm := models.PermissionModel{Name: "users:read"}
	require.NoError(t, db.Create(&perm).Error)
	require.NoError(t, repo.ReplacePermissions(ctx, role.ID(), []uint{perm.ID}))
	require.NoError(t, db.Create(&models.UserRoleModel{UserID: 7, RoleID: role.ID()}).Error)

	require.NoError(t, repo.Delete(ctx, role.ID()))

	found, err := repo.GetByID(ctx, role.ID())
	require.NoError(t, err)
	assert.Nil(t, found)

	var permLinks, userLinks int64
	db.Model(&models.RolePermissionModel{}).Count(&permLinks)
	db.Model(&models.UserRoleModel{}).Count(&userLinks)
	assert.Zero(t, permLinks)
	assert.Zero(t, userLinks)
}

func TestPermissionRepository_FindByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPermissionRepository(db)
	ctx := context.Background()

	read := models.PermissionModel{Name: "users:read"}
	require.NoError(t, db.Create(&read).Error)

	t.Run("skips unknown ids", func(t *testing.T) {
		found, err := repo.FindByIDs(ctx, []uint{read.ID, 9999})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "users:read", found[0].Name())
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		found, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}
