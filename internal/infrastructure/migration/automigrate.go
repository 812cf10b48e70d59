package migration

import (
	"dcfagents/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.RoleModel{},
		&models.PermissionModel{},
		&models.UserRoleModel{},
		&models.RolePermissionModel{},
		&models.AiSettingsModel{},
		&models.DcfLogModel{},
	}
}
