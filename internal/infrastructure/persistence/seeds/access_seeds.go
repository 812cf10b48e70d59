// Package seeds populates the demo accounts the deployment ships with.
// Every seed function is idempotent: records are matched by natural key and
// never overwritten once present.
package seeds

import (
	"fmt"

	"gorm.io/gorm"

	"dcfagents/internal/infrastructure/auth"
	"dcfagents/internal/infrastructure/persistence/models"
	"dcfagents/internal/shared/constants"
	"dcfagents/internal/shared/logger"
)

// SeedAccessData ensures the ADMIN role, the admin user and the demo user
// accounts exist. Safe to run on every startup.
func SeedAccessData(db *gorm.DB, hasher auth.PasswordHasher) error {
	adminRole, err := ensureAdminRole(db)
	if err != nil {
		return err
	}

	if err := ensureAdminUser(db, hasher, adminRole); err != nil {
		return err
	}

	if err := ensureDemoUsers(db, hasher, adminRole); err != nil {
		return err
	}

	logger.Info("access seed data ensured")
	return nil
}

func ensureAdminRole(db *gorm.DB) (*models.RoleModel, error) {
	role := models.RoleModel{Name: constants.ProtectedAdminRoleName}
	if err := db.FirstOrCreate(&role, models.RoleModel{
		Name: constants.ProtectedAdminRoleName,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to seed admin role: %w", err)
	}
	return &role, nil
}

func ensureAdminUser(db *gorm.DB, hasher auth.PasswordHasher, adminRole *models.RoleModel) error {
	var existing models.UserModel
	err := db.Where("LOWER(username) = LOWER(?)", constants.ProtectedAdminUsername).
		First(&existing).Error
	if err == nil {
		return ensureUserRole(db, existing.ID, adminRole.ID)
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := hasher.Hash(constants.SeedAdminPassword)
	if err != nil {
		return err
	}

	admin := models.UserModel{
		Username:     constants.ProtectedAdminUsername,
		PasswordHash: hash,
		Firstname:    "Admin",
		Lastname:     "Admin",
		Language:     constants.DefaultUserLanguage,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	return ensureUserRole(db, admin.ID, adminRole.ID)
}

func ensureDemoUsers(db *gorm.DB, hasher auth.PasswordHasher, adminRole *models.RoleModel) error {
	for i := 1; i <= constants.SeedDemoUserCount; i++ {
		username := fmt.Sprintf("user%02d", i)

		var existing models.UserModel
		err := db.Where("LOWER(username) = LOWER(?)", username).First(&existing).Error
		if err == nil {
			if err := ensureUserRole(db, existing.ID, adminRole.ID); err != nil {
				return err
			}
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to look up demo user %s: %w", username, err)
		}

		// Demo accounts use their username as password.
		hash, err := hasher.Hash(username)
		if err != nil {
			return err
		}

		user := models.UserModel{
			Username:     username,
			PasswordHash: hash,
			Firstname:    "User",
			Lastname:     fmt.Sprintf("%02d", i),
			Language:     constants.DefaultUserLanguage,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed demo user %s: %w", username, err)
		}
		if err := ensureUserRole(db, user.ID, adminRole.ID); err != nil {
			return err
		}
	}

	return nil
}

func ensureUserRole(db *gorm.DB, userID, roleID uint) error {
	link := models.UserRoleModel{UserID: userID, RoleID: roleID}
	if err := db.FirstOrCreate(&link, models.UserRoleModel{
		UserID: userID,
		RoleID: roleID,
	}).Error; err != nil {
		return fmt.Errorf("failed to seed user role link: %w", err)
	}
	return nil
}
