// Package repository implements the persistence gateways over GORM.
// Lookup methods return (nil, nil) when no record matches so services can
// translate absence into their own error taxonomy.
package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dcfagents/internal/domain/permission"
	"dcfagents/internal/domain/user"
	"dcfagents/internal/infrastructure/persistence/models"
	"dcfagents/internal/shared/constants"
	sharedDB "dcfagents/internal/shared/db"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return sharedDB.GetTxFromContext(ctx, r.db)
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *user.User) error {
	model := &models.UserModel{
		Username:     u.Username(),
		PasswordHash: u.PasswordHash(),
		Firstname:    u.Firstname(),
		Lastname:     u.Lastname(),
		Language:     u.Language(),
	}

	if err := r.conn(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := u.SetID(model.ID); err != nil {
		return err
	}

	if roles := u.Roles(); len(roles) > 0 {
		roleIDs := make([]uint, 0, len(roles))
		for _, role := range roles {
			roleIDs = append(roleIDs, role.ID())
		}
		if err := r.ReplaceRoles(ctx, model.ID, roleIDs); err != nil {
			return err
		}
	}

	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.toEntity(ctx, &model)
}

func (r *UserRepositoryImpl) GetByUsernameIgnoreCase(ctx context.Context, username string) (*user.User, error) {
	var model models.UserModel
	err := r.conn(ctx).Where("LOWER(username) = LOWER(?)", username).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return r.toEntity(ctx, &model)
}

func (r *UserRepositoryImpl) ExistsByUsernameIgnoreCase(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&models.UserModel{}).
		Where("LOWER(username) = LOWER(?)", username).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context) ([]*user.User, error) {
	var userModels []*models.UserModel
	if err := r.conn(ctx).Order("id ASC").Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	return r.toEntities(ctx, userModels)
}

func (r *UserRepositoryImpl) List(ctx context.Context, filter user.Filter) ([]*user.User, int64, error) {
	query := r.conn(ctx).Model(&models.UserModel{})

	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where(
			"username LIKE ? OR firstname LIKE ? OR lastname LIKE ?",
			term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	var userModels []*models.UserModel
	err := query.Offset((page - 1) * pageSize).Limit(pageSize).Order("id ASC").Find(&userModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := r.toEntities(ctx, userModels)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, u *user.User) error {
	result := r.conn(ctx).Model(&models.UserModel{}).
		Where("id = ?", u.ID()).
		Updates(map[string]interface{}{
			"username":      u.Username(),
			"password_hash": u.PasswordHash(),
			"firstname":     u.Firstname(),
			"lastname":      u.Lastname(),
			"language":      u.Language(),
			"updated_at":    u.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}

	return nil
}

func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) error {
	conn := r.conn(ctx)

	if err := conn.Where("user_id = ?", id).Delete(&models.UserRoleModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete user role links: %w", err)
	}

	result := conn.Delete(&models.UserModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}

	return nil
}

func (r *UserRepositoryImpl) ReplaceRoles(ctx context.Context, userID uint, roleIDs []uint) error {
	conn := r.conn(ctx)

	if err := conn.Where("user_id = ?", userID).Delete(&models.UserRoleModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear user roles: %w", err)
	}

	if len(roleIDs) == 0 {
		return nil
	}

	userRoles := make([]models.UserRoleModel, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		userRoles = append(userRoles, models.UserRoleModel{
			UserID: userID,
			RoleID: roleID,
		})
	}

	if err := conn.Create(&userRoles).Error; err != nil {
		return fmt.Errorf("failed to assign user roles: %w", err)
	}

	return nil
}

func (r *UserRepositoryImpl) toEntity(ctx context.Context, model *models.UserModel) (*user.User, error) {
	roles, err := r.loadRoles(ctx, model.ID)
	if err != nil {
		return nil, err
	}

	return user.ReconstructUser(
		model.ID,
		model.Username,
		model.PasswordHash,
		model.Firstname,
		model.Lastname,
		model.Language,
		roles,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (r *UserRepositoryImpl) toEntities(ctx context.Context, userModels []*models.UserModel) ([]*user.User, error) {
	users := make([]*user.User, 0, len(userModels))
	for _, model := range userModels {
		u, err := r.toEntity(ctx, model)
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct user: %w", err)
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *UserRepositoryImpl) loadRoles(ctx context.Context, userID uint) ([]*permission.Role, error) {
	var roleModels []*models.RoleModel
	err := r.conn(ctx).
		Table(constants.TableRoles).
		Joins("INNER JOIN "+constants.TableUserRoles+" ON "+constants.TableRoles+".id = "+constants.TableUserRoles+".role_id").
		Where(constants.TableUserRoles+".user_id = ?", userID).
		Find(&roleModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user roles: %w", err)
	}

	roles := make([]*permission.Role, 0, len(roleModels))
	for _, model := range roleModels {
		role, err := permission.ReconstructRole(model.ID, model.Name, nil, model.CreatedAt, model.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct role: %w", err)
		}
		roles = append(roles, role)
	}

	return roles, nil
}
