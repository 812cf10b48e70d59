package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dcfagents/internal/domain/permission"
	"dcfagents/internal/infrastructure/persistence/models"
	"dcfagents/internal/shared/constants"
	sharedDB "dcfagents/internal/shared/db"
)

type RoleRepositoryImpl struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) permission.RoleRepository {
	return &RoleRepositoryImpl{db: db}
}

func (r *RoleRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return sharedDB.GetTxFromContext(ctx, r.db)
}

func (r *RoleRepositoryImpl) Create(ctx context.Context, role *permission.Role) error {
	model := &models.RoleModel{Name: role.Name()}

	if err := r.conn(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	if err := role.SetID(model.ID); err != nil {
		return err
	}

	if perms := role.Permissions(); len(perms) > 0 {
		permissionIDs := make([]uint, 0, len(perms))
		for _, p := range perms {
			permissionIDs = append(permissionIDs, p.ID())
		}
		if err := r.ReplacePermissions(ctx, model.ID, permissionIDs); err != nil {
			return err
		}
	}

	return nil
}

func (r *RoleRepositoryImpl) GetByID(ctx context.Context, id uint) (*permission.Role, error) {
	var model models.RoleModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	return r.toEntity(ctx, &model)
}

func (r *RoleRepositoryImpl) GetByNameIgnoreCase(ctx context.Context, name string) (*permission.Role, error) {
	var model models.RoleModel
	err := r.conn(ctx).Where("LOWER(name) = LOWER(?)", name).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}

	return r.toEntity(ctx, &model)
}

func (r *RoleRepositoryImpl) FindAll(ctx context.Context) ([]*permission.Role, error) {
	var roleModels []*models.RoleModel
	if err := r.conn(ctx).Order("id ASC").Find(&roleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find roles: %w", err)
	}

	return r.toEntities(ctx, roleModels)
}

func (r *RoleRepositoryImpl) List(ctx context.Context, filter permission.RoleFilter) ([]*permission.Role, int64, error) {
	query := r.conn(ctx).Model(&models.RoleModel{})

	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count roles: %w", err)
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

	var roleModels []*models.RoleModel
	err := query.Offset((page - 1) * pageSize).Limit(pageSize).Order("id ASC").Find(&roleModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list roles: %w", err)
	}

	roles, err := r.toEntities(ctx, roleModels)
	if err != nil {
		return nil, 0, err
	}

	return roles, total, nil
}

func (r *RoleRepositoryImpl) Update(ctx context.Context, role *permission.Role) error {
	result := r.conn(ctx).Model(&models.RoleModel{}).
		Where("id = ?", role.ID()).
		Updates(map[string]interface{}{
			"name":       role.Name(),
			"updated_at": role.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update role: %w", result.Error)
	}

	return nil
}

func (r *RoleRepositoryImpl) Delete(ctx context.Context, id uint) error {
	conn := r.conn(ctx)

	if err := conn.Where("role_id = ?", id).Delete(&models.RolePermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete role permission links: %w", err)
	}
	if err := conn.Where("role_id = ?", id).Delete(&models.UserRoleModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete user role links: %w", err)
	}

	result := conn.Delete(&models.RoleModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete role: %w", result.Error)
	}

	return nil
}

func (r *RoleRepositoryImpl) ReplacePermissions(ctx context.Context, roleID uint, permissionIDs []uint) error {
	conn := r.conn(ctx)

	if err := conn.Where("role_id = ?", roleID).Delete(&models.RolePermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear role permissions: %w", err)
	}

	if len(permissionIDs) == 0 {
		return nil
	}

	rolePermissions := make([]models.RolePermissionModel, 0, len(permissionIDs))
	for _, permissionID := range permissionIDs {
		rolePermissions = append(rolePermissions, models.RolePermissionModel{
			RoleID:       roleID,
			PermissionID: permissionID,
		})
	}

	if err := conn.Create(&rolePermissions).Error; err != nil {
		return fmt.Errorf("failed to assign role permissions: %w", err)
	}

	return nil
}

func (r *RoleRepositoryImpl) toEntity(ctx context.Context, model *models.RoleModel) (*permission.Role, error) {
	permissions, err := r.loadPermissions(ctx, model.ID)
	if err != nil {
		return nil, err
	}

	return permission.ReconstructRole(model.ID, model.Name, permissions, model.CreatedAt, model.UpdatedAt)
}

func (r *RoleRepositoryImpl) toEntities(ctx context.Context, roleModels []*models.RoleModel) ([]*permission.Role, error) {
	roles := make([]*permission.Role, 0, len(roleModels))
	for _, model := range roleModels {
		role, err := r.toEntity(ctx, model)
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct role: %w", err)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (r *RoleRepositoryImpl) loadPermissions(ctx context.Context, roleID uint) ([]*permission.Permission, error) {
	var permissionModels []*models.PermissionModel
	err := r.conn(ctx).
		Table(constants.TablePermissions).
		Joins("INNER JOIN "+constants.TableRolePermissions+" ON "+constants.TablePermissions+".id = "+constants.TableRolePermissions+".permission_id").
		Where(constants.TableRolePermissions+".role_id = ?", roleID).
		Find(&permissionModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load role permissions: %w", err)
	}

	permissions := make([]*permission.Permission, 0, len(permissionModels))
	for _, model := range permissionModels {
		p, err := permission.ReconstructPermission(model.ID, model.Name, model.CreatedAt, model.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to reconstruct permission: %w", err)
		}
		permissions = append(permissions, p)
	}

	return permissions, nil
}
