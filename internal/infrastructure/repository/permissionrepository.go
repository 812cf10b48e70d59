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

type PermissionRepositoryImpl struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.PermissionRepository {
	return &PermissionRepositoryImpl{db: db}
}

func (r *PermissionRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return sharedDB.GetTxFromContext(ctx, r.db)
}

func (r *PermissionRepositoryImpl) Create(ctx context.Context, p *permission.Permission) error {
	model := &models.PermissionModel{Name: p.Name()}

	if err := r.conn(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create permission: %w", err)
	}

	return p.SetID(model.ID)
}

func (r *PermissionRepositoryImpl) GetByID(ctx context.Context, id uint) (*permission.Permission, error) {
	var model models.PermissionModel
	if err := r.conn(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get permission: %w", err)
	}

	return permission.ReconstructPermission(model.ID, model.Name, model.CreatedAt, model.UpdatedAt)
}

// FindByIDs returns the permissions that exist among the given ids.
// Unknown ids are skipped rather than reported.
func (r *PermissionRepositoryImpl) FindByIDs(ctx context.Context, ids []uint) ([]*permission.Permission, error) {
	if len(ids) == 0 {
		return []*permission.Permission{}, nil
	}

	var permissionModels []*models.PermissionModel
	if err := r.conn(ctx).Where("id IN ?", ids).Find(&permissionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find permissions by ids: %w", err)
	}

	return r.toEntities(permissionModels)
}

func (r *PermissionRepositoryImpl) FindAll(ctx context.Context) ([]*permission.Permission, error) {
	var permissionModels []*models.PermissionModel
	if err := r.conn(ctx).Order("id ASC").Find(&permissionModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find permissions: %w", err)
	}

	return r.toEntities(permissionModels)
}

func (r *PermissionRepositoryImpl) List(ctx context.Context, filter permission.PermissionFilter) ([]*permission.Permission, int64, error) {
	query := r.conn(ctx).Model(&models.PermissionModel{})

	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count permissions: %w", err)
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

	var permissionModels []*models.PermissionModel
	err := query.Offset((page - 1) * pageSize).Limit(pageSize).Order("id ASC").Find(&permissionModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list permissions: %w", err)
	}

	permissions, err := r.toEntities(permissionModels)
	if err != nil {
		return nil, 0, err
	}

	return permissions, total, nil
}

func (r *PermissionRepositoryImpl) Update(ctx context.Context, p *permission.Permission) error {
	result := r.conn(ctx).Model(&models.PermissionModel{}).
		Where("id = ?", p.ID()).
		Updates(map[string]interface{}{
			"name":       p.Name(),
			"updated_at": p.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update permission: %w", result.Error)
	}

	return nil
}

func (r *PermissionRepositoryImpl) Delete(ctx context.Context, id uint) error {
	conn := r.conn(ctx)

	if err := conn.Where("permission_id = ?", id).Delete(&models.RolePermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete role permission links: %w", err)
	}

	result := conn.Delete(&models.PermissionModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete permission: %w", result.Error)
	}

	return nil
}

func (r *PermissionRepositoryImpl) toEntities(permissionModels []*models.PermissionModel) ([]*permission.Permission, error) {
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
