package permission

import (
	"context"
	"fmt"

	domainPermission "dcfagents/internal/domain/permission"
	"dcfagents/internal/infrastructure/cache"
	"dcfagents/internal/shared/constants"
	"dcfagents/internal/shared/db"
	"dcfagents/internal/shared/errors"
	"dcfagents/internal/shared/logger"
)

// PermissionService manages the permission family. Permission names carry no
// uniqueness constraint: duplicates are stored as given.
type PermissionService struct {
	permissionRepo domainPermission.PermissionRepository
	cache          cache.Store
	txManager      *db.TransactionManager
	logger         logger.Interface
}

func NewPermissionService(
	permissionRepo domainPermission.PermissionRepository,
	cacheStore cache.Store,
	txManager *db.TransactionManager,
	log logger.Interface,
) *PermissionService {
	return &PermissionService{
		permissionRepo: permissionRepo,
		cache:          cacheStore,
		txManager:      txManager,
		logger:         log,
	}
}

func (s *PermissionService) ListAll(ctx context.Context) ([]*PermissionResponse, error) {
	return cache.GetOrLoad(ctx, s.cache, s.logger, constants.CacheKeyPermissions,
		func(ctx context.Context) ([]*PermissionResponse, error) {
			permissions, err := s.permissionRepo.FindAll(ctx)
			if err != nil {
				return nil, err
			}
			return toPermissionResponses(permissions), nil
		})
}

func (s *PermissionService) List(ctx context.Context, request ListRequest) ([]*PermissionResponse, int64, error) {
	filter := domainPermission.PermissionFilter{
		Search:   request.Search,
		Page:     request.Page,
		PageSize: request.PageSize,
	}

	permissions, total, err := s.permissionRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return toPermissionResponses(permissions), total, nil
}

func (s *PermissionService) GetByID(ctx context.Context, id uint) (*PermissionResponse, error) {
	p, err := s.permissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("permission with id %d not found", id))
	}

	return toPermissionResponse(p), nil
}

func (s *PermissionService) Create(ctx context.Context, request CreatePermissionRequest) (*PermissionResponse, error) {
	p, err := domainPermission.NewPermission(request.Name)
	if err != nil {
		return nil, err
	}

	if err := s.permissionRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Infow("permission created", "permission_id", p.ID(), "name", p.Name())

	return toPermissionResponse(p), nil
}

func (s *PermissionService) Update(ctx context.Context, id uint, request UpdatePermissionRequest) (*PermissionResponse, error) {
	var updated *domainPermission.Permission

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.permissionRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return errors.NewNotFoundError(fmt.Sprintf("permission with id %d not found", id))
		}

		if request.Name != nil {
			if err := p.UpdateName(*request.Name); err != nil {
				return err
			}
		}

		if err := s.permissionRepo.Update(ctx, p); err != nil {
			return err
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Infow("permission updated", "permission_id", id)

	return toPermissionResponse(updated), nil
}

func (s *PermissionService) Delete(ctx context.Context, id uint) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.permissionRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return errors.NewNotFoundError(fmt.Sprintf("permission with id %d not found", id))
		}

		return s.permissionRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Infow("permission deleted", "permission_id", id)

	return nil
}

func (s *PermissionService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, constants.CacheKeyPermissions); err != nil {
		s.logger.Warnw("failed to invalidate permission cache", "error", err)
	}
}
