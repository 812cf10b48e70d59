// Package permission holds the mutation-guard services for the role and
// permission families. The built-in ADMIN role may be read but never
// modified or deleted; permission ids that do not resolve are dropped
// silently when attached to a role.
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

type RoleService struct {
	roleRepo       domainPermission.RoleRepository
	permissionRepo domainPermission.PermissionRepository
	cache          cache.Store
	txManager      *db.TransactionManager
	logger         logger.Interface
}

func NewRoleService(
	roleRepo domainPermission.RoleRepository,
	permissionRepo domainPermission.PermissionRepository,
	cacheStore cache.Store,
	txManager *db.TransactionManager,
	log logger.Interface,
) *RoleService {
	return &RoleService{
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		cache:          cacheStore,
		txManager:      txManager,
		logger:         log,
	}
}

func (s *RoleService) ListAll(ctx context.Context) ([]*RoleResponse, error) {
	return cache.GetOrLoad(ctx, s.cache, s.logger, constants.CacheKeyRoles,
		func(ctx context.Context) ([]*RoleResponse, error) {
			roles, err := s.roleRepo.FindAll(ctx)
			if err != nil {
				return nil, err
			}
			return toRoleResponses(roles), nil
		})
}

func (s *RoleService) List(ctx context.Context, request ListRequest) ([]*RoleResponse, int64, error) {
	filter := domainPermission.RoleFilter{
		Search:   request.Search,
		Page:     request.Page,
		PageSize: request.PageSize,
	}

	roles, total, err := s.roleRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return toRoleResponses(roles), total, nil
}

func (s *RoleService) GetByID(ctx context.Context, id uint) (*RoleResponse, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("role with id %d not found", id))
	}

	return toRoleResponse(role), nil
}

func (s *RoleService) Create(ctx context.Context, request CreateRoleRequest) (*RoleResponse, error) {
	var created *domainPermission.Role

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.roleRepo.GetByNameIgnoreCase(ctx, request.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.NewConflictError(fmt.Sprintf("role %q already exists", request.Name))
		}

		role, err := domainPermission.NewRole(request.Name)
		if err != nil {
			return err
		}

		permissions, err := s.permissionRepo.FindByIDs(ctx, request.PermissionIDs)
		if err != nil {
			return err
		}
		role.SetPermissions(permissions)

		if err := s.roleRepo.Create(ctx, role); err != nil {
			if errors.IsDuplicateError(err) {
				return errors.NewConflictError(fmt.Sprintf("role %q already exists", request.Name))
			}
			return err
		}

		created = role
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Infow("role created", "role_id", created.ID(), "name", created.Name())

	return toRoleResponse(created), nil
}

func (s *RoleService) Update(ctx context.Context, id uint, request UpdateRoleRequest) (*RoleResponse, error) {
	var updated *domainPermission.Role

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		role, err := s.roleRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if role == nil {
			return errors.NewNotFoundError(fmt.Sprintf("role with id %d not found", id))
		}
		if role.IsProtected() {
			return errors.NewForbiddenError("the built-in ADMIN role cannot be modified")
		}

		if request.Name != nil && *request.Name != role.Name() {
			other, err := s.roleRepo.GetByNameIgnoreCase(ctx, *request.Name)
			if err != nil {
				return err
			}
			if other != nil && other.ID() != id {
				return errors.NewConflictError(fmt.Sprintf("role %q already exists", *request.Name))
			}
			if err := role.UpdateName(*request.Name); err != nil {
				return err
			}
		}

		if err := s.roleRepo.Update(ctx, role); err != nil {
			return err
		}

		if request.PermissionIDs != nil {
			permissions, err := s.permissionRepo.FindByIDs(ctx, *request.PermissionIDs)
			if err != nil {
				return err
			}
			permissionIDs := make([]uint, 0, len(permissions))
			for _, p := range permissions {
				permissionIDs = append(permissionIDs, p.ID())
			}
			if err := s.roleRepo.ReplacePermissions(ctx, id, permissionIDs); err != nil {
				return err
			}
			role.SetPermissions(permissions)
		}

		updated = role
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Infow("role updated", "role_id", id)

	return toRoleResponse(updated), nil
}

func (s *RoleService) Delete(ctx context.Context, id uint) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		role, err := s.roleRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if role == nil {
			return errors.NewNotFoundError(fmt.Sprintf("role with id %d not found", id))
		}
		if role.IsProtected() {
			return errors.NewForbiddenError("the built-in ADMIN role cannot be deleted")
		}

		return s.roleRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Infow("role deleted", "role_id", id)

	return nil
}

func (s *RoleService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, constants.CacheKeyRoles); err != nil {
		s.logger.Warnw("failed to invalidate role cache", "error", err)
	}
}
