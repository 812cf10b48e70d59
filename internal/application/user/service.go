// Package user is the mutation-guard service for the user family. Reads of
// the full collection go through the collection cache; every write clears it.
// The built-in admin account may be read but never modified or deleted.
package user

import (
	"context"
	"fmt"

	"dcfagents/internal/domain/permission"
	domainUser "dcfagents/internal/domain/user"
	"dcfagents/internal/infrastructure/auth"
	"dcfagents/internal/infrastructure/cache"
	"dcfagents/internal/shared/constants"
	"dcfagents/internal/shared/db"
	"dcfagents/internal/shared/errors"
	"dcfagents/internal/shared/logger"
)

type Service struct {
	userRepo  domainUser.Repository
	roleRepo  permission.RoleRepository
	hasher    auth.PasswordHasher
	cache     cache.Store
	txManager *db.TransactionManager
	logger    logger.Interface
}

func NewService(
	userRepo domainUser.Repository,
	roleRepo permission.RoleRepository,
	hasher auth.PasswordHasher,
	cacheStore cache.Store,
	txManager *db.TransactionManager,
	log logger.Interface,
) *Service {
	return &Service{
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		hasher:    hasher,
		cache:     cacheStore,
		txManager: txManager,
		logger:    log,
	}
}

// ListAll returns the complete user collection through the read-through
// cache.
func (s *Service) ListAll(ctx context.Context) ([]*UserResponse, error) {
	return cache.GetOrLoad(ctx, s.cache, s.logger, constants.CacheKeyUsers,
		func(ctx context.Context) ([]*UserResponse, error) {
			users, err := s.userRepo.FindAll(ctx)
			if err != nil {
				return nil, err
			}
			return toUserResponses(users), nil
		})
}

// List returns one page of users. Paginated reads never consult the cache.
func (s *Service) List(ctx context.Context, request ListUsersRequest) ([]*UserResponse, int64, error) {
	filter := domainUser.Filter{
		Search:   request.Search,
		Page:     request.Page,
		PageSize: request.PageSize,
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return toUserResponses(users), total, nil
}

func (s *Service) GetByID(ctx context.Context, id uint) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}

	return toUserResponse(u), nil
}

func (s *Service) Create(ctx context.Context, request CreateUserRequest) (*UserResponse, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	var created *domainUser.User

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.userRepo.ExistsByUsernameIgnoreCase(ctx, request.Username)
		if err != nil {
			return err
		}
		if exists {
			return errors.NewConflictError(fmt.Sprintf("username %q is already taken", request.Username))
		}

		role, err := s.resolveRole(ctx, request.RoleID)
		if err != nil {
			return err
		}

		hash, err := s.hasher.Hash(request.Password)
		if err != nil {
			return err
		}

		u, err := domainUser.NewUser(request.Username, hash, request.Firstname, request.Lastname, request.Language)
		if err != nil {
			return err
		}
		if role != nil {
			u.SetRoles([]*permission.Role{role})
		}

		if err := s.userRepo.Create(ctx, u); err != nil {
			if errors.IsDuplicateError(err) {
				return errors.NewConflictError(fmt.Sprintf("username %q is already taken", request.Username))
			}
			return err
		}

		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Infow("user created", "user_id", created.ID(), "username", created.Username())

	return toUserResponse(created), nil
}

func (s *Service) Update(ctx context.Context, id uint, request UpdateUserRequest) (*UserResponse, error) {
	var updated *domainUser.User

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		u, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return errors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
		}
		if u.IsProtected() {
			return errors.NewForbiddenError("the built-in admin account cannot be modified")
		}

		if request.Username != nil && *request.Username != u.Username() {
			other, err := s.userRepo.GetByUsernameIgnoreCase(ctx, *request.Username)
			if err != nil {
				return err
			}
			if other != nil && other.ID() != id {
				return errors.NewConflictError(fmt.Sprintf("username %q is already taken", *request.Username))
			}
			if err := u.UpdateUsername(*request.Username); err != nil {
				return err
			}
		}

		// Blank password means "keep the current one".
		if request.Password != nil && *request.Password != "" {
			hash, err := s.hasher.Hash(*request.Password)
			if err != nil {
				return err
			}
			if err := u.UpdatePasswordHash(hash); err != nil {
				return err
			}
		}

		if request.Firstname != nil {
			u.UpdateFirstname(*request.Firstname)
		}
		if request.Lastname != nil {
			u.UpdateLastname(*request.Lastname)
		}
		if request.Language != nil {
			u.UpdateLanguage(*request.Language)
		}

		if err := s.userRepo.Update(ctx, u); err != nil {
			return err
		}

		if request.RoleID != nil {
			role, err := s.resolveRole(ctx, request.RoleID)
			if err != nil {
				return err
			}
			if err := s.userRepo.ReplaceRoles(ctx, id, []uint{role.ID()}); err != nil {
				return err
			}
			u.SetRoles([]*permission.Role{role})
		}

		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Infow("user updated", "user_id", id)

	return toUserResponse(updated), nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		u, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return errors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
		}
		if u.IsProtected() {
			return errors.NewForbiddenError("the built-in admin account cannot be deleted")
		}

		return s.userRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Infow("user deleted", "user_id", id)

	return nil
}

// resolveRole maps an optional role id to its role. A missing id is fine; an
// id that does not resolve is a NotFound.
func (s *Service) resolveRole(ctx context.Context, roleID *uint) (*permission.Role, error) {
	if roleID == nil {
		return nil, nil
	}

	role, err := s.roleRepo.GetByID(ctx, *roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("role with id %d not found", *roleID))
	}

	return role, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, constants.CacheKeyUsers); err != nil {
		s.logger.Warnw("failed to invalidate user cache", "error", err)
	}
}
