package permission

import "context"

// RoleFilter narrows paginated role listings. Search matches the role name
// case-insensitively as a substring. Paginated reads never touch the
// collection cache.
type RoleFilter struct {
	Search   string
	Page     int
	PageSize int
}

// PermissionFilter narrows paginated permission listings.
type PermissionFilter struct {
	Search   string
	Page     int
	PageSize int
}

// RoleRepository is the persistence contract for roles.
// Lookup methods return (nil, nil) when no record matches.
type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	GetByID(ctx context.Context, id uint) (*Role, error)
	GetByNameIgnoreCase(ctx context.Context, name string) (*Role, error)
	FindAll(ctx context.Context) ([]*Role, error)
	List(ctx context.Context, filter RoleFilter) ([]*Role, int64, error)
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id uint) error
	// ReplacePermissions replaces the role's permission set in the join table.
	ReplacePermissions(ctx context.Context, roleID uint, permissionIDs []uint) error
}

// PermissionRepository is the persistence contract for permissions.
type PermissionRepository interface {
	Create(ctx context.Context, permission *Permission) error
	GetByID(ctx context.Context, id uint) (*Permission, error)
	// FindByIDs resolves the given ids, silently skipping any that do not
	// exist. Callers rely on this permissive behavior.
	FindByIDs(ctx context.Context, ids []uint) ([]*Permission, error)
	FindAll(ctx context.Context) ([]*Permission, error)
	List(ctx context.Context, filter PermissionFilter) ([]*Permission, int64, error)
	Update(ctx context.Context, permission *Permission) error
	Delete(ctx context.Context, id uint) error
}
