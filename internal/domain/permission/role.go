package permission

import (
	"fmt"
	"time"
)

// Role is a named grouping of permissions assignable to users.
type Role struct {
	id          uint
	name        string
	permissions []*Permission
	createdAt   time.Time
	updatedAt   time.Time
}

func NewRole(name string) (*Role, error) {
	if name == "" {
		return nil, fmt.Errorf("role name is required")
	}
	if len(name) > 50 {
		return nil, fmt.Errorf("role name too long (max 50 characters)")
	}

	now := time.Now()
	return &Role{
		name:      name,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructRole(id uint, name string, permissions []*Permission, createdAt, updatedAt time.Time) (*Role, error) {
	if id == 0 {
		return nil, fmt.Errorf("role ID cannot be zero")
	}

	return &Role{
		id:          id,
		name:        name,
		permissions: permissions,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (r *Role) ID() uint {
	return r.id
}

func (r *Role) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("role ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("role ID cannot be zero")
	}
	r.id = id
	return nil
}

func (r *Role) Name() string {
	return r.name
}

func (r *Role) Permissions() []*Permission {
	return r.permissions
}

func (r *Role) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Role) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Role) UpdateName(name string) error {
	if name == "" {
		return fmt.Errorf("role name cannot be empty")
	}
	if len(name) > 50 {
		return fmt.Errorf("role name too long (max 50 characters)")
	}
	r.name = name
	r.updatedAt = time.Now()
	return nil
}

// SetPermissions replaces the role's permission set.
func (r *Role) SetPermissions(permissions []*Permission) {
	r.permissions = permissions
	r.updatedAt = time.Now()
}

// IsProtected reports whether this role is the protected ADMIN sentinel.
func (r *Role) IsProtected() bool {
	return IsProtectedRoleName(r.name)
}
