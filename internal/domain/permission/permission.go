// Package permission contains the Role and Permission entities and their
// repository contracts. Roles hold a set of permissions; users reference
// roles through the user domain.
package permission

import (
	"fmt"
	"strings"
	"time"

	"dcfagents/internal/shared/constants"
)

// Permission is a named capability that can be attached to roles.
// Permission names are intentionally NOT unique; duplicates are allowed.
type Permission struct {
	id        uint
	name      string
	createdAt time.Time
	updatedAt time.Time
}

func NewPermission(name string) (*Permission, error) {
	if name == "" {
		return nil, fmt.Errorf("permission name is required")
	}
	if len(name) > 100 {
		return nil, fmt.Errorf("permission name too long (max 100 characters)")
	}

	now := time.Now()
	return &Permission{
		name:      name,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructPermission(id uint, name string, createdAt, updatedAt time.Time) (*Permission, error) {
	if id == 0 {
		return nil, fmt.Errorf("permission ID cannot be zero")
	}

	return &Permission{
		id:        id,
		name:      name,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (p *Permission) ID() uint {
	return p.id
}

func (p *Permission) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("permission ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("permission ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Permission) Name() string {
	return p.name
}

func (p *Permission) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Permission) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Permission) UpdateName(name string) error {
	if name == "" {
		return fmt.Errorf("permission name cannot be empty")
	}
	if len(name) > 100 {
		return fmt.Errorf("permission name too long (max 100 characters)")
	}
	p.name = name
	p.updatedAt = time.Now()
	return nil
}

// IsProtectedRoleName reports whether a role name collides with the
// protected ADMIN sentinel. The check is name-based and case-insensitive:
// any role named "ADMIN" in any casing is protected, seeded or not.
func IsProtectedRoleName(name string) bool {
	return strings.EqualFold(name, constants.ProtectedAdminRoleName)
}
