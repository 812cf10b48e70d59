package permission

import (
	"time"

	domainPermission "dcfagents/internal/domain/permission"
)

type CreateRoleRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=50"`
	PermissionIDs []uint `json:"permission_ids"`
}

// UpdateRoleRequest carries a partial update: only non-nil fields are
// applied. A present but empty permission id list clears the role's
// permissions.
type UpdateRoleRequest struct {
	Name          *string `json:"name"`
	PermissionIDs *[]uint `json:"permission_ids"`
}

type CreatePermissionRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type UpdatePermissionRequest struct {
	Name *string `json:"name"`
}

type ListRequest struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"size"`
}

type PermissionResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RoleResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Permissions []PermissionResponse `json:"permissions"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func toPermissionResponse(p *domainPermission.Permission) *PermissionResponse {
	return &PermissionResponse{
		ID:        p.ID(),
		Name:      p.Name(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

func toPermissionResponses(permissions []*domainPermission.Permission) []*PermissionResponse {
	responses := make([]*PermissionResponse, 0, len(permissions))
	for _, p := range permissions {
		responses = append(responses, toPermissionResponse(p))
	}
	return responses
}

func toRoleResponse(role *domainPermission.Role) *RoleResponse {
	permissions := make([]PermissionResponse, 0, len(role.Permissions()))
	for _, p := range role.Permissions() {
		permissions = append(permissions, *toPermissionResponse(p))
	}

	return &RoleResponse{
		ID:          role.ID(),
		Name:        role.Name(),
		Permissions: permissions,
		CreatedAt:   role.CreatedAt(),
		UpdatedAt:   role.UpdatedAt(),
	}
}

func toRoleResponses(roles []*domainPermission.Role) []*RoleResponse {
	responses := make([]*RoleResponse, 0, len(roles))
	for _, role := range roles {
		responses = append(responses, toRoleResponse(role))
	}
	return responses
}
