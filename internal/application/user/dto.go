package user

import (
	"time"

	domainUser "dcfagents/internal/domain/user"
	"dcfagents/internal/shared/utils"
)

type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50" validate:"required,min=3,max=50"`
	Password  string `json:"password" binding:"required,min=6" validate:"required,min=6"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Language  string `json:"language"`
	RoleID    *uint  `json:"role_id"`
}

// Validate checks the request independently of HTTP binding, for callers
// that construct it directly.
func (r CreateUserRequest) Validate() error {
	return utils.ValidateStruct(r)
}

// UpdateUserRequest carries a partial update: only non-nil fields are
// applied. An empty password is ignored rather than rejected.
type UpdateUserRequest struct {
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	Firstname *string `json:"firstname"`
	Lastname  *string `json:"lastname"`
	Language  *string `json:"language"`
	RoleID    *uint   `json:"role_id"`
}

type ListUsersRequest struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"size"`
}

type RoleSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type UserResponse struct {
	ID        uint          `json:"id"`
	Username  string        `json:"username"`
	Firstname string        `json:"firstname"`
	Lastname  string        `json:"lastname"`
	Language  string        `json:"language"`
	Roles     []RoleSummary `json:"roles"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func toUserResponse(u *domainUser.User) *UserResponse {
	roles := make([]RoleSummary, 0, len(u.Roles()))
	for _, role := range u.Roles() {
		roles = append(roles, RoleSummary{ID: role.ID(), Name: role.Name()})
	}

	return &UserResponse{
		ID:        u.ID(),
		Username:  u.Username(),
		Firstname: u.Firstname(),
		Lastname:  u.Lastname(),
		Language:  u.Language(),
		Roles:     roles,
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func toUserResponses(users []*domainUser.User) []*UserResponse {
	responses := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}
	return responses
}
