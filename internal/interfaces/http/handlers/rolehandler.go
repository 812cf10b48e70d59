package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dcfagents/internal/application/permission"
	"dcfagents/internal/shared/logger"
	"dcfagents/internal/shared/utils"
)

// RoleService is the application surface the role handler depends on.
type RoleService interface {
	ListAll(ctx context.Context) ([]*permission.RoleResponse, error)
	List(ctx context.Context, request permission.ListRequest) ([]*permission.RoleResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*permission.RoleResponse, error)
	Create(ctx context.Context, request permission.CreateRoleRequest) (*permission.RoleResponse, error)
	Update(ctx context.Context, id uint, request permission.UpdateRoleRequest) (*permission.RoleResponse, error)
	Delete(ctx context.Context, id uint) error
}

type RoleHandler struct {
	roleService RoleService
	logger      logger.Interface
}

func NewRoleHandler(roleService RoleService, logger logger.Interface) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		logger:      logger,
	}
}

// ListRoles godoc
// @Summary List roles
// @Description Get a paginated list of roles with optional name search
// @Tags roles
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Param search query string false "Search over role name"
// @Success 200 {object} utils.ListResponse
// @Failure 500 {object} utils.APIResponse
// @Router /roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	request := permission.ListRequest{
		Search:   c.Query("search"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	roles, total, err := h.roleService.List(c.Request.Context(), request)
	if err != nil {
		h.logger.Errorw("failed to list roles", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, roles, total, pagination.Page, pagination.PageSize)
}

// ListAllRoles godoc
// @Summary List all roles
// @Description Get the complete role collection (served from cache when warm)
// @Tags roles
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]permission.RoleResponse}
// @Failure 500 {object} utils.APIResponse
// @Router /roles/all [get]
func (h *RoleHandler) ListAllRoles(c *gin.Context) {
	roles, err := h.roleService.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list all roles", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "roles retrieved successfully", roles)
}

// GetRole godoc
// @Summary Get role
// @Description Get a single role with its permissions
// @Tags roles
// @Produce json
// @Param id path int true "Role ID"
// @Success 200 {object} utils.APIResponse{data=permission.RoleResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /roles/{id} [get]
func (h *RoleHandler) GetRole(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	role, err := h.roleService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "role retrieved successfully", role)
}

// CreateRole godoc
// @Summary Create role
// @Description Create a role; permission ids that do not resolve are dropped silently
// @Tags roles
// @Accept json
// @Produce json
// @Param request body permission.CreateRoleRequest true "Role to create"
// @Success 201 {object} utils.APIResponse{data=permission.RoleResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /roles [post]
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var request permission.CreateRoleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.roleService.Create(c.Request.Context(), request)
	if err != nil {
		h.logger.Errorw("failed to create role", "error", err, "name", request.Name)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, created, "role created successfully")
}

// UpdateRole godoc
// @Summary Update role
// @Description Patch a role; the built-in ADMIN role is protected
// @Tags roles
// @Accept json
// @Produce json
// @Param id path int true "Role ID"
// @Param request body permission.UpdateRoleRequest true "Fields to update"
// @Success 200 {object} utils.APIResponse{data=permission.RoleResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /roles/{id} [put]
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var request permission.UpdateRoleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.roleService.Update(c.Request.Context(), id, request)
	if err != nil {
		h.logger.Errorw("failed to update role", "error", err, "role_id", id)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "role updated successfully", updated)
}

// DeleteRole godoc
// @Summary Delete role
// @Description Delete a role; the built-in ADMIN role is protected
// @Tags roles
// @Produce json
// @Param id path int true "Role ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /roles/{id} [delete]
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "role")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.roleService.Delete(c.Request.Context(), id); err != nil {
		h.logger.Errorw("failed to delete role", "error", err, "role_id", id)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "role deleted successfully", nil)
}
