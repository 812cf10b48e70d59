package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dcfagents/internal/application/permission"
	"dcfagents/internal/shared/logger"
	"dcfagents/internal/shared/utils"
)

// PermissionService is the application surface the permission handler
// depends on.
type PermissionService interface {
	ListAll(ctx context.Context) ([]*permission.PermissionResponse, error)
	List(ctx context.Context, request permission.ListRequest) ([]*permission.PermissionResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*permission.PermissionResponse, error)
	Create(ctx context.Context, request permission.CreatePermissionRequest) (*permission.PermissionResponse, error)
	Update(ctx context.Context, id uint, request permission.UpdatePermissionRequest) (*permission.PermissionResponse, error)
	Delete(ctx context.Context, id uint) error
}

type PermissionHandler struct {
	permissionService PermissionService
	logger            logger.Interface
}

func NewPermissionHandler(permissionService PermissionService, logger logger.Interface) *PermissionHandler {
	return &PermissionHandler{
		permissionService: permissionService,
		logger:            logger,
	}
}

// ListPermissions godoc
// @Summary List permissions
// @Description Get a paginated list of permissions with optional name search
// @Tags permissions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Param search query string false "Search over permission name"
// @Success 200 {object} utils.ListResponse
// @Failure 500 {object} utils.APIResponse
// @Router /permissions [get]
func (h *PermissionHandler) ListPermissions(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	request := permission.ListRequest{
		Search:   c.Query("search"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	permissions, total, err := h.permissionService.List(c.Request.Context(), request)
	if err != nil {
		h.logger.Errorw("failed to list permissions", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, permissions, total, pagination.Page, pagination.PageSize)
}

// ListAllPermissions godoc
// @Summary List all permissions
// @Description Get the complete permission collection (served from cache when warm)
// @Tags permissions
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]permission.PermissionResponse}
// @Failure 500 {object} utils.APIResponse
// @Router /permissions/all [get]
func (h *PermissionHandler) ListAllPermissions(c *gin.Context) {
	permissions, err := h.permissionService.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list all permissions", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "permissions retrieved successfully", permissions)
}

// GetPermission godoc
// @Summary Get permission
// @Description Get a single permission by id
// @Tags permissions
// @Produce json
// @Param id path int true "Permission ID"
// @Success 200 {object} utils.APIResponse{data=permission.PermissionResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /permissions/{id} [get]
func (h *PermissionHandler) GetPermission(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "permission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.permissionService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "permission retrieved successfully", p)
}

// CreatePermission godoc
// @Summary Create permission
// @Description Create a permission; names are stored as given without a uniqueness constraint
// @Tags permissions
// @Accept json
// @Produce json
// @Param request body permission.CreatePermissionRequest true "Permission to create"
// @Success 201 {object} utils.APIResponse{data=permission.PermissionResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /permissions [post]
func (h *PermissionHandler) CreatePermission(c *gin.Context) {
	var request permission.CreatePermissionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.permissionService.Create(c.Request.Context(), request)
	if err != nil {
		h.logger.Errorw("failed to create permission", "error", err, "name", request.Name)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, created, "permission created successfully")
}

// UpdatePermission godoc
// @Summary Update permission
// @Description Patch a permission name
// @Tags permissions
// @Accept json
// @Produce json
// @Param id path int true "Permission ID"
// @Param request body permission.UpdatePermissionRequest true "Fields to update"
// @Success 200 {object} utils.APIResponse{data=permission.PermissionResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /permissions/{id} [put]
func (h *PermissionHandler) UpdatePermission(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "permission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var request permission.UpdatePermissionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.permissionService.Update(c.Request.Context(), id, request)
	if err != nil {
		h.logger.Errorw("failed to update permission", "error", err, "permission_id", id)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "permission updated successfully", updated)
}

// DeletePermission godoc
// @Summary Delete permission
// @Description Delete a permission and detach it from any roles
// @Tags permissions
// @Produce json
// @Param id path int true "Permission ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /permissions/{id} [delete]
func (h *PermissionHandler) DeletePermission(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "permission")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.permissionService.Delete(c.Request.Context(), id); err != nil {
		h.logger.Errorw("failed to delete permission", "error", err, "permission_id", id)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "permission deleted successfully", nil)
}
