package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dcfagents/internal/application/user"
	"dcfagents/internal/shared/logger"
	"dcfagents/internal/shared/utils"
)

// UserService is the application surface the user handler depends on.
type UserService interface {
	ListAll(ctx context.Context) ([]*user.UserResponse, error)
	List(ctx context.Context, request user.ListUsersRequest) ([]*user.UserResponse, int64, error)
	GetByID(ctx context.Context, id uint) (*user.UserResponse, error)
	Create(ctx context.Context, request user.CreateUserRequest) (*user.UserResponse, error)
	Update(ctx context.Context, id uint, request user.UpdateUserRequest) (*user.UserResponse, error)
	Delete(ctx context.Context, id uint) error
}

type UserHandler struct {
	userService UserService
	logger      logger.Interface
}

func NewUserHandler(userService UserService, logger logger.Interface) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers godoc
// @Summary List users
// @Description Get a paginated list of users with optional case-insensitive search
// @Tags users
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Param search query string false "Search over username, firstname and lastname"
// @Success 200 {object} utils.ListResponse
// @Failure 500 {object} utils.APIResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	request := user.ListUsersRequest{
		Search:   c.Query("search"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	users, total, err := h.userService.List(c.Request.Context(), request)
	if err != nil {
		h.logger.Errorw("failed to list users", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, users, total, pagination.Page, pagination.PageSize)
}

// ListAllUsers godoc
// @Summary List all users
// @Description Get the complete user collection (served from cache when warm)
// @Tags users
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]user.UserResponse}
// @Failure 500 {object} utils.APIResponse
// @Router /users/all [get]
func (h *UserHandler) ListAllUsers(c *gin.Context) {
	users, err := h.userService.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list all users", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "users retrieved successfully", users)
}

// GetUser godoc
// @Summary Get user
// @Description Get a single user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.APIResponse{data=user.UserResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	u, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user retrieved successfully", u)
}

// CreateUser godoc
// @Summary Create user
// @Description Create a new user with an optional single role
// @Tags users
// @Accept json
// @Produce json
// @Param request body user.CreateUserRequest true "User to create"
// @Success 201 {object} utils.APIResponse{data=user.UserResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var request user.CreateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.userService.Create(c.Request.Context(), request)
	if err != nil {
		h.logger.Errorw("failed to create user", "error", err, "username", request.Username)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, created, "user created successfully")
}

// UpdateUser godoc
// @Summary Update user
// @Description Patch a user; absent fields are left unchanged and a blank password is ignored
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body user.UpdateUserRequest true "Fields to update"
// @Success 200 {object} utils.APIResponse{data=user.UserResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var request user.UpdateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.userService.Update(c.Request.Context(), id, request)
	if err != nil {
		h.logger.Errorw("failed to update user", "error", err, "user_id", id)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user updated successfully", updated)
}

// DeleteUser godoc
// @Summary Delete user
// @Description Delete a user; the built-in admin account is protected
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		h.logger.Errorw("failed to delete user", "error", err, "user_id", id)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user deleted successfully", nil)
}
