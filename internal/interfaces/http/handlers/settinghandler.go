package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dcfagents/internal/application/setting"
	"dcfagents/internal/shared/logger"
	"dcfagents/internal/shared/utils"
)

// SettingService is the application surface the settings handler depends on.
type SettingService interface {
	ListAll(ctx context.Context) ([]*setting.SettingsResponse, error)
	GetCurrent(ctx context.Context) (*setting.SettingsResponse, error)
	Update(ctx context.Context, id uint, request setting.UpdateSettingsRequest) (*setting.SettingsResponse, error)
}

type SettingHandler struct {
	settingService SettingService
	logger         logger.Interface
}

func NewSettingHandler(settingService SettingService, logger logger.Interface) *SettingHandler {
	return &SettingHandler{
		settingService: settingService,
		logger:         logger,
	}
}

// ListSettings godoc
// @Summary List settings
// @Description Get all AI settings rows
// @Tags settings
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]setting.SettingsResponse}
// @Failure 500 {object} utils.APIResponse
// @Router /settings [get]
func (h *SettingHandler) ListSettings(c *gin.Context) {
	settings, err := h.settingService.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list settings", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "settings retrieved successfully", settings)
}

// GetCurrentSettings godoc
// @Summary Get current settings
// @Description Get the active AI settings row
// @Tags settings
// @Produce json
// @Success 200 {object} utils.APIResponse{data=setting.SettingsResponse}
// @Failure 404 {object} utils.APIResponse
// @Router /settings/current [get]
func (h *SettingHandler) GetCurrentSettings(c *gin.Context) {
	settings, err := h.settingService.GetCurrent(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "settings retrieved successfully", settings)
}

// UpdateSettings godoc
// @Summary Update settings
// @Description Patch the AI agent prompts; absent fields are left unchanged
// @Tags settings
// @Accept json
// @Produce json
// @Param id path int true "Settings ID"
// @Param request body setting.UpdateSettingsRequest true "Fields to update"
// @Success 200 {object} utils.APIResponse{data=setting.SettingsResponse}
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /settings/{id} [put]
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "settings")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var request setting.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.settingService.Update(c.Request.Context(), id, request)
	if err != nil {
		h.logger.Errorw("failed to update settings", "error", err, "settings_id", id)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "settings updated successfully", updated)
}
