package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dcfagents/internal/application/dcflog"
	"dcfagents/internal/shared/logger"
	"dcfagents/internal/shared/utils"
)

// DcfLogService is the application surface the DCF log handler depends on.
type DcfLogService interface {
	List(ctx context.Context, request dcflog.ListEntriesRequest) ([]*dcflog.EntryResponse, int64, error)
	Create(ctx context.Context, request dcflog.CreateEntryRequest) (*dcflog.EntryResponse, error)
	Stats(ctx context.Context) (*dcflog.StatsResponse, error)
}

type DcfLogHandler struct {
	logService DcfLogService
	logger     logger.Interface
}

func NewDcfLogHandler(logService DcfLogService, logger logger.Interface) *DcfLogHandler {
	return &DcfLogHandler{
		logService: logService,
		logger:     logger,
	}
}

// ListEntries godoc
// @Summary List DCF analysis log entries
// @Description Get a paginated list of DCF analysis log entries, newest first
// @Tags dcf-logs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} utils.ListResponse
// @Failure 500 {object} utils.APIResponse
// @Router /dcf-logs [get]
func (h *DcfLogHandler) ListEntries(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	request := dcflog.ListEntriesRequest{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	entries, total, err := h.logService.List(c.Request.Context(), request)
	if err != nil {
		h.logger.Errorw("failed to list dcf log entries", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, entries, total, pagination.Page, pagination.PageSize)
}

// CreateEntry godoc
// @Summary Record a DCF analysis
// @Description Append an entry to the DCF analysis log; the timestamp is server-assigned
// @Tags dcf-logs
// @Accept json
// @Produce json
// @Param request body dcflog.CreateEntryRequest true "Entry to record"
// @Success 201 {object} utils.APIResponse{data=dcflog.EntryResponse}
// @Failure 400 {object} utils.APIResponse
// @Router /dcf-logs [post]
func (h *DcfLogHandler) CreateEntry(c *gin.Context) {
	var request dcflog.CreateEntryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.logService.Create(c.Request.Context(), request)
	if err != nil {
		h.logger.Errorw("failed to create dcf log entry", "error", err, "company", request.CompanyName)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, created, "dcf log entry created successfully")
}

// GetStats godoc
// @Summary DCF analysis statistics
// @Description Get aggregate counts over the DCF analysis log
// @Tags dcf-logs
// @Produce json
// @Success 200 {object} utils.APIResponse{data=dcflog.StatsResponse}
// @Failure 500 {object} utils.APIResponse
// @Router /dcf-logs/stats [get]
func (h *DcfLogHandler) GetStats(c *gin.Context) {
	stats, err := h.logService.Stats(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to compute dcf log stats", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "stats retrieved successfully", stats)
}
