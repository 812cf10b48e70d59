package routes

import (
	"github.com/gin-gonic/gin"

	"dcfagents/internal/interfaces/http/handlers"
)

// SetupDcfLogRoutes configures the DCF analysis log routes.
func SetupDcfLogRoutes(engine *gin.Engine, handler *handlers.DcfLogHandler) {
	logs := engine.Group("/dcf-logs")
	{
		logs.GET("", handler.ListEntries)
		logs.POST("", handler.CreateEntry)
		logs.GET("/stats", handler.GetStats)
	}
}
