package routes

import (
	"github.com/gin-gonic/gin"

	"dcfagents/internal/interfaces/http/handlers"
)

// SetupSettingRoutes configures the AI settings routes.
func SetupSettingRoutes(engine *gin.Engine, handler *handlers.SettingHandler) {
	settings := engine.Group("/settings")
	{
		settings.GET("", handler.ListSettings)
		settings.GET("/current", handler.GetCurrentSettings)
		settings.PUT("/:id", handler.UpdateSettings)
	}
}
