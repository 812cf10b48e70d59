// Package routes wires the HTTP surface onto the gin engine, one setup
// function per entity family.
package routes

import (
	"github.com/gin-gonic/gin"

	"dcfagents/internal/interfaces/http/handlers"
)

// AccessRouteConfig holds the handlers for the user/role/permission routes.
type AccessRouteConfig struct {
	UserHandler       *handlers.UserHandler
	RoleHandler       *handlers.RoleHandler
	PermissionHandler *handlers.PermissionHandler
}

// SetupAccessRoutes configures the user, role and permission routes.
func SetupAccessRoutes(engine *gin.Engine, cfg *AccessRouteConfig) {
	users := engine.Group("/users")
	{
		users.GET("", cfg.UserHandler.ListUsers)
		users.GET("/all", cfg.UserHandler.ListAllUsers)
		users.GET("/:id", cfg.UserHandler.GetUser)
		users.POST("", cfg.UserHandler.CreateUser)
		users.PUT("/:id", cfg.UserHandler.UpdateUser)
		users.DELETE("/:id", cfg.UserHandler.DeleteUser)
	}

	roles := engine.Group("/roles")
	{
		roles.GET("", cfg.RoleHandler.ListRoles)
		roles.GET("/all", cfg.RoleHandler.ListAllRoles)
		roles.GET("/:id", cfg.RoleHandler.GetRole)
		roles.POST("", cfg.RoleHandler.CreateRole)
		roles.PUT("/:id", cfg.RoleHandler.UpdateRole)
		roles.DELETE("/:id", cfg.RoleHandler.DeleteRole)
	}

	permissions := engine.Group("/permissions")
	{
		permissions.GET("", cfg.PermissionHandler.ListPermissions)
		permissions.GET("/all", cfg.PermissionHandler.ListAllPermissions)
		permissions.GET("/:id", cfg.PermissionHandler.GetPermission)
		permissions.POST("", cfg.PermissionHandler.CreatePermission)
		permissions.PUT("/:id", cfg.PermissionHandler.UpdatePermission)
		permissions.DELETE("/:id", cfg.PermissionHandler.DeletePermission)
	}
}
