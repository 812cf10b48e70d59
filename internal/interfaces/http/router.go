// Package http assembles the gin engine: middleware, handlers and routes.
package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"dcfagents/internal/application/dcflog"
	"dcfagents/internal/application/permission"
	"dcfagents/internal/application/setting"
	"dcfagents/internal/application/user"
	"dcfagents/internal/infrastructure/auth"
	"dcfagents/internal/infrastructure/cache"
	"dcfagents/internal/infrastructure/config"
	"dcfagents/internal/infrastructure/repository"
	"dcfagents/internal/interfaces/http/handlers"
	"dcfagents/internal/interfaces/http/middleware"
	"dcfagents/internal/interfaces/http/routes"
	sharedDB "dcfagents/internal/shared/db"
	"dcfagents/internal/shared/logger"

	_ "dcfagents/docs"
)

// Router holds the assembled gin engine.
type Router struct {
	engine *gin.Engine
}

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(cfg *config.Config, db *gorm.DB, cacheStore cache.Store, log logger.Interface) *Router {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.ErrorHandler())
	allowedOrigins := cfg.Server.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	engine.Use(middleware.CORS(allowedOrigins))

	txManager := sharedDB.NewTransactionManager(db)
	hasher := auth.NewBcryptPasswordHasher(&cfg.Auth.Password)

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	dcfLogRepo := repository.NewDcfLogRepository(db)

	userService := user.NewService(userRepo, roleRepo, hasher, cacheStore, txManager, log.Named("user"))
	roleService := permission.NewRoleService(roleRepo, permissionRepo, cacheStore, txManager, log.Named("role"))
	permissionService := permission.NewPermissionService(permissionRepo, cacheStore, txManager, log.Named("permission"))
	settingService := setting.NewService(settingsRepo, cacheStore, txManager, log.Named("setting"))
	dcfLogService := dcflog.NewService(dcfLogRepo, log.Named("dcflog"))

	routes.SetupAccessRoutes(engine, &routes.AccessRouteConfig{
		UserHandler:       handlers.NewUserHandler(userService, log.Named("user_handler")),
		RoleHandler:       handlers.NewRoleHandler(roleService, log.Named("role_handler")),
		PermissionHandler: handlers.NewPermissionHandler(permissionService, log.Named("permission_handler")),
	})
	routes.SetupSettingRoutes(engine, handlers.NewSettingHandler(settingService, log.Named("setting_handler")))
	routes.SetupDcfLogRoutes(engine, handlers.NewDcfLogHandler(dcfLogService, log.Named("dcflog_handler")))

	engine.GET("/health", handlers.NewHealthHandler().HealthCheck)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Router{engine: engine}
}

// Engine returns the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
