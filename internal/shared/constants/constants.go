// Package constants defines shared application constants.
package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Protected sentinel records. Any record whose name matches one of these
	// case-insensitively may be read but never mutated or deleted.
	ProtectedAdminUsername = "admin"
	ProtectedAdminRoleName = "ADMIN"

	// Default user language applied when none is supplied on create.
	DefaultUserLanguage = "en"

	// Seeded admin credentials (demo deployment defaults).
	SeedAdminPassword = "123456"
	// Number of user01..userNN demo accounts ensured by the seeder.
	SeedDemoUserCount = 50

	// Substring matched (case-insensitively) against validation_status when
	// counting validated DCF analyses.
	ValidatedStatusMarker = "Validated"

	// Database table names
	TableUsers           = "users"
	TableRoles           = "roles"
	TablePermissions     = "permissions"
	TableUserRoles       = "user_roles"
	TableRolePermissions = "role_permissions"
	TableAiSettings      = "ai_settings"
	TableDcfLogs         = "dcf_logs"

	// Cache keys, one per entity family. Paginated reads never consult these;
	// any write to a family clears its key wholesale.
	CacheKeyUsers       = "cache:users"
	CacheKeyRoles       = "cache:roles"
	CacheKeyPermissions = "cache:permissions"
	CacheKeySettings    = "cache:settings"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
