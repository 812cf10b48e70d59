package database

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dcfagents/internal/shared/config"
	"dcfagents/internal/shared/logger"
)

var (
	db   *gorm.DB
	dbMu sync.RWMutex
)

// Init opens the MySQL connection and configures the pool. The connection is
// stored package-wide; callers reach it through Get.
func Init(cfg *config.DatabaseConfig) error {
	gormLog := gormlogger.New(&queryLogWriter{}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Info,
		IgnoreRecordNotFoundError: true,
	})

	conn, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       cfg.GetDSN(),
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:      gormLog,
		PrepareStmt: true,
	})
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql.DB handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	dbMu.Lock()
	db = conn
	dbMu.Unlock()

	logger.Info("connected to database",
		"name", cfg.Database,
		"host", cfg.Host)

	return nil
}

// Get returns the shared database connection.
func Get() *gorm.DB {
	dbMu.RLock()
	defer dbMu.RUnlock()
	return db
}

// Close closes the shared database connection if one is open.
func Close() error {
	dbMu.RLock()
	conn := db
	dbMu.RUnlock()

	if conn == nil {
		return nil
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql.DB handle: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	logger.Info("database connection closed")
	return nil
}

// queryLogWriter routes gorm's query log through the application logger,
// dropping the driver's own schema probes.
type queryLogWriter struct{}

var skippedQueries = []string{
	"information_schema.schemata",
	"select version()",
}

func (w *queryLogWriter) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	lowered := strings.ToLower(msg)
	for _, q := range skippedQueries {
		if strings.Contains(lowered, q) {
			return
		}
	}

	switch {
	case strings.Contains(lowered, "error"):
		logger.Error("database error", "details", msg)
	case strings.Contains(lowered, "slow sql"):
		logger.Warn("slow query detected", "details", msg)
	default:
		logger.Debug("database query", "details", msg)
	}
}
