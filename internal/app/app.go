package app

import (
	"hrms-lite/internal/config"
	"hrms-lite/internal/database"
	"hrms-lite/internal/middleware"
	"hrms-lite/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, registers every module on router and
// returns a cleanup func that closes the connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")

	// 1. Setup Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("migrations applied")
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, report cache and idempotency disabled")
	}

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}

	// 2. Global middleware
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	// 3. Register Modules & Routes
	registerHealth(router, cfg.AppName, sqlDB)
	registerModules(router, cfg, sqlDB, gormDB, rdb)

	return cleanup, nil
}
