package main

import (
	"flag"

	"hrms-lite/internal/config"
	"hrms-lite/internal/database"
	"hrms-lite/internal/shared/connection"
	"hrms-lite/internal/shared/logging"

	"go.uber.org/zap"
)

func main() {
	cmd := flag.String("cmd", "up", "migration command: up, down or status")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("get sql db failed", zap.Error(err))
	}
	defer sqlDB.Close()

	switch *cmd {
	case "up":
		err = database.Migrate(sqlDB)
	case "down":
		err = database.Rollback(sqlDB)
	case "status":
		err = database.Status(sqlDB)
	default:
		logger.Fatal("unknown migration command", zap.String("cmd", *cmd))
	}
	if err != nil {
		logger.Fatal("migration failed", zap.String("cmd", *cmd), zap.Error(err))
	}
	logger.Info("migration finished", zap.String("cmd", *cmd))
}
