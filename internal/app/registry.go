package app

import (
	"database/sql"

	"hrms-lite/internal/attendance"
	"hrms-lite/internal/config"
	"hrms-lite/internal/employee"
	"hrms-lite/internal/messaging/kafka"
	"hrms-lite/internal/report"
	"hrms-lite/internal/shared/audit"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) {
	logger := zap.L()

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)

	// Outbox rows are only queued when a worker can drain them.
	var outboxRepo kafka.OutboxRepository
	if len(cfg.Kafka.Brokers) > 0 {
		outboxRepo = kafka.NewOutboxRepository(db)
	}

	// --- Services ---
	auditLogger := audit.NewStdoutLogger(logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb, auditLogger, logger)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, outboxRepo, rdb, logger)
	reportService := report.NewService(
		report.NewEmployeeRoster(employeeRepo),
		report.NewAttendanceRecords(attendanceRepo),
		rdb,
		report.Options{
			CacheTTL: cfg.Report.CacheTTL,
			Location: cfg.Report.Location(),
		},
		logger,
	)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	reportHandler := report.NewHandler(reportService, logger)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		employee.RegisterRoutes(api, employeeHandler, rdb)
		attendance.RegisterRoutes(api, attendanceHandler, rdb)
		report.RegisterRoutes(api, reportHandler)
	}
}
