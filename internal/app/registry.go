package app

import (
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"go-hrm/internal/attendance"
	"go-hrm/internal/employee"
	"go-hrm/internal/leave"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/middleware"
	"go-hrm/internal/payroll"
	"go-hrm/internal/rbac"
	"go-hrm/internal/salarystructure"
	"go-hrm/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	structureRepo := salarystructure.NewRepository(db)
	payrollRepo := payroll.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	counterRepo := counter.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	leaveService := leave.NewService(db, leaveRepo, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, leaveService, logger, standardDayHours())
	structureService := salarystructure.NewService(db, structureRepo, logger)
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo, rdb, logger)
	payrollService := payroll.NewService(
		db, payrollRepo,
		attendanceService, leaveService, structureService, employeeService,
		outboxRepo, logger,
	)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	leaveHandler := leave.NewHandler(leaveService)
	structureHandler := salarystructure.NewHandler(structureService)
	employeeHandler := employee.NewHandler(employeeService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(rate.Limit(20), 40))
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
		salarystructure.RegisterRoutes(api, structureHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
	}

	return nil
}

func standardDayHours() float64 {
	raw := os.Getenv("STANDARD_DAY_HOURS")
	if raw == "" {
		return attendance.DefaultStandardDayHours
	}
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil || hours <= 0 {
		return attendance.DefaultStandardDayHours
	}
	return hours
}
